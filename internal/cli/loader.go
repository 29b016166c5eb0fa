package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/typedq/internal/querydoc"
)

// querySchema is the CUE schema every loaded document set is unified
// with before decoding. Structural errors surface as CUE validation
// errors with positions instead of decode failures.
const querySchema = `
#Filter: {
	kind?: "compare" | "null" | "not_null" | "in" | "not_in" | "between" | "like"
	column: string & !=""
	or?:    bool
	op?:    string
	value?: _
	values?: [..._]
	low?:  _
	high?: _
	pattern?:        string
	case_sensitive?: bool
}

#Join: {
	kind?: "inner" | "left" | "right" | "cross"
	table: string & !=""
	left?:  string
	op?:    string
	right?: string
}

#Aggregate: {
	fn:      string & !=""
	column?: string
	alias?:  string
}

#Order: {
	column: string & !=""
	desc?:  bool
}

#Query: {
	table: string & !=""
	select?: [...string]
	aggregates?: [...#Aggregate]
	distinct?: bool
	where?: [...#Filter]
	joins?: [...#Join]
	group_by?: [...string]
	having?: [...#Filter]
	order_by?: [...#Order]
	limit?:  int
	offset?: int
}

query?: [string]: #Query
`

// LoadResult contains the query documents loaded from a directory.
type LoadResult struct {
	Docs      []querydoc.Doc
	FileCount int
}

// LoadError represents an error that occurred during document loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build or schema validation failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeInvalidDoc  = "E101" // Query document rejected by Build
	ErrCodeBadEngine   = "E102" // Unknown engine identifier
)

// LoadQueries loads every query document from the CUE files in dir,
// validating against the embedded schema. All document errors are
// collected rather than stopping at the first.
func LoadQueries(dir string) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("queries directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing queries directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir, Package: "_"})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	schema := ctx.CompileString(querySchema)
	if err := schema.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("compiling query schema: %v", err)}}
	}
	unified := value.Unify(schema)
	if err := unified.Validate(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("validating against query schema: %v", err)}}
	}

	result := &LoadResult{FileCount: len(cueFiles)}
	var errs []error

	queries := unified.LookupPath(cue.ParsePath("query"))
	if queries.Exists() {
		iter, iterErr := queries.Fields()
		if iterErr != nil {
			return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating queries: %v", iterErr)}}
		}
		for iter.Next() {
			var doc querydoc.Doc
			if err := iter.Value().Decode(&doc); err != nil {
				errs = append(errs, &LoadError{Code: ErrCodeInvalidDoc, Message: fmt.Sprintf("query.%s: %v", iter.Label(), err)})
				continue
			}
			doc.Name = iter.Label()
			if _, err := doc.Build(); err != nil {
				errs = append(errs, &LoadError{Code: ErrCodeInvalidDoc, Message: err.Error()})
				continue
			}
			result.Docs = append(result.Docs, doc)
		}
	}

	if len(result.Docs) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no queries found in documents"})
	}
	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
