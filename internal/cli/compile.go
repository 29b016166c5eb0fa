package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/typedq/internal/dialect"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string   // output file path
	Engines []string // engine names to compile for (default: all)
}

// CompiledQuery is one query document rendered for every requested
// engine.
type CompiledQuery struct {
	Name    string                      `json:"name"`
	Table   string                      `json:"table"`
	Engines map[string]dialect.Compiled `json:"engines"`
}

// CompilationResult holds every compiled query.
type CompilationResult struct {
	Queries []CompiledQuery `json:"queries"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <queries-dir>",
		Short: "Compile CUE query documents to SQL",
		Long: `Compile CUE query documents to parameterized SQL.

Each document is validated against the query schema, lowered to the
internal representation, and rendered for every requested engine.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringSliceVar(&opts.Engines, "engine", nil, "engines to compile for (default: all)")

	return cmd
}

func runCompile(opts *CompileOptions, queriesDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	engines, err := resolveEngines(opts.Engines)
	if err != nil {
		return outputCompileError(formatter, ErrCodeBadEngine, err.Error(), nil)
	}

	loadResult, loadErrors := LoadQueries(queriesDir)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, queriesDir)

	if len(loadErrors) > 0 {
		return outputCompileErrors(formatter, loadErrors)
	}

	result := &CompilationResult{}
	for _, doc := range loadResult.Docs {
		q, err := doc.Build()
		if err != nil {
			return outputCompileError(formatter, ErrCodeInvalidDoc, err.Error(), nil)
		}
		formatter.VerboseLog("Compiling query %s (id %s)", doc.Name, q.ID)

		compiled := CompiledQuery{
			Name:    doc.Name,
			Table:   q.Table,
			Engines: make(map[string]dialect.Compiled, len(engines)),
		}
		for _, d := range engines {
			sql, args, err := dialect.New(d).Compile(q)
			if err != nil {
				return outputCompileError(formatter, ErrCodeInvalidDoc,
					fmt.Sprintf("query %s (%s): %v", doc.Name, d.Name(), err), nil)
			}
			compiled.Engines[d.Name()] = dialect.Compiled{Engine: d.Name(), SQL: sql, Args: args}
		}
		result.Queries = append(result.Queries, compiled)
	}

	sort.Slice(result.Queries, func(i, j int) bool {
		return result.Queries[i].Name < result.Queries[j].Name
	})

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, engines, opts.Output)
}

// resolveEngines maps engine names to dialects, defaulting to all
// registered engines when none are named.
func resolveEngines(names []string) ([]dialect.Dialect, error) {
	if len(names) == 0 {
		return dialect.Engines(), nil
	}
	out := make([]dialect.Dialect, 0, len(names))
	for _, name := range names {
		d, ok := dialect.ByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown engine %q: must be one of %s", name, knownEngineNames())
		}
		out = append(out, d)
	}
	return out, nil
}

func knownEngineNames() string {
	engines := dialect.Engines()
	names := make([]string, len(engines))
	for i, d := range engines {
		names[i] = d.Name()
	}
	return strings.Join(names, ", ")
}

// outputCompileSuccess outputs successful compilation results.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, engines []dialect.Dialect, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d quer%s for %d engine(s)\n\n",
		len(result.Queries), pluralY(len(result.Queries)), len(engines))

	for _, q := range result.Queries {
		fmt.Fprintf(formatter.Writer, "%s (table %s):\n", q.Name, q.Table)
		for _, d := range engines {
			c := q.Engines[d.Name()]
			fmt.Fprintf(formatter.Writer, "  [%s] %s\n", c.Engine, c.SQL)
			if len(c.Args) > 0 {
				fmt.Fprintf(formatter.Writer, "       args: %v\n", c.Args)
			}
		}
		fmt.Fprintln(formatter.Writer)
	}

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote compiled SQL to %s\n", outputFile)
	}

	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{
				Code:    code,
				Message: message,
			}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseCompileError(err)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeResultToFile writes the compilation result to a file as indented
// JSON.
func writeResultToFile(result *CompilationResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
