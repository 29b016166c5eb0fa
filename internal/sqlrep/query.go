package sqlrep

import "github.com/google/uuid"

// Verb selects the statement family a query renders to.
type Verb int

const (
	VerbSelect Verb = iota
	VerbInsert
	VerbUpdate
	VerbDelete
)

// String returns the SQL keyword for the verb.
func (v Verb) String() string {
	switch v {
	case VerbSelect:
		return "SELECT"
	case VerbInsert:
		return "INSERT"
	case VerbUpdate:
		return "UPDATE"
	case VerbDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// CondKind discriminates the filter shapes a Cond can carry.
type CondKind int

const (
	// CondCompare is `column <op> value`.
	CondCompare CondKind = iota
	// CondNull is `column IS NULL`.
	CondNull
	// CondNotNull is `column IS NOT NULL`.
	CondNotNull
	// CondIn is `column IN (values...)`. An empty value list is kept
	// as-is; its emptiness policy belongs to the dialect compiler.
	CondIn
	// CondNotIn is `column NOT IN (values...)`.
	CondNotIn
	// CondBetween is `column BETWEEN low AND high`. Bound order is
	// caller-supplied and not validated.
	CondBetween
	// CondLike is a pattern match with a case-sensitivity flag.
	CondLike
)

// Cond is one filter in a WHERE or HAVING list.
type Cond struct {
	// Or combines this filter with OR against the preceding filters.
	// The default (false) combines with AND. Ignored on the first
	// filter of a list.
	Or bool

	Kind   CondKind
	Column string

	// Op and Value apply to CondCompare.
	Op    string
	Value any

	// Values applies to CondIn / CondNotIn.
	Values []any

	// Low and High apply to CondBetween.
	Low  any
	High any

	// Pattern and CaseSensitive apply to CondLike.
	Pattern       string
	CaseSensitive bool
}

// JoinKind is the join family keyword.
type JoinKind string

const (
	JoinInner JoinKind = "INNER"
	JoinLeft  JoinKind = "LEFT"
	JoinRight JoinKind = "RIGHT"
	JoinCross JoinKind = "CROSS"
)

// JoinClause is one join against the primary table. Left and Right are
// qualified "Table.Column" paths; a cross join carries no condition.
type JoinClause struct {
	Kind  JoinKind
	Table string
	Left  string
	Op    string
	Right string
}

// Order is one ORDER BY entry.
type Order struct {
	Column string
	Desc   bool
}

// AggExpr is one aggregate select expression. An empty Column renders as
// the star form (COUNT(*)); a non-empty Alias renders `AS alias`.
type AggExpr struct {
	Fn     string
	Column string
	Alias  string
}

// Assign is one SET entry of an update. When IsDelta is set the entry
// renders as `column = column + delta` (a negative delta decrements).
type Assign struct {
	Column  string
	Value   any
	Delta   any
	IsDelta bool
}

// Query is the mutable clause tree for one statement.
type Query struct {
	// ID is a per-query correlation token for diagnostics; it never
	// appears in generated SQL.
	ID string

	// Table is the query source (or target, for DML).
	Table string

	Verb Verb

	// Select list.
	Columns    []string
	Aggregates []AggExpr
	IsDistinct bool

	Wheres []Cond
	Joins  []JoinClause
	Groups []string

	Havings []Cond
	Orders  []Order

	// Pagination. Has* flags distinguish "unset" from zero; the values
	// themselves are last-write-wins.
	LimitN    int
	HasLimit  bool
	OffsetN   int
	HasOffset bool

	// Insert payload: one shared column list, one value row per entity.
	InsertColumns []string
	InsertRows    [][]any

	// Update payload.
	Assigns []Assign
}

// New creates an empty select query over the given table identifier.
func New(table string) *Query {
	return &Query{ID: uuid.NewString(), Table: table}
}
