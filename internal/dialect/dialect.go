package dialect

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/typedq/internal/sqlrep"
)

// Dialect captures the per-engine rendering decisions. The compiler owns
// clause structure; a Dialect only answers the questions engines answer
// differently.
type Dialect interface {
	// Name is the engine identifier ("sqlite", "postgres", "mysql").
	Name() string

	// Placeholder returns the bind marker for the 1-based position n.
	Placeholder(n int) string

	// Like renders the pattern predicate. ph is the already-bound
	// pattern placeholder.
	Like(column string, caseSensitive bool, ph string) string

	// FoldPattern transforms the pattern value before binding. Engines
	// whose insensitive path lowers both sides fold here.
	FoldPattern(pattern string, caseSensitive bool) string

	// LimitOffset renders the pagination tail, including the leading
	// space, or "" when the query sets neither quantity. bind registers
	// a parameter and returns its placeholder.
	LimitOffset(q *sqlrep.Query, bind func(any) string) string
}

// lower folds text for engines that implement case-insensitive LIKE by
// lowering both sides. Und: pattern text has no known language.
var lower = cases.Lower(language.Und)

// SQLite renders for SQLite.
//
// SQLite's LIKE is case-insensitive for ASCII only, so the insensitive
// path lowers both sides explicitly instead of relying on the engine.
// The sensitive path emits plain LIKE; true case sensitivity is governed
// by the case_sensitive_like pragma on the connection.
type SQLite struct{}

func (SQLite) Name() string             { return "sqlite" }
func (SQLite) Placeholder(n int) string { return "?" }

func (SQLite) Like(column string, caseSensitive bool, ph string) string {
	if caseSensitive {
		return fmt.Sprintf("%s LIKE %s", column, ph)
	}
	return fmt.Sprintf("LOWER(%s) LIKE %s", column, ph)
}

func (SQLite) FoldPattern(pattern string, caseSensitive bool) string {
	if caseSensitive {
		return pattern
	}
	return lower.String(pattern)
}

func (SQLite) LimitOffset(q *sqlrep.Query, bind func(any) string) string {
	// SQLite accepts OFFSET only after a LIMIT; -1 means unbounded.
	switch {
	case q.HasLimit && q.HasOffset:
		return fmt.Sprintf(" LIMIT %s OFFSET %s", bind(q.LimitN), bind(q.OffsetN))
	case q.HasLimit:
		return fmt.Sprintf(" LIMIT %s", bind(q.LimitN))
	case q.HasOffset:
		return fmt.Sprintf(" LIMIT -1 OFFSET %s", bind(q.OffsetN))
	default:
		return ""
	}
}

// Postgres renders for PostgreSQL: $n placeholders, ILIKE for the
// insensitive pattern match, and OFFSET standing alone.
type Postgres struct{}

func (Postgres) Name() string             { return "postgres" }
func (Postgres) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (Postgres) Like(column string, caseSensitive bool, ph string) string {
	if caseSensitive {
		return fmt.Sprintf("%s LIKE %s", column, ph)
	}
	return fmt.Sprintf("%s ILIKE %s", column, ph)
}

func (Postgres) FoldPattern(pattern string, caseSensitive bool) string {
	return pattern
}

func (Postgres) LimitOffset(q *sqlrep.Query, bind func(any) string) string {
	var sb strings.Builder
	if q.HasLimit {
		fmt.Fprintf(&sb, " LIMIT %s", bind(q.LimitN))
	}
	if q.HasOffset {
		fmt.Fprintf(&sb, " OFFSET %s", bind(q.OffsetN))
	}
	return sb.String()
}

// MySQL renders for MySQL: the default collation already compares
// case-insensitively, so the insensitive path is plain LIKE and the
// sensitive path forces a binary comparison.
type MySQL struct{}

func (MySQL) Name() string             { return "mysql" }
func (MySQL) Placeholder(n int) string { return "?" }

func (MySQL) Like(column string, caseSensitive bool, ph string) string {
	if caseSensitive {
		return fmt.Sprintf("%s LIKE BINARY %s", column, ph)
	}
	return fmt.Sprintf("%s LIKE %s", column, ph)
}

func (MySQL) FoldPattern(pattern string, caseSensitive bool) string {
	return pattern
}

func (MySQL) LimitOffset(q *sqlrep.Query, bind func(any) string) string {
	// MySQL has no offset-without-limit form; the documented idiom is an
	// effectively unbounded limit.
	switch {
	case q.HasLimit && q.HasOffset:
		return fmt.Sprintf(" LIMIT %s OFFSET %s", bind(q.LimitN), bind(q.OffsetN))
	case q.HasLimit:
		return fmt.Sprintf(" LIMIT %s", bind(q.LimitN))
	case q.HasOffset:
		return fmt.Sprintf(" LIMIT 18446744073709551615 OFFSET %s", bind(q.OffsetN))
	default:
		return ""
	}
}

// Engines returns every supported dialect in stable order.
func Engines() []Dialect {
	return []Dialect{SQLite{}, Postgres{}, MySQL{}}
}

// ByName looks up a dialect by engine identifier.
func ByName(name string) (Dialect, bool) {
	for _, d := range Engines() {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}
