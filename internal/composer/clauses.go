package composer

import (
	"sort"

	"github.com/roach88/typedq/internal/fieldref"
)

// Select adds projection columns. With no references it selects every
// non-excluded column in declaration order; with references, one column
// per reference in argument order, duplicates preserved.
func (b *Builder[T]) Select(refs ...fieldref.Ref[T]) (*Builder[T], error) {
	if len(refs) == 0 {
		b.q.Select(b.desc.Columns()...)
		return b, nil
	}
	cols, err := b.columns(refs, "select")
	if err != nil {
		return nil, err
	}
	b.q.Select(cols...)
	return b, nil
}

// SelectColumns adds projection columns by raw identifier.
func (b *Builder[T]) SelectColumns(columns ...string) *Builder[T] {
	b.q.Select(columns...)
	return b
}

// Where adds `field <op> value`, AND-combined with preceding filters.
func (b *Builder[T]) Where(ref fieldref.Ref[T], op string, value any) (*Builder[T], error) {
	col, err := b.column(ref, "where")
	if err != nil {
		return nil, err
	}
	b.q.Where(col, op, value)
	return b, nil
}

// WhereEq is the one-argument filter form: equality.
func (b *Builder[T]) WhereEq(ref fieldref.Ref[T], value any) (*Builder[T], error) {
	return b.Where(ref, "=", value)
}

// OrWhere adds `field <op> value`, OR-combined against the preceding
// filter group.
func (b *Builder[T]) OrWhere(ref fieldref.Ref[T], op string, value any) (*Builder[T], error) {
	col, err := b.column(ref, "or-where")
	if err != nil {
		return nil, err
	}
	b.q.OrWhere(col, op, value)
	return b, nil
}

// WhereColumn adds a filter on a raw column identifier.
func (b *Builder[T]) WhereColumn(column, op string, value any) *Builder[T] {
	b.q.Where(column, op, value)
	return b
}

// OrWhereColumn adds an OR-combined filter on a raw column identifier.
func (b *Builder[T]) OrWhereColumn(column, op string, value any) *Builder[T] {
	b.q.OrWhere(column, op, value)
	return b
}

// WhereNull adds `field IS NULL`; no operator or value involved.
func (b *Builder[T]) WhereNull(ref fieldref.Ref[T]) (*Builder[T], error) {
	col, err := b.column(ref, "where-null")
	if err != nil {
		return nil, err
	}
	b.q.WhereNull(col)
	return b, nil
}

// WhereNotNull adds `field IS NOT NULL`.
func (b *Builder[T]) WhereNotNull(ref fieldref.Ref[T]) (*Builder[T], error) {
	col, err := b.column(ref, "where-not-null")
	if err != nil {
		return nil, err
	}
	b.q.WhereNotNull(col)
	return b, nil
}

// WhereIn adds a set-membership filter. An empty value list is forwarded
// unchanged; its rendering is the dialect compiler's policy.
func (b *Builder[T]) WhereIn(ref fieldref.Ref[T], values ...any) (*Builder[T], error) {
	col, err := b.column(ref, "where-in")
	if err != nil {
		return nil, err
	}
	b.q.WhereIn(col, values...)
	return b, nil
}

// WhereNotIn adds a negated set-membership filter.
func (b *Builder[T]) WhereNotIn(ref fieldref.Ref[T], values ...any) (*Builder[T], error) {
	col, err := b.column(ref, "where-not-in")
	if err != nil {
		return nil, err
	}
	b.q.WhereNotIn(col, values...)
	return b, nil
}

// WhereBetween adds a range filter. Bound order is caller-supplied and
// forwarded as-is.
func (b *Builder[T]) WhereBetween(ref fieldref.Ref[T], low, high any) (*Builder[T], error) {
	col, err := b.column(ref, "where-between")
	if err != nil {
		return nil, err
	}
	b.q.WhereBetween(col, low, high)
	return b, nil
}

// WhereLike adds a pattern filter. Case-insensitive unless the optional
// flag says otherwise.
func (b *Builder[T]) WhereLike(ref fieldref.Ref[T], pattern string, caseSensitive ...bool) (*Builder[T], error) {
	col, err := b.column(ref, "where-like")
	if err != nil {
		return nil, err
	}
	b.q.WhereLike(col, pattern, len(caseSensitive) > 0 && caseSensitive[0])
	return b, nil
}

// WhereMatch adds one equality filter per entry of a structured value.
// Keys are matched literally against column identifiers with no
// override resolution, so callers must use already-resolved identifiers (the
// override name, not the bare field name). Keys apply in sorted order
// for deterministic output.
func (b *Builder[T]) WhereMatch(values map[string]any) *Builder[T] {
	for _, k := range sortedKeys(values) {
		b.q.Where(k, "=", values[k])
	}
	return b
}

// GroupBy adds grouping columns by reference, in argument order.
func (b *Builder[T]) GroupBy(refs ...fieldref.Ref[T]) (*Builder[T], error) {
	cols, err := b.columns(refs, "group-by")
	if err != nil {
		return nil, err
	}
	b.q.GroupBy(cols...)
	return b, nil
}

// GroupByColumns adds grouping columns by raw identifier.
func (b *Builder[T]) GroupByColumns(columns ...string) *Builder[T] {
	b.q.GroupBy(columns...)
	return b
}

// Having adds `field <op> value` to the HAVING list.
func (b *Builder[T]) Having(ref fieldref.Ref[T], op string, value any) (*Builder[T], error) {
	col, err := b.column(ref, "having")
	if err != nil {
		return nil, err
	}
	b.q.Having(col, op, value)
	return b, nil
}

// HavingEq is the one-argument HAVING form: equality.
func (b *Builder[T]) HavingEq(ref fieldref.Ref[T], value any) (*Builder[T], error) {
	return b.Having(ref, "=", value)
}

// OrHaving adds an OR-combined HAVING filter.
func (b *Builder[T]) OrHaving(ref fieldref.Ref[T], op string, value any) (*Builder[T], error) {
	col, err := b.column(ref, "or-having")
	if err != nil {
		return nil, err
	}
	b.q.OrHaving(col, op, value)
	return b, nil
}

// HavingColumn adds a HAVING filter on a raw identifier, typically an
// aggregate alias.
func (b *Builder[T]) HavingColumn(column, op string, value any) *Builder[T] {
	b.q.Having(column, op, value)
	return b
}

// HavingNull adds `field IS NULL` to the HAVING list.
func (b *Builder[T]) HavingNull(ref fieldref.Ref[T]) (*Builder[T], error) {
	col, err := b.column(ref, "having-null")
	if err != nil {
		return nil, err
	}
	b.q.HavingNull(col)
	return b, nil
}

// HavingNotNull adds `field IS NOT NULL` to the HAVING list.
func (b *Builder[T]) HavingNotNull(ref fieldref.Ref[T]) (*Builder[T], error) {
	col, err := b.column(ref, "having-not-null")
	if err != nil {
		return nil, err
	}
	b.q.HavingNotNull(col)
	return b, nil
}

// HavingIn adds a set-membership filter to the HAVING list.
func (b *Builder[T]) HavingIn(ref fieldref.Ref[T], values ...any) (*Builder[T], error) {
	col, err := b.column(ref, "having-in")
	if err != nil {
		return nil, err
	}
	b.q.HavingIn(col, values...)
	return b, nil
}

// HavingBetween adds a range filter to the HAVING list.
func (b *Builder[T]) HavingBetween(ref fieldref.Ref[T], low, high any) (*Builder[T], error) {
	col, err := b.column(ref, "having-between")
	if err != nil {
		return nil, err
	}
	b.q.HavingBetween(col, low, high)
	return b, nil
}

// OrderBy adds ascending order columns by reference, in argument order.
func (b *Builder[T]) OrderBy(refs ...fieldref.Ref[T]) (*Builder[T], error) {
	cols, err := b.columns(refs, "order-by")
	if err != nil {
		return nil, err
	}
	b.q.OrderBy(cols...)
	return b, nil
}

// OrderByDesc adds descending order columns by reference. Descending is
// a distinct method, not a flag.
func (b *Builder[T]) OrderByDesc(refs ...fieldref.Ref[T]) (*Builder[T], error) {
	cols, err := b.columns(refs, "order-by-desc")
	if err != nil {
		return nil, err
	}
	b.q.OrderByDesc(cols...)
	return b, nil
}

// OrderByColumns adds ascending order columns by raw identifier.
func (b *Builder[T]) OrderByColumns(columns ...string) *Builder[T] {
	b.q.OrderBy(columns...)
	return b
}

// OrderByColumnsDesc adds descending order columns by raw identifier.
func (b *Builder[T]) OrderByColumnsDesc(columns ...string) *Builder[T] {
	b.q.OrderByDesc(columns...)
	return b
}

// Limit sets the absolute row bound.
func (b *Builder[T]) Limit(n int) *Builder[T] {
	b.q.Limit(n)
	return b
}

// Offset sets the rows to skip.
func (b *Builder[T]) Offset(n int) *Builder[T] {
	b.q.Offset(n)
	return b
}

// Take is a synonym for Limit.
func (b *Builder[T]) Take(n int) *Builder[T] { return b.Limit(n) }

// Skip is a synonym for Offset.
func (b *Builder[T]) Skip(n int) *Builder[T] { return b.Offset(n) }

// Page sets offset = (page-1)*perPage and limit = perPage. Page numbers
// below 1 are forwarded as-is, yielding a non-positive offset. Page
// overwrites any earlier Limit/Offset pair and vice versa: both shapes
// set the same two quantities.
func (b *Builder[T]) Page(page, perPage int) *Builder[T] {
	b.q.Offset((page - 1) * perPage)
	b.q.Limit(perPage)
	return b
}

// Distinct sets the DISTINCT flag. Idempotent.
func (b *Builder[T]) Distinct() *Builder[T] {
	b.q.Distinct()
	return b
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
