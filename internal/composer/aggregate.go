package composer

import "github.com/roach88/typedq/internal/fieldref"

// Aggregate calls accumulate as additional select expressions; they do
// not replace each other. The unaliased forms use the representation's
// built-in aggregate selector; the aliased forms emit
// `FUNCTION(column) AS alias`.

// Count adds COUNT(*).
func (b *Builder[T]) Count() *Builder[T] {
	b.q.Aggregate("COUNT", "")
	return b
}

// CountAs adds COUNT(*) under an alias.
func (b *Builder[T]) CountAs(alias string) *Builder[T] {
	b.q.AggregateAs("COUNT", "", alias)
	return b
}

// Sum adds SUM(field).
func (b *Builder[T]) Sum(ref fieldref.Ref[T]) (*Builder[T], error) {
	return b.aggregate("SUM", ref, "sum", "")
}

// SumAs adds SUM(field) under an alias.
func (b *Builder[T]) SumAs(ref fieldref.Ref[T], alias string) (*Builder[T], error) {
	return b.aggregate("SUM", ref, "sum", alias)
}

// Avg adds AVG(field).
func (b *Builder[T]) Avg(ref fieldref.Ref[T]) (*Builder[T], error) {
	return b.aggregate("AVG", ref, "avg", "")
}

// AvgAs adds AVG(field) under an alias.
func (b *Builder[T]) AvgAs(ref fieldref.Ref[T], alias string) (*Builder[T], error) {
	return b.aggregate("AVG", ref, "avg", alias)
}

// Min adds MIN(field).
func (b *Builder[T]) Min(ref fieldref.Ref[T]) (*Builder[T], error) {
	return b.aggregate("MIN", ref, "min", "")
}

// MinAs adds MIN(field) under an alias.
func (b *Builder[T]) MinAs(ref fieldref.Ref[T], alias string) (*Builder[T], error) {
	return b.aggregate("MIN", ref, "min", alias)
}

// Max adds MAX(field).
func (b *Builder[T]) Max(ref fieldref.Ref[T]) (*Builder[T], error) {
	return b.aggregate("MAX", ref, "max", "")
}

// MaxAs adds MAX(field) under an alias.
func (b *Builder[T]) MaxAs(ref fieldref.Ref[T], alias string) (*Builder[T], error) {
	return b.aggregate("MAX", ref, "max", alias)
}

func (b *Builder[T]) aggregate(fn string, ref fieldref.Ref[T], arg, alias string) (*Builder[T], error) {
	col, err := b.column(ref, arg)
	if err != nil {
		return nil, err
	}
	if alias == "" {
		b.q.Aggregate(fn, col)
	} else {
		b.q.AggregateAs(fn, col, alias)
	}
	return b, nil
}
