package composer

import "github.com/roach88/typedq/internal/fieldref"

// Insert turns the query into a single-row insert: every non-excluded
// field's current value, paired with its column identifier, in cached
// declaration order.
func (b *Builder[T]) Insert(entity T) (*Builder[T], error) {
	vals, err := b.desc.Values(entity)
	if err != nil {
		return nil, err
	}
	b.q.Insert(b.desc.Columns(), vals)
	return b, nil
}

// InsertMany turns the query into a multi-row insert: one shared column
// list and one value row per entity, in input order. An empty batch
// fails before the clause tree is touched.
func (b *Builder[T]) InsertMany(entities []T) (*Builder[T], error) {
	if len(entities) == 0 {
		return nil, &EmptyBatchError{Type: b.desc.Type.Name()}
	}
	rows := make([][]any, len(entities))
	for i, e := range entities {
		vals, err := b.desc.Values(e)
		if err != nil {
			return nil, err
		}
		rows[i] = vals
	}
	b.q.Insert(b.desc.Columns(), rows...)
	return b, nil
}

// Update turns the query into an update carrying every non-excluded
// field's current value, plus a default equality filter for each
// key-marked field matching its current value. A type with no key
// fields gets no default filter: the caller either applied an explicit
// filter already or accepts an unconstrained update.
func (b *Builder[T]) Update(entity T) (*Builder[T], error) {
	vals, err := b.desc.Values(entity)
	if err != nil {
		return nil, err
	}
	for i, f := range b.desc.Fields {
		b.q.Set(f.Column, vals[i])
	}
	for i, f := range b.desc.Fields {
		if f.Key {
			b.q.Where(f.Column, "=", vals[i])
		}
	}
	return b, nil
}

// UpdateMap turns the query into an update from a structured value. Keys
// are matched literally against column identifiers (no override
// resolution) and apply in sorted order for deterministic output.
func (b *Builder[T]) UpdateMap(values map[string]any) *Builder[T] {
	for _, k := range sortedKeys(values) {
		b.q.Set(k, values[k])
	}
	return b
}

// Increment sets the field to `column + delta`. Delta defaults to 1.
func (b *Builder[T]) Increment(ref fieldref.Ref[T], delta ...int) (*Builder[T], error) {
	col, err := b.column(ref, "increment")
	if err != nil {
		return nil, err
	}
	b.q.SetDelta(col, deltaOrOne(delta))
	return b, nil
}

// Decrement sets the field to `column + (-delta)`. Delta defaults to 1.
func (b *Builder[T]) Decrement(ref fieldref.Ref[T], delta ...int) (*Builder[T], error) {
	col, err := b.column(ref, "decrement")
	if err != nil {
		return nil, err
	}
	b.q.SetDelta(col, -deltaOrOne(delta))
	return b, nil
}

// Delete turns the query into a delete. Filters applied before or after
// constrain it as usual.
func (b *Builder[T]) Delete() *Builder[T] {
	b.q.Delete()
	return b
}

func deltaOrOne(delta []int) int {
	if len(delta) > 0 {
		return delta[0]
	}
	return 1
}
