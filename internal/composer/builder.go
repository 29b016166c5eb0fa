package composer

import (
	"github.com/roach88/typedq/internal/dialect"
	"github.com/roach88/typedq/internal/fieldref"
	"github.com/roach88/typedq/internal/schema"
	"github.com/roach88/typedq/internal/sqlrep"
)

// Builder composes a query for the entity type T.
type Builder[T any] struct {
	desc *schema.Descriptor
	q    *sqlrep.Query
}

// New creates a builder for T. The table identifier is resolved through
// the schema descriptor (Tabler override when declared, bare type name
// otherwise) and initializes the underlying clause tree.
func New[T any]() (*Builder[T], error) {
	desc, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	return &Builder[T]{desc: desc, q: sqlrep.New(desc.Table)}, nil
}

// Rep exposes the underlying clause tree. The untyped mutation surface
// is opt-in through this accessor; the typed methods cover the common
// shapes.
func (b *Builder[T]) Rep() *sqlrep.Query { return b.q }

// Descriptor returns the entity metadata the builder resolves against.
func (b *Builder[T]) Descriptor() *schema.Descriptor { return b.desc }

// Table returns the resolved table identifier.
func (b *Builder[T]) Table() string { return b.desc.Table }

// ToSQL compiles the composed query for one engine.
func (b *Builder[T]) ToSQL(d dialect.Dialect) (string, []any, error) {
	return dialect.New(d).Compile(b.q)
}

// ToSQLAll compiles the composed query for every supported engine,
// keyed by engine identifier.
func (b *Builder[T]) ToSQLAll() (map[string]dialect.Compiled, error) {
	return dialect.CompileAll(b.q)
}

// column resolves one reference to its column identifier. arg names the
// clause for error reporting.
func (b *Builder[T]) column(ref fieldref.Ref[T], arg string) (string, error) {
	f, err := fieldref.Resolve(b.desc, ref, arg)
	if err != nil {
		return "", err
	}
	return f.Column, nil
}

// columns resolves a reference list, preserving order and duplicates.
func (b *Builder[T]) columns(refs []fieldref.Ref[T], arg string) ([]string, error) {
	cols := make([]string, len(refs))
	for i, ref := range refs {
		col, err := b.column(ref, arg)
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return cols, nil
}
