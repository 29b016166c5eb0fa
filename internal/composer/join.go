package composer

import (
	"github.com/roach88/typedq/internal/fieldref"
	"github.com/roach88/typedq/internal/schema"
	"github.com/roach88/typedq/internal/sqlrep"
)

// Joins against a second entity type are package-level functions because
// Go methods cannot introduce a second type parameter. The joined type's
// table identifier resolves through the same override-aware schema path
// as the primary entity.
//
// When the condition is given as a reference pair, the joined table's
// column comes first in the emitted condition: joining Order onto User
// on (User.Id, Order.UserId) emits `orders.UserId = User.Id`.

// Join adds an inner join against U, with the condition given as one
// reference per side.
func Join[T, U any](b *Builder[T], left fieldref.Ref[T], right fieldref.Ref[U]) (*Builder[T], error) {
	return joinRefs(b, sqlrep.JoinInner, left, right)
}

// LeftJoin adds a left join against U.
func LeftJoin[T, U any](b *Builder[T], left fieldref.Ref[T], right fieldref.Ref[U]) (*Builder[T], error) {
	return joinRefs(b, sqlrep.JoinLeft, left, right)
}

// RightJoin adds a right join against U.
func RightJoin[T, U any](b *Builder[T], left fieldref.Ref[T], right fieldref.Ref[U]) (*Builder[T], error) {
	return joinRefs(b, sqlrep.JoinRight, left, right)
}

// CrossJoin adds a cross join against U. Cross joins take no condition.
func CrossJoin[T, U any](b *Builder[T]) (*Builder[T], error) {
	other, err := schema.For[U]()
	if err != nil {
		return nil, err
	}
	b.q.CrossJoin(other.Table)
	return b, nil
}

func joinRefs[T, U any](b *Builder[T], kind sqlrep.JoinKind, left fieldref.Ref[T], right fieldref.Ref[U]) (*Builder[T], error) {
	lf, err := fieldref.Resolve(b.desc, left, "join left")
	if err != nil {
		return nil, err
	}
	other, err := schema.For[U]()
	if err != nil {
		return nil, err
	}
	rf, err := fieldref.Resolve(other, right, "join right")
	if err != nil {
		return nil, err
	}
	b.q.Join(kind, other.Table,
		other.Table+"."+rf.Column,
		"=",
		b.desc.Table+"."+lf.Column)
	return b, nil
}

// JoinTable adds a join by explicit table name, with the condition given
// as two raw "Table.Column" paths.
func (b *Builder[T]) JoinTable(table, leftPath, op, rightPath string, kind sqlrep.JoinKind) *Builder[T] {
	b.q.Join(kind, table, leftPath, op, rightPath)
	return b
}

// JoinTableOn adds a join by explicit table name with the condition
// filled in by a callback.
func (b *Builder[T]) JoinTableOn(table string, kind sqlrep.JoinKind, fn func(*sqlrep.JoinClause)) *Builder[T] {
	b.q.JoinOn(kind, table, fn)
	return b
}
