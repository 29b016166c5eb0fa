package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedq/internal/dialect"
	"github.com/roach88/typedq/internal/fieldref"
	"github.com/roach88/typedq/internal/sqlrep"
)

type User struct {
	Id    int    `db:",pk"`
	Name  string `db:"user_name"`
	Email string
}

type Order struct {
	Id     int `db:",pk"`
	UserId int
	Total  float64
}

func (Order) TableName() string { return "orders" }

func mustNew[T any](t *testing.T) *Builder[T] {
	t.Helper()
	b, err := New[T]()
	require.NoError(t, err)
	return b
}

func TestNew_TableFromTypeName(t *testing.T) {
	b := mustNew[User](t)
	assert.Equal(t, "User", b.Table())
}

func TestNew_TableFromOverride(t *testing.T) {
	b := mustNew[Order](t)
	assert.Equal(t, "orders", b.Table())
}

func TestSelect_AllColumnsInDeclarationOrder(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Select()
	require.NoError(t, err)

	sql, args, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT Id, user_name, Email FROM User", sql)
	assert.Empty(t, args)
}

func TestSelect_ByReference(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Select(
		func(u *User) any { return &u.Name },
		func(u *User) any { return &u.Id },
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"user_name", "Id"}, b.Rep().Columns)
}

func TestSelect_InvalidReferenceLeavesQueryUntouched(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Select(
		func(u *User) any { return &u.Name },
		func(u *User) any { return u.Name + "!" },
	)
	require.Error(t, err)

	assert.True(t, fieldref.IsInvalidReference(err))
	assert.Empty(t, b.Rep().Columns, "nothing is applied when any reference fails")
}

func TestWhere_ResolvesOverrideColumn(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Where(func(u *User) any { return &u.Name }, "=", "ada")
	require.NoError(t, err)

	sql, args, err := b.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM User WHERE user_name = $1", sql)
	assert.Equal(t, []any{"ada"}, args)
}

func TestWhereEq_ValueAccessor(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.WhereEq(func(u *User) any { return u.Email }, "ada@example.com")
	require.NoError(t, err)

	require.Len(t, b.Rep().Wheres, 1)
	assert.Equal(t, "Email", b.Rep().Wheres[0].Column)
}

func TestWhere_InvalidReferenceNamesClause(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Where(func(u *User) any { return 42 }, "=", 1)
	require.Error(t, err)

	var re *fieldref.InvalidReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "where", re.Arg)
	assert.Empty(t, b.Rep().Wheres)
}

func TestWhereLike_DefaultsInsensitive(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.WhereLike(func(u *User) any { return &u.Name }, "%Ada%")
	require.NoError(t, err)

	require.Len(t, b.Rep().Wheres, 1)
	assert.False(t, b.Rep().Wheres[0].CaseSensitive)

	b2 := mustNew[User](t)
	_, err = b2.WhereLike(func(u *User) any { return &u.Name }, "%Ada%", true)
	require.NoError(t, err)
	assert.True(t, b2.Rep().Wheres[0].CaseSensitive)
}

func TestWhereIn_EmptyForwarded(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.WhereIn(func(u *User) any { return &u.Id })
	require.NoError(t, err)

	sql, _, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM User WHERE 1 = 0", sql)
}

func TestWhereMatch_SortedKeys(t *testing.T) {
	b := mustNew[User](t)

	b.WhereMatch(map[string]any{
		"user_name": "ada",
		"Email":     "ada@example.com",
		"Id":        1,
	})

	cols := make([]string, 0, 3)
	for _, c := range b.Rep().Wheres {
		cols = append(cols, c.Column)
	}
	assert.Equal(t, []string{"Email", "Id", "user_name"}, cols)
}

func TestOrderBy_Directions(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.OrderBy(func(u *User) any { return &u.Name })
	require.NoError(t, err)
	_, err = b.OrderByDesc(func(u *User) any { return &u.Id })
	require.NoError(t, err)

	sql, _, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM User ORDER BY user_name ASC, Id DESC", sql)
}

func TestPage_EquivalentToLimitOffset(t *testing.T) {
	paged := mustNew[User](t).Page(3, 25)
	manual := mustNew[User](t).Offset(50).Limit(25)

	pq, mq := paged.Rep(), manual.Rep()
	assert.Equal(t, mq.OffsetN, pq.OffsetN)
	assert.Equal(t, mq.LimitN, pq.LimitN)
	assert.True(t, pq.HasLimit)
	assert.True(t, pq.HasOffset)
}

func TestPage_FirstPageHasZeroOffset(t *testing.T) {
	b := mustNew[User](t).Page(1, 25)

	assert.Equal(t, 0, b.Rep().OffsetN)
	assert.True(t, b.Rep().HasOffset)
}

func TestPage_OverwritesEarlierPagination(t *testing.T) {
	b := mustNew[User](t).Limit(5).Offset(99).Page(2, 10)

	assert.Equal(t, 10, b.Rep().LimitN)
	assert.Equal(t, 10, b.Rep().OffsetN)
}

func TestJoin_PairsOverrideAwareTables(t *testing.T) {
	b := mustNew[User](t)

	_, err := Join(b,
		func(u *User) any { return &u.Id },
		func(o *Order) any { return &o.UserId },
	)
	require.NoError(t, err)

	sql, _, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM User INNER JOIN orders ON orders.UserId = User.Id", sql)
}

func TestLeftJoin_Kind(t *testing.T) {
	b := mustNew[User](t)

	_, err := LeftJoin(b,
		func(u *User) any { return &u.Id },
		func(o *Order) any { return &o.UserId },
	)
	require.NoError(t, err)

	require.Len(t, b.Rep().Joins, 1)
	assert.Equal(t, sqlrep.JoinLeft, b.Rep().Joins[0].Kind)
}

func TestJoin_InvalidRightReference(t *testing.T) {
	b := mustNew[User](t)

	_, err := Join(b,
		func(u *User) any { return &u.Id },
		func(o *Order) any { return o.Total + 1 },
	)
	require.Error(t, err)

	assert.True(t, fieldref.IsInvalidReference(err))
	assert.Empty(t, b.Rep().Joins)
}

func TestCrossJoin_ResolvesOverrideTable(t *testing.T) {
	b := mustNew[User](t)

	_, err := CrossJoin[User, Order](b)
	require.NoError(t, err)

	sql, _, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM User CROSS JOIN orders", sql)
}

func TestInsert_SingleRow(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Insert(User{Id: 1, Name: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	sql, args, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO User (Id, user_name, Email) VALUES (?, ?, ?)", sql)
	assert.Equal(t, []any{1, "ada", "ada@example.com"}, args)
}

func TestInsertMany_RowsInInputOrder(t *testing.T) {
	b := mustNew[Order](t)

	_, err := b.InsertMany([]Order{
		{Id: 2, UserId: 1, Total: 20},
		{Id: 1, UserId: 1, Total: 10},
	})
	require.NoError(t, err)

	q := b.Rep()
	assert.Equal(t, []string{"Id", "UserId", "Total"}, q.InsertColumns)
	require.Len(t, q.InsertRows, 2)
	assert.Equal(t, []any{2, 1, 20.0}, q.InsertRows[0])
	assert.Equal(t, []any{1, 1, 10.0}, q.InsertRows[1])
}

func TestInsertMany_EmptyBatchFailsBeforeMutation(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.InsertMany(nil)
	require.Error(t, err)

	assert.True(t, IsEmptyBatch(err))
	assert.Contains(t, err.Error(), "User")
	assert.Equal(t, sqlrep.VerbSelect, b.Rep().Verb, "clause tree untouched on empty batch")
	assert.Empty(t, b.Rep().InsertColumns)
}

func TestUpdate_FiltersByKeyFields(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.Update(User{Id: 7, Name: "ada", Email: "ada@example.com"})
	require.NoError(t, err)

	sql, args, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE User SET Id = ?, user_name = ?, Email = ? WHERE Id = ?", sql)
	assert.Equal(t, []any{7, "ada", "ada@example.com", 7}, args)
}

func TestUpdateMap_SortedKeys(t *testing.T) {
	b := mustNew[User](t)

	b.UpdateMap(map[string]any{"user_name": "ada", "Email": "a@b.c"})

	q := b.Rep()
	assert.Equal(t, sqlrep.VerbUpdate, q.Verb)
	require.Len(t, q.Assigns, 2)
	assert.Equal(t, "Email", q.Assigns[0].Column)
	assert.Equal(t, "user_name", q.Assigns[1].Column)
}

func TestIncrementDecrement(t *testing.T) {
	b := mustNew[Order](t)

	_, err := b.Increment(func(o *Order) any { return &o.Total })
	require.NoError(t, err)

	q := b.Rep()
	require.Len(t, q.Assigns, 1)
	assert.True(t, q.Assigns[0].IsDelta)
	assert.Equal(t, 1, q.Assigns[0].Delta)

	b2 := mustNew[Order](t)
	_, err = b2.Decrement(func(o *Order) any { return &o.Total }, 5)
	require.NoError(t, err)
	assert.Equal(t, -5, b2.Rep().Assigns[0].Delta)
}

func TestDelete_WithFilter(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.WhereEq(func(u *User) any { return &u.Id }, 7)
	require.NoError(t, err)
	b.Delete()

	sql, args, err := b.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM User WHERE Id = $1", sql)
	assert.Equal(t, []any{7}, args)
}

func TestAggregates_GroupedRollup(t *testing.T) {
	b := mustNew[Order](t)

	_, err := b.Select(func(o *Order) any { return &o.UserId })
	require.NoError(t, err)
	_, err = b.SumAs(func(o *Order) any { return &o.Total }, "spent")
	require.NoError(t, err)
	b.CountAs("n")
	_, err = b.GroupBy(func(o *Order) any { return &o.UserId })
	require.NoError(t, err)
	b.HavingColumn("spent", ">", 100)

	sql, args, err := b.ToSQL(dialect.SQLite{})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT UserId, SUM(Total) AS spent, COUNT(*) AS n FROM orders GROUP BY UserId HAVING spent > ?",
		sql)
	assert.Equal(t, []any{100}, args)
}

func TestToSQLAll_EveryEngine(t *testing.T) {
	b := mustNew[User](t)

	_, err := b.WhereEq(func(u *User) any { return &u.Id }, 1)
	require.NoError(t, err)

	out, err := b.ToSQLAll()
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "SELECT * FROM User WHERE Id = ?", out["sqlite"].SQL)
	assert.Equal(t, "SELECT * FROM User WHERE Id = $1", out["postgres"].SQL)
	assert.Equal(t, []any{1}, out["mysql"].Args)
}

func TestDescriptor_Accessor(t *testing.T) {
	b := mustNew[User](t)

	d := b.Descriptor()
	require.NotNil(t, d)
	assert.Equal(t, []string{"Id", "user_name", "Email"}, d.Columns())
}
