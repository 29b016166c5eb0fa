package dialect

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/typedq/internal/sqlrep"
)

// TestExec_SQLiteRoundTrip runs compiled statements against an actual
// in-memory database, proving the rendered SQL is executable and the
// argument order lines up with the placeholders.
func TestExec_SQLiteRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		user_name TEXT NOT NULL,
		email TEXT,
		visits INTEGER NOT NULL DEFAULT 0
	)`)
	require.NoError(t, err)

	c := New(SQLite{})

	// Insert two rows in one statement.
	ins := sqlrep.New("users").Insert(
		[]string{"id", "user_name", "email", "visits"},
		[]any{1, "Ada", "ada@example.com", 0},
		[]any{2, "Grace", "grace@example.com", 3},
	)
	sqlText, args, err := c.Compile(ins)
	require.NoError(t, err)
	_, err = db.Exec(sqlText, args...)
	require.NoError(t, err)

	// Case-insensitive pattern match finds the capitalized row.
	sel := sqlrep.New("users").
		Select("user_name").
		WhereLike("user_name", "%ada%", false)
	sqlText, args, err = c.Compile(sel)
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(sqlText, args...).Scan(&name))
	assert.Equal(t, "Ada", name)

	// Delta update increments in place.
	upd := sqlrep.New("users").SetDelta("visits", 2).Where("id", "=", 2)
	sqlText, args, err = c.Compile(upd)
	require.NoError(t, err)
	_, err = db.Exec(sqlText, args...)
	require.NoError(t, err)

	var visits int
	require.NoError(t, db.QueryRow("SELECT visits FROM users WHERE id = 2").Scan(&visits))
	assert.Equal(t, 5, visits)

	// Offset without limit is still valid SQLite.
	page := sqlrep.New("users").Select("id").OrderBy("id").Offset(1)
	sqlText, args, err = c.Compile(page)
	require.NoError(t, err)

	rows, err := db.Query(sqlText, args...)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{2}, ids)

	// Empty IN matches nothing but still executes.
	none := sqlrep.New("users").WhereIn("id")
	sqlText, args, err = c.Compile(none)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM ("+sqlText+")", args...).Scan(&count))
	assert.Equal(t, 0, count)

	// Delete with filter.
	del := sqlrep.New("users").Where("id", "=", 1).Delete()
	sqlText, args, err = c.Compile(del)
	require.NoError(t, err)
	res, err := db.Exec(sqlText, args...)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}
