package sqlrep

// Select appends projection columns. Duplicates are preserved as given.
func (q *Query) Select(columns ...string) *Query {
	q.Columns = append(q.Columns, columns...)
	return q
}

// Aggregate appends an unaliased aggregate select expression.
func (q *Query) Aggregate(fn, column string) *Query {
	q.Aggregates = append(q.Aggregates, AggExpr{Fn: fn, Column: column})
	return q
}

// AggregateAs appends an aliased aggregate select expression.
func (q *Query) AggregateAs(fn, column, alias string) *Query {
	q.Aggregates = append(q.Aggregates, AggExpr{Fn: fn, Column: column, Alias: alias})
	return q
}

// Distinct sets the DISTINCT flag. Idempotent.
func (q *Query) Distinct() *Query {
	q.IsDistinct = true
	return q
}

// AddWhere appends a fully built filter. The typed helpers below cover
// the common shapes.
func (q *Query) AddWhere(c Cond) *Query {
	q.Wheres = append(q.Wheres, c)
	return q
}

// Where appends `column <op> value` combined with AND.
func (q *Query) Where(column, op string, value any) *Query {
	return q.AddWhere(Cond{Kind: CondCompare, Column: column, Op: op, Value: value})
}

// OrWhere appends `column <op> value` combined with OR against the
// preceding filters.
func (q *Query) OrWhere(column, op string, value any) *Query {
	return q.AddWhere(Cond{Or: true, Kind: CondCompare, Column: column, Op: op, Value: value})
}

// WhereNull appends `column IS NULL`.
func (q *Query) WhereNull(column string) *Query {
	return q.AddWhere(Cond{Kind: CondNull, Column: column})
}

// WhereNotNull appends `column IS NOT NULL`.
func (q *Query) WhereNotNull(column string) *Query {
	return q.AddWhere(Cond{Kind: CondNotNull, Column: column})
}

// WhereIn appends `column IN (values...)`. An empty list is stored
// unchanged; the dialect compiler decides its rendering.
func (q *Query) WhereIn(column string, values ...any) *Query {
	return q.AddWhere(Cond{Kind: CondIn, Column: column, Values: values})
}

// WhereNotIn appends `column NOT IN (values...)`.
func (q *Query) WhereNotIn(column string, values ...any) *Query {
	return q.AddWhere(Cond{Kind: CondNotIn, Column: column, Values: values})
}

// WhereBetween appends `column BETWEEN low AND high`. Bounds are
// forwarded as given, even when low exceeds high.
func (q *Query) WhereBetween(column string, low, high any) *Query {
	return q.AddWhere(Cond{Kind: CondBetween, Column: column, Low: low, High: high})
}

// WhereLike appends a pattern filter.
func (q *Query) WhereLike(column, pattern string, caseSensitive bool) *Query {
	return q.AddWhere(Cond{Kind: CondLike, Column: column, Pattern: pattern, CaseSensitive: caseSensitive})
}

// Join appends a join with an explicit condition given as qualified
// "Table.Column" paths.
func (q *Query) Join(kind JoinKind, table, left, op, right string) *Query {
	q.Joins = append(q.Joins, JoinClause{Kind: kind, Table: table, Left: left, Op: op, Right: right})
	return q
}

// JoinOn appends a join whose condition is filled in by a callback.
func (q *Query) JoinOn(kind JoinKind, table string, fn func(*JoinClause)) *Query {
	j := JoinClause{Kind: kind, Table: table, Op: "="}
	if fn != nil {
		fn(&j)
	}
	q.Joins = append(q.Joins, j)
	return q
}

// CrossJoin appends a cross join; it carries no condition.
func (q *Query) CrossJoin(table string) *Query {
	q.Joins = append(q.Joins, JoinClause{Kind: JoinCross, Table: table})
	return q
}

// GroupBy appends grouping columns in argument order.
func (q *Query) GroupBy(columns ...string) *Query {
	q.Groups = append(q.Groups, columns...)
	return q
}

// AddHaving appends a fully built HAVING filter.
func (q *Query) AddHaving(c Cond) *Query {
	q.Havings = append(q.Havings, c)
	return q
}

// Having appends `column <op> value` to the HAVING list, AND-combined.
func (q *Query) Having(column, op string, value any) *Query {
	return q.AddHaving(Cond{Kind: CondCompare, Column: column, Op: op, Value: value})
}

// OrHaving appends `column <op> value` to the HAVING list, OR-combined.
func (q *Query) OrHaving(column, op string, value any) *Query {
	return q.AddHaving(Cond{Or: true, Kind: CondCompare, Column: column, Op: op, Value: value})
}

// HavingNull appends `column IS NULL` to the HAVING list.
func (q *Query) HavingNull(column string) *Query {
	return q.AddHaving(Cond{Kind: CondNull, Column: column})
}

// HavingNotNull appends `column IS NOT NULL` to the HAVING list.
func (q *Query) HavingNotNull(column string) *Query {
	return q.AddHaving(Cond{Kind: CondNotNull, Column: column})
}

// HavingIn appends `column IN (values...)` to the HAVING list.
func (q *Query) HavingIn(column string, values ...any) *Query {
	return q.AddHaving(Cond{Kind: CondIn, Column: column, Values: values})
}

// HavingBetween appends `column BETWEEN low AND high` to the HAVING
// list.
func (q *Query) HavingBetween(column string, low, high any) *Query {
	return q.AddHaving(Cond{Kind: CondBetween, Column: column, Low: low, High: high})
}

// OrderBy appends ascending order columns in argument order.
func (q *Query) OrderBy(columns ...string) *Query {
	for _, c := range columns {
		q.Orders = append(q.Orders, Order{Column: c})
	}
	return q
}

// OrderByDesc appends descending order columns in argument order.
func (q *Query) OrderByDesc(columns ...string) *Query {
	for _, c := range columns {
		q.Orders = append(q.Orders, Order{Column: c, Desc: true})
	}
	return q
}

// Limit sets the row bound. Last write wins.
func (q *Query) Limit(n int) *Query {
	q.LimitN, q.HasLimit = n, true
	return q
}

// Offset sets the rows to skip. Last write wins.
func (q *Query) Offset(n int) *Query {
	q.OffsetN, q.HasOffset = n, true
	return q
}

// Insert switches the query to an insert with one shared column list and
// the given value rows.
func (q *Query) Insert(columns []string, rows ...[]any) *Query {
	q.Verb = VerbInsert
	q.InsertColumns = columns
	q.InsertRows = append(q.InsertRows, rows...)
	return q
}

// Set switches the query to an update and appends `column = value`.
func (q *Query) Set(column string, value any) *Query {
	q.Verb = VerbUpdate
	q.Assigns = append(q.Assigns, Assign{Column: column, Value: value})
	return q
}

// SetDelta switches the query to an update and appends
// `column = column + delta`.
func (q *Query) SetDelta(column string, delta any) *Query {
	q.Verb = VerbUpdate
	q.Assigns = append(q.Assigns, Assign{Column: column, Delta: delta, IsDelta: true})
	return q
}

// Delete switches the query to a delete. Filters applied before or after
// constrain it as usual.
func (q *Query) Delete() *Query {
	q.Verb = VerbDelete
	return q
}
