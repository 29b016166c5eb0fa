package dialect

import (
	"fmt"
	"strings"

	"github.com/roach88/typedq/internal/sqlrep"
)

// Compiler renders clause trees for one engine.
type Compiler struct {
	d Dialect
}

// New creates a compiler for the given dialect.
func New(d Dialect) *Compiler {
	return &Compiler{d: d}
}

// Compiled pairs the rendered SQL with its bound arguments.
type Compiled struct {
	Engine string
	SQL    string
	Args   []any
}

// CompileAll renders a query for every supported engine, keyed by engine
// identifier.
func CompileAll(q *sqlrep.Query) (map[string]Compiled, error) {
	out := make(map[string]Compiled, len(Engines()))
	for _, d := range Engines() {
		sql, args, err := New(d).Compile(q)
		if err != nil {
			return nil, fmt.Errorf("compile for %s: %w", d.Name(), err)
		}
		out[d.Name()] = Compiled{Engine: d.Name(), SQL: sql, Args: args}
	}
	return out, nil
}

// Compile renders the query to SQL text and bound arguments.
func (c *Compiler) Compile(q *sqlrep.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}
	if q.Table == "" {
		return "", nil, fmt.Errorf("query has no table")
	}

	b := &builder{d: c.d}
	var err error
	switch q.Verb {
	case sqlrep.VerbSelect:
		err = b.writeSelect(q)
	case sqlrep.VerbInsert:
		err = b.writeInsert(q)
	case sqlrep.VerbUpdate:
		err = b.writeUpdate(q)
	case sqlrep.VerbDelete:
		err = b.writeDelete(q)
	default:
		err = fmt.Errorf("unsupported verb %v", q.Verb)
	}
	if err != nil {
		return "", nil, err
	}
	return b.sb.String(), b.args, nil
}

// builder accumulates SQL text and the parameter list. bind appends an
// argument and returns its placeholder, so placeholder numbering always
// tracks the argument position.
type builder struct {
	d    Dialect
	sb   strings.Builder
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

func (b *builder) writeSelect(q *sqlrep.Query) error {
	b.sb.WriteString("SELECT ")
	if q.IsDistinct {
		b.sb.WriteString("DISTINCT ")
	}
	b.sb.WriteString(selectList(q))
	b.sb.WriteString(" FROM ")
	b.sb.WriteString(q.Table)

	for _, j := range q.Joins {
		if j.Kind == sqlrep.JoinCross {
			fmt.Fprintf(&b.sb, " CROSS JOIN %s", j.Table)
			continue
		}
		fmt.Fprintf(&b.sb, " %s JOIN %s ON %s %s %s", j.Kind, j.Table, j.Left, j.Op, j.Right)
	}

	if err := b.writeConds(" WHERE ", q.Wheres); err != nil {
		return err
	}
	if len(q.Groups) > 0 {
		b.sb.WriteString(" GROUP BY ")
		b.sb.WriteString(strings.Join(q.Groups, ", "))
	}
	if err := b.writeConds(" HAVING ", q.Havings); err != nil {
		return err
	}
	if len(q.Orders) > 0 {
		b.sb.WriteString(" ORDER BY ")
		for i, o := range q.Orders {
			if i > 0 {
				b.sb.WriteString(", ")
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			fmt.Fprintf(&b.sb, "%s %s", o.Column, dir)
		}
	}
	b.sb.WriteString(b.d.LimitOffset(q, b.bind))
	return nil
}

// selectList renders the projection: explicit columns first, aggregate
// expressions after, star when nothing was selected.
func selectList(q *sqlrep.Query) string {
	items := make([]string, 0, len(q.Columns)+len(q.Aggregates))
	items = append(items, q.Columns...)
	for _, a := range q.Aggregates {
		col := a.Column
		if col == "" {
			col = "*"
		}
		expr := fmt.Sprintf("%s(%s)", a.Fn, col)
		if a.Alias != "" {
			expr += " AS " + a.Alias
		}
		items = append(items, expr)
	}
	if len(items) == 0 {
		return "*"
	}
	return strings.Join(items, ", ")
}

func (b *builder) writeInsert(q *sqlrep.Query) error {
	if len(q.InsertColumns) == 0 {
		return fmt.Errorf("insert into %s has no columns", q.Table)
	}
	if len(q.InsertRows) == 0 {
		return fmt.Errorf("insert into %s has no rows", q.Table)
	}
	fmt.Fprintf(&b.sb, "INSERT INTO %s (%s) VALUES ", q.Table, strings.Join(q.InsertColumns, ", "))
	for i, row := range q.InsertRows {
		if len(row) != len(q.InsertColumns) {
			return fmt.Errorf("insert row %d has %d values for %d columns", i, len(row), len(q.InsertColumns))
		}
		if i > 0 {
			b.sb.WriteString(", ")
		}
		phs := make([]string, len(row))
		for j, v := range row {
			phs[j] = b.bind(v)
		}
		fmt.Fprintf(&b.sb, "(%s)", strings.Join(phs, ", "))
	}
	return nil
}

func (b *builder) writeUpdate(q *sqlrep.Query) error {
	if len(q.Assigns) == 0 {
		return fmt.Errorf("update of %s has no assignments", q.Table)
	}
	fmt.Fprintf(&b.sb, "UPDATE %s SET ", q.Table)
	for i, a := range q.Assigns {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		if a.IsDelta {
			fmt.Fprintf(&b.sb, "%s = %s + %s", a.Column, a.Column, b.bind(a.Delta))
		} else {
			fmt.Fprintf(&b.sb, "%s = %s", a.Column, b.bind(a.Value))
		}
	}
	return b.writeConds(" WHERE ", q.Wheres)
}

func (b *builder) writeDelete(q *sqlrep.Query) error {
	fmt.Fprintf(&b.sb, "DELETE FROM %s", q.Table)
	return b.writeConds(" WHERE ", q.Wheres)
}

// writeConds renders a filter list. Filters chain flat: each one joins
// with AND, or with OR when flagged, against everything before it.
func (b *builder) writeConds(prefix string, conds []sqlrep.Cond) error {
	for i, c := range conds {
		switch {
		case i == 0:
			b.sb.WriteString(prefix)
		case c.Or:
			b.sb.WriteString(" OR ")
		default:
			b.sb.WriteString(" AND ")
		}
		if err := b.writeCond(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) writeCond(c sqlrep.Cond) error {
	switch c.Kind {
	case sqlrep.CondCompare:
		fmt.Fprintf(&b.sb, "%s %s %s", c.Column, c.Op, b.bind(c.Value))
	case sqlrep.CondNull:
		fmt.Fprintf(&b.sb, "%s IS NULL", c.Column)
	case sqlrep.CondNotNull:
		fmt.Fprintf(&b.sb, "%s IS NOT NULL", c.Column)
	case sqlrep.CondIn:
		if len(c.Values) == 0 {
			b.sb.WriteString("1 = 0")
			return nil
		}
		fmt.Fprintf(&b.sb, "%s IN (%s)", c.Column, b.bindList(c.Values))
	case sqlrep.CondNotIn:
		if len(c.Values) == 0 {
			b.sb.WriteString("1 = 1")
			return nil
		}
		fmt.Fprintf(&b.sb, "%s NOT IN (%s)", c.Column, b.bindList(c.Values))
	case sqlrep.CondBetween:
		fmt.Fprintf(&b.sb, "%s BETWEEN %s AND %s", c.Column, b.bind(c.Low), b.bind(c.High))
	case sqlrep.CondLike:
		ph := b.bind(b.d.FoldPattern(c.Pattern, c.CaseSensitive))
		b.sb.WriteString(b.d.Like(c.Column, c.CaseSensitive, ph))
	default:
		return fmt.Errorf("unsupported filter kind %d", c.Kind)
	}
	return nil
}

func (b *builder) bindList(values []any) string {
	phs := make([]string, len(values))
	for i, v := range values {
		phs[i] = b.bind(v)
	}
	return strings.Join(phs, ", ")
}
