// Package querydoc defines a declarative query description that decodes
// from YAML or CUE and builds the corresponding clause tree. The CLI
// compiles these documents to SQL; the dialect golden tests use them as
// fixtures.
//
// Column and table names in a document are literal identifiers: no
// override resolution happens here. Documents are the "wire" view of a
// query, one level below the typed composer.
package querydoc

import (
	"fmt"

	"github.com/roach88/typedq/internal/sqlrep"
	"gopkg.in/yaml.v3"
)

// Filter is one WHERE or HAVING entry.
type Filter struct {
	// Kind selects the filter shape: "compare" (default), "null",
	// "not_null", "in", "not_in", "between", "like".
	Kind   string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Column string `yaml:"column" json:"column"`
	// Or combines this filter with OR against the preceding ones.
	Or bool `yaml:"or,omitempty" json:"or,omitempty"`

	Op    string `yaml:"op,omitempty" json:"op,omitempty"`
	Value any    `yaml:"value,omitempty" json:"value,omitempty"`

	Values []any `yaml:"values,omitempty" json:"values,omitempty"`

	Low  any `yaml:"low,omitempty" json:"low,omitempty"`
	High any `yaml:"high,omitempty" json:"high,omitempty"`

	Pattern       string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty" json:"case_sensitive,omitempty"`
}

// Join is one join entry. Left and Right are qualified "Table.Column"
// paths; cross joins omit the condition.
type Join struct {
	Kind  string `yaml:"kind,omitempty" json:"kind,omitempty"` // inner (default), left, right, cross
	Table string `yaml:"table" json:"table"`
	Left  string `yaml:"left,omitempty" json:"left,omitempty"`
	Op    string `yaml:"op,omitempty" json:"op,omitempty"`
	Right string `yaml:"right,omitempty" json:"right,omitempty"`
}

// Aggregate is one aggregate select expression.
type Aggregate struct {
	Fn     string `yaml:"fn" json:"fn"`
	Column string `yaml:"column,omitempty" json:"column,omitempty"`
	Alias  string `yaml:"alias,omitempty" json:"alias,omitempty"`
}

// Order is one ORDER BY entry.
type Order struct {
	Column string `yaml:"column" json:"column"`
	Desc   bool   `yaml:"desc,omitempty" json:"desc,omitempty"`
}

// Doc is one declarative query.
type Doc struct {
	Name       string      `yaml:"name,omitempty" json:"name,omitempty"`
	Table      string      `yaml:"table" json:"table"`
	Select     []string    `yaml:"select,omitempty" json:"select,omitempty"`
	Aggregates []Aggregate `yaml:"aggregates,omitempty" json:"aggregates,omitempty"`
	Distinct   bool        `yaml:"distinct,omitempty" json:"distinct,omitempty"`
	Where      []Filter    `yaml:"where,omitempty" json:"where,omitempty"`
	Joins      []Join      `yaml:"joins,omitempty" json:"joins,omitempty"`
	GroupBy    []string    `yaml:"group_by,omitempty" json:"group_by,omitempty"`
	Having     []Filter    `yaml:"having,omitempty" json:"having,omitempty"`
	OrderBy    []Order     `yaml:"order_by,omitempty" json:"order_by,omitempty"`
	Limit      *int        `yaml:"limit,omitempty" json:"limit,omitempty"`
	Offset     *int        `yaml:"offset,omitempty" json:"offset,omitempty"`
}

// Parse decodes a single YAML document.
func Parse(data []byte) (*Doc, error) {
	var d Doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse query document: %w", err)
	}
	return &d, nil
}

// Build validates the document and produces its clause tree.
func (d *Doc) Build() (*sqlrep.Query, error) {
	if d.Table == "" {
		return nil, d.errf("table is required")
	}
	q := sqlrep.New(d.Table)
	q.Select(d.Select...)
	for _, a := range d.Aggregates {
		if a.Fn == "" {
			return nil, d.errf("aggregate needs fn")
		}
		q.AggregateAs(a.Fn, a.Column, a.Alias)
	}
	if d.Distinct {
		q.Distinct()
	}
	for i, f := range d.Where {
		c, err := f.cond()
		if err != nil {
			return nil, d.errf("where[%d]: %v", i, err)
		}
		q.AddWhere(c)
	}
	for i, j := range d.Joins {
		kind, err := joinKind(j.Kind)
		if err != nil {
			return nil, d.errf("joins[%d]: %v", i, err)
		}
		if j.Table == "" {
			return nil, d.errf("joins[%d]: table is required", i)
		}
		if kind == sqlrep.JoinCross {
			q.CrossJoin(j.Table)
			continue
		}
		op := j.Op
		if op == "" {
			op = "="
		}
		if j.Left == "" || j.Right == "" {
			return nil, d.errf("joins[%d]: left and right paths are required", i)
		}
		q.Join(kind, j.Table, j.Left, op, j.Right)
	}
	q.GroupBy(d.GroupBy...)
	for i, f := range d.Having {
		c, err := f.cond()
		if err != nil {
			return nil, d.errf("having[%d]: %v", i, err)
		}
		q.AddHaving(c)
	}
	for _, o := range d.OrderBy {
		if o.Desc {
			q.OrderByDesc(o.Column)
		} else {
			q.OrderBy(o.Column)
		}
	}
	if d.Limit != nil {
		q.Limit(*d.Limit)
	}
	if d.Offset != nil {
		q.Offset(*d.Offset)
	}
	return q, nil
}

func (d *Doc) errf(format string, args ...any) error {
	name := d.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Errorf("query %s: %s", name, fmt.Sprintf(format, args...))
}

func (f Filter) cond() (sqlrep.Cond, error) {
	if f.Column == "" {
		return sqlrep.Cond{}, fmt.Errorf("column is required")
	}
	c := sqlrep.Cond{Or: f.Or, Column: f.Column}
	switch f.Kind {
	case "", "compare":
		c.Kind = sqlrep.CondCompare
		c.Op = f.Op
		if c.Op == "" {
			c.Op = "="
		}
		c.Value = f.Value
	case "null":
		c.Kind = sqlrep.CondNull
	case "not_null":
		c.Kind = sqlrep.CondNotNull
	case "in":
		c.Kind = sqlrep.CondIn
		c.Values = f.Values
	case "not_in":
		c.Kind = sqlrep.CondNotIn
		c.Values = f.Values
	case "between":
		c.Kind = sqlrep.CondBetween
		c.Low, c.High = f.Low, f.High
	case "like":
		c.Kind = sqlrep.CondLike
		c.Pattern = f.Pattern
		c.CaseSensitive = f.CaseSensitive
	default:
		return sqlrep.Cond{}, fmt.Errorf("unknown filter kind %q", f.Kind)
	}
	return c, nil
}

func joinKind(kind string) (sqlrep.JoinKind, error) {
	switch kind {
	case "", "inner":
		return sqlrep.JoinInner, nil
	case "left":
		return sqlrep.JoinLeft, nil
	case "right":
		return sqlrep.JoinRight, nil
	case "cross":
		return sqlrep.JoinCross, nil
	default:
		return "", fmt.Errorf("unknown join kind %q", kind)
	}
}
