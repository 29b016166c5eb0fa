package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Tabler overrides the table identifier for an entity type. Implement it
// on the entity (value or pointer receiver) to map the type to a table
// whose name differs from the bare type name.
type Tabler interface {
	TableName() string
}

// Field is the resolved metadata for one column-bearing struct field.
type Field struct {
	// Name is the declared Go field name.
	Name string

	// Column is the resolved column identifier: the `db` tag override
	// when present, otherwise the bare field name.
	Column string

	// Index locates the field for reflect.Value.FieldByIndex. Promoted
	// fields of embedded structs have len(Index) > 1.
	Index []int

	// Key marks identity fields (`pk` tag option). Key fields drive the
	// default filter on update-by-instance.
	Key bool

	// Type is the declared Go type of the field.
	Type reflect.Type
}

// Descriptor is the cached, immutable metadata for one entity type.
type Descriptor struct {
	// Type is the underlying struct type.
	Type reflect.Type

	// Table is the resolved table identifier. Never empty.
	Table string

	// Fields holds the non-excluded fields in declaration order. This
	// ordering is significant: it is the order used for select-all and
	// for the positional column list on multi-row insert.
	Fields []Field
}

// descriptors is the process-wide cache, keyed by reflect.Type. Entries
// are *Descriptor and immutable once stored. No eviction: entity types
// are bounded by the caller's program.
var descriptors sync.Map

// For resolves the descriptor for the entity type T.
func For[T any]() (*Descriptor, error) {
	return Describe(reflect.TypeFor[T]())
}

// Describe resolves the descriptor for a struct type, consulting the
// cache first. A pointer type is unwrapped to its element.
//
// Concurrent first requests for the same type may both compute the
// descriptor; LoadOrStore keeps the first stored entry so every caller
// observes the same canonical value.
func Describe(t reflect.Type) (*Descriptor, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct type", t)
	}

	if cached, ok := descriptors.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	d, err := build(t)
	if err != nil {
		return nil, err
	}
	actual, _ := descriptors.LoadOrStore(t, d)
	return actual.(*Descriptor), nil
}

// Columns returns the resolved column identifiers in declaration order.
// The slice is a fresh copy; the descriptor itself stays immutable.
func (d *Descriptor) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Keys returns the fields carrying the key marker, in declaration order.
func (d *Descriptor) Keys() []Field {
	var keys []Field
	for _, f := range d.Fields {
		if f.Key {
			keys = append(keys, f)
		}
	}
	return keys
}

// FieldByName looks up a field by its declared Go name.
func (d *Descriptor) FieldByName(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Values extracts the current value of every non-excluded field from an
// entity instance, in declaration order. The instance must be of the
// descriptor's type (a pointer is unwrapped).
func (d *Descriptor) Values(entity any) ([]any, error) {
	v := reflect.ValueOf(entity)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != d.Type {
		return nil, fmt.Errorf("schema: value of type %T is not a %s", entity, d.Type)
	}
	vals := make([]any, len(d.Fields))
	for i, f := range d.Fields {
		vals[i] = v.FieldByIndex(f.Index).Interface()
	}
	return vals, nil
}

// build computes a descriptor. Called at most a handful of times per
// type; every later request is a cache hit.
func build(t reflect.Type) (*Descriptor, error) {
	table, err := tableName(t)
	if err != nil {
		return nil, err
	}

	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if sf.PkgPath != "" {
			continue // unexported
		}
		if sf.Anonymous && structLike(sf.Type) {
			// The embedded container itself is not a column; its
			// promoted leaves are visited separately.
			continue
		}
		col, key, excluded := parseTag(sf)
		if excluded {
			continue
		}
		fields = append(fields, Field{
			Name:   sf.Name,
			Column: col,
			Index:  sf.Index,
			Key:    key,
			Type:   sf.Type,
		})
	}

	return &Descriptor{Type: t, Table: table, Fields: fields}, nil
}

// tableName resolves the table identifier: the Tabler override when the
// type implements it, otherwise the bare type name.
func tableName(t reflect.Type) (string, error) {
	var override string
	var declared bool
	if tab, ok := reflect.Zero(t).Interface().(Tabler); ok {
		override, declared = tab.TableName(), true
	} else if tab, ok := reflect.New(t).Interface().(Tabler); ok {
		override, declared = tab.TableName(), true
	}
	if declared {
		if strings.TrimSpace(override) == "" {
			return "", &MissingTableNameError{Type: t.Name()}
		}
		return override, nil
	}
	return t.Name(), nil
}

// parseTag reads the `db` tag: `db:"-"` excludes the field, the part
// before the first comma overrides the column name, and options after it
// carry markers (currently only "pk").
func parseTag(sf reflect.StructField) (column string, key, excluded bool) {
	column = sf.Name
	tag := sf.Tag.Get("db")
	if tag == "" {
		return column, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name != "" {
		column = name
	}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "pk" {
			key = true
		}
	}
	return column, key, false
}

// structLike reports whether t is a struct or pointer to struct, the
// shapes whose embedding promotes fields.
func structLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
