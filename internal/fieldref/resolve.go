package fieldref

import (
	"fmt"
	"reflect"

	"github.com/roach88/typedq/internal/schema"
)

// Ref is a typed, unevaluated reference to one field of the entity type
// T. It is invoked only against synthetic probe instances.
type Ref[T any] func(*T) any

// Resolve maps a reference to the schema field it denotes. arg names the
// argument for error reporting (typically the clause, e.g. "where").
//
// Two accessor shapes resolve:
//
//   - pointer-shaped: `return &e.Field`, matched by field address.
//   - value-shaped: `return e.Field`, including one layer of conversion
//     (interface boxing, numeric widening), matched by probing which
//     field drives the returned value.
//
// Fields excluded from the column set cannot be resolved: they carry no
// column identifier.
func Resolve[T any](d *schema.Descriptor, ref Ref[T], arg string) (schema.Field, error) {
	var none schema.Field
	if d == nil {
		return none, fmt.Errorf("fieldref: nil descriptor")
	}
	if t := reflect.TypeFor[T](); t != d.Type {
		return none, fmt.Errorf("fieldref: descriptor is for %s, reference is for %s", d.Type, t)
	}
	if ref == nil {
		return none, invalid(d, arg, "reference is nil")
	}

	probe := reflect.New(d.Type)
	base := ref(probe.Interface().(*T))

	if f, ok, err := matchByAddress(d, probe, base, arg); ok || err != nil {
		return f, err
	}
	return matchByProbe(d, ref, base, arg)
}

// matchByAddress handles the pointer-shaped accessor: the returned
// pointer must address exactly one declared field of the probe.
func matchByAddress(d *schema.Descriptor, probe reflect.Value, base any, arg string) (schema.Field, bool, error) {
	var none schema.Field
	if base == nil {
		return none, false, nil
	}
	bv := reflect.ValueOf(base)
	if bv.Kind() != reflect.Pointer || bv.IsNil() {
		return none, false, nil
	}
	for _, f := range d.Fields {
		fv := probe.Elem().FieldByIndex(f.Index)
		if fv.CanAddr() && fv.Addr().Pointer() == bv.Pointer() && bv.Type().Elem() == f.Type {
			return f, true, nil
		}
	}
	// A non-nil pointer out of a zero probe cannot be a field value (all
	// pointer fields are nil); it points somewhere outside the column
	// set: a nested member, a local, or an excluded field.
	return none, false, invalid(d, arg, "pointer result does not address a declared column field")
}

// matchByProbe handles the value-shaped accessor. For each candidate
// field, a fresh probe gets a distinguishable value in that field only;
// the one field that both changes the accessor's output and equals it
// (after at most one conversion) is the referenced field.
func matchByProbe[T any](d *schema.Descriptor, ref Ref[T], base any, arg string) (schema.Field, error) {
	var none schema.Field
	match := -1
	for i, f := range d.Fields {
		fresh := reflect.New(d.Type)
		fv := fresh.Elem().FieldByIndex(f.Index)
		if !fv.CanSet() || !setProbeValue(fv) {
			continue
		}
		got := ref(fresh.Interface().(*T))
		if reflect.DeepEqual(got, base) {
			continue // output does not depend on this field
		}
		if !equalsField(got, fv) {
			return none, invalid(d, arg, fmt.Sprintf("result is computed from field %s, not a direct access", f.Name))
		}
		if match >= 0 {
			return none, invalid(d, arg, fmt.Sprintf("result depends on multiple fields (%s, %s)", d.Fields[match].Name, f.Name))
		}
		match = i
	}
	if match < 0 {
		return none, invalid(d, arg, "result does not depend on any declared column field")
	}
	return d.Fields[match], nil
}

// equalsField reports whether the accessor output equals the field's
// probe value, tolerating one conversion layer: interface boxing is
// already stripped by the any return, a widening conversion is undone by
// converting the field value to the output type, and a pointer result is
// dereferenced once.
func equalsField(got any, fv reflect.Value) bool {
	if got == nil {
		return false
	}
	gv := reflect.ValueOf(got)
	switch {
	case gv.Type() == fv.Type():
		return reflect.DeepEqual(got, fv.Interface())
	case gv.Kind() == reflect.Pointer && !gv.IsNil() && gv.Type().Elem() == fv.Type():
		return reflect.DeepEqual(gv.Elem().Interface(), fv.Interface())
	case fv.Type().ConvertibleTo(gv.Type()):
		return reflect.DeepEqual(fv.Convert(gv.Type()).Interface(), got)
	default:
		return false
	}
}

func invalid(d *schema.Descriptor, arg, reason string) error {
	return &InvalidReferenceError{Arg: arg, Type: d.Type.Name(), Reason: reason}
}
