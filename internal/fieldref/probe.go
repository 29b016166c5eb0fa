package fieldref

import (
	"reflect"
	"time"
)

// probeString is the sentinel written into string fields. Unlikely to
// collide with anything an accessor computes.
const probeString = "\x01fieldref-probe"

var timeType = reflect.TypeOf(time.Time{})

// setProbeValue writes a distinguishable non-zero value into v. Returns
// false for kinds that cannot be probed (bare interfaces, channels,
// funcs, structs with no settable leaf); such fields are skipped as
// candidates, and the canonical pointer-shaped accessor still resolves
// them.
func setProbeValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		v.SetString(probeString)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(1)
	case reflect.Float32, reflect.Float64:
		v.SetFloat(1)
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(1)
	case reflect.Bool:
		v.SetBool(true)
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		setProbeValue(elem.Elem())
		v.Set(elem)
	case reflect.Slice:
		s := reflect.MakeSlice(v.Type(), 1, 1)
		setProbeValue(s.Index(0))
		v.Set(s)
	case reflect.Map:
		v.Set(reflect.MakeMap(v.Type()))
	case reflect.Array:
		if v.Len() == 0 {
			return false
		}
		return setProbeValue(v.Index(0))
	case reflect.Struct:
		if v.Type() == timeType {
			v.Set(reflect.ValueOf(time.Unix(1, 0).UTC()))
			return true
		}
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() && setProbeValue(f) {
				return true
			}
		}
		return false
	default:
		return false
	}
	return true
}
