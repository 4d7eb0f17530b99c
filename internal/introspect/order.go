package introspect

import (
	"cmp"
	"reflect"
	"slices"
)

// sortValues orders map keys so that maps print the same way every time.
// The ordering follows the one fmt uses when printing maps: numbers and
// strings by value, false before true, pointers and channels by address,
// structs and arrays element by element, interfaces by dynamic type first.
func sortValues(values []reflect.Value) {
	slices.SortStableFunc(values, compareValues)
}

func compareValues(a, b reflect.Value) int {
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolRank(a.IsValid()), boolRank(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		if c := cmp.Compare(real(ac), real(bc)); c != 0 {
			return c
		}
		return cmp.Compare(imag(ac), imag(bc))
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return cmp.Compare(a.Pointer(), b.Pointer())
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if c := compareValues(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if c := compareValues(a.Index(i), b.Index(i)); c != 0 {
				return c
			}
		}
		return 0
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return cmp.Compare(boolRank(!a.IsNil()), boolRank(!b.IsNil()))
		}
		ae, be := a.Elem(), b.Elem()
		if c := cmp.Compare(ae.Type().String(), be.Type().String()); c != 0 {
			return c
		}
		return compareValues(ae, be)
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
