package printer

import (
	"reflect"
	"slices"
)

// Orderer reorders the elements of a collection before they are printed,
// typically to make the output independent of insertion order. For maps
// with scalar keys the values handed to Order are the keys, already sorted.
type Orderer interface {
	// CanHandleType reports whether collections of type t are reordered
	CanHandleType(t reflect.Type) bool

	// Order returns the values in print order
	Order(values []reflect.Value) []reflect.Value
}

type orderFunc struct {
	canHandle func(reflect.Type) bool
	order     func([]reflect.Value) []reflect.Value
}

// OrderFunc creates an orderer from two functions
func OrderFunc(canHandle func(reflect.Type) bool, order func(values []reflect.Value) []reflect.Value) Orderer {
	return &orderFunc{canHandle: canHandle, order: order}
}

func (o *orderFunc) CanHandleType(t reflect.Type) bool {
	return o.canHandle(t)
}

func (o *orderFunc) Order(values []reflect.Value) []reflect.Value {
	return o.order(values)
}

// SortElements creates an orderer that sorts slices and arrays of T with
// compare. The sort is stable.
func SortElements[T any](compare func(a, b T) int) Orderer {
	elem := reflect.TypeFor[T]()
	return OrderFunc(
		func(t reflect.Type) bool {
			return (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem() == elem
		},
		func(values []reflect.Value) []reflect.Value {
			sorted := slices.Clone(values)
			slices.SortStableFunc(sorted, func(a, b reflect.Value) int {
				return compare(valueOf[T](a), valueOf[T](b))
			})
			return sorted
		},
	)
}

func valueOf[T any](v reflect.Value) T {
	var out T
	if v.CanInterface() {
		out, _ = v.Interface().(T)
	}
	return out
}
