// Package convert holds the scalar converters a printer consults before it
// decomposes a value. A converter claims types whose values print as a single
// line, such as numbers, strings, times and enum constants.
package convert

import (
	"reflect"

	"golang.org/x/text/language"
)

// Converter turns values of the types it claims into one-line strings
type Converter interface {
	// CanHandleType reports whether values of t print through this converter
	CanHandleType(t reflect.Type) bool

	// Convert renders v. The culture is applied where the output is
	// locale-sensitive, such as decimal separators.
	Convert(v any, culture language.Tag) string
}

// funcConverter adapts a pair of functions to the Converter interface
type funcConverter struct {
	canHandle func(reflect.Type) bool
	convert   func(any, language.Tag) string
}

// New creates a converter from two functions
func New(canHandle func(reflect.Type) bool, convert func(v any, culture language.Tag) string) Converter {
	return &funcConverter{canHandle: canHandle, convert: convert}
}

func (c *funcConverter) CanHandleType(t reflect.Type) bool {
	return c.canHandle(t)
}

func (c *funcConverter) Convert(v any, culture language.Tag) string {
	return c.convert(v, culture)
}

// ForType creates a converter for exactly one type
func ForType[T any](convert func(v T) string) Converter {
	target := reflect.TypeFor[T]()
	return New(
		func(t reflect.Type) bool { return t == target },
		func(v any, _ language.Tag) string { return convert(v.(T)) },
	)
}

// Defaults returns the standard converters in registration order. Later
// entries win when more than one claims a type.
func Defaults() []Converter {
	return []Converter{
		Standard{},
		String{},
		Bytes{},
		Opaque{},
		Enum{},
		Time{},
		UUID{},
	}
}
