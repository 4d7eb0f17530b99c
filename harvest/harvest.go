// Package harvest decides which members of a type are printed as fields.
//
// A Harvester claims types through CanHandleType and lists their fields
// through GetFields. A printer keeps an ordered list of harvesters and uses
// the most recently added one that claims a type.
package harvest

import (
	"reflect"
)

// Accessor reads a field from an addressable owner value
type Accessor func(owner reflect.Value) (reflect.Value, error)

// Field is one printable member of a type
type Field struct {
	// Name is the display name
	Name string
	// Member identifies the declared member as "DeclaringType.Name"
	Member string
	// Declaring is the type that declares the member
	Declaring reflect.Type
	// Value reads the member from an owner whose type is, or embeds, Declaring
	Value Accessor
}

// Harvester selects the fields of the types it claims
type Harvester interface {
	// CanHandleType reports whether this harvester decomposes values of t
	CanHandleType(t reflect.Type) bool

	// GetFields returns the fields of t in print order
	GetFields(t reflect.Type) []Field
}

// MapEntry is the element type used when a map whose keys are not scalar is
// printed as a sequence of key/value pairs.
type MapEntry struct {
	Key   any
	Value any
}

// Computed creates a synthetic field whose value is produced by fn
func Computed(name string, fn func(owner reflect.Value) any) Field {
	return Field{
		Name:   name,
		Member: name,
		Value: func(owner reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(fn(owner)), nil
		},
	}
}

// Anonymous is a harvester built from two caller-supplied functions. It is
// the way to inject computed fields that no struct member backs.
type Anonymous struct {
	canHandle func(reflect.Type) bool
	getFields func(reflect.Type) []Field
}

// NewAnonymous creates a harvester from canHandle and getFields
func NewAnonymous(canHandle func(reflect.Type) bool, getFields func(reflect.Type) []Field) *Anonymous {
	return &Anonymous{canHandle: canHandle, getFields: getFields}
}

func (a *Anonymous) CanHandleType(t reflect.Type) bool {
	return a.canHandle(t)
}

func (a *Anonymous) GetFields(t reflect.Type) []Field {
	return a.getFields(t)
}

// Names returns the display names of fields, in order
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
