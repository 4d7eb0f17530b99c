// Package introspect walks an object graph and turns it into a token stream.
//
// Every value is first classified, in a fixed order, as null, simple,
// already seen, dictionary, sequence or complex. Dictionaries with scalar
// keys are checked before sequences so that they get the terser keyed
// output, and the seen check comes before any decomposition so that cycles
// through collections stop at the first revisit.
package introspect

import (
	"reflect"

	"golang.org/x/text/language"

	"github.com/stateprinter/stateprinter/convert"
	"github.com/stateprinter/stateprinter/harvest"
	"github.com/stateprinter/stateprinter/token"
)

// Class is the outcome of classifying a value
type Class int

const (
	Null Class = iota
	Simple
	AlreadySeen
	Dictionary
	Sequence
	Complex
)

var classNames = map[Class]string{
	Null:        "null",
	Simple:      "simple",
	AlreadySeen: "already-seen",
	Dictionary:  "dictionary",
	Sequence:    "sequence",
	Complex:     "complex",
}

func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Orderer reorders the elements of a collection before they are walked
type Orderer interface {
	CanHandleType(t reflect.Type) bool
	Order(values []reflect.Value) []reflect.Value
}

// Registry answers the per-type questions a traversal asks. Implementations
// must be safe for concurrent use.
type Registry interface {
	// Converter returns the converter that claims t, or nil
	Converter(t reflect.Type) convert.Converter
	// Fields returns the fields of t from the harvester that claims it; ok is
	// false when no harvester does
	Fields(t reflect.Type) (fields []harvest.Field, ok bool)
	// Orderer returns the orderer that claims collection type t, or nil
	Orderer(t reflect.Type) Orderer
	// Culture is passed through to converters
	Culture() language.Tag
}

// Classification is the result of Classify
type Classification struct {
	Class Class
	// Value is the value to print: interfaces are unwrapped and pointers to
	// simple values are dereferenced.
	Value reflect.Value
	// Converter is set for Simple values
	Converter convert.Converter
	// Ref is the identity number for AlreadySeen values and for newly
	// tracked dictionaries, sequences and complex values
	Ref token.Reference
}

// maxPointerHops bounds the dereferencing of pointer chains such as **T
const maxPointerHops = 32

// Classifier classifies values against a registry, tracking identity as it
// goes. A classifier belongs to a single traversal.
type Classifier struct {
	reg     Registry
	tracker *Tracker
}

// NewClassifier creates a classifier that records identities in tracker
func NewClassifier(reg Registry, tracker *Tracker) *Classifier {
	return &Classifier{reg: reg, tracker: tracker}
}

// Classify decides how v is printed. Values that are neither null nor
// simple are marked as seen, so classifying the same instance twice yields
// AlreadySeen the second time.
func (c *Classifier) Classify(v reflect.Value) Classification {
	v = unwrap(v)
	if isNil(v) {
		return Classification{Class: Null, Value: v, Ref: token.NoReference}
	}
	if conv := c.reg.Converter(v.Type()); conv != nil {
		return Classification{Class: Simple, Value: v, Converter: conv, Ref: token.NoReference}
	}

	// Pointers to structs keep their identity; any other pointer is printed
	// as the value it points at. A pointee without identity of its own, such
	// as an array, is tracked through the last pointer to it.
	ref, pinned := token.NoReference, false
	for hops := 0; v.Kind() == reflect.Pointer; hops++ {
		elem := unwrap(v.Elem())
		if isNil(elem) {
			return Classification{Class: Null, Value: elem, Ref: token.NoReference}
		}
		if conv := c.reg.Converter(elem.Type()); conv != nil {
			return Classification{Class: Simple, Value: elem, Converter: conv, Ref: token.NoReference}
		}
		if elem.Kind() == reflect.Struct {
			break
		}
		if hops == maxPointerHops {
			// A pointer chain that loops back on itself has nothing to print
			// but its type.
			return Classification{Class: Simple, Value: v, Converter: convert.Opaque{}, Ref: token.NoReference}
		}
		if _, ok := identityOf(elem); !ok && elem.Kind() != reflect.Pointer {
			seen, r, _ := c.tracker.TryMarkSeen(v)
			if seen {
				return Classification{Class: AlreadySeen, Value: elem, Ref: r}
			}
			ref, pinned = r, true
		}
		v = elem
	}

	if !pinned {
		seen, r, _ := c.tracker.TryMarkSeen(v)
		if seen {
			return Classification{Class: AlreadySeen, Value: v, Ref: r}
		}
		ref = r
	}

	switch v.Kind() {
	case reflect.Map:
		if c.reg.Converter(v.Type().Key()) != nil {
			return Classification{Class: Dictionary, Value: v, Ref: ref}
		}
		return Classification{Class: Sequence, Value: v, Ref: ref}
	case reflect.Slice, reflect.Array:
		return Classification{Class: Sequence, Value: v, Ref: ref}
	}
	return Classification{Class: Complex, Value: v, Ref: ref}
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}
