// Package token defines the intermediate representation produced when an
// object graph is traversed. A traversal emits a flat slice of tokens that
// renderers consume in a single linear pass.
package token

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind identifies the type of a token
type Kind int

const (
	// StartScope opens the field list of an object or dictionary.
	StartScope Kind = iota
	// EndScope closes the innermost scope.
	EndScope
	// StartSequence opens the element list of a slice, array or keyless map.
	StartSequence
	// EndSequence closes the innermost sequence.
	EndSequence
	// ScalarValue is a leaf value already converted to a single line.
	ScalarValue
	// BackReference points at an instance that was printed earlier.
	BackReference
	// ComplexHeader announces a new object, dictionary or sequence.
	ComplexHeader
)

// KindNames maps token kinds to their display names
var KindNames = map[Kind]string{
	StartScope:    "START_SCOPE",
	EndScope:      "END_SCOPE",
	StartSequence: "START_SEQUENCE",
	EndSequence:   "END_SEQUENCE",
	ScalarValue:   "SCALAR_VALUE",
	BackReference: "BACK_REFERENCE",
	ComplexHeader: "COMPLEX_HEADER",
}

// String returns the string representation of a Kind
func (k Kind) String() string {
	if name, ok := KindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// NullValue is the scalar text emitted for nil values.
const NullValue = "null"

// Reference is the identity number assigned to a reference value the first
// time a traversal visits it.
type Reference int

// NoReference marks a token that carries no identity.
const NoReference Reference = -1

// Valid reports whether r holds an identity number.
func (r Reference) Valid() bool {
	return r >= 0
}

// String returns the decimal form of the reference
func (r Reference) String() string {
	if !r.Valid() {
		return "none"
	}
	return strconv.Itoa(int(r))
}

// Field describes where a value sits inside its parent: a field name, a
// sequence position or a dictionary key. At most one of Index and Key is set.
type Field struct {
	Name     string
	Index    int
	HasIndex bool
	Key      string
	HasKey   bool
}

// Named creates a field descriptor for a named member.
func Named(name string) *Field {
	return &Field{Name: name}
}

// Indexed creates a field descriptor for element i of the sequence held by
// the field called name.
func Indexed(name string, i int) *Field {
	return &Field{Name: name, Index: i, HasIndex: true}
}

// Keyed creates a field descriptor for the dictionary entry with the given
// stringified key.
func Keyed(key string) *Field {
	return &Field{Key: key, HasKey: true}
}

// String renders the descriptor the way diagnostics print it
func (f *Field) String() string {
	if f == nil {
		return ""
	}
	switch {
	case f.HasIndex:
		return fmt.Sprintf("%s[%d]", f.Name, f.Index)
	case f.HasKey:
		return fmt.Sprintf("%s[%s]", f.Name, f.Key)
	default:
		return f.Name
	}
}

// Token is one step of traversal output. Tokens are values and are never
// mutated after creation; the compactor builds new ones.
type Token struct {
	Kind  Kind
	Field *Field
	// Value is set for ScalarValue tokens only.
	Value string
	// Ref is set for BackReference tokens and for ComplexHeader tokens of
	// tracked instances.
	Ref Reference
	// Type is set for ComplexHeader tokens only.
	Type reflect.Type
}

// Scalar creates a ScalarValue token.
func Scalar(field *Field, value string) Token {
	return Token{Kind: ScalarValue, Field: field, Value: value, Ref: NoReference}
}

// Null creates the ScalarValue token for a nil value.
func Null(field *Field) Token {
	return Scalar(field, NullValue)
}

// Back creates a BackReference token.
func Back(field *Field, ref Reference) Token {
	return Token{Kind: BackReference, Field: field, Ref: ref}
}

// Header creates a ComplexHeader token.
func Header(field *Field, typ reflect.Type, ref Reference) Token {
	return Token{Kind: ComplexHeader, Field: field, Type: typ, Ref: ref}
}

// Structural creates a StartScope, EndScope, StartSequence or EndSequence token.
func Structural(kind Kind) Token {
	return Token{Kind: kind, Ref: NoReference}
}

// IsNull reports whether t is the scalar emitted for a nil value.
func (t Token) IsNull() bool {
	return t.Kind == ScalarValue && t.Value == NullValue
}

// String returns a one-line description of the token
func (t Token) String() string {
	switch t.Kind {
	case ScalarValue:
		return fmt.Sprintf("%s %s = %s", t.Kind, t.Field, t.Value)
	case BackReference:
		return fmt.Sprintf("%s %s -> %s", t.Kind, t.Field, t.Ref)
	case ComplexHeader:
		return fmt.Sprintf("%s %s %v ref=%s", t.Kind, t.Field, t.Type, t.Ref)
	default:
		return t.Kind.String()
	}
}
