package render

import (
	"reflect"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

// LiteralName selects the Literal renderer
const LiteralName = "literal"

// Literal prints the graph as a Go composite literal that can be pasted
// into source code:
//
//	&Car{
//	    Brand: "Toyota",
//	    Wheel: &SteeringWheel{
//	        Size: 3,
//	    },
//	}
//
// A literal cannot express an instance that appears twice, so any
// back-reference in the stream is an error.
//
// Scalars are written exactly as their converter printed them, and
// pointers to slices, arrays and maps are written as the value they point
// at. The output therefore needs hand edits before it compiles when the
// graph holds []byte (printed as a quoted string), time.Time (a quoted
// RFC 3339 string), Stringer fields, maps whose keys have no converter
// (a list of MapEntry values) or fields of type *[]T.
type Literal struct{}

func (Literal) Name() string { return LiteralName }

func (l Literal) Render(tokens []token.Token, opts Options) (string, error) {
	if token.HasBackReferences(tokens) {
		return "", perrors.NewCyclicLiteral(l.Name())
	}

	tokens = token.Compact(tokens)
	w := newWriter(opts)
	depth := 0

	for _, t := range tokens {
		root := depth == 0
		switch t.Kind {
		case token.ScalarValue:
			value := t.Value
			if t.IsNull() {
				value = "nil"
			}
			w.writeLine(literalKey(t.Field, root) + value + literalComma(root))

		case token.ComplexHeader:
			w.writeLine(literalKey(t.Field, root) + literalType(t.Type) + "{")
			w.indent++
			depth++

		case token.StartScope, token.StartSequence:
			// Opened by the header.

		case token.EndScope, token.EndSequence:
			w.indent--
			depth--
			w.writeLine("}" + literalComma(depth == 0))

		default:
			return "", perrors.NewUnknownToken(l.Name(), t.Kind.String())
		}
	}
	return w.String(), nil
}

// literalKey returns what precedes a value: a field name or map key inside
// a composite, a variable declaration for a named root
func literalKey(f *token.Field, root bool) string {
	switch {
	case f == nil || f.HasIndex:
		return ""
	case root:
		if f.Name == "" {
			return ""
		}
		return "var " + f.Name + " = "
	case f.HasKey:
		return f.Key + ": "
	}
	return f.Name + ": "
}

func literalComma(root bool) string {
	if root {
		return ""
	}
	return ","
}

// literalType returns the composite literal type, with & for struct pointers
func literalType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "&" + typeName(t)
	}
	return typeName(t)
}
