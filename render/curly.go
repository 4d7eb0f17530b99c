package render

import (
	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

// CurlyName selects the Curly renderer
const CurlyName = "curly"

// Curly prints objects as "new Type()" followed by a braced field list.
// Sequence elements are flattened into the enclosing scope as Name[i] and
// dictionary entries are printed as [key] inside braces.
//
//	new Course(), ref: 0
//	{
//	    Members = new []*Student()
//	    Members[0] = new Student()
//	    {
//	        Course = -> 0
//	    }
//	}
type Curly struct{}

func (Curly) Name() string { return CurlyName }

func (c Curly) Render(tokens []token.Token, opts Options) (string, error) {
	tokens = token.Compact(tokens)
	w := newWriter(opts)

	for _, t := range tokens {
		switch t.Kind {
		case token.ScalarValue:
			w.writeLine(curlyAssign(t.Field, t.Value))

		case token.BackReference:
			w.writeLine(curlyAssign(t.Field, "-> "+t.Ref.String()))

		case token.ComplexHeader:
			header := "new " + typeName(t.Type) + "()"
			if t.Ref.Valid() {
				header += ", ref: " + t.Ref.String()
			}
			w.writeLine(curlyAssign(t.Field, header))

		case token.StartScope:
			w.writeLine("{")
			w.indent++

		case token.EndScope:
			w.indent--
			w.writeLine("}")

		case token.StartSequence, token.EndSequence:
			// Elements carry their index in their own name.

		default:
			return "", perrors.NewUnknownToken(c.Name(), t.Kind.String())
		}
	}
	return w.String(), nil
}

// curlyAssign prefixes value with the field label, if any
func curlyAssign(f *token.Field, value string) string {
	label := f.String()
	if label == "" {
		return value
	}
	return label + " = " + value
}
