package render

import (
	"strconv"
	"strings"
	"unicode"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

// XMLName selects the XML renderer
const XMLName = "xml"

// RootElement names the root element when the root has no name
const RootElement = "ROOT"

// XML prints one element per field. Complex elements carry a type
// attribute, referenced ones a ref attribute, and back-references are
// self-closing elements with only a ref. Sequence elements are named
// Element with an index attribute, dictionary entries Entry with a key.
type XML struct{}

func (XML) Name() string { return XMLName }

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func (x XML) Render(tokens []token.Token, opts Options) (string, error) {
	tokens = token.Compact(tokens)
	w := newWriter(opts)
	var open []string

	for _, t := range tokens {
		switch t.Kind {
		case token.ScalarValue:
			name, attrs := xmlElement(t.Field)
			w.writeLine("<" + name + attrs + ">" + xmlText(t.Value) + "</" + name + ">")

		case token.BackReference:
			name, attrs := xmlElement(t.Field)
			w.writeLine("<" + name + attrs + " ref='" + t.Ref.String() + "' />")

		case token.ComplexHeader:
			name, attrs := xmlElement(t.Field)
			attrs += " type='" + attrEscaper.Replace(typeName(t.Type)) + "'"
			if t.Ref.Valid() {
				attrs += " ref='" + t.Ref.String() + "'"
			}
			w.writeLine("<" + name + attrs + ">")
			w.indent++
			open = append(open, name)

		case token.StartScope, token.StartSequence:
			// The header already opened the element.

		case token.EndScope, token.EndSequence:
			name := open[len(open)-1]
			open = open[:len(open)-1]
			w.indent--
			w.writeLine("</" + name + ">")

		default:
			return "", perrors.NewUnknownToken(x.Name(), t.Kind.String())
		}
	}
	return w.String(), nil
}

// xmlElement returns the element name and attributes for a field
func xmlElement(f *token.Field) (string, string) {
	switch {
	case f == nil:
		return RootElement, ""
	case f.HasIndex:
		return "Element", " index='" + strconv.Itoa(f.Index) + "'"
	case f.HasKey:
		key := f.Key
		if s, err := strconv.Unquote(key); err == nil {
			key = s
		}
		return "Entry", " key='" + attrEscaper.Replace(key) + "'"
	case f.Name == "":
		return RootElement, ""
	}
	return xmlName(f.Name), ""
}

// xmlName replaces characters that may not appear in an element name
func xmlName(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func xmlText(s string) string {
	return textEscaper.Replace(s)
}
