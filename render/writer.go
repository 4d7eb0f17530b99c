package render

import (
	"bytes"
	"reflect"
	"regexp"
	"strings"

	"github.com/stateprinter/stateprinter/token"
)

// writer accumulates indented lines
type writer struct {
	opts   Options
	buf    *bytes.Buffer
	indent int
}

func newWriter(opts Options) *writer {
	return &writer{
		opts: opts,
		buf:  new(bytes.Buffer),
	}
}

// writeIndent writes the current indentation level
func (w *writer) writeIndent() {
	w.buf.WriteString(strings.Repeat(w.opts.Indent, w.indent))
}

// writeLine writes a line with indentation
func (w *writer) writeLine(text string) {
	w.writeIndent()
	w.buf.WriteString(text)
	w.buf.WriteString(w.opts.NewLine)
}

// String returns the output without the final line ending
func (w *writer) String() string {
	return strings.TrimSuffix(w.buf.String(), w.opts.NewLine)
}

// qualifiers matches package paths and names in reflect type strings, such
// as "main." in "[]*main.Car" or "example.com/pkg." in "Box[example.com/pkg.Item]".
var qualifiers = regexp.MustCompile(`(?:[\w-]+[./])+`)

// typeName returns t as written inside its own package, without pointers
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return qualifiers.ReplaceAllString(t.String(), "")
}

// next returns the kind of the token after i, or -1 at the end
func next(tokens []token.Token, i int) token.Kind {
	if i+1 < len(tokens) {
		return tokens[i+1].Kind
	}
	return -1
}

// closes reports whether k ends the enclosing scope or sequence
func closes(k token.Kind) bool {
	return k == token.EndScope || k == token.EndSequence
}
