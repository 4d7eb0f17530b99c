// Package render turns token streams into text.
//
// Four renderers share the same input: Curly prints the classic
// "new Type()" layout, JSON and XML print documents in those formats and
// Literal prints a Go composite literal. Each renderer compacts the stream
// first so that only instances that are actually referenced again carry an
// identity number.
package render

import (
	"sort"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

// Options holds the layout settings shared by all renderers
type Options struct {
	// Indent is written once per nesting level
	Indent string `yaml:"indent"`
	// NewLine separates output lines
	NewLine string `yaml:"newline"`
}

// DefaultOptions returns four-space indentation and "\n" line endings
func DefaultOptions() Options {
	return Options{
		Indent:  "    ",
		NewLine: "\n",
	}
}

// Renderer renders a token stream. Implementations are stateless and safe
// for concurrent use.
type Renderer interface {
	// Name is the format name used to select the renderer
	Name() string

	// Render returns the text for tokens, or an error and no text
	Render(tokens []token.Token, opts Options) (string, error)
}

// renderers maps format names to constructors
var renderers = map[string]func() Renderer{
	CurlyName:   func() Renderer { return Curly{} },
	JSONName:    func() Renderer { return JSON{} },
	XMLName:     func() Renderer { return XML{} },
	LiteralName: func() Renderer { return Literal{} },
}

// ByName returns the renderer registered under name
func ByName(name string) (Renderer, error) {
	ctor, ok := renderers[name]
	if !ok {
		return nil, perrors.NewUnknownRenderer(name, Names())
	}
	return ctor(), nil
}

// Names returns the registered format names, sorted
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
