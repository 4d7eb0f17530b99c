package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// lexers maps output format names to chroma lexers. Curly output reads
// like a C# object initializer.
var lexers = map[string]string{
	"curly":   "csharp",
	"json":    "json",
	"xml":     "xml",
	"literal": "go",
}

// Highlight colors rendered output for a terminal. Unknown formats and
// highlighting failures return the text unchanged.
func Highlight(text, format string) string {
	lexer, ok := lexers[format]
	if !ok {
		return text
	}
	var b strings.Builder
	if err := quick.Highlight(&b, text, lexer, "terminal256", "monokai"); err != nil {
		return text
	}
	return b.String()
}
