package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	perrors "github.com/stateprinter/stateprinter/errors"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized message with suggestions and help commands
//
// Example output:
//
//	✗ CFG103: unknown renderer "jsn"
//	   category: configuration
//
//	   Did you mean: json?
//
//	   → List formats: stateprinter print --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "!"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "i"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "✗"
	}
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, opts.Context, opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	for _, d := range opts.Details {
		bodyColor.Fprintf(&b, "   %s\n", d)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelInfo, Problem: message, NoColor: noColor})
}

// DescribeError formats any error for the terminal. Printer errors are
// broken out into code, category and suggestion; renderer names are
// matched against formats for a "did you mean" hint.
func DescribeError(err error, formats []string, noColor bool) string {
	var pe *perrors.PrinterError
	if !stderrors.As(err, &pe) {
		return FormatError(ErrorOptions{Problem: err.Error(), NoColor: noColor})
	}

	opts := ErrorOptions{
		Context: string(pe.Code),
		Problem: pe.Message,
		Details: []string{"category: " + string(pe.Category)},
		NoColor: noColor,
	}
	if pe.TypeName != "" {
		opts.Details = append(opts.Details, "type: "+pe.TypeName)
	}
	if pe.FieldName != "" {
		opts.Details = append(opts.Details, "field: "+pe.FieldName)
	}
	if pe.Renderer != "" {
		opts.Details = append(opts.Details, "renderer: "+pe.Renderer)
	}
	if pe.Suggestion != "" {
		opts.Details = append(opts.Details, "hint: "+pe.Suggestion)
	}
	if cause := stderrors.Unwrap(pe); cause != nil {
		opts.Details = append(opts.Details, "cause: "+cause.Error())
	}

	switch pe.Code {
	case perrors.ErrUnknownRenderer:
		if pe.Renderer != "" {
			opts.Suggestions = FindSimilar(pe.Renderer, formats, nil)
		}
		opts.HelpCommands = []string{"List formats: stateprinter print --help"}
	case perrors.ErrCyclicLiteral:
		opts.HelpCommands = []string{"Print cyclic graphs with: stateprinter print --format curly"}
	}
	return FormatError(opts)
}
