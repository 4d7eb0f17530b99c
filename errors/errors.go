// Package errors provides structured errors for the printer. Every error
// carries a code and a category so callers can tell configuration mistakes
// apart from rendering failures without matching on message text.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// Code is a unique error code
type Code string

// Category groups related error codes
type Category string

const (
	// CategoryConfiguration covers registry and setter mistakes (CFG100-199)
	CategoryConfiguration Category = "configuration"
	// CategoryField covers projection field specifications (FLD200-299)
	CategoryField Category = "field"
	// CategoryRender covers formatter failures (RND300-399)
	CategoryRender Category = "render"
	// CategoryTraversal covers failures while reading values (WLK400-499)
	CategoryTraversal Category = "traversal"
)

const (
	// ErrNoHarvester indicates that no harvester claims a type
	ErrNoHarvester Code = "CFG100"
	// ErrConflictingProjection indicates a second, different projection kind for one type
	ErrConflictingProjection Code = "CFG101"
	// ErrNilArgument indicates nil passed to a configuration method
	ErrNilArgument Code = "CFG102"
	// ErrUnknownRenderer indicates an output format name that is not registered
	ErrUnknownRenderer Code = "CFG103"

	// ErrUnknownField indicates a projection name that resolves to no field
	ErrUnknownField Code = "FLD200"
	// ErrUnrelatedField indicates a projection name qualified by an unrelated type
	ErrUnrelatedField Code = "FLD201"

	// ErrCyclicLiteral indicates a back-reference reaching the literal renderer
	ErrCyclicLiteral Code = "RND300"
	// ErrUnknownToken indicates a token kind no renderer understands
	ErrUnknownToken Code = "RND301"

	// ErrFieldAccess indicates that reading a field or getter failed
	ErrFieldAccess Code = "WLK400"
)

var categories = map[Code]Category{
	ErrNoHarvester:           CategoryConfiguration,
	ErrConflictingProjection: CategoryConfiguration,
	ErrNilArgument:           CategoryConfiguration,
	ErrUnknownRenderer:       CategoryConfiguration,
	ErrUnknownField:          CategoryField,
	ErrUnrelatedField:        CategoryField,
	ErrCyclicLiteral:         CategoryRender,
	ErrUnknownToken:          CategoryRender,
	ErrFieldAccess:           CategoryTraversal,
}

// CategoryOf returns the category a code belongs to
func CategoryOf(code Code) Category {
	return categories[code]
}

// PrinterError is a structured error raised by configuration, traversal or rendering
type PrinterError struct {
	// Code is the unique error code (e.g., "CFG100")
	Code Code `json:"code"`
	// Category is the error category
	Category Category `json:"category"`
	// Message is the primary error message
	Message string `json:"message"`
	// TypeName names the offending type (optional)
	TypeName string `json:"type,omitempty"`
	// FieldName names the offending field (optional)
	FieldName string `json:"field,omitempty"`
	// Renderer names the formatter that failed (optional)
	Renderer string `json:"renderer,omitempty"`
	// Suggestion provides a hint for fixing the error (optional)
	Suggestion string `json:"suggestion,omitempty"`

	cause error
}

// New creates a PrinterError for code with a formatted message
func New(code Code, format string, args ...any) *PrinterError {
	return &PrinterError{
		Code:     code,
		Category: CategoryOf(code),
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *PrinterError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any
func (e *PrinterError) Unwrap() error {
	return e.cause
}

// Is matches another *PrinterError by code, so that
// errors.Is(err, errors.New(errors.ErrCyclicLiteral, "")) works.
func (e *PrinterError) Is(target error) bool {
	t, ok := target.(*PrinterError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ToJSON returns the error as a JSON string
func (e *PrinterError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// WithType sets the offending type name
func (e *PrinterError) WithType(name string) *PrinterError {
	e.TypeName = name
	return e
}

// WithField sets the offending field name
func (e *PrinterError) WithField(name string) *PrinterError {
	e.FieldName = name
	return e
}

// WithRenderer sets the failing renderer name
func (e *PrinterError) WithRenderer(name string) *PrinterError {
	e.Renderer = name
	return e
}

// WithSuggestion sets a suggestion for fixing the error
func (e *PrinterError) WithSuggestion(suggestion string) *PrinterError {
	e.Suggestion = suggestion
	return e
}

// WithCause attaches the underlying error
func (e *PrinterError) WithCause(err error) *PrinterError {
	e.cause = err
	return e
}

// HasCode reports whether err is, or wraps, a PrinterError with the given code
func HasCode(err error, code Code) bool {
	var pe *PrinterError
	if !stderrors.As(err, &pe) {
		return false
	}
	return pe.Code == code
}

// CodeOf returns the code of the first PrinterError in err's chain, or ""
func CodeOf(err error) Code {
	var pe *PrinterError
	if !stderrors.As(err, &pe) {
		return ""
	}
	return pe.Code
}
