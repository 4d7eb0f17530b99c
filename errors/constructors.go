package errors

import "strings"

// NewNoHarvester creates a CFG100 error
func NewNoHarvester(typeName string) *PrinterError {
	return New(ErrNoHarvester, "no field harvester can handle type '%s'", typeName).
		WithType(typeName).
		WithSuggestion("Register a harvester that claims this type, or a converter if it should print as a single value")
}

// NewConflictingProjection creates a CFG101 error
func NewConflictingProjection(typeName, existing, requested string) *PrinterError {
	return New(ErrConflictingProjection,
		"type '%s' already has a %s projection, cannot also register a %s", typeName, existing, requested).
		WithType(typeName).
		WithSuggestion("Use exactly one of include, exclude or filter per type")
}

// NewNilArgument creates a CFG102 error
func NewNilArgument(what string) *PrinterError {
	return New(ErrNilArgument, "%s must not be nil", what).WithField(what)
}

// NewUnknownRenderer creates a CFG103 error
func NewUnknownRenderer(name string, known []string) *PrinterError {
	return New(ErrUnknownRenderer, "unknown output format '%s'", name).
		WithRenderer(name).
		WithSuggestion("Use one of: " + strings.Join(known, ", "))
}

// NewUnknownField creates a FLD200 error
func NewUnknownField(typeName, fieldName string) *PrinterError {
	return New(ErrUnknownField, "field '%s' does not exist on type '%s'", fieldName, typeName).
		WithType(typeName).
		WithField(fieldName)
}

// NewUnrelatedField creates a FLD201 error
func NewUnrelatedField(typeName, fieldName, declaring string) *PrinterError {
	return New(ErrUnrelatedField,
		"field '%s' is declared on '%s', which is not '%s' or a type it embeds", fieldName, declaring, typeName).
		WithType(typeName).
		WithField(fieldName)
}

// NewCyclicLiteral creates a RND300 error
func NewCyclicLiteral(renderer string) *PrinterError {
	return New(ErrCyclicLiteral,
		"the %s output format does not support cycles or shared references", renderer).
		WithRenderer(renderer).
		WithSuggestion("Print the value with the curly, json or xml format instead")
}

// NewUnknownToken creates a RND301 error
func NewUnknownToken(renderer, kind string) *PrinterError {
	return New(ErrUnknownToken, "%s renderer received unknown token kind %s", renderer, kind).
		WithRenderer(renderer).
		WithSuggestion("This is likely a bug in the printer - please report it")
}

// NewFieldAccess creates a WLK400 error
func NewFieldAccess(typeName, fieldName string, cause error) *PrinterError {
	return New(ErrFieldAccess, "cannot read '%s' on type '%s'", fieldName, typeName).
		WithType(typeName).
		WithField(fieldName).
		WithCause(cause)
}
