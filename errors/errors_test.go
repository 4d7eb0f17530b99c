package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeUniqueness(t *testing.T) {
	codes := []Code{
		ErrNoHarvester, ErrConflictingProjection, ErrNilArgument, ErrUnknownRenderer,
		ErrUnknownField, ErrUnrelatedField,
		ErrCyclicLiteral, ErrUnknownToken,
		ErrFieldAccess,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
		assert.NotEmpty(t, CategoryOf(code), "code %s has no category", code)
	}
}

func TestCategoryPrefixes(t *testing.T) {
	prefixes := map[Category]string{
		CategoryConfiguration: "CFG",
		CategoryField:         "FLD",
		CategoryRender:        "RND",
		CategoryTraversal:     "WLK",
	}
	for code, category := range categories {
		assert.True(t, strings.HasPrefix(string(code), prefixes[category]),
			"code %s does not match category %s", code, category)
	}
}

func TestPrinterError_Message(t *testing.T) {
	err := NewNoHarvester("Car")
	assert.Equal(t, "CFG100: no field harvester can handle type 'Car'", err.Error())
	assert.Equal(t, "Car", err.TypeName)
	assert.Equal(t, CategoryConfiguration, err.Category)
}

func TestPrinterError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("printing: %w", NewCyclicLiteral("literal"))

	assert.True(t, stderrors.Is(err, New(ErrCyclicLiteral, "")))
	assert.False(t, stderrors.Is(err, New(ErrUnknownToken, "")))
	assert.True(t, HasCode(err, ErrCyclicLiteral))
	assert.Equal(t, ErrCyclicLiteral, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(stderrors.New("plain")))
}

func TestPrinterError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := NewFieldAccess("Car", "Speed", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "Speed", err.FieldName)
}

func TestPrinterError_ToJSON(t *testing.T) {
	out, err := NewUnknownField("Car", "Colour").ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "FLD200", decoded["code"])
	assert.Equal(t, "field", decoded["category"])
	assert.Equal(t, "Colour", decoded["field"])
}

func TestNewUnknownRenderer_ListsKnownNames(t *testing.T) {
	err := NewUnknownRenderer("yaml", []string{"curly", "json"})
	assert.Equal(t, "Use one of: curly, json", err.Suggestion)
}
