package token

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct{}

var nodeType = reflect.TypeOf(&node{})

func TestCompact_StripsUnreferencedHeaders(t *testing.T) {
	tokens := []Token{
		Header(nil, nodeType, 0),
		Structural(StartScope),
		Header(Named("left"), nodeType, 1),
		Structural(StartScope),
		Structural(EndScope),
		Structural(EndScope),
	}

	compacted := Compact(tokens)
	require.Len(t, compacted, len(tokens))
	assert.Equal(t, NoReference, compacted[0].Ref)
	assert.Equal(t, NoReference, compacted[2].Ref)
}

func TestCompact_RenumbersInFirstReferencedOrder(t *testing.T) {
	tokens := []Token{
		Header(nil, nodeType, 0),
		Structural(StartScope),
		Header(Named("a"), nodeType, 1),
		Structural(StartScope),
		Header(Named("b"), nodeType, 2),
		Structural(StartScope),
		Back(Named("toA"), 1),
		Structural(EndScope),
		Structural(EndScope),
		Back(Named("toB"), 2),
		Back(Named("toRoot"), 0),
		Structural(EndScope),
	}

	compacted := Compact(tokens)

	assert.Equal(t, Reference(2), compacted[0].Ref, "root is referenced last")
	assert.Equal(t, Reference(0), compacted[2].Ref, "a is referenced first")
	assert.Equal(t, Reference(1), compacted[4].Ref)
	assert.Equal(t, Reference(0), compacted[6].Ref)
	assert.Equal(t, Reference(1), compacted[9].Ref)
	assert.Equal(t, Reference(2), compacted[10].Ref)
}

func TestCompact_DoesNotMutateInput(t *testing.T) {
	tokens := []Token{Header(nil, nodeType, 3), Structural(StartScope), Structural(EndScope)}
	_ = Compact(tokens)
	assert.Equal(t, Reference(3), tokens[0].Ref)
}

func TestHasBackReferences(t *testing.T) {
	assert.False(t, HasBackReferences([]Token{Scalar(nil, "1")}))
	assert.True(t, HasBackReferences([]Token{Back(nil, 0)}))
}

func TestFieldConstructors(t *testing.T) {
	f := Indexed("Members", 2)
	assert.True(t, f.HasIndex)
	assert.False(t, f.HasKey)
	assert.Equal(t, "Members[2]", f.String())

	k := Keyed("1")
	assert.True(t, k.HasKey)
	assert.False(t, k.HasIndex)
	assert.Equal(t, "[1]", k.String())

	assert.Equal(t, "", (*Field)(nil).String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "COMPLEX_HEADER", ComplexHeader.String())
	assert.Equal(t, "UNKNOWN(42)", Kind(42).String())
}

func TestTokenIsNull(t *testing.T) {
	assert.True(t, Null(nil).IsNull())
	assert.False(t, Scalar(nil, `"null"`).IsNull())
}
