package harvest

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type base struct {
	ID   int
	note string
}

type account struct {
	base
	Name    string
	balance float64
	mu      *sync.Mutex
	_       int
}

type shadowing struct {
	base
	ID string
}

type person struct {
	Name string
	age  int
}

func (p *person) Age() int { return p.age }

func (p *person) SetAge(age int) { p.age = age }

func (p *person) Validate() error { return nil }

func (p person) String() string { return "person " + p.Name }

func (p *person) Initials() string { return p.Name[:1] }

func (p person) Greeting() string { return "hi " + p.Name }

func (p *person) Pair() (int, bool) { return p.age, true }

type label struct{ Text string }

func (l label) String() string { return "<" + l.Text + ">" }

type wrappedLabel struct {
	label
	Extra int
}

type ownLabel struct {
	label
}

func (o ownLabel) String() string { return "own" }

func fieldValue(t *testing.T, f Field, owner any) any {
	t.Helper()
	v, err := f.Value(reflect.ValueOf(owner))
	require.NoError(t, err)
	return v.Interface()
}

func TestAllFields_EmbeddedFirstAndUnexported(t *testing.T) {
	h := AllFields{}
	typ := reflect.TypeFor[account]()
	require.True(t, h.CanHandleType(typ))
	assert.False(t, h.CanHandleType(reflect.TypeFor[int]()))

	fields := h.GetFields(typ)
	assert.Equal(t, []string{"ID", "note", "Name", "balance"}, Names(fields))
	assert.Equal(t, "base.ID", fields[0].Member)
	assert.Equal(t, "account.Name", fields[2].Member)

	acc := account{base: base{ID: 7, note: "n"}, Name: "main", balance: 1.5}
	assert.Equal(t, 7, fieldValue(t, fields[0], acc))
	assert.Equal(t, "n", fieldValue(t, fields[1], acc))
	assert.Equal(t, 1.5, fieldValue(t, fields[3], acc))
}

func TestAllFields_ShadowedPromotedFieldIsQualified(t *testing.T) {
	fields := AllFields{}.GetFields(reflect.TypeFor[shadowing]())
	assert.Equal(t, []string{"base.ID", "note", "ID"}, Names(fields))

	v := shadowing{base: base{ID: 1}, ID: "outer"}
	assert.Equal(t, 1, fieldValue(t, fields[0], v))
	assert.Equal(t, "outer", fieldValue(t, fields[2], v))
}

func TestPublicFields(t *testing.T) {
	fields := PublicFields{}.GetFields(reflect.TypeFor[account]())
	assert.Equal(t, []string{"ID", "Name"}, Names(fields))
}

func TestPublicFieldsAndProperties(t *testing.T) {
	fields := PublicFieldsAndProperties{}.GetFields(reflect.TypeFor[person]())
	// Setters, error results, multiple results and String are skipped.
	assert.Equal(t, []string{"Name", "Age", "Greeting", "Initials"}, Names(fields))

	p := person{Name: "Ada", age: 36}
	assert.Equal(t, 36, fieldValue(t, fields[1], p))
	assert.Equal(t, "hi Ada", fieldValue(t, fields[2], p))
	assert.Equal(t, "A", fieldValue(t, fields[3], p))
}

func TestPublicFieldsAndProperties_PanickingGetter(t *testing.T) {
	fields := PublicFieldsAndProperties{}.GetFields(reflect.TypeFor[person]())
	initials := fields[3]
	require.Equal(t, "Initials", initials.Name)

	_, err := initials.Value(reflect.ValueOf(person{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Initials() panicked")
}

func TestStringer(t *testing.T) {
	h := Stringer{}
	assert.True(t, h.CanHandleType(reflect.TypeFor[label]()))
	assert.True(t, h.CanHandleType(reflect.TypeFor[person]()))
	assert.True(t, h.CanHandleType(reflect.TypeFor[ownLabel]()))
	assert.False(t, h.CanHandleType(reflect.TypeFor[wrappedLabel]()))
	assert.False(t, h.CanHandleType(reflect.TypeFor[account]()))

	fields := h.GetFields(reflect.TypeFor[label]())
	require.Len(t, fields, 1)
	assert.Equal(t, StringerFieldName, fields[0].Name)
	assert.Equal(t, "<x>", fieldValue(t, fields[0], label{Text: "x"}))
}

func TestAnonymous(t *testing.T) {
	h := NewAnonymous(
		func(t reflect.Type) bool { return t == reflect.TypeFor[person]() },
		func(reflect.Type) []Field {
			return []Field{Computed("Shout", func(owner reflect.Value) any {
				return owner.Interface().(person).Name + "!"
			})}
		},
	)
	typ := reflect.TypeFor[person]()
	require.True(t, h.CanHandleType(typ))
	assert.False(t, h.CanHandleType(reflect.TypeFor[label]()))

	fields := h.GetFields(typ)
	assert.Equal(t, "Ada!", fieldValue(t, fields[0], person{Name: "Ada"}))
}

func TestIgnoredPackagesAreSkipped(t *testing.T) {
	for _, f := range (AllFields{}).GetFields(reflect.TypeFor[account]()) {
		assert.NotEqual(t, "mu", f.Name)
	}
}

func TestAccessible(t *testing.T) {
	v := reflect.ValueOf(&account{balance: 2}).Elem().FieldByName("balance")
	require.False(t, v.CanInterface())
	assert.Equal(t, 2.0, Accessible(v).Interface())

	// Non-addressable values are returned unchanged.
	nv := reflect.ValueOf(account{}).FieldByName("balance")
	assert.False(t, Accessible(nv).CanInterface())
	assert.True(t, Addressable(reflect.ValueOf(account{})).CanAddr())
}

func TestEmbeddedTypes(t *testing.T) {
	type inner struct{ X int }
	type middle struct {
		inner
		Y int
	}
	type outer struct {
		*middle
		base
	}
	got := embeddedTypes(reflect.TypeFor[outer]())
	assert.Equal(t, []reflect.Type{
		reflect.TypeFor[middle](),
		reflect.TypeFor[base](),
		reflect.TypeFor[inner](),
	}, got)
}
