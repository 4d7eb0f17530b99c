package convert

import (
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type weekday int

const (
	monday weekday = iota
	tuesday
)

func (d weekday) String() string {
	switch d {
	case monday:
		return "Monday"
	case tuesday:
		return "Tuesday"
	}
	return "weekday(" + strconv.Itoa(int(d)) + ")"
}

type celsius float64

// claim returns the last converter in Defaults that handles t
func claim(t reflect.Type) Converter {
	var found Converter
	for _, c := range Defaults() {
		if c.CanHandleType(t) {
			found = c
		}
	}
	return found
}

func convert(v any) string {
	c := claim(reflect.TypeOf(v))
	if c == nil {
		return "<none>"
	}
	return c.Convert(v, language.Und)
}

func TestDefaults(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"negative int8", int8(-3), "-3"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float", 1.5, "1.5"},
		{"float32", float32(0.1), "0.1"},
		{"named float", celsius(21.5), "21.5"},
		{"complex", complex(1, 2), "(1+2i)"},
		{"string", "hi \"there\"", `"hi \"there\""`},
		{"empty string", "", `""`},
		{"text bytes", []byte("abc"), `"abc"`},
		{"binary bytes", []byte{0x00, 0xff}, `"0x00ff"`},
		{"byte array", [2]byte{'o', 'k'}, `"ok"`},
		{"enum", tuesday, "Tuesday"},
		{"time", when, `"2024-03-01T12:30:00Z"`},
		{"duration", 90 * time.Second, `"1m30s"`},
		{"uuid", id, `"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`},
		{"func", func() {}, `"<func()>"`},
		{"chan", make(chan int), `"<chan int>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert(tt.value))
		})
	}
}

func TestDefaults_DoNotClaimComposites(t *testing.T) {
	assert.Nil(t, claim(reflect.TypeFor[struct{ A int }]()))
	assert.Nil(t, claim(reflect.TypeFor[[]int]()))
	assert.Nil(t, claim(reflect.TypeFor[map[string]int]()))
	assert.Nil(t, claim(reflect.TypeFor[*int]()))
}

func TestEnum_RequiresNamedStringer(t *testing.T) {
	assert.True(t, Enum{}.CanHandleType(reflect.TypeFor[weekday]()))
	assert.False(t, Enum{}.CanHandleType(reflect.TypeFor[int]()))
	assert.False(t, Enum{}.CanHandleType(reflect.TypeFor[celsius]()))
	// Duration is also claimed by Time, which is registered later and wins.
	assert.Equal(t, Time{}, claim(reflect.TypeFor[time.Duration]()))
}

func TestStandard_Culture(t *testing.T) {
	s := Standard{}
	assert.Equal(t, "1.5", s.Convert(1.5, language.AmericanEnglish))
	assert.Equal(t, "1,5", s.Convert(1.5, language.German))
	assert.Equal(t, "1,5", s.Convert(1.5, language.French))
	assert.Equal(t, "1e+21", s.Convert(1e21, language.German))
	// Integers are never localized.
	assert.Equal(t, "1000", s.Convert(1000, language.German))
}

func TestForType(t *testing.T) {
	c := ForType(func(d weekday) string { return "day:" + d.String() })
	require.True(t, c.CanHandleType(reflect.TypeFor[weekday]()))
	assert.False(t, c.CanHandleType(reflect.TypeFor[int]()))
	assert.Equal(t, "day:Monday", c.Convert(monday, language.Und))
}

func TestNew(t *testing.T) {
	c := New(
		func(t reflect.Type) bool { return t.Kind() == reflect.Bool },
		func(v any, _ language.Tag) string {
			if v.(bool) {
				return "yes"
			}
			return "no"
		},
	)
	assert.True(t, c.CanHandleType(reflect.TypeFor[bool]()))
	assert.Equal(t, "no", c.Convert(false, language.Und))
}
