package convert

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Standard converts booleans and every numeric kind
type Standard struct{}

func (Standard) CanHandleType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func (Standard) Convert(v any, culture language.Tag) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits())
		return localize(s, culture)
	case reflect.Complex64, reflect.Complex128:
		s := strconv.FormatComplex(rv.Complex(), 'g', -1, rv.Type().Bits())
		return localize(s, culture)
	}
	return fmt.Sprint(v)
}

// separators caches the decimal separator per culture
var separators sync.Map // language.Tag -> string

// decimalSeparator asks x/text how the culture writes one and a half
func decimalSeparator(culture language.Tag) string {
	if sep, ok := separators.Load(culture); ok {
		return sep.(string)
	}
	s := message.NewPrinter(culture).Sprintf("%.1f", 1.5)
	sep := "."
	if i := strings.IndexRune(s, '1'); i >= 0 {
		if j := strings.LastIndexByte(s, '5'); j > i+1 {
			sep = s[i+1 : j]
		}
	}
	separators.Store(culture, sep)
	return sep
}

func localize(s string, culture language.Tag) string {
	if culture == language.Und {
		return s
	}
	sep := decimalSeparator(culture)
	if sep == "." {
		return s
	}
	return strings.Replace(s, ".", sep, 1)
}

// String converts string kinds to Go-quoted literals
type String struct{}

func (String) CanHandleType(t reflect.Type) bool {
	return t.Kind() == reflect.String
}

func (String) Convert(v any, _ language.Tag) string {
	return strconv.Quote(reflect.ValueOf(v).String())
}

// Bytes converts byte slices and arrays to a quoted hex string; printed
// element by element they would take one line per byte.
type Bytes struct{}

func (Bytes) CanHandleType(t reflect.Type) bool {
	return (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.Uint8
}

func (Bytes) Convert(v any, _ language.Tag) string {
	rv := reflect.ValueOf(v)
	b := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(b), rv)
	if utf8.Valid(b) && isPrintable(b) {
		return strconv.Quote(string(b))
	}
	return strconv.Quote("0x" + hex.EncodeToString(b))
}

func isPrintable(b []byte) bool {
	for _, r := range string(b) {
		if !strconv.IsPrint(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}

// Opaque converts kinds that cannot be decomposed (funcs, channels and
// unsafe pointers) to their type name.
type Opaque struct{}

func (Opaque) CanHandleType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func (Opaque) Convert(v any, _ language.Tag) string {
	return strconv.Quote("<" + reflect.TypeOf(v).String() + ">")
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

// Enum converts named integer types that implement fmt.Stringer, the usual
// shape of a Go enum, to their constant name.
type Enum struct{}

func (Enum) CanHandleType(t reflect.Type) bool {
	if t.PkgPath() == "" || !t.Implements(stringerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func (Enum) Convert(v any, _ language.Tag) string {
	return v.(fmt.Stringer).String()
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// Time converts time.Time to quoted RFC 3339 and time.Duration to its
// quoted String form.
type Time struct{}

func (Time) CanHandleType(t reflect.Type) bool {
	return t == timeType || t == durationType
}

func (Time) Convert(v any, _ language.Tag) string {
	switch tv := v.(type) {
	case time.Time:
		return strconv.Quote(tv.Format(time.RFC3339Nano))
	case time.Duration:
		return strconv.Quote(tv.String())
	}
	return fmt.Sprint(v)
}

var uuidType = reflect.TypeFor[uuid.UUID]()

// UUID converts github.com/google/uuid values to their quoted canonical form
type UUID struct{}

func (UUID) CanHandleType(t reflect.Type) bool {
	return t == uuidType
}

func (UUID) Convert(v any, _ language.Tag) string {
	return strconv.Quote(v.(uuid.UUID).String())
}
