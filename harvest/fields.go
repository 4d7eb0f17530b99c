package harvest

import (
	"fmt"
	"reflect"
	"runtime"
)

// AllFields harvests every struct field, exported or not
type AllFields struct{}

func (AllFields) CanHandleType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (AllFields) GetFields(t reflect.Type) []Field {
	return structFields(t, nil)
}

// PublicFields harvests exported struct fields only
type PublicFields struct{}

func (PublicFields) CanHandleType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (PublicFields) GetFields(t reflect.Type) []Field {
	return structFields(t, func(sf reflect.StructField) bool { return sf.IsExported() })
}

// PublicFieldsAndProperties harvests exported fields followed by getters:
// exported methods that take no arguments and return one non-error value.
// Methods with arguments, such as setters, convey no observable state on
// their own and are never called.
type PublicFieldsAndProperties struct{}

func (PublicFieldsAndProperties) CanHandleType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (PublicFieldsAndProperties) GetFields(t reflect.Type) []Field {
	fields := PublicFields{}.GetFields(t)
	taken := make(map[string]bool, len(fields))
	for _, f := range fields {
		taken[f.Name] = true
	}

	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if !isGetter(m) || taken[m.Name] {
			continue
		}
		fields = append(fields, Field{
			Name:      m.Name,
			Member:    typeName(t) + "." + m.Name,
			Declaring: t,
			Value:     methodAccessor(m.Name),
		})
	}
	return fields
}

var (
	errorType = reflect.TypeFor[error]()

	skippedGetters = map[string]bool{"String": true, "GoString": true, "Error": true}
)

func isGetter(m reflect.Method) bool {
	if !m.IsExported() || skippedGetters[m.Name] {
		return false
	}
	// In includes the receiver.
	mt := m.Type
	return mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0) != errorType
}

func methodAccessor(name string) Accessor {
	return func(owner reflect.Value) (out reflect.Value, err error) {
		owner = Addressable(owner)
		recv := owner
		if owner.CanAddr() {
			recv = owner.Addr()
		}
		m := recv.MethodByName(name)
		if !m.IsValid() {
			return reflect.Value{}, fmt.Errorf("method %s not found on %s", name, owner.Type())
		}
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s() panicked: %v", name, r)
			}
		}()
		return m.Call(nil)[0], nil
	}
}

// StringerFieldName is the name of the single field produced by Stringer
const StringerFieldName = "String()"

// Stringer prints a type that declares its own String() string method as a
// single field holding the method's result. A String method promoted from an
// embedded type does not count.
type Stringer struct{}

func (Stringer) CanHandleType(t reflect.Type) bool {
	return declaresString(t)
}

func (Stringer) GetFields(t reflect.Type) []Field {
	return []Field{{
		Name:      StringerFieldName,
		Member:    typeName(t) + ".String",
		Declaring: t,
		Value:     methodAccessor("String"),
	}}
}

func declaresString(t reflect.Type) bool {
	m, ok := t.MethodByName("String")
	if !ok {
		m, ok = reflect.PointerTo(t).MethodByName("String")
	}
	if !ok || m.Type.NumIn() != 1 || m.Type.NumOut() != 1 || m.Type.Out(0).Kind() != reflect.String {
		return false
	}
	if t.Kind() != reflect.Struct || !embedsString(t) {
		return true
	}
	// Both an embedded type and possibly t itself provide String. Promoted
	// methods are compiler-generated wrappers without a source file.
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return false
	}
	file, _ := fn.FileLine(fn.Entry())
	return file != "<autogenerated>"
}

func embedsString(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		et := sf.Type
		if et.Kind() != reflect.Pointer {
			et = reflect.PointerTo(et)
		}
		if _, ok := et.MethodByName("String"); ok {
			return true
		}
	}
	return false
}
