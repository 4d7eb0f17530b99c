package harvest

import (
	"reflect"
	"unsafe"
)

// Accessible returns a value whose Interface method does not panic. Values
// read through unexported struct fields carry a read-only flag; when the
// value is addressable the flag is dropped by re-deriving it from its address.
func Accessible(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanInterface() {
		return v
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	return v
}

// Addressable returns v itself when it is addressable and otherwise a copy
// that is. Field accessors need an addressable owner to read unexported
// fields and to call pointer-receiver getters.
func Addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanAddr() || !v.CanInterface() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}

// ignoredPackages hold runtime internals whose fields are noise at best and
// self-referential metadata at worst.
var ignoredPackages = map[string]bool{
	"sync":        true,
	"sync/atomic": true,
	"reflect":     true,
	"unsafe":      true,
	"runtime":     true,
}

func isIgnoredType(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ignoredPackages[t.PkgPath()]
}

// typeName is the short name used in member identities
func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// candidate is a struct field found while walking embedded structs
type candidate struct {
	sf        reflect.StructField
	index     []int
	depth     int
	qualifier string
	declaring reflect.Type
}

// structFields lists the fields of struct type t. Fields of embedded value
// structs come first, in declaration order, followed by t's own fields. A
// promoted field that is shadowed or ambiguous is named Embedded.Field.
func structFields(t reflect.Type, keep func(reflect.StructField) bool) []Field {
	var found []candidate
	collect(t, nil, 0, "", keep, &found)

	minDepth := make(map[string]int)
	count := make(map[string]int)
	for _, c := range found {
		d, ok := minDepth[c.sf.Name]
		if !ok || c.depth < d {
			minDepth[c.sf.Name] = c.depth
			count[c.sf.Name] = 0
		}
		if c.depth == minDepth[c.sf.Name] {
			count[c.sf.Name]++
		}
	}

	fields := make([]Field, 0, len(found))
	for _, c := range found {
		name := c.sf.Name
		if c.depth > 0 && (c.depth != minDepth[name] || count[name] > 1) {
			name = c.qualifier + "." + name
		}
		fields = append(fields, Field{
			Name:      name,
			Member:    typeName(c.declaring) + "." + c.sf.Name,
			Declaring: c.declaring,
			Value:     fieldAccessor(c.index),
		})
	}
	return fields
}

func collect(t reflect.Type, prefix []int, depth int, qualifier string, keep func(reflect.StructField) bool, out *[]candidate) {
	var own []candidate
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int(nil), prefix...), i)
		if sf.Name == "_" || isIgnoredType(sf.Type) {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			q := sf.Type.Name()
			if qualifier != "" {
				q = qualifier + "." + q
			}
			collect(sf.Type, index, depth+1, q, keep, out)
			continue
		}
		if keep != nil && !keep(sf) {
			continue
		}
		own = append(own, candidate{sf: sf, index: index, depth: depth, qualifier: qualifier, declaring: t})
	}
	*out = append(*out, own...)
}

func fieldAccessor(index []int) Accessor {
	return func(owner reflect.Value) (reflect.Value, error) {
		owner = Addressable(owner)
		return Accessible(owner.FieldByIndex(index)), nil
	}
}

// embeddedTypes returns the struct types t embeds, nearest first
func embeddedTypes(t reflect.Type) []reflect.Type {
	var out []reflect.Type
	level := []reflect.Type{t}
	seen := map[reflect.Type]bool{t: true}
	for len(level) > 0 {
		var next []reflect.Type
		for _, lt := range level {
			for i := 0; i < lt.NumField(); i++ {
				sf := lt.Field(i)
				if !sf.Anonymous {
					continue
				}
				et := sf.Type
				if et.Kind() == reflect.Pointer {
					et = et.Elem()
				}
				if et.Kind() != reflect.Struct || seen[et] {
					continue
				}
				seen[et] = true
				out = append(out, et)
				next = append(next, et)
			}
		}
		level = next
	}
	return out
}
