package introspect

import (
	"reflect"

	"github.com/stateprinter/stateprinter/token"
)

// identity is what makes two reflect values the same instance. The type is
// part of it so that a struct and its first field, which share an address,
// stay distinct.
type identity struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// Tracker numbers reference values in first-visit order. A tracker lives
// for exactly one traversal.
type Tracker struct {
	refs map[identity]token.Reference
	next token.Reference
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{refs: make(map[identity]token.Reference)}
}

// TryMarkSeen records v and reports whether it was recorded before. Only
// pointers, maps and non-empty slices have identity, and never when their
// elements are zero-size; for every other value tracked is false and ref is
// token.NoReference. Identity is never derived
// from == or an Equal method, so distinct but equal instances stay distinct.
func (t *Tracker) TryMarkSeen(v reflect.Value) (seen bool, ref token.Reference, tracked bool) {
	id, ok := identityOf(v)
	if !ok {
		return false, token.NoReference, false
	}
	if ref, ok := t.refs[id]; ok {
		return true, ref, true
	}
	ref = t.next
	t.refs[id] = ref
	t.next++
	return false, ref, true
}

// Len returns the number of instances tracked so far
func (t *Tracker) Len() int {
	return len(t.refs)
}

func identityOf(v reflect.Value) (identity, bool) {
	if !v.IsValid() {
		return identity{}, false
	}
	switch v.Kind() {
	case reflect.Pointer:
		// Zero-size values may all share one address.
		if v.IsNil() || v.Type().Elem().Size() == 0 {
			return identity{}, false
		}
		return identity{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Map:
		if v.IsNil() {
			return identity{}, false
		}
		return identity{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		if v.Len() == 0 || v.Type().Elem().Size() == 0 {
			return identity{}, false
		}
		return identity{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}, true
	}
	return identity{}, false
}
