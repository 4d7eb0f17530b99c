package harvest

import (
	"reflect"
	"strings"
	"sync"

	perrors "github.com/stateprinter/stateprinter/errors"
)

// ruleKind is the kind of projection registered for a type
type ruleKind int

const (
	includeRule ruleKind = iota
	excludeRule
	filterRule
)

func (k ruleKind) String() string {
	switch k {
	case includeRule:
		return "include"
	case excludeRule:
		return "exclude"
	default:
		return "filter"
	}
}

type rule struct {
	kind   ruleKind
	names  []string
	filter func(Field) bool
}

func (r *rule) keeps(f Field) bool {
	switch r.kind {
	case includeRule:
		return r.matches(f)
	case excludeRule:
		return !r.matches(f)
	default:
		return r.filter(f)
	}
}

func (r *rule) matches(f Field) bool {
	for _, n := range r.names {
		if f.Name == n || f.Member == n {
			return true
		}
	}
	return false
}

// Projection narrows the fields of a base harvester per type. Each type
// registers exactly one of an include list, an exclude list or a filter; the
// registration also applies to structs that embed the type and, for interface
// types, to structs that implement it.
type Projection struct {
	base Harvester

	mu    sync.RWMutex
	rules map[reflect.Type]*rule
	order []reflect.Type
}

// NewProjection creates a projection over base. A nil base selects AllFields.
func NewProjection(base Harvester) *Projection {
	if base == nil {
		base = AllFields{}
	}
	return &Projection{
		base:  base,
		rules: make(map[reflect.Type]*rule),
	}
}

// Include restricts t to the named fields
func (p *Projection) Include(t reflect.Type, names ...string) error {
	return p.register(t, &rule{kind: includeRule, names: names})
}

// Exclude removes the named fields from t
func (p *Projection) Exclude(t reflect.Type, names ...string) error {
	return p.register(t, &rule{kind: excludeRule, names: names})
}

// Filter keeps the fields of t for which keep returns true
func (p *Projection) Filter(t reflect.Type, keep func(Field) bool) error {
	if keep == nil {
		return perrors.NewNilArgument("filter")
	}
	return p.register(t, &rule{kind: filterRule, filter: keep})
}

// IncludeType restricts T to the named fields
func IncludeType[T any](p *Projection, names ...string) error {
	return p.Include(reflect.TypeFor[T](), names...)
}

// ExcludeType removes the named fields from T
func ExcludeType[T any](p *Projection, names ...string) error {
	return p.Exclude(reflect.TypeFor[T](), names...)
}

// FilterType keeps the fields of T for which keep returns true
func FilterType[T any](p *Projection, keep func(Field) bool) error {
	return p.Filter(reflect.TypeFor[T](), keep)
}

func (p *Projection) register(t reflect.Type, r *rule) error {
	if t == nil {
		return perrors.NewNilArgument("type")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if err := p.validate(t, r.names); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	existing, ok := p.rules[t]
	if !ok {
		p.rules[t] = r
		p.order = append(p.order, t)
		return nil
	}
	if existing.kind != r.kind {
		return perrors.NewConflictingProjection(t.String(), existing.kind.String(), r.kind.String())
	}
	switch r.kind {
	case filterRule:
		prev := existing.filter
		existing.filter = func(f Field) bool { return prev(f) && r.filter(f) }
	default:
		existing.names = append(existing.names, r.names...)
	}
	return nil
}

// validate resolves every name against the fields t actually has. A name may
// be qualified as Type.Field where Type is t or a struct t embeds.
func (p *Projection) validate(t reflect.Type, names []string) error {
	if len(names) == 0 {
		return nil
	}

	var fields []Field
	switch {
	case t.Kind() == reflect.Interface:
		for i := 0; i < t.NumMethod(); i++ {
			fields = append(fields, Field{Name: t.Method(i).Name, Member: typeName(t) + "." + t.Method(i).Name})
		}
	case p.base.CanHandleType(t):
		fields = p.base.GetFields(t)
	}

	related := map[string]bool{typeName(t): true}
	if t.Kind() == reflect.Struct {
		for _, et := range embeddedTypes(t) {
			related[typeName(et)] = true
		}
	}

	for _, name := range names {
		if dot := strings.LastIndexByte(name, '.'); dot > 0 {
			qualifier := name[:dot]
			if !related[qualifier] {
				return perrors.NewUnrelatedField(t.String(), name, qualifier)
			}
			if qualifier == typeName(t) {
				name = name[dot+1:]
			}
		}
		r := rule{kind: includeRule, names: []string{name, typeName(t) + "." + name}}
		found := false
		for _, f := range fields {
			if r.matches(f) {
				found = true
				break
			}
		}
		if !found {
			return perrors.NewUnknownField(t.String(), name)
		}
	}
	return nil
}

// ruleFor finds the rule that applies to t: its own, then one registered for
// a struct it embeds (nearest first), then one for an interface it implements
// (in registration order).
func (p *Projection) ruleFor(t reflect.Type) *rule {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if r, ok := p.rules[t]; ok {
		return r
	}
	if t.Kind() == reflect.Struct {
		for _, et := range embeddedTypes(t) {
			if r, ok := p.rules[et]; ok {
				return r
			}
		}
	}
	pt := reflect.PointerTo(t)
	for _, rt := range p.order {
		if rt.Kind() == reflect.Interface && (t.Implements(rt) || pt.Implements(rt)) {
			return p.rules[rt]
		}
	}
	return nil
}

func (p *Projection) CanHandleType(t reflect.Type) bool {
	return p.base.CanHandleType(t) && p.ruleFor(t) != nil
}

func (p *Projection) GetFields(t reflect.Type) []Field {
	fields := p.base.GetFields(t)
	r := p.ruleFor(t)
	if r == nil {
		return fields
	}
	kept := fields[:0:0]
	for _, f := range fields {
		if r.keeps(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
