package introspect

import (
	"reflect"

	"go.uber.org/zap"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/harvest"
	"github.com/stateprinter/stateprinter/token"
)

// frame is one pending unit of work. A frame either visits a value or, when
// emit is set, appends a closing token once every child has been visited.
type frame struct {
	value reflect.Value
	field *token.Field
	emit  *token.Token
}

// Walker turns object graphs into token streams. A Walker holds no
// per-traversal state and may be shared between goroutines.
type Walker struct {
	reg    Registry
	logger *zap.Logger
}

// NewWalker creates a walker that resolves converters, harvesters and
// orderers through reg. A nil logger discards output.
func NewWalker(reg Registry, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{reg: reg, logger: logger}
}

// Traverse walks the graph rooted at root and returns its tokens, with
// identity numbers assigned in first-visit order. Deep graphs are walked with
// an explicit stack. On error no tokens are returned.
func (w *Walker) Traverse(root any, rootName string) ([]token.Token, error) {
	tracker := NewTracker()
	classifier := NewClassifier(w.reg, tracker)

	var tokens []token.Token
	stack := []frame{{value: reflect.ValueOf(root), field: token.Named(rootName)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.emit != nil {
			tokens = append(tokens, *f.emit)
			continue
		}

		emitted, children, err := w.visit(classifier, f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, emitted...)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	w.logger.Debug("traversal complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("tracked", tracker.Len()))
	return tokens, nil
}

// visit classifies one value and returns the tokens it emits right away
// together with the frames that complete it, in order.
func (w *Walker) visit(classifier *Classifier, f frame) ([]token.Token, []frame, error) {
	c := classifier.Classify(f.value)

	switch c.Class {
	case Null:
		return []token.Token{token.Null(f.field)}, nil, nil

	case Simple:
		v := harvest.Accessible(c.Value)
		text := c.Converter.Convert(v.Interface(), w.reg.Culture())
		return []token.Token{token.Scalar(f.field, text)}, nil, nil

	case AlreadySeen:
		return []token.Token{token.Back(f.field, c.Ref)}, nil, nil

	case Dictionary:
		return w.dictionary(c, f)

	case Sequence:
		return w.sequence(c, f)
	}
	return w.complex(c, f)
}

func (w *Walker) dictionary(c Classification, f frame) ([]token.Token, []frame, error) {
	v := c.Value
	keys := v.MapKeys()
	sortValues(keys)
	if o := w.reg.Orderer(v.Type()); o != nil {
		keys = o.Order(keys)
	}

	keyConverter := w.reg.Converter(v.Type().Key())
	children := make([]frame, 0, len(keys)+1)
	for _, k := range keys {
		key := keyConverter.Convert(harvest.Accessible(k).Interface(), w.reg.Culture())
		children = append(children, frame{value: v.MapIndex(k), field: token.Keyed(key)})
	}
	children = append(children, closing(token.EndScope))

	return []token.Token{
		token.Header(f.field, v.Type(), c.Ref),
		token.Structural(token.StartScope),
	}, children, nil
}

func (w *Walker) sequence(c Classification, f frame) ([]token.Token, []frame, error) {
	v := c.Value
	elems := elements(v)
	if o := w.reg.Orderer(v.Type()); o != nil {
		elems = o.Order(elems)
	}

	// Elements are named after the full path of the sequence, so nested
	// sequences read as m[0][1].
	name := f.field.String()
	children := make([]frame, 0, len(elems)+1)
	for i, e := range elems {
		children = append(children, frame{value: e, field: token.Indexed(name, i)})
	}
	children = append(children, closing(token.EndSequence))

	return []token.Token{
		token.Header(f.field, v.Type(), c.Ref),
		token.Structural(token.StartSequence),
	}, children, nil
}

// elements lists the members of a slice or array, or the entries of a map
// whose keys have no converter, sorted by key
func elements(v reflect.Value) []reflect.Value {
	if v.Kind() != reflect.Map {
		out := make([]reflect.Value, v.Len())
		for i := range out {
			out[i] = v.Index(i)
		}
		return out
	}

	keys := v.MapKeys()
	sortValues(keys)
	out := make([]reflect.Value, len(keys))
	for i, k := range keys {
		entry := harvest.MapEntry{
			Key:   harvest.Accessible(k).Interface(),
			Value: harvest.Accessible(v.MapIndex(k)).Interface(),
		}
		out[i] = reflect.ValueOf(entry)
	}
	return out
}

func (w *Walker) complex(c Classification, f frame) ([]token.Token, []frame, error) {
	v := c.Value
	owner := v
	if owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}

	t := owner.Type()
	fields, ok := w.reg.Fields(t)
	if !ok {
		w.logger.Debug("no harvester", zap.Stringer("type", t))
		return nil, nil, perrors.NewNoHarvester(t.String())
	}

	children := make([]frame, 0, len(fields)+1)
	for _, hf := range fields {
		fv, err := hf.Value(owner)
		if err != nil {
			return nil, nil, perrors.NewFieldAccess(t.String(), hf.Name, err)
		}
		children = append(children, frame{value: fv, field: token.Named(hf.Name)})
	}
	children = append(children, closing(token.EndScope))

	return []token.Token{
		token.Header(f.field, v.Type(), c.Ref),
		token.Structural(token.StartScope),
	}, children, nil
}

func closing(kind token.Kind) frame {
	t := token.Structural(kind)
	return frame{emit: &t}
}
