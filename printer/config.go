package printer

import (
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/stateprinter/stateprinter/convert"
	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/harvest"
	"github.com/stateprinter/stateprinter/internal/introspect"
	"github.com/stateprinter/stateprinter/render"
)

// Configuration holds the converters, harvesters and orderers a printer
// consults, in registration order, together with the output settings.
//
// Build a configuration once and share it. Lookups are cached per type and
// are safe for concurrent use; mutating a configuration while it is being
// used to print is not.
type Configuration struct {
	mu         sync.RWMutex
	converters []convert.Converter
	harvesters []harvest.Harvester
	orderers   []Orderer
	renderer   render.Renderer
	options    render.Options
	culture    language.Tag
	logger     *zap.Logger

	// Per-type lookup cache, cleared on every registration
	cacheMutex     sync.RWMutex
	converterCache map[reflect.Type]convert.Converter
	fieldCache     map[reflect.Type]fieldsEntry
	ordererCache   map[reflect.Type]Orderer
}

type fieldsEntry struct {
	fields []harvest.Field
	ok     bool
}

var _ introspect.Registry = (*Configuration)(nil)

// NewConfiguration creates an empty configuration: no converters or
// harvesters, the curly renderer and default layout options.
func NewConfiguration() *Configuration {
	c := &Configuration{
		renderer: render.Curly{},
		options:  render.DefaultOptions(),
		culture:  language.Und,
		logger:   zap.NewNop(),
	}
	c.resetCache()
	return c
}

// DefaultConfiguration creates a configuration with the standard
// converters, the AllFields harvester and the curly renderer.
func DefaultConfiguration() *Configuration {
	c := NewConfiguration()
	c.converters = convert.Defaults()
	c.harvesters = []harvest.Harvester{harvest.AllFields{}}
	return c
}

// AddConverter registers conv. Converters registered later take precedence.
func (c *Configuration) AddConverter(conv convert.Converter) error {
	if conv == nil {
		return perrors.NewNilArgument("converter")
	}
	c.mu.Lock()
	c.converters = append(c.converters, conv)
	c.mu.Unlock()
	c.resetCache()
	return nil
}

// AddHarvester registers h. Harvesters registered later take precedence.
func (c *Configuration) AddHarvester(h harvest.Harvester) error {
	if h == nil {
		return perrors.NewNilArgument("harvester")
	}
	c.mu.Lock()
	c.harvesters = append(c.harvesters, h)
	c.mu.Unlock()
	c.resetCache()
	return nil
}

// AddOrderer registers o. Orderers registered later take precedence.
func (c *Configuration) AddOrderer(o Orderer) error {
	if o == nil {
		return perrors.NewNilArgument("orderer")
	}
	c.mu.Lock()
	c.orderers = append(c.orderers, o)
	c.mu.Unlock()
	c.resetCache()
	return nil
}

// SetRenderer selects the output format
func (c *Configuration) SetRenderer(r render.Renderer) error {
	if r == nil {
		return perrors.NewNilArgument("renderer")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderer = r
	return nil
}

// SetRendererByName selects the output format by its name
func (c *Configuration) SetRendererByName(name string) error {
	r, err := render.ByName(name)
	if err != nil {
		return err
	}
	return c.SetRenderer(r)
}

// SetIndent sets the string written once per nesting level
func (c *Configuration) SetIndent(indent string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options.Indent = indent
}

// SetNewLine sets the line separator
func (c *Configuration) SetNewLine(newLine string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options.NewLine = newLine
}

// SetCulture sets the culture handed to converters
func (c *Configuration) SetCulture(culture language.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.culture = culture
}

// SetLogger sets the logger used while printing
func (c *Configuration) SetLogger(logger *zap.Logger) error {
	if logger == nil {
		return perrors.NewNilArgument("logger")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	return nil
}

// Renderer returns the selected renderer
func (c *Configuration) Renderer() render.Renderer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renderer
}

// Options returns the layout options
func (c *Configuration) Options() render.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options
}

// Culture returns the culture handed to converters
func (c *Configuration) Culture() language.Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.culture
}

// Logger returns the configured logger
func (c *Configuration) Logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}

// Clone returns an independent copy with the same registrations
func (c *Configuration) Clone() *Configuration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &Configuration{
		converters: slices.Clone(c.converters),
		harvesters: slices.Clone(c.harvesters),
		orderers:   slices.Clone(c.orderers),
		renderer:   c.renderer,
		options:    c.options,
		culture:    c.culture,
		logger:     c.logger,
	}
	clone.resetCache()
	return clone
}

// Converter returns the most recently registered converter that claims t
func (c *Configuration) Converter(t reflect.Type) convert.Converter {
	c.cacheMutex.RLock()
	conv, ok := c.converterCache[t]
	c.cacheMutex.RUnlock()
	if ok {
		return conv
	}

	c.mu.RLock()
	for i := len(c.converters) - 1; i >= 0; i-- {
		if c.converters[i].CanHandleType(t) {
			conv = c.converters[i]
			break
		}
	}
	c.mu.RUnlock()

	c.cacheMutex.Lock()
	c.converterCache[t] = conv
	c.cacheMutex.Unlock()
	return conv
}

// Fields returns the fields of t from the most recently registered
// harvester that claims it
func (c *Configuration) Fields(t reflect.Type) ([]harvest.Field, bool) {
	c.cacheMutex.RLock()
	entry, ok := c.fieldCache[t]
	c.cacheMutex.RUnlock()
	if ok {
		return entry.fields, entry.ok
	}

	c.mu.RLock()
	for i := len(c.harvesters) - 1; i >= 0; i-- {
		h := c.harvesters[i]
		if h.CanHandleType(t) {
			entry = fieldsEntry{fields: h.GetFields(t), ok: true}
			c.logger.Debug("harvester resolved",
				zap.Stringer("type", t),
				zap.String("harvester", reflect.TypeOf(h).String()),
				zap.Strings("fields", harvest.Names(entry.fields)))
			break
		}
	}
	c.mu.RUnlock()

	c.cacheMutex.Lock()
	c.fieldCache[t] = entry
	c.cacheMutex.Unlock()
	return entry.fields, entry.ok
}

// Orderer returns the most recently registered orderer that claims t, or nil
func (c *Configuration) Orderer(t reflect.Type) introspect.Orderer {
	c.cacheMutex.RLock()
	o, ok := c.ordererCache[t]
	c.cacheMutex.RUnlock()
	if !ok {
		c.mu.RLock()
		for i := len(c.orderers) - 1; i >= 0; i-- {
			if c.orderers[i].CanHandleType(t) {
				o = c.orderers[i]
				break
			}
		}
		c.mu.RUnlock()

		c.cacheMutex.Lock()
		c.ordererCache[t] = o
		c.cacheMutex.Unlock()
	}
	return o
}

// Invalidate drops the cached per-type lookups. Call it after changing a
// registered value in place, such as a harvest.Projection, so that later
// prints see the change.
func (c *Configuration) Invalidate() {
	c.resetCache()
}

func (c *Configuration) resetCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.converterCache = make(map[reflect.Type]convert.Converter)
	c.fieldCache = make(map[reflect.Type]fieldsEntry)
	c.ordererCache = make(map[reflect.Type]Orderer)
}
