// Package printer prints arbitrary Go values, including cyclic and shared
// pointer graphs, as human readable text.
//
//	cfg := printer.DefaultConfiguration()
//	_ = cfg.SetRendererByName("json")
//	out, err := printer.New(cfg).Print(order)
//
// A value is walked into a token stream and then rendered. Instances that
// are reached more than once are printed in full the first time and as a
// reference to that first occurrence afterwards.
package printer

import (
	"go.uber.org/zap"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/internal/introspect"
	"github.com/stateprinter/stateprinter/token"
)

// Printer prints values with a configuration. Printers are safe for
// concurrent use as long as the configuration is not modified.
type Printer struct {
	cfg *Configuration
}

// New creates a printer. A nil configuration selects DefaultConfiguration.
func New(cfg *Configuration) *Printer {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	return &Printer{cfg: cfg}
}

// Configuration returns the configuration the printer uses
func (p *Printer) Configuration() *Configuration {
	return p.cfg
}

// Print renders v with no root name
func (p *Printer) Print(v any) (string, error) {
	return p.PrintNamed(v, "")
}

// PrintNamed renders v as the value of a field called name. On error
// nothing is returned.
func (p *Printer) PrintNamed(v any, name string) (string, error) {
	logger := p.cfg.Logger()

	tokens, err := p.Tokens(v, name)
	if err != nil {
		return "", err
	}

	r := p.cfg.Renderer()
	out, err := r.Render(tokens, p.cfg.Options())
	if err != nil {
		logger.Debug("render failed",
			zap.String("renderer", r.Name()),
			zap.String("code", string(perrors.CodeOf(err))),
			zap.Error(err))
		return "", err
	}
	return out, nil
}

// Tokens returns the uncompacted token stream for v
func (p *Printer) Tokens(v any, name string) ([]token.Token, error) {
	logger := p.cfg.Logger()
	tokens, err := introspect.NewWalker(p.cfg, logger).Traverse(v, name)
	if err != nil {
		logger.Debug("traversal failed",
			zap.String("code", string(perrors.CodeOf(err))),
			zap.Error(err))
		return nil, err
	}
	return tokens, nil
}

var defaultPrinter = New(nil)

// Print renders v with the default configuration
func Print(v any) (string, error) {
	return defaultPrinter.Print(v)
}
