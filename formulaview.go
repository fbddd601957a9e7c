// Package formulaview previews the numeric behavior of small arithmetic
// formulas embedded in text.
//
// A formula is written as formula(<expression>). Its free variables (at most
// two) are sampled over integer ranges, either the default 0..10 or a range
// directive comment such as
//
//	# n = range(1, 10, 2)
//
// and the results are rendered as a text table.
//
// # Basic Usage
//
//	text := "# n = range(0, 5)\nhalf = formula(n // 2)\n"
//
//	for _, span := range formulaview.LocateFormulaSpans(text) {
//	    expr := span.Text(text)
//	    fmt.Println(formulaview.RenderPreview(expr, formulaview.ParseRangeDirectives(text)))
//	}
//
// # With Options
//
// Create a Previewer to change settings or to keep a per-document cache:
//
//	p, err := formulaview.New(formulaview.WithMaxSamples(20))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.OnOpen("file:///calc.py", 1, text)
//	if hover, ok := p.Hover("file:///calc.py", 40); ok {
//	    fmt.Println(hover.Preview.Text)
//	}
package formulaview

import (
	"fmt"
	"sync"

	"github.com/praetorian-inc/formulaview/pkg/config"
	"github.com/praetorian-inc/formulaview/pkg/preview"
	"github.com/praetorian-inc/formulaview/pkg/store"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/formulaview" without subpackages.
type (
	// FormulaSpan is the byte range of the text between a formula's parentheses.
	FormulaSpan = types.FormulaSpan

	// RangeDirective binds a variable to range(start, end, step).
	RangeDirective = types.RangeDirective

	// Directives maps variable names to their range directive.
	Directives = types.Directives

	// DocumentID identifies an open document.
	DocumentID = types.DocumentID

	// DocumentCache is the cached scan of one document version.
	DocumentCache = types.DocumentCache

	// Location describes where a formula was found.
	Location = types.Location

	// Config holds engine settings.
	Config = config.Config

	// Preview is the outcome of rendering one expression.
	Preview = preview.Preview

	// FormulaPreview is the preview of one formula in a document.
	FormulaPreview = preview.FormulaPreview

	// DebugLogger receives debug output.
	DebugLogger = preview.DebugLogger
)

// Previewer renders formula previews and tracks open documents.
type Previewer struct {
	*preview.Engine
}

// previewerConfig holds Previewer configuration.
type previewerConfig struct {
	cfg    config.Config
	logger DebugLogger
	store  store.Store
}

// Option configures a Previewer.
type Option func(*previewerConfig)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *previewerConfig) {
		c.cfg = cfg
	}
}

// WithMarker sets the word that introduces a formula. Default is "formula".
func WithMarker(marker string) Option {
	return func(c *previewerConfig) {
		c.cfg.Marker = marker
	}
}

// WithCommentPrefixes sets the line prefixes of range directives.
// Default is "#" and "//".
func WithCommentPrefixes(prefixes ...string) Option {
	return func(c *previewerConfig) {
		c.cfg.CommentPrefixes = prefixes
	}
}

// WithMaxSamples caps the number of samples per variable. Default is 100.
func WithMaxSamples(n int) Option {
	return func(c *previewerConfig) {
		c.cfg.MaxSamples = n
	}
}

// WithRewriteMode selects "token" or "literal" variable substitution.
func WithRewriteMode(mode string) Option {
	return func(c *previewerConfig) {
		c.cfg.RewriteMode = mode
	}
}

// WithLogger sets a debug logger.
func WithLogger(logger DebugLogger) Option {
	return func(c *previewerConfig) {
		c.logger = logger
	}
}

// WithStore sets the document store.
func WithStore(s store.Store) Option {
	return func(c *previewerConfig) {
		c.store = s
	}
}

// New creates a Previewer. Without options it uses the built-in defaults.
//
// Example:
//
//	p, err := formulaview.New(formulaview.WithMarker("calc"))
func New(opts ...Option) (*Previewer, error) {
	c := &previewerConfig{cfg: config.Default()}
	for _, opt := range opts {
		opt(c)
	}

	engine, err := preview.New(c.cfg, preview.WithLogger(c.logger), preview.WithStore(c.store))
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	return &Previewer{Engine: engine}, nil
}

// LoadConfig reads a YAML configuration file overlaid on the defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

var (
	defaultPreviewer *Previewer
	defaultErr       error
	defaultOnce      sync.Once
)

// previewer returns the process-wide default Previewer, created once.
func previewer() *Previewer {
	defaultOnce.Do(func() {
		defaultPreviewer, defaultErr = New()
	})
	if defaultErr != nil {
		panic("formulaview: invalid built-in configuration: " + defaultErr.Error())
	}
	return defaultPreviewer
}

// LocateFormulaSpans returns the formula spans of text in document order.
func LocateFormulaSpans(text string) []FormulaSpan {
	return previewer().Locate(text)
}

// ParseRangeDirectives returns the range directives of text.
func ParseRangeDirectives(text string) Directives {
	return previewer().Directives(text)
}

// RenderPreview returns the display text for expression sampled under
// directives.
func RenderPreview(expression string, directives Directives) string {
	return previewer().Render(expression, directives)
}
