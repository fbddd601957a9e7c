// Package preview renders formula previews and keeps the per-document span
// and directive cache.
package preview

import (
	"fmt"
	"strings"

	"github.com/praetorian-inc/formulaview/pkg/config"
	"github.com/praetorian-inc/formulaview/pkg/directive"
	"github.com/praetorian-inc/formulaview/pkg/expr"
	"github.com/praetorian-inc/formulaview/pkg/locator"
	"github.com/praetorian-inc/formulaview/pkg/sampler"
	"github.com/praetorian-inc/formulaview/pkg/store"
	"github.com/praetorian-inc/formulaview/pkg/table"
	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/praetorian-inc/formulaview/pkg/variables"
)

// Engine renders previews and owns the document cache.
// Rendering is synchronous; an Engine is safe for concurrent use.
type Engine struct {
	cfg       config.Config
	locator   *locator.Locator
	parser    *directive.Parser
	extractor *variables.Extractor
	mode      variables.Mode
	sampler   *sampler.Sampler
	store     store.Store
	logger    DebugLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(logger DebugLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStore sets the document store. The default is a new MemoryStore.
func WithStore(s store.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// New creates an Engine from a validated configuration.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, logger: NoopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Log("NewEngine starting...")

	loc, err := locator.New(cfg.Marker)
	if err != nil {
		return nil, fmt.Errorf("creating locator: %w", err)
	}
	parser, err := directive.NewParser(cfg.CommentPrefixes)
	if err != nil {
		return nil, fmt.Errorf("creating directive parser: %w", err)
	}
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}

	e.locator = loc
	e.parser = parser
	e.extractor = variables.NewExtractor(cfg.ReservedFunctions)
	e.mode = mode
	e.sampler = &sampler.Sampler{Default: cfg.DefaultDirective(), MaxSamples: cfg.MaxSamples}
	if e.store == nil {
		e.store = store.NewMemory()
	}

	e.logger.Log("Engine ready: marker=%q prefixes=%q mode=%s", cfg.Marker, cfg.CommentPrefixes, mode)
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Locate returns the formula spans of text in document order.
func (e *Engine) Locate(text string) []types.FormulaSpan {
	return e.locator.Locate(text)
}

// Directives returns the range directives of text.
func (e *Engine) Directives(text string) types.Directives {
	return e.parser.Parse(text)
}

// Render returns the display text for expression sampled under directives.
// It never fails: problems degrade to a message or placeholder cells.
func (e *Engine) Render(expression string, directives types.Directives) string {
	return e.Preview(expression, directives).Text
}

// Preview renders expression and reports how it was rendered.
func (e *Engine) Preview(expression string, directives types.Directives) (p *Preview) {
	p = &Preview{Expression: expression}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Log("preview of %q panicked: %v", expression, r)
			p.Text = e.cfg.Placeholder
		}
	}()

	p.Variables = e.extractor.Extract(expression)
	if len(p.Variables) > 2 {
		e.logger.Log("preview of %q: %d variables %q", expression, len(p.Variables), p.Variables)
		p.Text = e.cfg.TooManyVariablesMessage
		return p
	}

	canonical, err := e.extractor.Rewrite(expression, p.Variables, e.mode)
	if err != nil {
		e.logger.Log("rewrite of %q failed: %v", expression, err)
		p.Text = e.cfg.Placeholder
		return p
	}
	p.Canonical = canonical

	var evaluator sampler.Evaluator
	parsed, err := expr.Parse(canonical)
	if err != nil {
		// Every cell fails the same way; the grid still renders.
		e.logger.Log("parse of %q failed: %v", canonical, err)
		evaluator = sampler.EvaluatorFunc(func(x, y float64) (float64, error) {
			return 0, err
		})
	} else {
		evaluator = parsed
	}

	grid, err := e.sampler.Sample(evaluator, p.Variables, directives)
	if err != nil {
		e.logger.Log("sampling %q failed: %v", canonical, err)
		p.Text = e.cfg.TooManyVariablesMessage
		return p
	}
	p.Failed = grid.Failed()
	p.Truncated = grid.Truncated

	var b strings.Builder
	b.WriteString(table.Render(grid.Rows(e.cfg.Placeholder), e.cfg.Table))
	for _, name := range grid.Truncated {
		fmt.Fprintf(&b, "\n(%s: showing the first %d samples)", name, e.sampler.MaxSamples)
	}
	p.Text = b.String()
	return p
}

// PreviewAll renders every formula of text with the directives of text.
func (e *Engine) PreviewAll(text string) []FormulaPreview {
	directives := e.Directives(text)
	spans := e.Locate(text)

	out := make([]FormulaPreview, 0, len(spans))
	for _, span := range spans {
		out = append(out, e.previewSpan(text, span, directives))
	}
	return out
}

func (e *Engine) previewSpan(text string, span types.FormulaSpan, directives types.Directives) FormulaPreview {
	expression := span.Text(text)
	return FormulaPreview{
		Span:       span,
		Location:   types.NewLocation(text, span),
		Expression: expression,
		Preview:    e.Preview(expression, directives),
	}
}

// Close closes the document store.
func (e *Engine) Close() error {
	return e.store.Close()
}
