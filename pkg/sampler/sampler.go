// Package sampler evaluates an expression over the grid of sample values of
// its variables.
package sampler

import (
	"fmt"

	"github.com/praetorian-inc/formulaview/pkg/expr"
	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/praetorian-inc/formulaview/pkg/variables"
)

// DefaultMaxSamples caps the length of one sample axis.
const DefaultMaxSamples = 100

// DefaultRange is used for variables without a directive: 0..10 inclusive.
var DefaultRange = types.RangeDirective{Start: 0, End: 11, Step: 1}

// Evaluator evaluates an expression with x and y bound.
type Evaluator interface {
	Eval(x, y float64) (float64, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(x, y float64) (float64, error)

func (f EvaluatorFunc) Eval(x, y float64) (float64, error) {
	return f(x, y)
}

var _ Evaluator = (*expr.Expr)(nil)

// Sampler resolves sample axes and evaluates grids.
type Sampler struct {
	// Default is the range used for variables without a directive.
	Default types.RangeDirective
	// MaxSamples caps each axis. Zero or less means DefaultMaxSamples.
	MaxSamples int
}

// New returns a Sampler with the default range and cap.
func New() *Sampler {
	return &Sampler{Default: DefaultRange, MaxSamples: DefaultMaxSamples}
}

func (s *Sampler) maxSamples() int {
	if s.MaxSamples <= 0 {
		return DefaultMaxSamples
	}
	return s.MaxSamples
}

// Axis returns the sample values for the variable name: the directive for
// name if there is one, otherwise the default range. truncated reports
// whether the sequence was cut at MaxSamples.
func (s *Sampler) Axis(name string, directives types.Directives) (values []int64, truncated bool) {
	d, ok := directives[name]
	if !ok {
		d = s.Default
	}
	return Sequence(d, s.maxSamples())
}

// Sample evaluates e over the grid of vars. vars are the original variable
// names in first-occurrence order; the first is bound to x and the second to
// y. More than two variables returns variables.ErrTooManyVariables without
// evaluating anything. A failed cell keeps its error and sampling continues.
func (s *Sampler) Sample(e Evaluator, vars []string, directives types.Directives) (*Grid, error) {
	g := &Grid{}
	switch len(vars) {
	case 0:
		g.XValues = []int64{0}
		g.YValues = []int64{0}
	case 1:
		g.Label = vars[0]
		g.XValues = s.axis(g, vars[0], directives)
		g.YValues = []int64{0}
	case 2:
		g.Label = vars[0] + "/" + vars[1]
		g.XValues = s.axis(g, vars[0], directives)
		g.YValues = s.axis(g, vars[1], directives)
	default:
		return nil, fmt.Errorf("sampling %d variables: %w", len(vars), variables.ErrTooManyVariables)
	}

	g.Cells = make([][]Cell, len(g.XValues))
	for i, x := range g.XValues {
		row := make([]Cell, len(g.YValues))
		for j, y := range g.YValues {
			v, err := e.Eval(float64(x), float64(y))
			row[j] = Cell{Value: v, Err: err}
		}
		g.Cells[i] = row
	}
	return g, nil
}

func (s *Sampler) axis(g *Grid, name string, directives types.Directives) []int64 {
	values, truncated := s.Axis(name, directives)
	if truncated {
		g.Truncated = append(g.Truncated, name)
	}
	return values
}

// Sequence returns range(d.Start, d.End, d.Step): values from Start moving by
// Step while strictly before End. A zero step or a step pointing away from
// End yields no values. At most limit values are returned; truncated reports
// whether more were available.
func Sequence(d types.RangeDirective, limit int) (values []int64, truncated bool) {
	n := count(d.Start, d.End, d.Step)
	if limit > 0 && n > uint64(limit) {
		n = uint64(limit)
		truncated = true
	}
	values = make([]int64, 0, n)
	v := d.Start
	for i := uint64(0); i < n; i++ {
		values = append(values, v)
		v += d.Step
	}
	return values, truncated
}

// count returns the length of range(start, end, step) without overflowing.
func count(start, end, step int64) uint64 {
	switch {
	case step > 0 && start < end:
		span := uint64(end) - uint64(start)
		return (span-1)/uint64(step) + 1
	case step < 0 && start > end:
		span := uint64(start) - uint64(end)
		mag := uint64(-(step + 1)) + 1
		return (span-1)/mag + 1
	default:
		return 0
	}
}
