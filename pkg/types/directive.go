package types

import (
	"errors"
	"fmt"
)

// ErrZeroStep is returned by RangeDirective.Validate when Step is zero.
var ErrZeroStep = errors.New("range step must not be zero")

// RangeDirective binds a variable name to the integer sequence
// range(Start, End, Step). End is exclusive.
type RangeDirective struct {
	Variable string   `json:"variable" yaml:"variable,omitempty"`
	Start    int64    `json:"start" yaml:"start"`
	End      int64    `json:"end" yaml:"end"`
	Step     int64    `json:"step" yaml:"step"`
	Location Location `json:"location" yaml:"-"`
}

// Validate reports whether the directive can produce a finite sample
// sequence.
func (d RangeDirective) Validate() error {
	if d.Step == 0 {
		return fmt.Errorf("%s: %w", d.Variable, ErrZeroStep)
	}
	return nil
}

// String renders the directive in its source form.
func (d RangeDirective) String() string {
	if d.Step == 1 {
		return fmt.Sprintf("%s = range(%d, %d)", d.Variable, d.Start, d.End)
	}
	return fmt.Sprintf("%s = range(%d, %d, %d)", d.Variable, d.Start, d.End, d.Step)
}

// Directives maps variable names to their range directive. Names are matched
// verbatim, so "a[0]" and "a [0]" are different variables.
type Directives map[string]RangeDirective

// Clone returns a shallow copy of d. A nil map clones to an empty one.
func (d Directives) Clone() Directives {
	out := make(Directives, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
