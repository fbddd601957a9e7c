package expr

import (
	"math"
)

// Operand is a deferred operand. Forcing it evaluates the subexpression
// against the current binding of x and y.
type Operand func() (float64, error)

// BinaryFunc implements an infix operator over deferred operands.
type BinaryFunc func(a, b Operand) (float64, error)

// Func is a prefix function over deferred arguments.
type Func struct {
	// MinArgs and MaxArgs bound the number of arguments accepted.
	MinArgs, MaxArgs int
	Call             func(args []Operand) (float64, error)
}

// infixOps maps each operator to its implementation.
var infixOps = map[string]BinaryFunc{
	"+":  arith(func(a, b float64) float64 { return a + b }),
	"-":  arith(func(a, b float64) float64 { return a - b }),
	"*":  arith(func(a, b float64) float64 { return a * b }),
	"/":  arith(func(a, b float64) float64 { return a / b }),
	"//": arith(func(a, b float64) float64 { return math.Floor(a / b) }),
	// % truncates toward zero; the result takes the sign of the dividend.
	"%":  arith(math.Mod),
	"**": arith(math.Pow),
}

// funcs maps each function name to its implementation.
var funcs = map[string]Func{
	"math.log": {MinArgs: 1, MaxArgs: 2, Call: mathLog},
	"int":      {MinArgs: 1, MaxArgs: 1, Call: monadic(math.Floor)},
	"round":    {MinArgs: 1, MaxArgs: 2, Call: round},
}

// Functions returns the names of the built-in functions.
func Functions() []string {
	return []string{"int", "math.log", "round"}
}

// arith lifts a float operation to deferred operands, forcing the left
// operand before the right.
func arith(f func(a, b float64) float64) BinaryFunc {
	return func(a, b Operand) (float64, error) {
		l, err := a()
		if err != nil {
			return 0, err
		}
		r, err := b()
		if err != nil {
			return 0, err
		}
		return f(l, r), nil
	}
}

func monadic(f func(float64) float64) func([]Operand) (float64, error) {
	return func(args []Operand) (float64, error) {
		v, err := args[0]()
		if err != nil {
			return 0, err
		}
		return f(v), nil
	}
}

func force(args []Operand) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, arg := range args {
		v, err := arg()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// mathLog is the natural logarithm, or the logarithm in the given base.
func mathLog(args []Operand) (float64, error) {
	vals, err := force(args)
	if err != nil {
		return 0, err
	}
	if len(vals) == 1 {
		return math.Log(vals[0]), nil
	}
	return math.Log(vals[0]) / math.Log(vals[1]), nil
}

// round rounds to the nearest integer with ties toward positive infinity
// (round(-2.5) == -2), optionally to ndigits decimal places.
func round(args []Operand) (float64, error) {
	vals, err := force(args)
	if err != nil {
		return 0, err
	}
	if len(vals) == 1 {
		return roundHalfUp(vals[0]), nil
	}
	scale := math.Pow(10, math.Trunc(vals[1]))
	return roundHalfUp(vals[0]*scale) / scale, nil
}

// roundHalfUp is floor(v + 0.5) without the rounding error of the addition.
func roundHalfUp(v float64) float64 {
	r := math.Floor(v)
	if v-r >= 0.5 {
		r++
	}
	return r
}
