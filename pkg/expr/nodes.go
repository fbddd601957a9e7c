package expr

import (
	"math"
	"strings"
)

// node is a node in the syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the operator symbol, function name or variable name.
	name  string
	value float64
	col   int

	left  *node
	right *node
	args  []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // value
	nodeVar  // x or y from the binding
	nodeNeg  // negate left
	nodePos  // left unchanged
	nodeOp   // infix name applied to left and right
	nodeCall // function name applied to args
)

// binding holds the values of x and y for one evaluation.
type binding struct {
	x, y float64
}

// thunk defers evaluation of n against b.
func (n *node) thunk(b *binding) Operand {
	return func() (float64, error) {
		return n.eval(b)
	}
}

func (n *node) eval(b *binding) (float64, error) {
	var v float64
	var err error
	switch n.kind {
	case nodeNum:
		return n.value, nil
	case nodeVar:
		if n.name == "y" {
			v = b.y
		} else {
			v = b.x
		}
	case nodeNeg:
		v, err = n.left.eval(b)
		v = -v
	case nodePos:
		v, err = n.left.eval(b)
	case nodeOp:
		v, err = infixOps[n.name](n.left.thunk(b), n.right.thunk(b))
	case nodeCall:
		args := make([]Operand, len(n.args))
		for i, arg := range n.args {
			args[i] = arg.thunk(b)
		}
		v, err = funcs[n.name].Call(args)
	default:
		panic("expr: invalid node kind")
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &EvalError{Col: n.col, Op: n.name, Err: ErrNonFinite}
	}
	return v, nil
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n fully parenthesized.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(FormatNumber(n.value))
	case nodeVar:
		b.WriteString(n.name)
	case nodeNeg, nodePos:
		b.WriteByte('(')
		b.WriteString(n.name)
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeOp:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(" " + n.name + " ")
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, arg := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.fmt(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString("$")
	}
}
