package expr

import (
	"math"
	"strconv"
)

// Expr = Sum
// Sum = Product { ('+' | '-') Product }
// Product = Unary { ('*' | '/' | '//' | '%') Unary }
// Unary = ('+' | '-') Unary | Power
// Power = Primary { '**' Signed }
// Signed = ('+' | '-') Signed | Primary
// Primary = num | 'x' | 'y' | funcname '(' Expr { ',' Expr } ')' | '(' Expr ')'

// Expr is a parsed expression. It is immutable and safe for concurrent use.
type Expr struct {
	n   *node
	src string
}

// Parse parses src. Errors implement InputError, except for ErrEmpty.
func Parse(src string) (*Expr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	if tokens[0].kind == tokenEOF {
		return nil, ErrEmpty
	}
	p := parser{tokens: tokens}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, p.unexpected(tok)
	}
	return &Expr{n: n, src: src}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic("expr: " + err.Error())
	}
	return e
}

// Eval evaluates the expression with x and y bound to the given values.
func (e *Expr) Eval(x, y float64) (float64, error) {
	return e.n.eval(&binding{x: x, y: y})
}

// String returns the expression fully parenthesized.
func (e *Expr) String() string {
	return e.n.String()
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(ops ...string) bool {
	tok := p.peek()
	if tok.kind != tokenOp {
		return false
	}
	for _, op := range ops {
		if tok.text == op {
			return true
		}
	}
	return false
}

func (p *parser) unexpected(tok token) error {
	if tok.kind == tokenEOF {
		return &ParseError{Col: tok.col, Msg: "unexpected end of expression"}
	}
	return &ParseError{Col: tok.col, Token: tok.text, Msg: "unexpected token"}
}

// binary parses a left-associative chain of operand separated by ops.
func (p *parser) binary(operand func() (*node, error), ops ...string) (*node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.isOp(ops...) {
		op := p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeOp, name: op.text, col: op.col, left: left, right: right}
	}
	return left, nil
}

func (p *parser) sum() (*node, error) {
	return p.binary(p.product, "+", "-")
}

func (p *parser) product() (*node, error) {
	return p.binary(p.unary, "*", "/", "//", "%")
}

func (p *parser) unary() (*node, error) {
	return p.sign(p.power)
}

func (p *parser) power() (*node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.isOp("**") {
		op := p.next()
		right, err := p.sign(p.primary)
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeOp, name: op.text, col: op.col, left: left, right: right}
	}
	return left, nil
}

// sign parses any number of prefix signs applied to operand.
func (p *parser) sign(operand func() (*node, error)) (*node, error) {
	if !p.isOp("+", "-") {
		return operand()
	}
	op := p.next()
	inner, err := p.sign(operand)
	if err != nil {
		return nil, err
	}
	kind := nodeNeg
	if op.text == "+" {
		kind = nodePos
	}
	return &node{kind: kind, name: op.text, col: op.col, left: inner}, nil
}

func (p *parser) primary() (*node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, &ParseError{Col: tok.col, Token: tok.text, Msg: "number out of range"}
		}
		return &node{kind: nodeNum, name: tok.text, value: v, col: tok.col}, nil
	case tokenIdent:
		if tok.text == "x" || tok.text == "y" {
			return &node{kind: nodeVar, name: tok.text, col: tok.col}, nil
		}
		fn, ok := funcs[tok.text]
		if !ok {
			return nil, &ParseError{Col: tok.col, Token: tok.text, Msg: "unknown identifier"}
		}
		return p.call(tok, fn)
	case tokenOpen:
		n, err := p.sum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenClose {
			if closing.kind == tokenEOF {
				return nil, &ParseError{Col: tok.col, Token: "(", Msg: "unclosed group"}
			}
			return nil, p.unexpected(closing)
		}
		return n, nil
	default:
		return nil, p.unexpected(tok)
	}
}

// call parses the argument list of a function call.
func (p *parser) call(name token, fn Func) (*node, error) {
	if open := p.next(); open.kind != tokenOpen {
		return nil, &ParseError{Col: name.col, Token: name.text, Msg: "missing argument list for"}
	}
	var args []*node
	for {
		arg, err := p.sum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok := p.next()
		if tok.kind == tokenClose {
			break
		}
		if tok.kind == tokenEOF {
			return nil, &ParseError{Col: name.col, Token: name.text, Msg: "unclosed call to"}
		}
		if tok.kind != tokenSep {
			return nil, p.unexpected(tok)
		}
	}
	if len(args) < fn.MinArgs || len(args) > fn.MaxArgs {
		return nil, &ParseError{
			Col:   name.col,
			Token: name.text,
			Msg:   "wrong number of arguments (" + strconv.Itoa(len(args)) + ") for",
		}
	}
	return &node{kind: nodeCall, name: name.text, col: name.col, args: args}, nil
}
