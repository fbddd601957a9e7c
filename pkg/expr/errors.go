package expr

import (
	"errors"
	"strconv"
)

var (
	// ErrNonFinite is wrapped by an EvalError when an operation yields NaN or
	// an infinity, e.g. division by zero or the logarithm of a negative number.
	ErrNonFinite = errors.New("non-finite result")
	// ErrEmpty is returned when parsing an expression with no tokens.
	ErrEmpty = errors.New("empty expression")
)

// InputError is an error with position information. Every error resulting
// from invalid input or failed evaluation implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the error.
	Pos() int
}

// LexError indicates an invalid token.
type LexError struct {
	// Text is the token being scanned when the invalid rune was encountered,
	// including that rune.
	Text string
	// Kind is the type of token being scanned, "number" or empty if no kind
	// had been decided.
	Kind string
	// Col is the column of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "invalid "+err.Kind+" token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseError indicates a token sequence that does not form an expression.
type ParseError struct {
	// Col is the position of the offending token.
	Col int
	// Token is the offending token text, empty at the end of input.
	Token string
	// Msg describes what was wrong.
	Msg string
}

func (err *ParseError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, err.Msg)
	}
	return errpos(err.Col, err.Msg+" "+strconv.Quote(err.Token))
}

func (err *ParseError) Pos() int {
	return err.Col
}

// EvalError indicates an operation that failed while evaluating.
type EvalError struct {
	// Col is the position of the operator or function.
	Col int
	// Op is the operator symbol or function name.
	Op string
	// Err is the cause, typically ErrNonFinite.
	Err error
}

func (err *EvalError) Error() string {
	return errpos(err.Col, "evaluating "+err.Op+": "+err.Err.Error())
}

func (err *EvalError) Pos() int {
	return err.Col
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// errpos prefixes msg with a column.
func errpos(col int, msg string) string {
	return strconv.Itoa(col) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*EvalError)(nil)
)
