// Package expr parses and evaluates the small arithmetic language used in
// formula previews.
//
// An expression is parsed once into a tree whose operators receive their
// operands as deferred thunks. The tree reads the bound identifiers x and y
// when a thunk is forced, so one parsed Expr is evaluated for every cell of a
// sample grid without reparsing.
//
// Operators, from tightest to loosest binding:
//
//	**            exponentiation
//	unary + -     sign
//	* / // %      multiplication, real division, floor division, modulo
//	+ -           addition, subtraction
//
// Every tier is left-associative, so 2**3**2 is 64. The functions are
// math.log(a[, base]), int(a) which floors, and round(a[, ndigits]).
package expr
