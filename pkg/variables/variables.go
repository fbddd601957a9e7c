// Package variables extracts the free variables of a formula and rewrites
// them to the canonical names x and y.
package variables

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/formulaview/pkg/types"
)

// Canonical names given to the first and second variable.
const (
	CanonicalX = "x"
	CanonicalY = "y"
)

// ReservedNamespace prefixes dotted tokens that are never variables.
const ReservedNamespace = "math."

// DefaultReserved are the evaluator function names that are never variables.
var DefaultReserved = []string{"int", "round"}

// tokenPattern matches a, a.b, a[0] and a[0].b.
const tokenPattern = `[a-zA-Z_]\w*(?:\[\d+\])*(?:\.\w+)?`

// Token is one variable-like token of an expression. Start and End are byte
// offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

// Extractor finds variable tokens in expressions.
type Extractor struct {
	re       *regexp2.Regexp
	reserved map[string]bool
}

// NewExtractor returns an extractor that ignores the given reserved names in
// addition to anything under ReservedNamespace.
func NewExtractor(reserved []string) *Extractor {
	re := regexp2.MustCompile(tokenPattern, regexp2.ECMAScript)
	re.MatchTimeout = 5 * time.Second

	r := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		r[name] = true
	}
	return &Extractor{re: re, reserved: r}
}

var defaultExtractor = NewExtractor(DefaultReserved)

// Extract returns the distinct variables of expr in first-occurrence order
// using the default reserved names.
func Extract(expr string) []string {
	return defaultExtractor.Extract(expr)
}

// Rewrite renames vars in expr to x and y using the default extractor.
func Rewrite(expr string, vars []string, mode Mode) (string, error) {
	return defaultExtractor.Rewrite(expr, vars, mode)
}

// Tokens returns every identifier-like token of expr, in order, including
// reserved names.
func (e *Extractor) Tokens(expr string) []Token {
	var tokens []Token
	offsets := types.RuneByteOffsets(expr)

	match, err := e.re.FindStringMatch(expr)
	for err == nil && match != nil {
		start := types.ByteOffset(offsets, match.Index)
		end := types.ByteOffset(offsets, match.Index+match.Length)
		tokens = append(tokens, Token{Text: expr[start:end], Start: start, End: end})
		match, err = e.re.FindNextMatch(match)
	}
	return tokens
}

// IsVariable reports whether a token names a free variable.
func (e *Extractor) IsVariable(token string) bool {
	if strings.HasPrefix(token, ReservedNamespace) || e.reserved[token] {
		return false
	}
	return !isNumeric(token)
}

// Extract returns the distinct variables of expr in first-occurrence order.
// The result may hold more than two names; callers enforce any limit.
func (e *Extractor) Extract(expr string) []string {
	vars := []string{}
	seen := make(map[string]bool)
	for _, tok := range e.Tokens(expr) {
		if seen[tok.Text] || !e.IsVariable(tok.Text) {
			continue
		}
		seen[tok.Text] = true
		vars = append(vars, tok.Text)
	}
	return vars
}

// Rewrite renames vars[0] to x and vars[1] to y. At most two variables are
// accepted.
func (e *Extractor) Rewrite(expr string, vars []string, mode Mode) (string, error) {
	if len(vars) > 2 {
		return "", fmt.Errorf("rewrite %d variables: %w", len(vars), ErrTooManyVariables)
	}
	switch mode {
	case ModeToken:
		return e.rewriteTokens(expr, vars), nil
	case ModeLiteral:
		return rewriteLiteral(expr, vars)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

// rewriteTokens substitutes whole tokens only, all at once.
func (e *Extractor) rewriteTokens(expr string, vars []string) string {
	if len(vars) == 0 {
		return expr
	}
	names := canonicalNames(vars)

	var b strings.Builder
	last := 0
	for _, tok := range e.Tokens(expr) {
		name, ok := names[tok.Text]
		if !ok {
			continue
		}
		b.WriteString(expr[last:tok.Start])
		b.WriteString(name)
		last = tok.End
	}
	b.WriteString(expr[last:])
	return b.String()
}

// rewriteLiteral replaces every literal occurrence of each variable in turn,
// first variable first. A variable that is a substring of other text is
// replaced there too.
func rewriteLiteral(expr string, vars []string) (string, error) {
	canon := []string{CanonicalX, CanonicalY}
	for i, v := range vars {
		re, err := regexp2.Compile(regexp2.Escape(v), regexp2.None)
		if err != nil {
			return "", fmt.Errorf("compiling pattern for %q: %w", v, err)
		}
		expr, err = re.Replace(expr, canon[i], -1, -1)
		if err != nil {
			return "", fmt.Errorf("replacing %q: %w", v, err)
		}
	}
	return expr, nil
}

func canonicalNames(vars []string) map[string]string {
	names := make(map[string]string, len(vars))
	canon := []string{CanonicalX, CanonicalY}
	for i, v := range vars {
		if i >= len(canon) {
			break
		}
		names[v] = canon[i]
	}
	return names
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
