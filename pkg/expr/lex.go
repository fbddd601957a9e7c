package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal number, e.g. 12, 1.5, .5 or 1e3.
	tokenNum
	// tokenIdent is a variable or function name. Function names may contain
	// dots, e.g. math.log.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
	// tokenSep is the argument separator ,.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "None"
	}
}

type token struct {
	text string
	kind tokenKind
	// col is the 1-based rune column of the first rune of the token.
	col int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.col)
}

// Operators lists the operator symbols. Two-rune operators come first so
// that the longest match wins.
var Operators = []string{"**", "//", "+", "-", "*", "/", "%"}

// lex splits src into tokens, ending with a tokenEOF token.
func lex(src string) ([]token, error) {
	var tokens []token
	col := 1
	i := 0
	for i < len(src) {
		r, sz := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && sz == 1 {
			return nil, &LexError{Text: src[i : i+1], Col: col}
		}
		switch {
		case unicode.IsSpace(r):
			i += sz
			col++
		case isDigit(r), r == '.':
			n, err := scanNum(src[i:])
			if err != nil {
				err.Col = col
				return nil, err
			}
			tokens = append(tokens, token{text: src[i : i+n], kind: tokenNum, col: col})
			i += n
			col += n
		case r == '_', unicode.IsLetter(r):
			n, runes := scanIdent(src[i:])
			tokens = append(tokens, token{text: src[i : i+n], kind: tokenIdent, col: col})
			i += n
			col += runes
		case r == '(':
			tokens = append(tokens, token{text: "(", kind: tokenOpen, col: col})
			i++
			col++
		case r == ')':
			tokens = append(tokens, token{text: ")", kind: tokenClose, col: col})
			i++
			col++
		case r == ',':
			tokens = append(tokens, token{text: ",", kind: tokenSep, col: col})
			i++
			col++
		default:
			op := matchOperator(src[i:])
			if op == "" {
				return nil, &LexError{Text: string(r), Col: col}
			}
			tokens = append(tokens, token{text: op, kind: tokenOp, col: col})
			i += len(op)
			col += len(op)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, col: col})
	return tokens, nil
}

func matchOperator(s string) string {
	for _, op := range Operators {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

// scanNum returns the byte length of the number at the start of s. Numbers
// are ASCII, so the length is also the rune count.
func scanNum(s string) (int, *LexError) {
	i := 0
	var dig bool
	for i < len(s) && isDigit(rune(s[i])) {
		i++
		dig = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
			dig = true
		}
	}
	if !dig {
		return 0, &LexError{Text: s[:i], Kind: "number"}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(rune(s[k])) {
			k++
		}
		if k == j {
			return 0, &LexError{Text: s[:j], Kind: "number"}
		}
		i = k
	}
	if i < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[i:]); r == '_' || r == '.' || unicode.IsLetter(r) {
			return 0, &LexError{Text: s[:i] + string(r), Kind: "number"}
		}
	}
	return i, nil
}

// scanIdent returns the byte length and rune count of the identifier at the
// start of s.
func scanIdent(s string) (int, int) {
	runes := 0
	for i, r := range s {
		if r != '_' && r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return i, runes
		}
		runes++
	}
	return len(s), runes
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
