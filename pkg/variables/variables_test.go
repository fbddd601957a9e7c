package variables

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"two variables in order", "a + b*2", []string{"a", "b"}},
		{"reserved and namespace excluded", "math.log(a) + int(b)", []string{"a", "b"}},
		{"round excluded", "round(a) + a", []string{"a"}},
		{"namespace constant excluded", "math.pi * r ** 2", []string{"r"}},
		{"path forms", "a.b + a[0] + a[0].c + a[1][2] + a", []string{"a.b", "a[0]", "a[0].c", "a[1][2]", "a"}},
		{"duplicates collapsed", "n * n + n", []string{"n"}},
		{"constant expression", "2 + 3 * 4", []string{}},
		{"more than two returned", "a + b + c", []string{"a", "b", "c"}},
		{"underscore and digits", "_tmp1 + rate_2", []string{"_tmp1", "rate_2"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.expr))
		})
	}
}

func TestExtractor_CustomReserved(t *testing.T) {
	e := NewExtractor([]string{"abs"})

	assert.Equal(t, []string{"v", "int"}, e.Extract("abs(v) + int(v)"))
}

func TestExtractor_Tokens(t *testing.T) {
	e := NewExtractor(DefaultReserved)

	tokens := e.Tokens("é*b + int(c)")

	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Text: "b", Start: 3, End: 4}, tokens[0])
	assert.Equal(t, "int", tokens[1].Text)
	assert.Equal(t, Token{Text: "c", Start: 11, End: 12}, tokens[2])
}

func TestExtractor_TokensStopAtNonASCII(t *testing.T) {
	e := NewExtractor(DefaultReserved)

	tokens := e.Tokens("aé + b")

	require.Len(t, tokens, 2)
	assert.Equal(t, Token{Text: "a", Start: 0, End: 1}, tokens[0])
	assert.Equal(t, Token{Text: "b", Start: 6, End: 7}, tokens[1])
	assert.Equal(t, []string{"a", "b"}, e.Extract("aé + b"))
}

func TestExtractor_IsVariable(t *testing.T) {
	e := NewExtractor(DefaultReserved)

	assert.True(t, e.IsVariable("a"))
	assert.True(t, e.IsVariable("mathematics"))
	assert.False(t, e.IsVariable("math.log"))
	assert.False(t, e.IsVariable("int"))
	assert.False(t, e.IsVariable("round"))
	assert.False(t, e.IsVariable("123"))
	assert.False(t, e.IsVariable(""))
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		vars    []string
		token   string
		literal string
	}{
		{"no variables", "1 + 2", nil, "1 + 2", "1 + 2"},
		{"one variable no y", "n // 2", []string{"n"}, "x // 2", "x // 2"},
		{"two variables", "a + b*2", []string{"a", "b"}, "x + y*2", "x + y*2"},
		{"variable inside reserved name", "int(n) + n", []string{"n"}, "int(x) + x", "ixt(x) + x"},
		{"prefix of another name", "a + ab", []string{"a", "ab"}, "x + y", "x + xb"},
		{"canonical names swapped", "y - x", []string{"y", "x"}, "x - y", "y - y"},
		{"regex metacharacters", "a[0] + a[0].b", []string{"a[0]", "a[0].b"}, "x + y", "x + x.b"},
		{"namespace untouched in token mode", "math.log(a)", []string{"a"}, "math.log(x)", "mxth.log(x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rewrite(tt.expr, tt.vars, ModeToken)
			require.NoError(t, err)
			assert.Equal(t, tt.token, got, "token mode")

			got, err = Rewrite(tt.expr, tt.vars, ModeLiteral)
			require.NoError(t, err)
			assert.Equal(t, tt.literal, got, "literal mode")
		})
	}
}

func TestRewrite_TooManyVariables(t *testing.T) {
	_, err := Rewrite("a + b + c", []string{"a", "b", "c"}, ModeToken)
	assert.True(t, errors.Is(err, ErrTooManyVariables))
}

func TestRewrite_UnknownMode(t *testing.T) {
	_, err := Rewrite("a", []string{"a"}, Mode(7))
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeToken, m)

	m, err = ParseMode(" Literal ")
	require.NoError(t, err)
	assert.Equal(t, ModeLiteral, m)
	assert.Equal(t, "literal", m.String())

	_, err = ParseMode("ast")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
