package expr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/formulaview/pkg/expr"
)

func TestParse_String(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"2**3**2", "((2 ** 3) ** 2)"},
		{"-2**2", "(-(2 ** 2))"},
		{"x // 2 % y", "((x // 2) % y)"},
		{"int(x) + round(y, 1)", "(int(x) + round(y, 1))"},
		{"math.log( x , 2 )", "math.log(x, 2)"},
		{"((x))", "x"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := expr.Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
			assert.Equal(t, tt.src, e.Source())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		col  int
	}{
		{"unknown identifier", "x + z", 5},
		{"bare function", "int + 1", 1},
		{"too many arguments", "int(x, 2)", 1},
		{"too few arguments", "round()", 7},
		{"unclosed group", "(x + 1", 1},
		{"unclosed call", "round(x, 1", 1},
		{"stray close", "x)", 2},
		{"adjacent terms", "x y", 3},
		{"trailing operator", "x +", 4},
		{"leading operator", "* x", 1},
		{"empty group", "()", 2},
		{"separator outside call", "x, y", 2},
		{"number out of range", "1e400", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.src)
			require.Error(t, err)

			var inputErr expr.InputError
			require.True(t, errors.As(err, &inputErr), "error %v has no position", err)
			assert.Equal(t, tt.col, inputErr.Pos())

			var parseErr *expr.ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParse_LexErrorPassesThrough(t *testing.T) {
	_, err := expr.Parse("x # y")

	var lexErr *expr.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 3, lexErr.Pos())
	assert.Contains(t, err.Error(), `"#"`)
}

func TestParse_Empty(t *testing.T) {
	for _, src := range []string{"", "   "} {
		_, err := expr.Parse(src)
		assert.True(t, errors.Is(err, expr.ErrEmpty), "src %q", src)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { expr.MustParse("x +") })
	assert.NotPanics(t, func() { expr.MustParse("x + 1") })
}

func TestFunctions(t *testing.T) {
	assert.Equal(t, []string{"int", "math.log", "round"}, expr.Functions())
}
