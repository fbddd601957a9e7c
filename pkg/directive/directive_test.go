package directive

import (
	"errors"
	"testing"

	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(DefaultPrefixes)
	require.NoError(t, err)
	return p
}

func TestParse_WithStep(t *testing.T) {
	p := newParser(t)

	dirs := p.Parse("# n = range(1, 10, 2)")

	require.Len(t, dirs, 1)
	d := dirs["n"]
	assert.Equal(t, "n", d.Variable)
	assert.Equal(t, int64(1), d.Start)
	assert.Equal(t, int64(10), d.End)
	assert.Equal(t, int64(2), d.Step)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string][3]int64
	}{
		{"default step", "# a = range(0, 5)", map[string][3]int64{"a": {0, 5, 1}}},
		{"negative values", "# t = range(-3, -10, -2)", map[string][3]int64{"t": {-3, -10, -2}}},
		{"no spaces", "#k=range(2,4)", map[string][3]int64{"k": {2, 4, 1}}},
		{"slash comment", "// w = range( 1 , 3 )", map[string][3]int64{"w": {1, 3, 1}}},
		{"indented", "    # i = range(0, 2)", map[string][3]int64{"i": {0, 2, 1}}},
		{"dotted and indexed name", "# cfg.items[0].size = range(1, 3)", map[string][3]int64{"cfg.items[0].size": {1, 3, 1}}},
		{"not a comment", "n = range(1, 10)", map[string][3]int64{}},
		{"trailing comment not a directive line", "x = 1  # n = range(1, 10)", map[string][3]int64{}},
		{"single argument not a directive", "# n = range(10)", map[string][3]int64{}},
		{"too many arguments", "# n = range(1, 2, 3, 4)", map[string][3]int64{}},
		{
			"multiple directives",
			"# a = range(0, 3)\nvalue = formula(a * b)\n# b = range(1, 9, 4)\n",
			map[string][3]int64{"a": {0, 3, 1}, "b": {1, 9, 4}},
		},
		{
			"last duplicate wins",
			"# n = range(0, 3)\n# n = range(5, 7)",
			map[string][3]int64{"n": {5, 7, 1}},
		},
		{"crlf line endings", "# a = range(0, 2)\r\n# b = range(3, 4)\r\n", map[string][3]int64{"a": {0, 2, 1}, "b": {3, 4, 1}}},
		{"zero step still parsed", "# z = range(0, 4, 0)", map[string][3]int64{"z": {0, 4, 0}}},
	}

	p := newParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := p.Parse(tt.text)
			got := make(map[string][3]int64, len(dirs))
			for name, d := range dirs {
				assert.Equal(t, name, d.Variable)
				got[name] = [3]int64{d.Start, d.End, d.Step}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_MalformedSkipped(t *testing.T) {
	p := newParser(t)
	text := "# a = range(0, 3)\n# b = range(1.5, 4)\n# c = range(x, 2)\n# d = range(0, 99999999999999999999)\n# e = range(2, 6, 2)"

	result := p.ParseDetailed(text)

	assert.Len(t, result.Directives, 2)
	assert.Contains(t, result.Directives, "a")
	assert.Contains(t, result.Directives, "e")

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, "b", result.Skipped[0].Variable)
	assert.Equal(t, "c", result.Skipped[1].Variable)
	assert.Equal(t, "d", result.Skipped[2].Variable)
	for _, s := range result.Skipped {
		assert.True(t, errors.Is(s.Err, ErrMalformedNumber))
	}
	assert.Equal(t, 2, result.Skipped[0].Location.Source.Start.Line)
	assert.Equal(t, "b = range(1.5, 4)", result.Skipped[0].Text)
}

func TestParse_MalformedDuplicateKeepsEarlier(t *testing.T) {
	p := newParser(t)

	dirs := p.Parse("# n = range(0, 3)\n# n = range(zero, 3)")

	require.Contains(t, dirs, "n")
	assert.Equal(t, int64(0), dirs["n"].Start)
}

func TestParse_Location(t *testing.T) {
	p := newParser(t)
	text := "import math\n# n = range(1, 10, 2)\n"

	d := p.Parse(text)["n"]

	assert.Equal(t, types.SourcePoint{Line: 2, Column: 3}, d.Location.Source.Start)
	assert.Equal(t, "n = range(1, 10, 2)", d.Location.Offset.Text(text))
}

func TestParse_MultibyteLocation(t *testing.T) {
	p := newParser(t)
	text := "# é → α\n# a = range(0, 2)"

	d := p.Parse(text)["a"]

	assert.Equal(t, "a = range(0, 2)", d.Location.Offset.Text(text))
	assert.Equal(t, 2, d.Location.Source.Start.Line)
}

func TestParse_NoKeyword(t *testing.T) {
	p := newParser(t)

	dirs := p.Parse("# nothing to see here\nformula(x)")

	assert.NotNil(t, dirs)
	assert.Empty(t, dirs)
}

func TestNewParser_CustomPrefix(t *testing.T) {
	p, err := NewParser([]string{"--"})
	require.NoError(t, err)

	dirs := p.Parse("-- n = range(0, 2)\n# m = range(0, 2)")

	assert.Contains(t, dirs, "n")
	assert.NotContains(t, dirs, "m")
}

func TestNewParser_NoPrefixes(t *testing.T) {
	_, err := NewParser(nil)
	assert.True(t, errors.Is(err, ErrNoPrefixes))

	_, err = NewParser([]string{"  "})
	assert.True(t, errors.Is(err, ErrNoPrefixes))
}
