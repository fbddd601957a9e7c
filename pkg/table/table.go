// Package table renders a string matrix as a bordered monospace table.
package table

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options controls rendering.
type Options struct {
	// Padding is the number of spaces on each side of a cell.
	Padding int `yaml:"padding" json:"padding"`
	// Header draws a rule under the first row.
	Header bool `yaml:"header" json:"header"`
	// AlignNumbers right-aligns body cells that parse as numbers.
	AlignNumbers bool `yaml:"align_numbers" json:"align_numbers"`
}

// DefaultOptions returns padding 1 with a header rule and left alignment.
func DefaultOptions() Options {
	return Options{Padding: 1, Header: true}
}

// Render draws rows as a table. Column widths are the widest display width
// in each column; short rows are filled with empty cells. Lines are joined by
// "\n" with no trailing newline. An empty matrix renders as "".
func Render(rows [][]string, opts Options) string {
	if len(rows) == 0 {
		return ""
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	widths := columnWidths(rows)
	if len(widths) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, rule(widths, opts.Padding, '-'))
	for i, row := range rows {
		header := opts.Header && i == 0
		lines = append(lines, line(row, widths, opts, header))
		if header && len(rows) > 1 {
			lines = append(lines, rule(widths, opts.Padding, '='))
		}
	}
	lines = append(lines, rule(widths, opts.Padding, '-'))
	return strings.Join(lines, "\n")
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}

func rule(widths []int, padding int, fill byte) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat(string(fill), w+2*padding))
		b.WriteByte('+')
	}
	return b.String()
}

func line(row []string, widths []int, opts Options, header bool) string {
	pad := strings.Repeat(" ", opts.Padding)

	var b strings.Builder
	b.WriteByte('|')
	for j, w := range widths {
		var cell string
		if j < len(row) {
			cell = row[j]
		}
		fill := strings.Repeat(" ", w-runewidth.StringWidth(cell))

		b.WriteString(pad)
		if opts.AlignNumbers && !header && isNumber(cell) {
			b.WriteString(fill)
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			b.WriteString(fill)
		}
		b.WriteString(pad)
		b.WriteByte('|')
	}
	return b.String()
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
