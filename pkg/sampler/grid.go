package sampler

import (
	"strconv"

	"github.com/praetorian-inc/formulaview/pkg/expr"
)

// DefaultPlaceholder is shown for cells whose evaluation failed.
const DefaultPlaceholder = "-"

// Cell is one evaluated grid cell.
type Cell struct {
	Value float64
	Err   error
}

// Format returns the display text of c, or placeholder if it failed.
func (c Cell) Format(placeholder string) string {
	if c.Err != nil {
		return placeholder
	}
	return expr.FormatNumber(c.Value)
}

// Grid is an evaluated sample grid. Cells is indexed [x][y].
type Grid struct {
	// Label is "a/b" for two variables, "a" for one and empty for none.
	Label   string
	XValues []int64
	YValues []int64
	Cells   [][]Cell
	// Truncated lists the variables whose axis was cut at the sample cap.
	Truncated []string
}

// Rows returns the grid as a string matrix: row 0 is the label followed by
// the y values, every other row is an x value followed by its cells.
func (g *Grid) Rows(placeholder string) [][]string {
	rows := make([][]string, 0, len(g.XValues)+1)

	header := make([]string, 0, len(g.YValues)+1)
	header = append(header, g.Label)
	for _, y := range g.YValues {
		header = append(header, strconv.FormatInt(y, 10))
	}
	rows = append(rows, header)

	for i, x := range g.XValues {
		row := make([]string, 0, len(g.YValues)+1)
		row = append(row, strconv.FormatInt(x, 10))
		for _, c := range g.Cells[i] {
			row = append(row, c.Format(placeholder))
		}
		rows = append(rows, row)
	}
	return rows
}

// Failed returns the number of cells whose evaluation failed.
func (g *Grid) Failed() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Err != nil {
				n++
			}
		}
	}
	return n
}
