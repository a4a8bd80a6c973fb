package domain

import "gonum.org/v1/gonum/floats"

// Contingency table of two categorical columns.
// Cells[i][j] holds the count (or joint probability when Normalized)
// of RowLabels[i] co-occurring with ColLabels[j].
type CrossTab struct {
	RowName    string
	ColName    string
	RowLabels  []string
	ColLabels  []string
	Cells      [][]float64
	Total      int
	Normalized bool
}

// Cell returns the value at (row, col) and whether both labels exist.
func (c *CrossTab) Cell(row, col string) (float64, bool) {
	i := indexOf(c.RowLabels, row)
	j := indexOf(c.ColLabels, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.Cells[i][j], true
}

// Column returns row label -> value for one column label.
// The result is empty if the column does not exist.
func (c *CrossTab) Column(col string) map[string]float64 {
	out := make(map[string]float64, len(c.RowLabels))
	j := indexOf(c.ColLabels, col)
	if j < 0 {
		return out
	}
	for i, r := range c.RowLabels {
		out[r] = c.Cells[i][j]
	}
	return out
}

// Sum adds every cell.
func (c *CrossTab) Sum() float64 {
	var s float64
	for _, row := range c.Cells {
		s += floats.Sum(row)
	}
	return s
}

func indexOf(labels []string, v string) int {
	for i, l := range labels {
		if l == v {
			return i
		}
	}
	return -1
}
