// Package types contains common result shapes used across the application
package types

// Count is one ranked frequency bucket
type Count struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// YearCount pairs a calendar year with a row count
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Matrix is a zero-filled count table. Cells[i][j] is the count for
// Rows[i] x Columns[j].
type Matrix struct {
	Rows    []string `json:"rows"`
	Columns []string `json:"columns"`
	Cells   [][]int  `json:"cells"`
}

// Get returns the cell for (row, col) and whether both keys exist.
func (m Matrix) Get(row, col string) (int, bool) {
	ri, ci := indexOf(m.Rows, row), indexOf(m.Columns, col)
	if ri < 0 || ci < 0 {
		return 0, false
	}
	return m.Cells[ri][ci], true
}

func indexOf(keys []string, k string) int {
	for i, key := range keys {
		if key == k {
			return i
		}
	}
	return -1
}

// ChartKind names how the rendering boundary should draw a result.
type ChartKind string

// Chart kinds understood by the dashboard UI.
const (
	ChartPie        ChartKind = "pie"
	ChartBar        ChartKind = "bar"
	ChartBarH       ChartKind = "barh"
	ChartLine       ChartKind = "line"
	ChartHeatmap    ChartKind = "heatmap"
	ChartGroupedBar ChartKind = "grouped_bar"
	ChartMultiLine  ChartKind = "multi_line"
)

// Chart describes a chart without drawing it.
type Chart struct {
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
}
