package tally

import (
	"cmp"
	"slices"

	"github.com/okian/flixdash/internal/domain/types"
)

// Pair is one (row, column) observation.
type Pair[R, C cmp.Ordered] struct {
	Row R
	Col C
}

// Grid is a zero-filled count matrix over ordered row and column keys.
type Grid[R, C cmp.Ordered] struct {
	Rows  []R
	Cols  []C
	Cells [][]int
}

// CrossTab counts pairs into a Grid whose rows and columns are the distinct
// keys in ascending order. Absent combinations are 0.
func CrossTab[R, C cmp.Ordered](pairs []Pair[R, C]) Grid[R, C] {
	rowSet := make(map[R]struct{})
	colSet := make(map[C]struct{})
	for _, p := range pairs {
		rowSet[p.Row] = struct{}{}
		colSet[p.Col] = struct{}{}
	}
	g := Grid[R, C]{Rows: sortedKeys(rowSet), Cols: sortedKeys(colSet)}
	ri := positions(g.Rows)
	ci := positions(g.Cols)
	g.Cells = make([][]int, len(g.Rows))
	for i := range g.Cells {
		g.Cells[i] = make([]int, len(g.Cols))
	}
	for _, p := range pairs {
		g.Cells[ri[p.Row]][ci[p.Col]]++
	}
	return g
}

// FilterRows keeps rows for which keep returns true. Columns are unchanged,
// so a column may end up all zeros.
func (g Grid[R, C]) FilterRows(keep func(R) bool) Grid[R, C] {
	out := Grid[R, C]{Cols: slices.Clone(g.Cols)}
	for i, r := range g.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
			out.Cells = append(out.Cells, slices.Clone(g.Cells[i]))
		}
	}
	return out
}

// TailRows keeps the last n rows.
func (g Grid[R, C]) TailRows(n int) Grid[R, C] {
	start := 0
	if n >= 0 && n < len(g.Rows) {
		start = len(g.Rows) - n
	}
	out := Grid[R, C]{Rows: slices.Clone(g.Rows[start:]), Cols: slices.Clone(g.Cols)}
	for _, row := range g.Cells[start:] {
		out.Cells = append(out.Cells, slices.Clone(row))
	}
	return out
}

// ColumnTotal sums column j.
func (g Grid[R, C]) ColumnTotal(j int) int {
	total := 0
	for _, row := range g.Cells {
		total += row[j]
	}
	return total
}

// TopColumns keeps the n columns with the largest totals, ordered by total
// descending. Equal totals keep their current column order.
func (g Grid[R, C]) TopColumns(n int) Grid[R, C] {
	order := make([]int, len(g.Cols))
	for j := range order {
		order[j] = j
	}
	totals := make([]int, len(g.Cols))
	for j := range totals {
		totals[j] = g.ColumnTotal(j)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(totals[b], totals[a])
	})
	order = head(order, n)

	out := Grid[R, C]{Rows: slices.Clone(g.Rows)}
	for _, j := range order {
		out.Cols = append(out.Cols, g.Cols[j])
	}
	for _, row := range g.Cells {
		cells := make([]int, len(order))
		for k, j := range order {
			cells[k] = row[j]
		}
		out.Cells = append(out.Cells, cells)
	}
	return out
}

// Matrix renders the grid with string keys for the presentation layer.
func (g Grid[R, C]) Matrix(rowLabel func(R) string, colLabel func(C) string) types.Matrix {
	m := types.Matrix{
		Rows:    make([]string, len(g.Rows)),
		Columns: make([]string, len(g.Cols)),
		Cells:   make([][]int, len(g.Cells)),
	}
	for i, r := range g.Rows {
		m.Rows[i] = rowLabel(r)
	}
	for j, c := range g.Cols {
		m.Columns[j] = colLabel(c)
	}
	for i, row := range g.Cells {
		m.Cells[i] = slices.Clone(row)
	}
	return m
}

func sortedKeys[K cmp.Ordered](set map[K]struct{}) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func positions[K comparable](keys []K) map[K]int {
	idx := make(map[K]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return idx
}
