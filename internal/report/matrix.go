// Package report pivots appearance records into the two matrices the charts
// are drawn from and cross-checks them against each player's season total.
package report

import (
	"sort"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

// Matrix is a dense integer table addressed by string keys. Missing cells
// read as zero. Rows and Cols hold the display order.
type Matrix struct {
	Rows  []string
	Cols  []string
	cells map[cellKey]int
	// position of each key's first record, used to break ranking ties
	rowSeen map[string]int
	colSeen map[string]int
}

type cellKey struct{ row, col string }

func (m *Matrix) Get(row, col string) int {
	if m == nil {
		return 0
	}
	return m.cells[cellKey{row, col}]
}

func (m *Matrix) RowSum(row string) int {
	n := 0
	for _, c := range m.Cols {
		n += m.Get(row, c)
	}
	return n
}

func (m *Matrix) ColSum(col string) int {
	n := 0
	for _, r := range m.Rows {
		n += m.Get(r, col)
	}
	return n
}

// MaxRowSum is the height of the tallest stacked bar when rows are bars.
func (m *Matrix) MaxRowSum() int {
	best := 0
	for _, r := range m.Rows {
		if v := m.RowSum(r); v > best {
			best = v
		}
	}
	return best
}

func (m *Matrix) Empty() bool {
	return m == nil || len(m.Rows) == 0 || len(m.Cols) == 0
}

// selectCols returns a view restricted to cols, in the given order.
func (m *Matrix) selectCols(cols []string) *Matrix {
	v := *m
	v.Cols = cols
	return &v
}

func (m *Matrix) selectRows(rows []string) *Matrix {
	v := *m
	v.Rows = rows
	return &v
}

type aggFunc func(cur, v int) int

func sum(cur, v int) int { return cur + v }

func maxOf(cur, v int) int {
	if v > cur {
		return v
	}
	return cur
}

// pivot groups records by (row, col) and folds values with agg. Keys are
// sorted lexically on both axes; first-seen positions are kept for ranking.
func pivot(
	recs []innebandy.AppearanceRecord,
	rowKey, colKey func(innebandy.AppearanceRecord) string,
	value func(innebandy.AppearanceRecord) int,
	agg aggFunc,
) *Matrix {
	m := &Matrix{cells: map[cellKey]int{}, rowSeen: map[string]int{}, colSeen: map[string]int{}}
	for i, r := range recs {
		k := cellKey{rowKey(r), colKey(r)}
		if _, ok := m.rowSeen[k.row]; !ok {
			m.rowSeen[k.row] = i
		}
		if _, ok := m.colSeen[k.col]; !ok {
			m.colSeen[k.col] = i
		}
		cur, seen := m.cells[k]
		if !seen {
			m.cells[k] = value(r)
			continue
		}
		m.cells[k] = agg(cur, value(r))
	}
	m.Rows = sortedKeys(m.rowSeen)
	m.Cols = sortedKeys(m.colSeen)
	return m
}

func sortedKeys(set map[string]int) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// topN ranks keys by score descending and returns the first n. Equal scores
// keep the order in which the keys were first seen. n <= 0 keeps everything
// in the incoming order.
func topN(keys []string, n int, score func(string) int, seen map[string]int) []string {
	if n <= 0 || len(keys) <= n {
		return keys
	}
	ranked := make([]string, len(keys))
	copy(ranked, keys)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := score(ranked[i]), score(ranked[j])
		if a != b {
			return a > b
		}
		return seen[ranked[i]] < seen[ranked[j]]
	})
	return ranked[:n]
}
