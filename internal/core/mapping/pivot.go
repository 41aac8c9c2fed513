package mapping

import (
	"sort"

	perr "galaxy/internal/platform/errors"
)

// Cell is one (key, column, value) row before pivoting
type Cell[K comparable] struct {
	Key    K
	Column int
	Value  int64
}

// PivotRow is one key with a value per column, aligned with Table.Columns
type PivotRow[K comparable] struct {
	Key    K
	Values []int64
}

// Table is the spread form of a set of cells
type Table[K comparable] struct {
	Columns []int
	Rows    []PivotRow[K]
}

// Pivot spreads cells into one row per key and one column per distinct column value
// rows keep the order their key first appeared in; columns ascend; missing cells are 0
// repeated (key, column) cells are summed
func Pivot[K comparable](cells []Cell[K]) (Table[K], error) {
	if len(cells) == 0 {
		return Table[K]{}, perr.QueryBuildf("pivot requested over no rows")
	}

	colSet := map[int]struct{}{}
	for _, c := range cells {
		colSet[c.Column] = struct{}{}
	}
	cols := make([]int, 0, len(colSet))
	for c := range colSet {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	pos := make(map[int]int, len(cols))
	for i, c := range cols {
		pos[c] = i
	}

	t := Table[K]{Columns: cols}
	rowOf := map[K]int{}
	for _, c := range cells {
		i, ok := rowOf[c.Key]
		if !ok {
			i = len(t.Rows)
			rowOf[c.Key] = i
			t.Rows = append(t.Rows, PivotRow[K]{Key: c.Key, Values: make([]int64, len(cols))})
		}
		t.Rows[i].Values[pos[c.Column]] += c.Value
	}
	return t, nil
}
