package render

import "github.com/bjaus/notation"

// grid is a Value laid out as rows and columns.
type grid struct {
	header []string
	rows   [][]string
	aligns []Alignment
}

// tabulate lays out v for the tabular styles. An Array of Objects gets one
// column per member key, in first-seen order, and one row per element. Any
// other Array is a single "value" column. An Object becomes key/value rows
// and a scalar a single cell. Numeric columns are right aligned.
func tabulate(v notation.Value) grid {
	var g grid
	switch v.Kind() {
	case notation.ArrayKind:
		items, _ := v.Items()
		byKey := len(items) > 0 && allObjects(items)
		if byKey {
			g = objectRows(items)
		} else {
			g.header = []string{"value"}
			for _, item := range items {
				g.rows = append(g.rows, []string{cell(item)})
			}
		}
		g.aligns = columnAligns(items, g.header, byKey)
	case notation.ObjectKind:
		g.header = []string{"key", "value"}
		for k, m := range v.All() {
			g.rows = append(g.rows, []string{k, cell(m)})
		}
		g.aligns = []Alignment{AlignLeft, AlignLeft}
	default:
		g.header = []string{"value"}
		g.rows = [][]string{{cell(v)}}
		g.aligns = []Alignment{alignFor(v)}
	}
	return g
}

func allObjects(items []notation.Value) bool {
	for _, item := range items {
		if item.Kind() != notation.ObjectKind {
			return false
		}
	}
	return true
}

func objectRows(items []notation.Value) grid {
	var g grid
	col := map[string]int{}
	for _, item := range items {
		for _, k := range item.Keys() {
			if _, ok := col[k]; !ok {
				col[k] = len(g.header)
				g.header = append(g.header, k)
			}
		}
	}
	for _, item := range items {
		row := make([]string, len(g.header))
		for k, m := range item.All() {
			row[col[k]] = cell(m)
		}
		g.rows = append(g.rows, row)
	}
	return g
}

// columnAligns right-aligns a column when every non-null value in it is a
// number.
func columnAligns(items []notation.Value, header []string, byKey bool) []Alignment {
	aligns := make([]Alignment, len(header))
	numeric := make([]bool, len(header))
	seen := make([]bool, len(header))
	for i := range numeric {
		numeric[i] = true
	}
	mark := func(i int, v notation.Value) {
		if v.IsNull() {
			return
		}
		seen[i] = true
		if v.Kind() != notation.NumberKind {
			numeric[i] = false
		}
	}
	for _, item := range items {
		if byKey {
			for i, h := range header {
				if m, ok := item.Field(h); ok {
					mark(i, m)
				}
			}
			continue
		}
		mark(0, item)
	}
	for i := range aligns {
		if seen[i] && numeric[i] {
			aligns[i] = AlignRight
		}
	}
	return aligns
}

func alignFor(v notation.Value) Alignment {
	if v.Kind() == notation.NumberKind {
		return AlignRight
	}
	return AlignLeft
}

// cell is the display form of v, with Null shown as an empty cell.
func cell(v notation.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}
