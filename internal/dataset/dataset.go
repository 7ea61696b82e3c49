// Package dataset holds the accumulated record sets and their CSV form.
// A dataset is the handoff boundary between the extraction run and the
// schema cleaner: it is written once as an intermediate file and read back
// by the cleaning pass, which may run as a separate invocation.
package dataset

import (
	"github.com/ncrbdata/ncrb-extract/internal/normalize"
)

// Dataset is an ordered, append-only accumulation of normalized rows under
// a single header.
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the dataset holds no data rows.
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Append merges a normalized table into the dataset, preserving insertion
// order. Columns are aligned by name (the n-th occurrence of a duplicated
// name matches the n-th occurrence in the accumulated header), so the
// trailing year column of a wider table still lands in the existing year
// column. Unseen names extend the header; rows are padded so the dataset
// stays rectangular.
func (d *Dataset) Append(t normalize.Table) {
	if t.Empty() {
		return
	}

	mapping := d.columnMapping(t.Columns)

	for _, row := range t.Rows {
		merged := make([]string, len(d.Columns))
		for i, cell := range row {
			if i < len(mapping) {
				merged[mapping[i]] = cell
			}
		}
		d.Rows = append(d.Rows, merged)
	}
}

// columnMapping resolves each incoming column to an index in the accumulated
// header, growing the header (and existing rows) for columns not seen yet.
func (d *Dataset) columnMapping(incoming []string) []int {
	seen := make(map[string]int, len(incoming))
	mapping := make([]int, len(incoming))

	for i, name := range incoming {
		occurrence := seen[name]
		seen[name] = occurrence + 1

		idx := nthIndex(d.Columns, name, occurrence)
		if idx < 0 {
			d.Columns = append(d.Columns, name)
			idx = len(d.Columns) - 1
		}
		mapping[i] = idx
	}

	if len(d.Rows) > 0 && len(d.Rows[0]) < len(d.Columns) {
		for i, row := range d.Rows {
			padded := make([]string, len(d.Columns))
			copy(padded, row)
			d.Rows[i] = padded
		}
	}

	return mapping
}

// nthIndex returns the index of the n-th occurrence (zero-based) of name in
// columns, or -1.
func nthIndex(columns []string, name string, n int) int {
	count := 0
	for i, c := range columns {
		if c == name {
			if count == n {
				return i
			}
			count++
		}
	}
	return -1
}
