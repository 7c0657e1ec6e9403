package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Missing is the in-memory marker for an absent cell.
const Missing = ""

// missingTokens mirrors the markers a CSV reader treats as absent values.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

// Table is a column-named, row-major grid of raw cells. Missing cells hold
// the Missing marker.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table and checks that every row matches the header width.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i, len(r), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of name or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// DropColumn returns a copy of the table without name. Unknown names are a no-op.
func (t *Table) DropColumn(name string) *Table {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return t
	}
	cols := make([]string, 0, len(t.Columns)-1)
	cols = append(cols, t.Columns[:idx]...)
	cols = append(cols, t.Columns[idx+1:]...)

	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		nr := make([]string, 0, len(r)-1)
		nr = append(nr, r[:idx]...)
		nr = append(nr, r[idx+1:]...)
		rows[i] = nr
	}
	return &Table{Columns: cols, Rows: rows}
}

// ReplaceLiteral rewrites every cell equal to from with to and returns the
// number of replacements.
func (t *Table) ReplaceLiteral(from, to string) int {
	n := 0
	for _, r := range t.Rows {
		for j, c := range r {
			if c == from {
				r[j] = to
				n++
			}
		}
	}
	return n
}

// Subset returns the rows at the given indices, in that order.
func (t *Table) Subset(indices []int) *Table {
	rows := make([][]string, len(indices))
	for i, idx := range indices {
		rows[i] = t.Rows[idx]
	}
	return &Table{Columns: t.Columns, Rows: rows}
}

// IsNumeric reports whether every non-missing cell of column idx parses as a
// float. A column with no observed values counts as numeric.
func (t *Table) IsNumeric(idx int) bool {
	for _, r := range t.Rows {
		if r[idx] == Missing {
			continue
		}
		if _, err := strconv.ParseFloat(r[idx], 64); err != nil {
			return false
		}
	}
	return true
}

// NumericColumns lists the columns inferred as numeric, in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for i, c := range t.Columns {
		if t.IsNumeric(i) {
			out = append(out, c)
		}
	}
	return out
}

// Floats returns column name as float64 with NaN for missing cells.
func (t *Table) Floats(name string) ([]float64, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		if r[idx] == Missing {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(r[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Observed returns the non-missing values of column name.
func (t *Table) Observed(name string) ([]float64, error) {
	all, err := t.Floats(name)
	if err != nil {
		return nil, err
	}
	out := all[:0:0]
	for _, v := range all {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out, nil
}
