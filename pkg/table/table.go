// Package table provides a small ordered, string-typed table that carries
// raw and reconciled datasets between pipeline stages.
//
// Cells are strings. A missing value (NA) is an empty string, so every
// reader has to treat "" as "no data". Row order is significant: several
// joins in the pipeline are "first match in lookup order wins", and a Table
// never reorders its rows.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// NA is the missing-value marker.
const NA = ""

// ErrMissingColumn is wrapped by Require when a table does not have
// all requested columns.
var ErrMissingColumn = errors.New("missing column")

// Table is an ordered collection of rows with named columns.
type Table struct {
	// Name identifies the dataset the table came from. It is used in
	// diagnostics only.
	Name string

	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with given columns. Duplicate column names
// are ignored.
func New(name string, columns ...string) *Table {
	res := &Table{Name: name, index: make(map[string]int)}
	for _, c := range columns {
		res.AddColumn(c)
	}
	return res
}

// IsNA returns true if the value is missing.
func IsNA(s string) bool {
	return strings.TrimSpace(s) == NA
}

// Columns returns a copy of column names in their order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has checks if a column exists.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require returns an error listing all columns the table does not have.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: table '%s' lacks %s",
		ErrMissingColumn, t.Name, strings.Join(missing, ", "))
}

// AddColumn adds a column filled with NA. Existing columns are kept as is.
func (t *Table) AddColumn(col string) {
	if t.Has(col) {
		return
	}
	t.index[col] = len(t.columns)
	t.columns = append(t.columns, col)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], NA)
	}
}

// Append adds a row. Short rows are padded with NA, extra values are
// dropped.
func (t *Table) Append(vals ...string) {
	row := make([]string, len(t.columns))
	copy(row, vals)
	t.rows = append(t.rows, row)
}

// AppendMap adds a row from a column->value map. Unknown columns are
// ignored.
func (t *Table) AppendMap(m map[string]string) {
	row := make([]string, len(t.columns))
	for k, v := range m {
		if i, ok := t.index[k]; ok {
			row[i] = v
		}
	}
	t.rows = append(t.rows, row)
}

// Get returns a cell value, or NA if the column does not exist.
func (t *Table) Get(row int, col string) string {
	i, ok := t.index[col]
	if !ok {
		return NA
	}
	return t.rows[row][i]
}

// Set assigns a cell value, adding the column if necessary.
func (t *Table) Set(row int, col, val string) {
	t.AddColumn(col)
	t.rows[row][t.index[col]] = val
}

// Row returns a copy of a row.
func (t *Table) Row(i int) []string {
	return slices.Clone(t.rows[i])
}

// Record returns a row as a column->value map.
func (t *Table) Record(i int) map[string]string {
	res := make(map[string]string, len(t.columns))
	for j, c := range t.columns {
		res[c] = t.rows[i][j]
	}
	return res
}

// Column returns a copy of column values, or nil if the column does
// not exist.
func (t *Table) Column(col string) []string {
	i, ok := t.index[col]
	if !ok {
		return nil
	}
	res := make([]string, len(t.rows))
	for j := range t.rows {
		res[j] = t.rows[j][i]
	}
	return res
}

// SetColumn replaces values of a column, adding it if necessary.
// The number of values must match the number of rows.
func (t *Table) SetColumn(col string, vals []string) error {
	if len(vals) != len(t.rows) {
		return fmt.Errorf("table '%s': column '%s' has %d values for %d rows",
			t.Name, col, len(vals), len(t.rows))
	}
	t.AddColumn(col)
	i := t.index[col]
	for j := range t.rows {
		t.rows[j][i] = vals[j]
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	res := New(t.Name, t.columns...)
	res.rows = make([][]string, len(t.rows))
	for i := range t.rows {
		res.rows[i] = slices.Clone(t.rows[i])
	}
	return res
}

// Filter returns a new table with rows for which keep returns true.
// Row order is preserved.
func (t *Table) Filter(keep func(i int) bool) *Table {
	res := New(t.Name, t.columns...)
	for i := range t.rows {
		if keep(i) {
			res.rows = append(res.rows, slices.Clone(t.rows[i]))
		}
	}
	return res
}

// Index maps non-NA values of a column to row numbers in table order.
func (t *Table) Index(col string) map[string][]int {
	res := make(map[string][]int)
	i, ok := t.index[col]
	if !ok {
		return res
	}
	for j := range t.rows {
		v := t.rows[j][i]
		if IsNA(v) {
			continue
		}
		res[v] = append(res[v], j)
	}
	return res
}

// Distinct returns non-NA values of a column in first-seen order.
func (t *Table) Distinct(col string) []string {
	var res []string
	seen := make(map[string]struct{})
	for _, v := range t.Column(col) {
		if IsNA(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
