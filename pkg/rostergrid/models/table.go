package models

import "fmt"

// Table is an ordered set of named columns with row-aligned values.
type Table struct {
	// Columns lists the column names in display order.
	Columns []string `json:"columns"`
	// Rows holds one slice per row, aligned with Columns.
	Rows [][]Value `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols, Rows: [][]Value{}}
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at the given row and column.
// Out-of-range coordinates yield an empty value.
func (t *Table) Cell(row int, column string) Value {
	if row < 0 || row >= len(t.Rows) {
		return Empty()
	}
	col := t.ColumnIndex(column)
	if col < 0 || col >= len(t.Rows[row]) {
		return Empty()
	}
	return t.Rows[row][col]
}

// Row returns a map view of one row keyed by column name.
func (t *Table) Row(i int) map[string]Value {
	out := make(map[string]Value, len(t.Columns))
	for j, c := range t.Columns {
		if j < len(t.Rows[i]) {
			out[c] = t.Rows[i][j]
		} else {
			out[c] = Empty()
		}
	}
	return out
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(values ...Value) {
	row := make([]Value, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]Value, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		out.Rows[i] = make([]Value, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// Validate checks that column names are unique and every row is aligned.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(t.Columns))
		}
	}
	return nil
}
