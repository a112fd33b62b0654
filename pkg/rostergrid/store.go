package rostergrid

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/parser"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/views"
	"github.com/xuri/excelize/v2"
)

// Store holds the table for one editing session.
//
// A Store has a single owner and is not safe for concurrent use.
type Store struct {
	opts  Options
	table *models.Table
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	return &Store{opts: opts}
}

// Loaded reports whether a table has been loaded.
func (s *Store) Loaded() bool {
	return s.table != nil
}

// Reset discards the current table so the next load replaces it.
func (s *Store) Reset() {
	s.table = nil
}

// TimestampColumn returns the name of the reserved last-modified column.
func (s *Store) TimestampColumn() string {
	return s.opts.timestampColumn()
}

// Load reads an xlsx workbook from r. It is a no-op once a table is loaded.
func (s *Store) Load(r io.Reader) error {
	if s.Loaded() {
		return nil
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return NewOperationError("load", "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()
	return s.loadWorkbook(f)
}

// LoadFile reads an xlsx workbook from path. It is a no-op once a table is loaded.
func (s *Store) LoadFile(path string) error {
	if s.Loaded() {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewOperationError("load", "", fmt.Errorf("%w: %s", ErrFileNotFound, path))
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return NewOperationError("load", "", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()
	return s.loadWorkbook(f)
}

// LoadTable adopts a copy of t. It is a no-op once a table is loaded.
func (s *Store) LoadTable(t *models.Table) error {
	if s.Loaded() {
		return nil
	}
	if err := t.Validate(); err != nil {
		return NewOperationError("load", "", err)
	}
	s.table = s.withTimestamp(t.Clone())
	return nil
}

func (s *Store) loadWorkbook(f *excelize.File) error {
	t, err := parser.ReadTable(f, parser.ReadOptions{
		SheetName: s.opts.SheetName,
		Area:      s.opts.Area,
	})
	if err != nil {
		return NewOperationError("load", "", err)
	}
	s.table = s.withTimestamp(t)
	return nil
}

// withTimestamp appends an empty timestamp column when t lacks one.
func (s *Store) withTimestamp(t *models.Table) *models.Table {
	ts := s.opts.timestampColumn()
	if t.HasColumn(ts) {
		return t
	}
	t.Columns = append(t.Columns, ts)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], models.Empty())
	}
	return t
}

// Table returns a copy of the current table, or nil before the first load.
func (s *Store) Table() *models.Table {
	return s.table.Clone()
}

// DataColumns returns every column except the timestamp column.
func (s *Store) DataColumns() []string {
	if s.table == nil {
		return nil
	}
	ts := s.opts.timestampColumn()
	cols := make([]string, 0, len(s.table.Columns))
	for _, c := range s.table.Columns {
		if c != ts {
			cols = append(cols, c)
		}
	}
	return cols
}

// AddColumn appends an empty column.
func (s *Store) AddColumn(name string) error {
	if s.table == nil {
		return NewOperationError("add_column", name, ErrNoTable)
	}
	if strings.TrimSpace(name) == "" {
		return NewOperationError("add_column", name, fmt.Errorf("%w: name is empty", ErrInvalidName))
	}
	if s.table.HasColumn(name) {
		return NewOperationError("add_column", name, ErrDuplicateColumn)
	}

	s.table.Columns = append(s.table.Columns, name)
	for i := range s.table.Rows {
		s.table.Rows[i] = append(s.table.Rows[i], models.Empty())
	}
	return nil
}

// AddRow appends a row. Data columns missing from values are left empty,
// and the timestamp column is always set to the current time.
func (s *Store) AddRow(values map[string]models.Value) error {
	if s.table == nil {
		return NewOperationError("add_row", "", ErrNoTable)
	}
	ts := s.opts.timestampColumn()
	for name := range values {
		if name != ts && !s.table.HasColumn(name) {
			return NewOperationError("add_row", name, ErrUnknownColumn)
		}
	}

	row := make([]models.Value, len(s.table.Columns))
	for i, c := range s.table.Columns {
		if c == ts {
			row[i] = s.stamp()
			continue
		}
		row[i] = values[c]
	}
	s.table.Rows = append(s.table.Rows, row)
	return nil
}

// DeleteRows removes the rows at the given indices. The remaining rows keep
// their order and are renumbered from 0.
func (s *Store) DeleteRows(indices []int) error {
	if s.table == nil {
		return NewOperationError("delete_rows", "", ErrNoTable)
	}
	if len(indices) == 0 {
		return NewOperationError("delete_rows", "", ErrNoSelection)
	}

	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.table.Rows) {
			return NewOperationError("delete_rows", "", fmt.Errorf("%w: %d", ErrRowOutOfRange, i))
		}
		drop[i] = struct{}{}
	}

	kept := make([][]models.Value, 0, len(s.table.Rows)-len(drop))
	for i, row := range s.table.Rows {
		if _, ok := drop[i]; !ok {
			kept = append(kept, row)
		}
	}
	s.table.Rows = kept
	return nil
}

// ApplyEdit replaces the table with an edited copy. Each row whose data
// cells differ from the stored row at the same index gets a fresh timestamp;
// every other row keeps its stored timestamp. Rows past the stored row count
// are always stamped. It returns the indices of the stamped rows.
func (s *Store) ApplyEdit(edited *models.Table) ([]int, error) {
	if s.table == nil {
		return nil, NewOperationError("apply_edit", "", ErrNoTable)
	}
	if edited == nil {
		return nil, NewOperationError("apply_edit", "", errors.New("edited table is nil"))
	}
	if err := edited.Validate(); err != nil {
		return nil, NewOperationError("apply_edit", "", err)
	}

	ts := s.opts.timestampColumn()
	next := s.withTimestamp(edited.Clone())
	tsIdx := next.ColumnIndex(ts)
	prevTsIdx := s.table.ColumnIndex(ts)

	// Position of each edited column in the stored table, -1 if new.
	prevIdx := make([]int, len(next.Columns))
	for j, c := range next.Columns {
		prevIdx[j] = s.table.ColumnIndex(c)
	}

	stamp := s.stamp()
	var stamped []int
	for i, row := range next.Rows {
		if i >= len(s.table.Rows) || rowChanged(row, s.table.Rows[i], prevIdx, tsIdx) {
			row[tsIdx] = stamp
			stamped = append(stamped, i)
			continue
		}
		row[tsIdx] = s.table.Rows[i][prevTsIdx]
		restoreDates(row, s.table.Rows[i], prevIdx, tsIdx)
	}

	s.table = next
	return stamped, nil
}

// rowChanged compares every data cell of row with the stored row. A column
// the stored table lacks compares against the empty value.
func rowChanged(row, prev []models.Value, prevIdx []int, tsIdx int) bool {
	for j, v := range row {
		if j == tsIdx {
			continue
		}
		old := models.Empty()
		if prevIdx[j] >= 0 {
			old = prev[prevIdx[j]]
		}
		if !sameCell(v, old) {
			return true
		}
	}
	return false
}

// sameCell reports whether an edited cell matches the stored one. Dates
// travel through JSON as RFC 3339 text, so that text matches the stored date.
func sameCell(v, old models.Value) bool {
	if old.Kind == models.KindDate && v.Kind == models.KindString {
		return v.Str == old.String()
	}
	return v.Equal(old)
}

// restoreDates puts stored dates back in place of their text form in an
// unchanged row.
func restoreDates(row, prev []models.Value, prevIdx []int, tsIdx int) {
	for j, v := range row {
		if j == tsIdx || prevIdx[j] < 0 {
			continue
		}
		if old := prev[prevIdx[j]]; old.Kind == models.KindDate && v.Kind == models.KindString {
			row[j] = old
		}
	}
}

// SetCell changes a single data cell, stamping the row if the value differs.
func (s *Store) SetCell(row int, column string, v models.Value) error {
	if s.table == nil {
		return NewOperationError("set_cell", column, ErrNoTable)
	}
	if column == s.opts.timestampColumn() {
		return NewOperationError("set_cell", column, fmt.Errorf("%w: column is reserved", ErrInvalidName))
	}
	col := s.table.ColumnIndex(column)
	if col < 0 {
		return NewOperationError("set_cell", column, ErrUnknownColumn)
	}
	if row < 0 || row >= len(s.table.Rows) {
		return NewOperationError("set_cell", column, fmt.Errorf("%w: %d", ErrRowOutOfRange, row))
	}

	edited := s.table.Clone()
	edited.Rows[row][col] = v
	_, err := s.ApplyEdit(edited)
	return err
}

// FilterBy returns a copy of the rows whose value in column is one of
// allowed. An empty allowed list applies no filter and returns every row.
func (s *Store) FilterBy(column string, allowed []models.Value) (*models.Table, error) {
	if s.table == nil {
		return nil, NewOperationError("filter_by", column, ErrNoTable)
	}
	col := s.table.ColumnIndex(column)
	if col < 0 {
		return nil, NewOperationError("filter_by", column, ErrUnknownColumn)
	}
	if len(allowed) == 0 {
		return s.table.Clone(), nil
	}

	out := models.NewTable(s.table.Columns...)
	for _, row := range s.table.Rows {
		for _, a := range allowed {
			if row[col].Equal(a) {
				out.AppendRow(row...)
				break
			}
		}
	}
	return out, nil
}

// UniqueValues returns the distinct values of column in first-appearance order.
func (s *Store) UniqueValues(column string) ([]models.Value, error) {
	if s.table == nil {
		return nil, NewOperationError("unique_values", column, ErrNoTable)
	}
	if !s.table.HasColumn(column) {
		return nil, NewOperationError("unique_values", column, ErrUnknownColumn)
	}
	return views.Distinct(s.table, column), nil
}

func (s *Store) stamp() models.Value {
	return models.String(s.opts.now().Format(TimestampLayout))
}
