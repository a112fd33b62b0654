package rostergrid

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoTable indicates an operation was attempted before any file was loaded.
var ErrNoTable = errors.New("no table loaded")

// ErrInvalidName indicates a column name that is empty, reserved or already taken.
var ErrInvalidName = errors.New("invalid column name")

// ErrDuplicateColumn indicates a column name already present in the table.
// It matches ErrInvalidName under errors.Is.
var ErrDuplicateColumn = fmt.Errorf("%w: column already exists", ErrInvalidName)

// ErrNoSelection indicates a row deletion with no rows selected.
var ErrNoSelection = errors.New("no rows selected")

// ErrUnknownColumn indicates a reference to a column the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// ErrRowOutOfRange indicates a row index outside the table.
var ErrRowOutOfRange = errors.New("row index out of range")

// OperationError represents a failed table operation.
type OperationError struct {
	Op     string // "add_column", "add_row", "delete_rows", "apply_edit", "set_cell", "filter_by", "load", "export"
	Column string // offending column, if any
	Err    error
}

func (e *OperationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, column string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Column: column,
		Err:    err,
	}
}

// IsWarning reports whether err is an input-validation problem the user can
// correct in place, as opposed to an I/O or format failure.
func IsWarning(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrRowOutOfRange)
}
