// Package rostergrid holds an uploaded spreadsheet in memory and applies
// edits to it, stamping each changed row with a last-modified time.
package rostergrid

import (
	"time"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
)

// DefaultTimestampColumn is the reserved per-row last-modified column.
const DefaultTimestampColumn = "updated_on"

// TimestampLayout is the format of values written to the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Options configures a Store.
type Options struct {
	// TimestampColumn names the reserved last-modified column.
	// If empty, defaults to "updated_on".
	TimestampColumn string
	// SheetName selects the sheet read on load; the first sheet if empty.
	SheetName string
	// Area restricts the region read on load (optional).
	Area *models.Area
	// Clock returns the current time. If nil, defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns default store options.
func DefaultOptions() Options {
	return Options{
		TimestampColumn: DefaultTimestampColumn,
	}
}

func (o Options) timestampColumn() string {
	if o.TimestampColumn != "" {
		return o.TimestampColumn
	}
	return DefaultTimestampColumn
}

func (o Options) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// ExportOptions configures workbook export.
type ExportOptions struct {
	// SheetName names the data sheet. If empty, defaults to "Sheet1".
	SheetName string
	// SummaryColumn, when set, adds a sheet with a count-by bar chart of
	// this column.
	SummaryColumn string
}
