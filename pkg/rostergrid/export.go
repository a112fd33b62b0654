package rostergrid

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/output"
)

// ContentType is the MIME type of exported workbooks.
const ContentType = output.ContentType

// Export writes the current table to w as an xlsx workbook.
func (s *Store) Export(w io.Writer, opts ExportOptions) error {
	if s.table == nil {
		return NewOperationError("export", "", ErrNoTable)
	}
	if opts.SummaryColumn != "" && !s.table.HasColumn(opts.SummaryColumn) {
		return NewOperationError("export", opts.SummaryColumn, ErrUnknownColumn)
	}
	err := output.WriteXLSX(w, s.table, output.XLSXOptions{
		SheetName:     opts.SheetName,
		SummaryColumn: opts.SummaryColumn,
	})
	if err != nil {
		return NewOperationError("export", "", err)
	}
	return nil
}

// ExportFile writes the current table to path as an xlsx workbook.
func (s *Store) ExportFile(path string, opts ExportOptions) error {
	if s.table == nil {
		return NewOperationError("export", "", ErrNoTable)
	}
	f, err := os.Create(path)
	if err != nil {
		return NewOperationError("export", "", fmt.Errorf("failed to create output: %w", err))
	}
	bw := bufio.NewWriter(f)
	if err := s.Export(bw, opts); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return NewOperationError("export", "", err)
	}
	return f.Close()
}
