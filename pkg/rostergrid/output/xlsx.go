package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/ukaji3/rostergrid/pkg/rostergrid/views"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultSheetName is the name of the data sheet when none is given.
const DefaultSheetName = "Sheet1"

// SummarySheetName is the name of the optional chart sheet.
const SummarySheetName = "Summary"

// XLSXOptions configures workbook export.
type XLSXOptions struct {
	// SheetName names the data sheet (default "Sheet1").
	SheetName string
	// SummaryColumn, when set, adds a sheet with per-value counts of this
	// column and a bar chart over them.
	SummaryColumn string
}

// WriteXLSX writes the table as an xlsx workbook.
// The first sheet holds a header row of column names followed by the rows.
func WriteXLSX(w io.Writer, t *models.Table, opts XLSXOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
		}
	}

	if err := writeTable(f, sheetName, t); err != nil {
		return err
	}

	if opts.SummaryColumn != "" {
		if err := writeSummary(f, t, opts.SummaryColumn); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheetName string, t *models.Table) error {
	for colIdx, name := range t.Columns {
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheetName, cellName, name); err != nil {
			return err
		}
	}

	for rowIdx, row := range t.Rows {
		for colIdx, v := range row {
			if v.IsEmpty() {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := setCell(f, sheetName, cellName, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", cellName, err)
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheetName, cellName string, v models.Value) error {
	switch v.Kind {
	case models.KindString:
		return f.SetCellStr(sheetName, cellName, v.Str)
	case models.KindNumber:
		return f.SetCellFloat(sheetName, cellName, v.Num, -1, 64)
	default:
		return f.SetCellValue(sheetName, cellName, v.Interface())
	}
}

// writeSummary adds the count table and a bar chart over it.
func writeSummary(f *excelize.File, t *models.Table, column string) error {
	if _, err := f.NewSheet(SummarySheetName); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	buckets := views.CountBy(t, column)
	if err := f.SetSheetRow(SummarySheetName, "A1", &[]interface{}{column, "Count"}); err != nil {
		return err
	}
	for i, b := range buckets {
		cellName, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheetName, cellName, &[]interface{}{b.Value.String(), b.Count}); err != nil {
			return err
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	last := len(buckets) + 1
	ref := func(col string) string {
		return fmt.Sprintf("'%s'!$%s$2:$%s$%d", SummarySheetName, col, col, last)
	}
	return f.AddChart(SummarySheetName, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", SummarySheetName),
				Categories: ref("A"),
				Values:     ref("B"),
			},
		},
		Title:  []excelize.RichTextRun{{Text: fmt.Sprintf("Count by %s", column)}},
		Legend: excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{
			Width:  480,
			Height: 320,
		},
	})
}
