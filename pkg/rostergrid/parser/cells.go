package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/xuri/excelize/v2"
)

// ReadOptions configures how a sheet is turned into a table.
type ReadOptions struct {
	// SheetName selects the sheet; the first sheet is used when empty.
	SheetName string
	// Area clips the sheet before the data region is located (optional).
	Area *models.Area
}

// ReadTable reads one sheet into a table.
// The first non-empty row of the data region is the header row.
func ReadTable(f *excelize.File, opts ReadOptions) (*models.Table, error) {
	sheetName := opts.SheetName
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if opts.Area != nil {
		rows = clipRows(rows, *opts.Area)
	}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.NewTable(), nil
	}

	header := make([]string, maxCol-minCol+1)
	for colIdx := range header {
		header[colIdx] = cellAt(rows, minRow, minCol+colIdx)
	}
	table := models.NewTable(normalizeHeaders(header)...)

	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		row := make([]models.Value, len(header))
		hasData := false

		for colIdx := range header {
			cellValue := cellAt(rows, rowIdx, minCol+colIdx)
			if cellValue == "" {
				continue
			}
			hasData = true

			// Sheet coordinates are offset by the clip area, if any.
			sheetRow, sheetCol := rowIdx+1, minCol+colIdx+1
			if opts.Area != nil {
				sheetRow += opts.Area.R1 - 1
				sheetCol += opts.Area.C1 - 1
			}
			cellName, _ := excelize.CoordinatesToCellName(sheetCol, sheetRow)
			row[colIdx] = typedValue(f, sheetName, cellName, cellValue)
		}

		if hasData {
			table.Rows = append(table.Rows, row)
		}
	}

	return table, nil
}

// typedValue keeps stored strings as text and parses everything else.
func typedValue(f *excelize.File, sheetName, cellName, cellValue string) models.Value {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err == nil && (cellType == excelize.CellTypeSharedString || cellType == excelize.CellTypeInlineString) {
		return models.String(cellValue)
	}
	v := parseValue(cellValue)
	if v.Kind != models.KindNumber {
		return v
	}
	// Display text rounds to 15 significant digits; the stored value does not.
	if raw, err := f.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true}); err == nil {
		if n, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return models.Number(n)
		}
	}
	return v
}

// parseValue attempts to parse a string value as a number.
// Returns a number value for integers and decimals, or a string value.
func parseValue(s string) models.Value {
	if s == "" {
		return models.Empty()
	}
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Number(float64(i))
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return models.Number(f)
	}
	return models.String(s)
}

// normalizeHeaders names blank headers "Unnamed: N" and suffixes duplicates
// as name.1, name.2 and so on.
func normalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			suffix[h]++
			name = fmt.Sprintf("%s.%d", h, suffix[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func cellAt(rows [][]string, rowIdx, colIdx int) string {
	if rowIdx >= len(rows) || colIdx >= len(rows[rowIdx]) {
		return ""
	}
	return rows[rowIdx][colIdx]
}
