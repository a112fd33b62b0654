package parser

import "github.com/ukaji3/rostergrid/pkg/rostergrid/models"

// findDataBounds finds the bounding box of non-empty cells (0-based).
// All four results are -1 when the sheet holds no data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// clipRows returns the part of rows inside area, re-based to the area's
// top-left corner.
func clipRows(rows [][]string, area models.Area) [][]string {
	var out [][]string
	for rowIdx := area.R1 - 1; rowIdx < area.R2 && rowIdx < len(rows); rowIdx++ {
		if rowIdx < 0 {
			continue
		}
		row := rows[rowIdx]
		var clipped []string
		for colIdx := area.C1 - 1; colIdx < area.C2 && colIdx < len(row); colIdx++ {
			if colIdx < 0 {
				continue
			}
			clipped = append(clipped, row[colIdx])
		}
		out = append(out, clipped)
	}
	return out
}
