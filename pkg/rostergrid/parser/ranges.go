package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/xuri/excelize/v2"
)

// ParseReference parses a range reference with an optional sheet prefix.
// Format: 'SheetName'!$A$1:$D$10, SheetName!A1:D10 or A1:D10.
func ParseReference(ref string) (string, models.Area, error) {
	ref = strings.TrimSpace(ref)

	var sheetName string
	rangeStr := ref
	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheetName = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	area, err := ParseRange(rangeStr)
	if err != nil {
		return "", models.Area{}, err
	}
	return sheetName, area, nil
}

// ParseRange parses a range string like $A$1:$D$10 to an Area.
func ParseRange(rangeStr string) (models.Area, error) {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return models.Area{}, fmt.Errorf("invalid range %q: expected START:END", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Area{}, fmt.Errorf("invalid range start %q: %w", parts[0], err)
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Area{}, fmt.Errorf("invalid range end %q: %w", parts[1], err)
	}

	// Normalize reversed ranges such as D10:A1.
	return models.Area{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}, nil
}
