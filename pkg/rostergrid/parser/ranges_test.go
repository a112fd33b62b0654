package parser

import (
	"testing"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref       string
		sheetName string
		area      models.Area
		wantErr   bool
	}{
		{"A1:D10", "", models.Area{R1: 1, C1: 1, R2: 10, C2: 4}, false},
		{"$B$2:$C$5", "", models.Area{R1: 2, C1: 2, R2: 5, C2: 3}, false},
		{"'Team List'!$A$1:$D$10", "Team List", models.Area{R1: 1, C1: 1, R2: 10, C2: 4}, false},
		{"Sheet1!D10:A1", "Sheet1", models.Area{R1: 1, C1: 1, R2: 10, C2: 4}, false},
		{"A1", "", models.Area{}, true},
		{"A1:ZZZZ1", "", models.Area{}, true},
	}

	for _, tt := range tests {
		sheetName, area, err := ParseReference(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReference(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if sheetName != tt.sheetName || area != tt.area {
			t.Errorf("ParseReference(%q) = %q, %+v, expected %q, %+v", tt.ref, sheetName, area, tt.sheetName, tt.area)
		}
	}
}

func TestClipRows(t *testing.T) {
	rows := [][]string{
		{"a", "b", "c"},
		{"d", "e"},
		{"g", "h", "i"},
	}
	got := clipRows(rows, models.Area{R1: 2, C1: 2, R2: 3, C2: 3})
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}
	if len(got[0]) != 1 || got[0][0] != "e" {
		t.Errorf("Unexpected first row %v", got[0])
	}
	if len(got[1]) != 2 || got[1][0] != "h" || got[1][1] != "i" {
		t.Errorf("Unexpected second row %v", got[1])
	}
}
