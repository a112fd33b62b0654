package models

import "testing"

func TestTableClone(t *testing.T) {
	tbl := NewTable("Name", "Team Manager")
	tbl.AppendRow(String("Alice"), String("Bob"))

	cp := tbl.Clone()
	cp.Rows[0][0] = String("Mallory")
	cp.Columns[1] = "Lead"

	if tbl.Cell(0, "Name").Str != "Alice" {
		t.Errorf("Clone shares row storage with the original")
	}
	if tbl.Columns[1] != "Team Manager" {
		t.Errorf("Clone shares column storage with the original")
	}
}

func TestTableAppendRowPads(t *testing.T) {
	tbl := NewTable("a", "b", "c")
	tbl.AppendRow(Number(1))

	if err := tbl.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !tbl.Cell(0, "c").IsEmpty() {
		t.Errorf("Expected padded cell to be empty, got %#v", tbl.Cell(0, "c"))
	}
	if got := tbl.Row(0)["a"]; !got.Equal(Number(1)) {
		t.Errorf("Row()[a] = %#v, expected 1", got)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr bool
	}{
		{"ok", &Table{Columns: []string{"a"}, Rows: [][]Value{{Empty()}}}, false},
		{"duplicate column", &Table{Columns: []string{"a", "a"}}, true},
		{"ragged row", &Table{Columns: []string{"a", "b"}, Rows: [][]Value{{Empty()}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.table.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTableCellOutOfRange(t *testing.T) {
	tbl := NewTable("a")
	if !tbl.Cell(3, "a").IsEmpty() || !tbl.Cell(0, "missing").IsEmpty() {
		t.Error("Expected empty value for out-of-range lookups")
	}
}
