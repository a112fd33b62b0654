package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *models.Table {
	t := models.NewTable("Name", "Team Manager", "Score", "updated_on")
	t.AppendRow(models.String("Alice"), models.String("Bob"), models.Number(3), models.String("2024-05-01 09:30:00"))
	t.AppendRow(models.String("Carol"), models.String("Dan"), models.Empty(), models.Empty())
	t.AppendRow(models.String("Eve"), models.String("Bob"), models.Number(1.5), models.Empty())
	return t
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleTable(), XLSXOptions{}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != DefaultSheetName {
		t.Fatalf("Unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(DefaultSheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d", len(rows))
	}
	header := rows[0]
	if header[0] != "Name" || header[3] != "updated_on" {
		t.Errorf("Unexpected header %v", header)
	}
	if rows[1][2] != "3" || rows[1][3] != "2024-05-01 09:30:00" {
		t.Errorf("Unexpected first data row %v", rows[1])
	}
	if rows[3][2] != "1.5" {
		t.Errorf("Expected 1.5, got %v", rows[3])
	}
}

func TestWriteXLSXSummary(t *testing.T) {
	var buf bytes.Buffer
	opts := XLSXOptions{SheetName: "Roster", SummaryColumn: "Team Manager"}
	if err := WriteXLSX(&buf, sampleTable(), opts); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Roster" || sheets[1] != SummarySheetName {
		t.Fatalf("Unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(SummarySheetName)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "Bob" || rows[1][1] != "2" || rows[2][0] != "Dan" {
		t.Errorf("Unexpected summary rows %v", rows)
	}
}

func TestWriteXLSXDate(t *testing.T) {
	tbl := models.NewTable("Joined")
	tbl.AppendRow(models.Date(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, tbl, XLSXOptions{}); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	raw, err := f.GetCellValue(DefaultSheetName, "A2", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.Abs(serial-44928) > 1e-6 {
		t.Errorf("Expected excel serial 44928, got %q", raw)
	}
}

func TestToJSON(t *testing.T) {
	tbl := models.NewTable("Name", "Score")
	tbl.AppendRow(models.String("Alice"))

	data, err := ToJSON(tbl, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if string(data) != `{"columns":["Name","Score"],"rows":[["Alice",null]]}` {
		t.Errorf("Unexpected JSON %s", data)
	}

	pretty, err := ToJSON(tbl, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	var back models.Table
	if err := json.Unmarshal(pretty, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back.Rows) != 1 || !back.Rows[0][1].IsEmpty() {
		t.Errorf("Unexpected decoded table %+v", back)
	}
}
