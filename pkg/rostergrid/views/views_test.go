package views

import (
	"testing"

	"github.com/ukaji3/rostergrid/pkg/rostergrid/models"
)

func rosterTable() *models.Table {
	t := models.NewTable("Name", "Team Manager")
	t.AppendRow(models.String("Alice"), models.String("Bob"))
	t.AppendRow(models.String("Carol"), models.String("Dan"))
	t.AppendRow(models.String("Eve"), models.String("Bob"))
	t.AppendRow(models.String("Frank"), models.Empty())
	t.AppendRow(models.String("Grace"), models.String("Dan"))
	t.AppendRow(models.String("Heidi"), models.String("Ivan"))
	return t
}

func TestCountBy(t *testing.T) {
	got := CountBy(rosterTable(), "Team Manager")
	expected := []struct {
		label string
		count int
	}{
		{"Bob", 2},
		{"Dan", 2},
		{"Ivan", 1},
	}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d buckets, got %d: %v", len(expected), len(got), got)
	}
	for i, e := range expected {
		if got[i].Value.Str != e.label || got[i].Count != e.count {
			t.Errorf("bucket %d = %v/%d, expected %s/%d", i, got[i].Value, got[i].Count, e.label, e.count)
		}
	}

	if CountBy(rosterTable(), "Missing") != nil {
		t.Error("Expected nil for unknown column")
	}
}

func TestDistinct(t *testing.T) {
	got := Distinct(rosterTable(), "Team Manager")
	expected := []models.Value{models.String("Bob"), models.String("Dan"), models.Empty(), models.String("Ivan")}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d values, got %v", len(expected), got)
	}
	for i := range expected {
		if !got[i].Equal(expected[i]) {
			t.Errorf("value %d = %#v, expected %#v", i, got[i], expected[i])
		}
	}
}

func TestTreemap(t *testing.T) {
	root := Treemap(rosterTable(), "Team Manager", "Name")
	if root.Count != 5 {
		t.Errorf("Expected root count 5 (empty manager dropped), got %d", root.Count)
	}
	if len(root.Children) != 3 {
		t.Fatalf("Expected 3 managers, got %d", len(root.Children))
	}

	bob := root.Children[0]
	if bob.Label != "Bob" || bob.Column != "Team Manager" || bob.Count != 2 {
		t.Errorf("Unexpected first node %+v", bob)
	}
	if len(bob.Children) != 2 || bob.Children[0].Label != "Alice" || bob.Children[1].Label != "Eve" {
		t.Errorf("Unexpected children of Bob: %+v", bob.Children)
	}
	if bob.Children[0].Column != "Name" || bob.Children[0].Count != 1 {
		t.Errorf("Unexpected leaf %+v", bob.Children[0])
	}

	if empty := Treemap(rosterTable(), "Team Manager", "Missing"); empty.Count != 0 || len(empty.Children) != 0 {
		t.Errorf("Expected empty root for unknown column, got %+v", empty)
	}
}
