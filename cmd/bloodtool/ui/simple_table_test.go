package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Test Table", []string{"Col1", "Col2"})
	table.AddRow("Row1Col1", "Row1Col2")
	table.AddRow("Short")

	view := table.View(DefaultStyles())

	if !strings.Contains(view, "Test Table") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Row1Col1") {
		t.Error("View missing cell content")
	}
	if !strings.Contains(view, "Short") {
		t.Error("View missing short row")
	}
}

func TestSimpleTable_Empty(t *testing.T) {
	table := NewSimpleTable("Stored", []string{"A"})
	if table.View(DefaultStyles()) != "" {
		t.Error("expected empty view without an empty message")
	}

	table.Empty = "nothing here"
	if !strings.Contains(table.View(DefaultStyles()), "nothing here") {
		t.Error("expected empty message")
	}
}

func TestSimpleTable_MaxWidth(t *testing.T) {
	table := NewSimpleTable("", []string{"Ranges"})
	table.MaxWidth = 8
	table.AddRow("1-7, 8-14, 15-21")

	view := table.View(DefaultStyles())
	if strings.Contains(view, "15-21") {
		t.Error("expected long cell to be truncated")
	}
	if !strings.Contains(view, "…") {
		t.Error("expected ellipsis on truncated cell")
	}
}
