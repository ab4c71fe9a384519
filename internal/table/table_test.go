package table

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNew_PadsShortColumns(t *testing.T) {
	tbl := New(
		Column{Name: "a", Type: Text, Cells: []Cell{TextCell("x"), TextCell("y")}},
		Column{Name: "b", Type: Text, Cells: []Cell{TextCell("1")}},
	)

	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if !tbl.Column("b").Cells[1].Null {
		t.Error("short column should be padded with null cells")
	}
}

func TestDropColumns(t *testing.T) {
	tbl := New(
		Column{Name: "a", Type: Text},
		Column{Name: "b", Type: Text},
		Column{Name: "c", Type: Text},
	)

	tbl.DropColumns([]string{"b"})

	got := tbl.ColumnNames()
	want := []string{"a", "c"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ColumnNames() = %v, want %v", got, want)
	}
}

func TestKeepRows(t *testing.T) {
	tbl := New(
		Column{Name: "a", Type: Text, Cells: []Cell{TextCell("1"), TextCell("2"), TextCell("3")}},
	)

	tbl.KeepRows([]bool{true, false, true})

	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if got := tbl.CellString(0, 1); got != "3" {
		t.Errorf("CellString(0,1) = %q, want %q", got, "3")
	}
}

func TestCellString_Formats(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

	tbl := New(
		Column{Name: "n", Type: Numeric, Cells: []Cell{NumberCell(2.5), NumberCell(1000)}},
		Column{Name: "d", Type: DateTime, Cells: []Cell{TimeCell(date), TimeCell(stamp)}},
		Column{Name: "s", Type: Text, Cells: []Cell{TextCell("hi"), NullCell()}},
	)

	tests := []struct {
		col, row int
		want     string
	}{
		{0, 0, "2.5"},
		{0, 1, "1000"},
		{1, 0, "2024-03-15"},
		{1, 1, "2024-03-15T09:30:00Z"},
		{2, 0, "hi"},
		{2, 1, ""},
	}
	for _, tt := range tests {
		if got := tbl.CellString(tt.col, tt.row); got != tt.want {
			t.Errorf("CellString(%d,%d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestDistinctCount_NullIsAValue(t *testing.T) {
	col := Column{Name: "a", Type: Text, Cells: []Cell{TextCell("x"), TextCell("x"), NullCell()}}
	if got := col.DistinctCount(); got != 2 {
		t.Errorf("DistinctCount() = %d, want 2", got)
	}
}

func TestRowKey_DistinguishesNullFromEmpty(t *testing.T) {
	tbl := New(
		Column{Name: "a", Type: Text, Cells: []Cell{TextCell(""), NullCell()}},
	)
	if tbl.RowKey(0) == tbl.RowKey(1) {
		t.Error("empty text and null should produce different row keys")
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := New(
		Column{Name: "name", Type: Text, Cells: []Cell{TextCell("Bob"), NullCell()}},
		Column{Name: "age", Type: Numeric, Cells: []Cell{NumberCell(42), NumberCell(7)}},
	)

	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "name,age\nBob,42\n,7\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV() = %q, want %q", got, want)
	}
}

func TestMissingCount(t *testing.T) {
	col := Column{Name: "a", Type: Text, Cells: []Cell{NullCell(), TextCell("x"), NullCell()}}
	if got := col.MissingCount(); got != 2 {
		t.Errorf("MissingCount() = %d, want 2", got)
	}
}

func TestRename(t *testing.T) {
	tbl := New(Column{Name: "Old Name", Type: Text})
	tbl.Rename([]string{"new_name"})
	if !strings.Contains(strings.Join(tbl.ColumnNames(), ","), "new_name") {
		t.Errorf("Rename did not apply, got %v", tbl.ColumnNames())
	}
}
