// Package table provides the in-memory, column-oriented table that the
// cleaning pipeline operates on. This package has no I/O or UI dependencies
// and can be used by any frontend.
package table

import (
	"strconv"
	"time"
)

// Type is the inferred value type of a column.
type Type int

const (
	Text Type = iota
	Numeric
	DateTime
)

// String returns the type label used in reports and JSON output.
func (t Type) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case DateTime:
		return "datetime"
	default:
		return "text"
	}
}

// Cell holds a single value. Exactly one of the value fields is meaningful,
// selected by the owning column's Type. A Cell with Null set carries no value.
type Cell struct {
	Null   bool
	Text   string
	Number float64
	Time   time.Time
}

// TextCell returns a text-valued cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// NumberCell returns a numeric-valued cell.
func NumberCell(f float64) Cell { return Cell{Number: f} }

// TimeCell returns a datetime-valued cell.
func TimeCell(t time.Time) Cell { return Cell{Time: t} }

// NullCell returns a cell with no value.
func NullCell() Cell { return Cell{Null: true} }

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Type  Type
	Cells []Cell
}

// Table is a mutable collection of equal-length columns.
// It is owned by a single caller for the duration of a cleaning run
// and is never accessed concurrently.
type Table struct {
	cols []Column
}

// New creates a table from the given columns. Columns shorter than the
// longest one are padded with null cells so all columns stay equal length.
func New(cols ...Column) *Table {
	rows := 0
	for _, c := range cols {
		if len(c.Cells) > rows {
			rows = len(c.Cells)
		}
	}
	for i := range cols {
		for len(cols[i].Cells) < rows {
			cols[i].Cells = append(cols[i].Cells, NullCell())
		}
	}
	return &Table{cols: cols}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the backing column slice. Mutations are visible to the table.
func (t *Table) Columns() []Column { return t.cols }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns a pointer to the named column, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i]
		}
	}
	return nil
}

// Rename replaces all column names. The length of names must equal NumCols.
func (t *Table) Rename(names []string) {
	for i := range t.cols {
		t.cols[i].Name = names[i]
	}
}

// DropColumns removes the named columns, preserving the order of the rest.
func (t *Table) DropColumns(names []string) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
}

// KeepRows retains only the rows where keep[i] is true.
// len(keep) must equal NumRows.
func (t *Table) KeepRows(keep []bool) {
	for ci := range t.cols {
		cells := t.cols[ci].Cells[:0]
		for ri, c := range t.cols[ci].Cells {
			if keep[ri] {
				cells = append(cells, c)
			}
		}
		t.cols[ci].Cells = cells
	}
}

// MissingCount returns the number of null cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Null {
			n++
		}
	}
	return n
}

// DistinctCount returns the number of distinct values in the column.
// Null counts as one distinct value.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, cell := range c.Cells {
		seen[formatCell(cell, c.Type)] = struct{}{}
	}
	return len(seen)
}

// RowKey returns a canonical string for the given row, suitable for exact
// duplicate detection across all columns.
func (t *Table) RowKey(row int) string {
	key := make([]byte, 0, 64)
	for _, c := range t.cols {
		key = append(key, formatCell(c.Cells[row], c.Type)...)
		key = append(key, 0x1f) // unit separator, cannot appear in parsed values
	}
	return string(key)
}

// CellString returns the display string for the cell at (col, row).
// Null cells render as the empty string.
func (t *Table) CellString(col, row int) string {
	c := t.cols[col]
	cell := c.Cells[row]
	if cell.Null {
		return ""
	}
	return formatCell(cell, c.Type)
}

// formatCell renders a cell canonically for its column type.
func formatCell(cell Cell, typ Type) string {
	if cell.Null {
		return "\x00null"
	}
	switch typ {
	case Numeric:
		return strconv.FormatFloat(cell.Number, 'g', -1, 64)
	case DateTime:
		if cell.Time.Hour() == 0 && cell.Time.Minute() == 0 &&
			cell.Time.Second() == 0 && cell.Time.Nanosecond() == 0 {
			return cell.Time.Format("2006-01-02")
		}
		return cell.Time.Format(time.RFC3339)
	default:
		return cell.Text
	}
}
