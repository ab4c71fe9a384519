package cleaner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/scrubdata/scrub/internal/table"
)

// emptyThreshold is the missing-value fraction above which a column is
// dropped, and the non-missing fraction below which a row is dropped.
const emptyThreshold = 0.7

var nonWordRe = regexp.MustCompile(`\W`)

// Cleaner owns one table and one report for the duration of a run.
// It is synchronous and must not be shared across goroutines.
type Cleaner struct {
	tbl    *table.Table
	report *Report
}

// New loads the source and seeds the report with the original row and column
// counts. Load failures propagate to the caller unmodified.
func New(src Source) (*Cleaner, error) {
	tbl, err := Load(src)
	if err != nil {
		return nil, err
	}
	return FromTable(tbl), nil
}

// FromTable wraps an already-built table in a Cleaner. Useful when the table
// comes from somewhere other than a file.
func FromTable(tbl *table.Table) *Cleaner {
	return &Cleaner{
		tbl:    tbl,
		report: newReport(tbl.NumRows(), tbl.NumCols()),
	}
}

// Table returns the current table.
func (c *Cleaner) Table() *table.Table { return c.tbl }

// Report returns the accumulated report.
func (c *Cleaner) Report() *Report { return c.report }

// AutoClean executes every cleaning step in fixed order and returns the final
// table and report. Each step mutates the table in place and appends to the
// report; per-column coercion failures are recorded, never raised.
func (c *Cleaner) AutoClean() (*table.Table, *Report) {
	c.CleanHeaders()
	c.DropEmpty()
	c.HandleDuplicates()
	c.TrimValues()
	c.FixTypes()
	c.FillMissing()
	c.DropConstant()
	return c.tbl, c.report
}

// CleanHeaders normalizes every column name: trim, lowercase, spaces to
// underscores, and any remaining non-word characters stripped. Idempotent.
func (c *Cleaner) CleanHeaders() {
	names := c.tbl.ColumnNames()
	for i, name := range names {
		names[i] = normalizeHeader(name)
	}
	c.tbl.Rename(names)
	c.report.RenamedColumns = append([]string{}, names...)
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	return nonWordRe.ReplaceAllString(name, "")
}

// DropEmpty removes columns whose missing-value fraction exceeds the
// threshold, then rows whose non-missing count falls below the threshold
// fraction of the remaining column count.
func (c *Cleaner) DropEmpty() {
	rows := c.tbl.NumRows()

	dropped := []string{}
	if rows > 0 {
		for _, col := range c.tbl.Columns() {
			if float64(col.MissingCount())/float64(rows) > emptyThreshold {
				dropped = append(dropped, col.Name)
			}
		}
	}
	c.tbl.DropColumns(dropped)
	c.report.DroppedCols = dropped

	minNonMissing := emptyThreshold * float64(c.tbl.NumCols())
	keep := make([]bool, c.tbl.NumRows())
	for ri := range keep {
		nonMissing := 0
		for _, col := range c.tbl.Columns() {
			if !col.Cells[ri].Null {
				nonMissing++
			}
		}
		keep[ri] = float64(nonMissing) >= minNonMissing
	}
	c.tbl.KeepRows(keep)
	c.report.RemainingRows = c.tbl.NumRows()
}

// HandleDuplicates removes exact full-row duplicates, keeping the first
// occurrence, and records how many rows were dropped.
func (c *Cleaner) HandleDuplicates() {
	rows := c.tbl.NumRows()
	seen := make(map[string]struct{}, rows)
	keep := make([]bool, rows)
	removed := 0

	for ri := 0; ri < rows; ri++ {
		key := c.tbl.RowKey(ri)
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		keep[ri] = true
	}

	c.tbl.KeepRows(keep)
	c.report.DuplicatesRemoved = removed
}

// TrimValues strips leading and trailing whitespace from every text column.
// The report always holds the fresh list of text columns touched on this run.
func (c *Cleaner) TrimValues() {
	trimmed := []string{}
	for i := range c.tbl.Columns() {
		col := &c.tbl.Columns()[i]
		if col.Type != table.Text {
			continue
		}
		for ci := range col.Cells {
			if !col.Cells[ci].Null {
				col.Cells[ci].Text = strings.TrimSpace(col.Cells[ci].Text)
			}
		}
		trimmed = append(trimmed, col.Name)
	}
	c.report.TrimmedColumns = trimmed
}

// FixTypes attempts to coerce every text column, first to datetime, then to
// numeric. Coercion is all-or-nothing per column: one unparseable non-null
// value rejects the conversion and the column stays text. Nulls survive
// conversion as nulls; columns with no values at all are left alone.
func (c *Cleaner) FixTypes() {
	for i := range c.tbl.Columns() {
		col := &c.tbl.Columns()[i]
		if col.Type != table.Text {
			continue
		}
		if col.MissingCount() == len(col.Cells) {
			continue
		}

		if cells, ok := coerceDateTime(col.Cells); ok {
			col.Cells = cells
			col.Type = table.DateTime
			c.report.ConvertedToDatetime = append(c.report.ConvertedToDatetime, col.Name)
			continue
		}
		if cells, ok := coerceNumeric(col.Cells); ok {
			col.Cells = cells
			col.Type = table.Numeric
			c.report.ConvertedToNumeric = append(c.report.ConvertedToNumeric, col.Name)
		}
	}
}

func coerceDateTime(cells []table.Cell) ([]table.Cell, bool) {
	out := make([]table.Cell, len(cells))
	for i, cell := range cells {
		if cell.Null {
			out[i] = table.NullCell()
			continue
		}
		t, ok := parseDateTime(cell.Text)
		if !ok {
			return nil, false
		}
		out[i] = table.TimeCell(t)
	}
	return out, true
}

func coerceNumeric(cells []table.Cell) ([]table.Cell, bool) {
	out := make([]table.Cell, len(cells))
	for i, cell := range cells {
		if cell.Null {
			out[i] = table.NullCell()
			continue
		}
		f, ok := parseNumeric(cell.Text)
		if !ok {
			return nil, false
		}
		out[i] = table.NumberCell(f)
	}
	return out, true
}

// FillMissing imputes every column that has at least one missing value:
// numeric columns take the median, all others the most frequent value with
// ties broken by first occurrence. Columns that are entirely null are left
// untouched since there is nothing to impute from.
func (c *Cleaner) FillMissing() {
	for i := range c.tbl.Columns() {
		col := &c.tbl.Columns()[i]
		missing := col.MissingCount()
		if missing == 0 || missing == len(col.Cells) {
			continue
		}

		var fill table.Cell
		if col.Type == table.Numeric {
			fill = table.NumberCell(columnMedian(col))
		} else {
			fill = columnMode(col)
		}

		for ci := range col.Cells {
			if col.Cells[ci].Null {
				col.Cells[ci] = fill
			}
		}
		c.report.ImputedCols[col.Name] = col.Type.String()
	}
}

// columnMedian returns the median of the non-null values, interpolating
// between the two middle values for even counts.
func columnMedian(col *table.Column) float64 {
	vals := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if !cell.Null {
			vals = append(vals, cell.Number)
		}
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}

// columnMode returns the most frequent non-null cell, breaking ties in favor
// of the value that appears first in the column.
func columnMode(col *table.Column) table.Cell {
	type entry struct {
		count int
		first int
	}
	counts := make(map[string]*entry)
	for i, cell := range col.Cells {
		if cell.Null {
			continue
		}
		k := cellKey(cell, col.Type)
		if e, ok := counts[k]; ok {
			e.count++
		} else {
			counts[k] = &entry{count: 1, first: i}
		}
	}

	var best *entry
	for _, e := range counts {
		if best == nil || e.count > best.count ||
			(e.count == best.count && e.first < best.first) {
			best = e
		}
	}
	return col.Cells[best.first]
}

func cellKey(cell table.Cell, typ table.Type) string {
	switch typ {
	case table.Numeric:
		return "n:" + strconv.FormatFloat(cell.Number, 'g', -1, 64)
	case table.DateTime:
		return "t:" + cell.Time.UTC().Format(time.RFC3339Nano)
	default:
		return "s:" + cell.Text
	}
}

// DropConstant removes every column with exactly one distinct value,
// counting null as a value of its own. Single-row tables are left alone:
// every column there is trivially constant and dropping them all would
// throw away the data.
func (c *Cleaner) DropConstant() {
	constant := []string{}
	if c.tbl.NumRows() > 1 {
		for _, col := range c.tbl.Columns() {
			if col.DistinctCount() == 1 {
				constant = append(constant, col.Name)
			}
		}
	}
	c.tbl.DropColumns(constant)
	c.report.ConstantColsRemoved = constant
}
