package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the table as UTF-8 comma-separated text with a header row.
// Null cells are written as empty fields. Numeric and datetime cells use the
// same canonical rendering as CellString.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, t.NumCols())
	for ri := 0; ri < t.NumRows(); ri++ {
		for ci := range t.cols {
			record[ci] = t.CellString(ci, ri)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", ri, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
