package cleaner

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/scrubdata/scrub/internal/table"
)

// maxSheetRows caps how many rows are pulled from a legacy xls sheet.
const maxSheetRows = 1 << 20

func readCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, tabulate pads/truncates

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return tabulate(records)
}

func readXLSX(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return tabulate(rows)
}

func readXLS(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return tabulate(wb.ReadAllCells(maxSheetRows))
}

// tabulate turns raw records into a table. The first record is the header;
// every column starts as text. Empty cells become nulls, short rows are
// padded with nulls, and cells beyond the header width are dropped.
func tabulate(records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, errors.New("empty file: no header row")
	}

	header := records[0]
	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{
			Name:  cleanCell(stripBOM(h)),
			Type:  table.Text,
			Cells: make([]table.Cell, 0, len(records)-1),
		}
	}

	for _, record := range records[1:] {
		for i := range cols {
			if i >= len(record) {
				cols[i].Cells = append(cols[i].Cells, table.NullCell())
				continue
			}
			v := cleanCell(record[i])
			if v == "" {
				cols[i].Cells = append(cols[i].Cells, table.NullCell())
			} else {
				cols[i].Cells = append(cols[i].Cells, table.TextCell(v))
			}
		}
	}

	return table.New(cols...), nil
}

// cleanCell removes common spreadsheet artifacts from a raw cell:
// surrounding whitespace and the Excel formula wrapper (="value").
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// stripBOM drops a leading UTF-8 byte-order mark, common in CSVs exported
// from Excel.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
