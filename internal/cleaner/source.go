// Package cleaner loads a tabular file into an in-memory table and runs a
// fixed pipeline of cleaning steps over it, accumulating a diagnostic report.
package cleaner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scrubdata/scrub/internal/table"
)

var (
	// ErrUnsupportedFormat is returned when a file extension is neither
	// csv, xlsx, nor xls.
	ErrUnsupportedFormat = errors.New("unsupported file format, expected csv, xlsx, or xls")

	// ErrInvalidInput is returned when a source carries neither a file path
	// nor a readable stream.
	ErrInvalidInput = errors.New("source must be a file path or a readable stream")
)

// Source identifies where the input table comes from. The two variants are
// PathSource and StreamSource; dispatch is explicit in Load.
type Source interface {
	isSource()
}

// PathSource is a filesystem path to a CSV or Excel file.
type PathSource string

func (PathSource) isSource() {}

// StreamSource is an already-open byte stream plus the filename that supplies
// the format extension. An empty filename is treated as CSV.
type StreamSource struct {
	Reader   io.Reader
	Filename string
}

func (StreamSource) isSource() {}

// Load reads the source into a table. The format is chosen by file extension.
// CSV streams are decoded as UTF-8 text; a leading byte-order mark is dropped.
func Load(src Source) (*table.Table, error) {
	switch s := src.(type) {
	case PathSource:
		return loadPath(string(s))
	case StreamSource:
		return loadStream(s)
	default:
		return nil, ErrInvalidInput
	}
}

func loadPath(path string) (*table.Table, error) {
	if path == "" {
		return nil, ErrInvalidInput
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return loadReader(f, extension(path))
}

func loadStream(s StreamSource) (*table.Table, error) {
	if s.Reader == nil {
		return nil, ErrInvalidInput
	}

	ext := "csv"
	if s.Filename != "" {
		ext = extension(s.Filename)
	}
	return loadReader(s.Reader, ext)
}

func loadReader(r io.Reader, ext string) (*table.Table, error) {
	switch ext {
	case "csv":
		return readCSV(r)
	case "xlsx":
		return readXLSX(r)
	case "xls":
		return readXLS(r)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedFormat, ext)
	}
}

// extension returns the lowercased file extension without the dot.
func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
