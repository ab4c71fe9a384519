package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/scrubdata/scrub/internal/cleaner"
	"github.com/scrubdata/scrub/internal/logging"
	"github.com/scrubdata/scrub/internal/table"
)

var errResultNotFound = errors.New("result not found")

// ColumnSummary describes one column of a cleaned table.
type ColumnSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CleanResponse is the JSON body returned after a cleaning run, and by the
// result lookup endpoint.
type CleanResponse struct {
	ResultID string          `json:"result_id"`
	Filename string          `json:"filename"`
	Rows     int             `json:"rows"`
	Columns  []ColumnSummary `json:"columns"`
	Report   *cleaner.Report `json:"report"`
	Preview  [][]string      `json:"preview"`
}

// handleClean accepts a multipart file upload, runs the full cleaning
// pipeline on it, stores the result for later download, and returns the
// report plus a preview of the cleaned rows.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, fmt.Errorf("file too large or invalid form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	logger := logging.FromContext(r.Context())
	start := time.Now()

	cl, err := cleaner.New(cleaner.StreamSource{Reader: file, Filename: header.Filename})
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	tbl, report := cl.AutoClean()

	resultID := s.store.Put(&Result{
		Filename: header.Filename,
		Table:    tbl,
		Report:   report,
	})

	logger.Info("cleaned upload",
		"filename", header.Filename,
		"result_id", resultID,
		"rows_in", report.OriginalRows,
		"cols_in", report.OriginalCols,
		"rows_out", tbl.NumRows(),
		"cols_out", tbl.NumCols(),
		"duplicates_removed", report.DuplicatesRemoved,
		"duration", time.Since(start),
	)

	render.JSON(w, r, s.cleanResponse(resultID, header.Filename, tbl, report))
}

// handleResult returns the report and preview for a prior cleaning run.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "resultID"))
	if !ok {
		respondError(w, r, errResultNotFound, http.StatusNotFound)
		return
	}

	render.JSON(w, r, s.cleanResponse(res.ID, res.Filename, res.Table, res.Report))
}

// handleDownload streams the cleaned table back as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	res, ok := s.store.Get(chi.URLParam(r, "resultID"))
	if !ok {
		respondError(w, r, errResultNotFound, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", downloadName(res.Filename)))

	if err := res.Table.WriteCSV(w); err != nil {
		// Headers are already sent; log and give up on this response.
		logging.FromContext(r.Context()).Error("csv export failed",
			"result_id", res.ID, "error", err)
	}
}

// cleanResponse assembles the shared response body for clean and result
// lookups, capping the inline preview at the configured row count.
func (s *Server) cleanResponse(id, filename string, tbl *table.Table, report *cleaner.Report) CleanResponse {
	cols := make([]ColumnSummary, tbl.NumCols())
	for i, c := range tbl.Columns() {
		cols[i] = ColumnSummary{Name: c.Name, Type: c.Type.String()}
	}

	previewRows := tbl.NumRows()
	if previewRows > s.cfg.Upload.PreviewRows {
		previewRows = s.cfg.Upload.PreviewRows
	}
	preview := make([][]string, previewRows)
	for ri := 0; ri < previewRows; ri++ {
		row := make([]string, tbl.NumCols())
		for ci := range row {
			row[ci] = tbl.CellString(ci, ri)
		}
		preview[ri] = row
	}

	return CleanResponse{
		ResultID: id,
		Filename: filename,
		Rows:     tbl.NumRows(),
		Columns:  cols,
		Report:   report,
		Preview:  preview,
	}
}

// downloadName builds a safe attachment filename from the uploaded one:
// base name only, original extension swapped for .csv.
func downloadName(uploaded string) string {
	base := filepath.Base(uploaded)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "data"
	}
	return "cleaned_" + base + ".csv"
}
