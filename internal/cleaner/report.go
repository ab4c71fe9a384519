package cleaner

// Report accumulates per-step diagnostics across a cleaning run. Every field
// is written exactly once by its owning step, except TrimmedColumns, which is
// recomputed fresh each time the trim step runs. No step reads another step's
// entries; ordering dependencies flow only through the table.
type Report struct {
	OriginalRows        int               `json:"original_rows"`
	OriginalCols        int               `json:"original_cols"`
	RenamedColumns      []string          `json:"renamed_columns"`
	DroppedCols         []string          `json:"dropped_cols"`
	RemainingRows       int               `json:"remaining_rows"`
	DuplicatesRemoved   int               `json:"duplicates_removed"`
	TrimmedColumns      []string          `json:"trimmed_columns"`
	ConvertedToDatetime []string          `json:"converted_to_datetime"`
	ConvertedToNumeric  []string          `json:"converted_to_numeric"`
	ImputedCols         map[string]string `json:"imputed_cols"`
	ConstantColsRemoved []string          `json:"constant_cols_removed"`
}

// newReport seeds a report so every key marshals even when a step had
// nothing to record.
func newReport(rows, cols int) *Report {
	return &Report{
		OriginalRows:        rows,
		OriginalCols:        cols,
		RenamedColumns:      []string{},
		DroppedCols:         []string{},
		TrimmedColumns:      []string{},
		ConvertedToDatetime: []string{},
		ConvertedToNumeric:  []string{},
		ImputedCols:         map[string]string{},
		ConstantColsRemoved: []string{},
	}
}
