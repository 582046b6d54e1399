package model

import "time"

// Status values of a FileResult.
const (
	StatusFilled  = "filled"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// FileResult is the outcome of building one output variant from one raw
// extract, or of writing one combined workbook.
type FileResult struct {
	File     string        `json:"file"`
	Table    int           `json:"table,omitempty"`
	Variant  Variant       `json:"variant,omitempty"`
	Output   string        `json:"output,omitempty"`
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunReport aggregates everything one batch run attempted. A run that hit
// per-file errors still carries a complete report; only failures outside
// the per-file loop abort a run.
type RunReport struct {
	RunID     string        `json:"runId"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Filled    int           `json:"filled"`
	Skipped   int           `json:"skipped"`
	Errors    int           `json:"errors"`
	Results   []FileResult  `json:"results"`
}

// Add records one result and keeps the counters in step.
func (r *RunReport) Add(res FileResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusFilled:
		r.Filled++
	case StatusSkipped:
		r.Skipped++
	case StatusError:
		r.Errors++
	}
}
