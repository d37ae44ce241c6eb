package model

import "time"

// Status is the outcome of a single quality check.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusWarning Status = "WARNING"
)

// CheckResult represents the outcome of one named quality check.
// Results are immutable once created; report order is insertion order.
type CheckResult struct {
	Name    string  `json:"name"`
	Status  Status  `json:"status"`
	Metric  float64 `json:"metric"`
	Message string  `json:"message"`
}

// Score returns the contribution of this result to the quality score.
// Warnings count half, matching the weighting used for the report grade.
func (r CheckResult) Score() float64 {
	switch r.Status {
	case StatusPass:
		return 1
	case StatusWarning:
		return 0.5
	default:
		return 0
	}
}

// ReconciliationEntry compares row counts for one logical table across
// the flat-file export and the warehouse database.
type ReconciliationEntry struct {
	Table   string `json:"table"`
	CSVRows int64  `json:"csv_rows"`
	DBRows  int64  `json:"db_rows"`
	Match   bool   `json:"match"`
}

// RunResult summarizes a completed audit run.
type RunResult struct {
	ID          string                `json:"id"`
	Score       float64               `json:"score"`
	TotalChecks int                   `json:"total_checks"`
	Percentage  float64               `json:"percentage"`
	Grade       string                `json:"grade"`
	ReportPath  string                `json:"report_path"`
	Results     []CheckResult         `json:"results"`
	Entries     []ReconciliationEntry `json:"entries"`
	StartedAt   time.Time             `json:"started_at"`
	Duration    time.Duration         `json:"duration"`
}
