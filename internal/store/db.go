package store

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"dq-audit/internal/model"
)

var db *sql.DB

// InitDB opens the run-history database and creates its tables.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS audit_runs (
		id TEXT PRIMARY KEY,
		status TEXT,
		score REAL,
		total_checks INTEGER,
		percentage REAL,
		grade TEXT,
		report_path TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS check_results (
		run_id TEXT,
		seq INTEGER,
		name TEXT,
		status TEXT,
		metric REAL,
		message TEXT,
		PRIMARY KEY (run_id, seq)
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, resultTable, errorTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SavePendingRun registers a run before it starts executing.
func SavePendingRun(runID string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO audit_runs (id, status, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		runID, "pending", now, now)
	return err
}

// SaveRun persists a completed run and its ordered check results.
func SaveRun(run *model.RunResult) error {
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO audit_runs (id, status, score, total_checks, percentage, grade, report_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			score = excluded.score,
			total_checks = excluded.total_checks,
			percentage = excluded.percentage,
			grade = excluded.grade,
			report_path = excluded.report_path,
			updated_at = excluded.updated_at`,
		run.ID, "completed", run.Score, run.TotalChecks, run.Percentage, run.Grade, run.ReportPath, run.StartedAt.UTC(), now)
	if err != nil {
		return err
	}

	for i, res := range run.Results {
		_, err := db.Exec(`
			INSERT OR REPLACE INTO check_results (run_id, seq, name, status, metric, message)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, res.Name, string(res.Status), res.Metric, res.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

// UpdateRunStatus updates run status.
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE audit_runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// ListRuns returns all runs with summary info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`
		SELECT id, status, COALESCE(score, 0), COALESCE(total_checks, 0),
		       COALESCE(percentage, 0), COALESCE(grade, ''), created_at, updated_at
		FROM audit_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status, grade string
		var score, percentage float64
		var totalChecks int
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &score, &totalChecks, &percentage, &grade, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":          id,
			"status":      status,
			"score":       score,
			"totalChecks": totalChecks,
			"percentage":  percentage,
			"grade":       grade,
			"createdAt":   createdAt,
			"updatedAt":   updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches one run with its summary fields.
func GetRun(runID string) (map[string]interface{}, error) {
	var status, grade, reportPath sql.NullString
	var score, percentage sql.NullFloat64
	var totalChecks sql.NullInt64
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`
		SELECT status, score, total_checks, percentage, grade, report_path, created_at, updated_at
		FROM audit_runs WHERE id = ?`, runID).
		Scan(&status, &score, &totalChecks, &percentage, &grade, &reportPath, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":          runID,
		"status":      status.String,
		"score":       score.Float64,
		"totalChecks": totalChecks.Int64,
		"percentage":  percentage.Float64,
		"grade":       grade.String,
		"reportPath":  reportPath.String,
		"createdAt":   createdAt,
		"updatedAt":   updatedAt,
	}, nil
}

// GetReportPath returns the stored report location for a run.
func GetReportPath(runID string) (string, error) {
	var path sql.NullString
	err := db.QueryRow(`SELECT report_path FROM audit_runs WHERE id = ?`, runID).Scan(&path)
	if err != nil {
		return "", err
	}
	return path.String, nil
}

// GetCheckResults returns a run's check results in report order.
func GetCheckResults(runID string) ([]model.CheckResult, error) {
	rows, err := db.Query(`
		SELECT name, status, metric, message FROM check_results
		WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.CheckResult
	for rows.Next() {
		var res model.CheckResult
		var status string
		if err := rows.Scan(&res.Name, &status, &res.Metric, &res.Message); err != nil {
			return nil, err
		}
		res.Status = model.Status(status)
		results = append(results, res)
	}
	return results, rows.Err()
}

// GetRunErrors returns the errors recorded for a run.
func GetRunErrors(runID string) ([]string, error) {
	rows, err := db.Query(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		errs = append(errs, msg)
	}
	return errs, rows.Err()
}
