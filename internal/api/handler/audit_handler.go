package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"dq-audit/internal/audit"
	"dq-audit/internal/config"
	"dq-audit/internal/store"
)

var cfg *config.Config

// Init sets the configuration used for audits started through the API.
func Init(c *config.Config) {
	cfg = c
}

// CreateAudit starts a new audit run
// @Summary Start a new audit
// @Description Run the full data quality audit against the configured datasets
// @Tags audits
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Audit started"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /audits [post]
func CreateAudit(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()

	if err := store.SavePendingRun(runID); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// Run the audit asynchronously; the per-run report path and results
	// land in the store when the run finishes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		auditor := audit.New(cfg)
		run, err := auditor.Run(ctx, runID)
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
			return
		}
		if err := store.SaveRun(run); err != nil {
			store.SaveRunError(runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Audit started successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListAudits retrieves all audit runs
// @Summary List all audits
// @Description Get a list of all audit runs with their score and grade
// @Tags audits
// @Accept json
// @Produce json
// @Success 200 {array} map[string]interface{} "List of audit runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /audits [get]
func ListAudits(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch audits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetAudit retrieves a specific audit run
// @Summary Get audit
// @Description Retrieve the summary of a specific audit run
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Audit details"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Audit not found"
// @Router /audits/{id} [get]
func GetAudit(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/audits/"

	if !strings.HasPrefix(path, prefix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	runID := path[len(prefix):]
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetAuditChecks retrieves the check results of an audit run
// @Summary Get audit checks
// @Description Retrieve all check results of an audit run in report order
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Check results"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /audits/{id}/checks [get]
func GetAuditChecks(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/audits/"
	suffix := "/checks"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	results, err := store.GetCheckResults(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve checks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"checks": results,
		"count":  len(results),
	})
}

// GetAuditErrors retrieves errors for an audit run
// @Summary Get audit errors
// @Description Retrieve all errors that occurred during an audit run
// @Tags audits
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Audit errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /audits/{id}/errors [get]
func GetAuditErrors(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/audits/"
	suffix := "/errors"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": errors,
		"count":  len(errors),
	})
}

// DownloadReport serves the Markdown report of an audit run
// @Summary Download report
// @Description Download the Markdown quality report generated by an audit run
// @Tags audits
// @Accept json
// @Produce text/markdown
// @Param id path string true "Run ID"
// @Success 200 {file} file "Report download"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Report not found"
// @Router /audits/{id}/report [get]
func DownloadReport(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	prefix := "/api/v1/audits/"
	suffix := "/report"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	reportPath, err := store.GetReportPath(runID)
	if err != nil || reportPath == "" {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(reportPath); os.IsNotExist(err) {
		http.Error(w, "Report file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(reportPath)))
	w.Header().Set("Content-Type", "text/markdown")
	http.ServeFile(w, r, reportPath)
}
