package api

import (
	"dq-audit/internal/api/handler"
	"dq-audit/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/audits", handler.CreateAudit)
	r.GET("/api/v1/audits", handler.ListAudits)
	// More specific routes first
	r.GET("/api/v1/audits/*/checks", handler.GetAuditChecks)
	r.GET("/api/v1/audits/*/errors", handler.GetAuditErrors)
	r.GET("/api/v1/audits/*/report", handler.DownloadReport)
	// Generic audit route last
	r.GET("/api/v1/audits/*", handler.GetAudit)
}
