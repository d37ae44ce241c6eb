package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"dq-audit/internal/model"
)

// RenderSummary renders the terminal summary shown after a batch run:
// a banner with the score and a table of every check in report order.
func RenderSummary(run *model.RunResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Check", "Status", "Message"})
	for i, res := range run.Results {
		t.AppendRow(table.Row{i + 1, res.Name, string(res.Status), res.Message})
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString("DATA QUALITY AUDIT COMPLETED\n")
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString(t.Render() + "\n")
	sb.WriteString(fmt.Sprintf("📊 Quality Score: %.1f / %d\n", run.Score, run.TotalChecks))
	sb.WriteString(fmt.Sprintf("📈 Percentage: %.1f%%\n", run.Percentage))
	sb.WriteString(fmt.Sprintf("🏅 Grade: %s\n", run.Grade))
	sb.WriteString(fmt.Sprintf("✅ Report saved to: %s\n", run.ReportPath))
	sb.WriteString(strings.Repeat("=", 70))
	return sb.String()
}
