package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"dq-audit/internal/model"
)

// Builder assembles the Markdown quality report section by section.
// Sections are appended in run order; the score summary is inserted
// right after the header when the document is rendered.
type Builder struct {
	lines []string
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Section appends a header at the given level.
func (b *Builder) Section(title string, level int) {
	prefix := strings.Repeat("#", level)
	b.lines = append(b.lines, fmt.Sprintf("\n%s %s\n", prefix, title))
}

// Line appends one raw line.
func (b *Builder) Line(content string) {
	b.lines = append(b.lines, content)
}

func (b *Builder) Linef(format string, args ...interface{}) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// Table appends a Markdown table.
func (b *Builder) Table(headers []string, rows [][]string) {
	b.lines = append(b.lines, "| "+strings.Join(headers, " | ")+" |")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	b.lines = append(b.lines, "| "+strings.Join(seps, " | ")+" |")
	for _, row := range rows {
		b.lines = append(b.lines, "| "+strings.Join(row, " | ")+" |")
	}
	b.lines = append(b.lines, "")
}

// Check appends the formatted line for one check result.
func (b *Builder) Check(res model.CheckResult) {
	switch res.Status {
	case model.StatusPass:
		b.lines = append(b.lines, fmt.Sprintf("✅ **PASS**: %s", res.Message))
	case model.StatusWarning:
		b.lines = append(b.lines, fmt.Sprintf("⚠️ **WARNING**: %s", res.Message))
	default:
		b.lines = append(b.lines, fmt.Sprintf("❌ **FAIL**: %s", res.Message))
	}
}

// Render produces the final document: title, generation timestamp, the
// score summary, then every section in insertion order.
func (b *Builder) Render(generated time.Time, score float64, total int) string {
	var out []string
	out = append(out, "\n# 🔍 Enhanced Data Quality & Feature Engineering Audit\n")
	out = append(out, fmt.Sprintf("**Generated**: %s\n", generated.Format("2006-01-02 15:04:05")))
	out = append(out, "---\n")

	pct := 0.0
	if total > 0 {
		pct = score / float64(total) * 100
	}
	grade, emoji := Grade(pct)

	out = append(out, "\n## 📋 Quality Score Summary\n")
	out = append(out, fmt.Sprintf("**Total Checks**: %d", total))
	out = append(out, fmt.Sprintf("**Quality Score**: %.1f / %d", score, total))
	out = append(out, fmt.Sprintf("**Percentage**: %.1f%%\n", pct))
	out = append(out, fmt.Sprintf("%s **Overall Quality Grade**: %s\n", emoji, grade))
	out = append(out, "---\n")

	out = append(out, b.lines...)
	return strings.Join(out, "\n")
}

// Grade maps a score percentage to the letter grade and its marker.
func Grade(pct float64) (string, string) {
	switch {
	case pct >= 95:
		return "A+ (Excellent)", "🌟"
	case pct >= 85:
		return "A (Very Good)", "✅"
	case pct >= 75:
		return "B (Good)", "👍"
	case pct >= 60:
		return "C (Acceptable)", "⚠️"
	default:
		return "D (Needs Improvement)", "❌"
	}
}

// Comma renders an integer with thousands separators.
func Comma(n int64) string {
	return humanize.Comma(n)
}

// Money renders a monetary value rounded to whole DZD with separators.
func Money(v float64) string {
	return humanize.Comma(int64(math.Round(v))) + " DZD"
}

// Amount renders a rounded numeric value with separators, no currency.
func Amount(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Pct1 renders a percentage with one decimal, Pct2 with two.
func Pct1(v float64) string { return fmt.Sprintf("%.1f%%", v) }
func Pct2(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// MatchMark renders the reconciliation match glyph.
func MatchMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
