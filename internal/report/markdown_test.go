package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dq-audit/internal/model"
)

func TestRenderSummaryHeader(t *testing.T) {
	b := NewBuilder()
	b.Section("📥 Original Data Analysis (Pre-Transformation)", 1)
	b.Check(model.CheckResult{Status: model.StatusPass, Message: "Sales data has no null values"})

	generated := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)
	doc := b.Render(generated, 21, 23)

	assert.Contains(t, doc, "# 🔍 Enhanced Data Quality & Feature Engineering Audit")
	assert.Contains(t, doc, "**Generated**: 2026-08-23 14:30:00")
	assert.Contains(t, doc, "**Total Checks**: 23")
	assert.Contains(t, doc, "**Quality Score**: 21.0 / 23")
	assert.Contains(t, doc, "**Percentage**: 91.3%")
	assert.Contains(t, doc, "✅ **Overall Quality Grade**: A (Very Good)")
	assert.Contains(t, doc, "✅ **PASS**: Sales data has no null values")
}

func TestCheckLines(t *testing.T) {
	b := NewBuilder()
	b.Check(model.CheckResult{Status: model.StatusPass, Message: "all good"})
	b.Check(model.CheckResult{Status: model.StatusWarning, Message: "borderline"})
	b.Check(model.CheckResult{Status: model.StatusFail, Message: "broken"})

	doc := b.Render(time.Now(), 1.5, 3)
	assert.Contains(t, doc, "✅ **PASS**: all good")
	assert.Contains(t, doc, "⚠️ **WARNING**: borderline")
	assert.Contains(t, doc, "❌ **FAIL**: broken")
}

func TestTable(t *testing.T) {
	b := NewBuilder()
	b.Table([]string{"Metric", "Value"}, [][]string{
		{"Total Records", "24,629"},
	})

	doc := b.Render(time.Now(), 0, 0)
	assert.Contains(t, doc, "| Metric | Value |")
	assert.Contains(t, doc, "| --- | --- |")
	assert.Contains(t, doc, "| Total Records | 24,629 |")
}

func TestGrade(t *testing.T) {
	tests := []struct {
		pct   float64
		grade string
		emoji string
	}{
		{100, "A+ (Excellent)", "🌟"},
		{95, "A+ (Excellent)", "🌟"},
		{91.3, "A (Very Good)", "✅"},
		{85, "A (Very Good)", "✅"},
		{80, "B (Good)", "👍"},
		{60, "C (Acceptable)", "⚠️"},
		{59.9, "D (Needs Improvement)", "❌"},
		{0, "D (Needs Improvement)", "❌"},
	}
	for _, tt := range tests {
		grade, emoji := Grade(tt.pct)
		assert.Equal(t, tt.grade, grade)
		assert.Equal(t, tt.emoji, emoji)
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "24,629", Comma(24629))
	assert.Equal(t, "1,500 DZD", Money(1500.4))
	assert.Equal(t, "1,501", Amount(1500.6))
	assert.Equal(t, "91.3%", Pct1(91.3043))
	assert.Equal(t, "0.01%", Pct2(0.0071))
	assert.Equal(t, "✅", MatchMark(true))
	assert.Equal(t, "❌", MatchMark(false))
}
