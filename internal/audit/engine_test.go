package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
)

// ds builds an in-memory dataset for check tests.
func ds(name string, columns []string, rows ...dataset.Record) *dataset.Dataset {
	return &dataset.Dataset{Name: name, Columns: columns, Rows: rows}
}

func TestRunRulesKeepsRegistryOrder(t *testing.T) {
	data := ds("t", []string{"v"})
	rules := []Rule{
		{Name: "first", Check: func(*dataset.Dataset) model.CheckResult {
			return pass(0, "ok")
		}},
		{Name: "second", Check: func(*dataset.Dataset) model.CheckResult {
			return fail(1, "bad")
		}},
	}

	results := RunRules(data, rules)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, model.StatusPass, results[0].Status)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, model.StatusFail, results[1].Status)
}

func TestRunRulesConvertsPanicToFail(t *testing.T) {
	data := ds("t", []string{"v"})
	rules := []Rule{
		{Name: "explodes", Check: func(*dataset.Dataset) model.CheckResult {
			panic("unexpected column type")
		}},
		{Name: "survives", Check: func(*dataset.Dataset) model.CheckResult {
			return pass(0, "still ran")
		}},
	}

	results := RunRules(data, rules)
	require.Len(t, results, 2)
	assert.Equal(t, model.StatusFail, results[0].Status)
	assert.Equal(t, "explodes", results[0].Name)
	assert.Contains(t, results[0].Message, "check error: unexpected column type")
	assert.Equal(t, model.StatusPass, results[1].Status)
}

func TestRecorderScoring(t *testing.T) {
	rec := NewRecorder()
	rec.Append(model.CheckResult{Status: model.StatusPass})
	rec.Append(model.CheckResult{Status: model.StatusPass})
	rec.Append(model.CheckResult{Status: model.StatusWarning})
	rec.Append(model.CheckResult{Status: model.StatusFail})

	assert.Equal(t, 4, rec.Total())
	assert.Equal(t, 2.5, rec.Score())
	assert.Equal(t, 62.5, rec.Percentage())
}

func TestRecorderEmpty(t *testing.T) {
	rec := NewRecorder()
	assert.Equal(t, 0.0, rec.Percentage())
}
