package audit

import (
	"fmt"

	"dq-audit/internal/model"
)

// Recorder is the append-only ordered list of check results for one run.
// Report order is exactly insertion order.
type Recorder struct {
	results []model.CheckResult
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Append(res model.CheckResult) {
	r.results = append(r.results, res)
}

func (r *Recorder) Results() []model.CheckResult {
	return r.results
}

func (r *Recorder) Total() int {
	return len(r.results)
}

// Score sums the pass-equivalent weight of every result
// (pass = 1, warning = 0.5, fail = 0).
func (r *Recorder) Score() float64 {
	score := 0.0
	for _, res := range r.results {
		score += res.Score()
	}
	return score
}

func (r *Recorder) Percentage() float64 {
	if len(r.results) == 0 {
		return 0
	}
	return r.Score() / float64(len(r.results)) * 100
}

// pass, warn and fail build results without a name; the engine or the
// calling stage fills the name in.
func pass(metric float64, format string, args ...interface{}) model.CheckResult {
	return model.CheckResult{Status: model.StatusPass, Metric: metric, Message: fmt.Sprintf(format, args...)}
}

func warn(metric float64, format string, args ...interface{}) model.CheckResult {
	return model.CheckResult{Status: model.StatusWarning, Metric: metric, Message: fmt.Sprintf(format, args...)}
}

func fail(metric float64, format string, args ...interface{}) model.CheckResult {
	return model.CheckResult{Status: model.StatusFail, Metric: metric, Message: fmt.Sprintf(format, args...)}
}
