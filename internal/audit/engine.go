package audit

import (
	"fmt"

	"dq-audit/internal/dataset"
	"dq-audit/internal/model"
)

// Rule is one named quality check over a single dataset. Check functions
// must be pure: no side effects, deterministic for identical input.
type Rule struct {
	Name  string
	Check func(ds *dataset.Dataset) model.CheckResult
}

// RunRules executes every rule in registry order. A rule that panics on
// malformed data is converted to a Fail result carrying the diagnostic;
// the remaining rules still run.
func RunRules(ds *dataset.Dataset, rules []Rule) []model.CheckResult {
	results := make([]model.CheckResult, 0, len(rules))
	for _, rule := range rules {
		results = append(results, runRule(ds, rule))
	}
	return results
}

func runRule(ds *dataset.Dataset, rule Rule) model.CheckResult {
	res := capture(rule.Name, func() model.CheckResult {
		return rule.Check(ds)
	})
	return res
}

// capture runs one check, converting a panic into a Fail result so a
// single data error never aborts the run.
func capture(name string, fn func() model.CheckResult) (res model.CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			res = model.CheckResult{
				Name:    name,
				Status:  model.StatusFail,
				Message: fmt.Sprintf("check error: %v", p),
			}
		}
	}()
	res = fn()
	res.Name = name
	return res
}
