// Package judge folds per-case outcomes into job-level verdicts.
package judge

import (
	"minioj/internal/config"
	"minioj/internal/model"
)

// Aggregate merges a cases sequence (compilation pseudo-case at index 0)
// into the job-level verdict and score. The highest-priority case
// verdict wins; score is the sum of scores of accepted cases. A
// compilation error overrides everything: no cases ran.
func Aggregate(cases []model.CaseRes, prob config.Problem) (model.CaseResult, float64) {
	result := model.ResultAccepted
	score := 0.0

	for i, caseRes := range cases[1:] {
		if i >= len(prob.Cases) {
			break
		}
		if caseRes.Result.Priority() > result.Priority() {
			result = caseRes.Result
		}
		if caseRes.Result == model.ResultAccepted {
			score += prob.Cases[i].Score
		}
	}

	if cases[0].Result == model.ResultCompilationError {
		result = model.ResultCompilationError
	}
	return result, score
}
