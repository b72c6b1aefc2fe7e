package runner

import (
	"time"

	"github.com/stellarlinkco/prompt-stress/internal/evaluator"
)

// Result records the outcome of one executed test case. Every case
// submitted to the runner yields exactly one Result, backend failure
// included, and the category is copied from the case unmodified.
type Result struct {
	TestID           string
	Category         string
	Input            string
	ExpectedBehavior string
	Response         string
	LatencyMs        int64
	Verdict          evaluator.Verdict
	Notes            string
	Timestamp        time.Time
}

// Summary aggregates a finished run. It is derived from the results on
// demand and never stored.
type Summary struct {
	Total        int
	Passed       int
	Failed       int
	NeedsReview  int
	AvgLatencyMs float64
	Categories   map[string]CategoryCount
}

// CategoryCount is the verdict breakdown for one category.
type CategoryCount struct {
	Passed      int
	Failed      int
	NeedsReview int
}

// Total returns the number of cases counted for the category.
func (c CategoryCount) Total() int {
	return c.Passed + c.Failed + c.NeedsReview
}

// Summarize computes a Summary from a result collection. Average latency is
// 0 for an empty run.
func Summarize(results []Result) Summary {
	s := Summary{
		Total:      len(results),
		Categories: make(map[string]CategoryCount),
	}

	var latencySum int64
	for _, r := range results {
		cc := s.Categories[r.Category]
		switch r.Verdict {
		case evaluator.Pass:
			s.Passed++
			cc.Passed++
		case evaluator.Fail:
			s.Failed++
			cc.Failed++
		default:
			s.NeedsReview++
			cc.NeedsReview++
		}
		s.Categories[r.Category] = cc
		latencySum += r.LatencyMs
	}

	if s.Total > 0 {
		s.AvgLatencyMs = float64(latencySum) / float64(s.Total)
	}
	return s
}
