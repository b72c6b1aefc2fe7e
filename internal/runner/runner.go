package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/stellarlinkco/prompt-stress/internal/dataset"
	"github.com/stellarlinkco/prompt-stress/internal/evaluator"
	"github.com/stellarlinkco/prompt-stress/internal/llm"
)

// Runner drives test cases through a backend and the evaluator, strictly in
// order and one at a time, pausing a fixed delay between calls.
type Runner struct {
	backend  llm.Backend
	delay    time.Duration
	progress io.Writer // nil suppresses per-case progress lines

	now func() time.Time
}

// New creates a Runner. A nil progress writer runs quietly.
func New(backend llm.Backend, delay time.Duration, progress io.Writer) *Runner {
	if delay < 0 {
		delay = 0
	}
	return &Runner{
		backend:  backend,
		delay:    delay,
		progress: progress,
		now:      time.Now,
	}
}

// Run executes every test case in order and returns one Result per case.
// A backend failure on a single call is contained: the case is recorded as
// Fail with a diagnostic note and the run continues. The returned error is
// non-nil only when the context is canceled, and the results accumulated so
// far are still returned alongside it.
func (r *Runner) Run(ctx context.Context, cases []dataset.TestCase) ([]Result, error) {
	if r == nil {
		return nil, errors.New("runner: nil runner")
	}
	if r.backend == nil {
		return nil, errors.New("runner: nil backend")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	total := len(cases)
	results := make([]Result, 0, total)

	for i, tc := range cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if r.progress != nil {
			fmt.Fprintf(r.progress, "\n[%d/%d] Running: %s (%s)\n", i+1, total, tc.ID, tc.Category)
			fmt.Fprintf(r.progress, "  Input: %s...\n", truncate(tc.Input, 60))
		}

		results = append(results, r.runCase(ctx, tc))

		// Fixed-rate limiting between calls, skipped after the last case.
		if i < total-1 {
			if err := sleepWithContext(ctx, r.delay); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}

func (r *Runner) runCase(ctx context.Context, tc dataset.TestCase) Result {
	res := Result{
		TestID:           tc.ID,
		Category:         tc.Category,
		Input:            tc.Input,
		ExpectedBehavior: tc.ExpectedBehavior,
	}

	reply, err := r.backend.Call(ctx, tc.Input)
	switch {
	case err != nil:
		res.Response = "ERROR: " + err.Error()
		res.LatencyMs = 0
		res.Verdict = evaluator.Fail
		res.Notes = fmt.Sprintf("Error during API call: %T", err)

		if r.progress != nil {
			fmt.Fprintf(r.progress, "  ERROR: %v\n", err)
		}
	case reply == nil:
		res.Response = "ERROR: backend returned no reply"
		res.Verdict = evaluator.Fail
		res.Notes = "Error during API call: empty reply"

		if r.progress != nil {
			fmt.Fprintf(r.progress, "  ERROR: backend returned no reply\n")
		}
	default:
		verdict, notes := evaluator.Evaluate(&tc, reply.Text)
		res.Response = reply.Text
		res.LatencyMs = reply.LatencyMs
		res.Verdict = verdict
		res.Notes = notes

		if r.progress != nil {
			fmt.Fprintf(r.progress, "  Status: %s (%dms)\n", statusLabel(verdict), reply.LatencyMs)
			fmt.Fprintf(r.progress, "  Notes: %s\n", notes)
		}
	}

	res.Timestamp = r.now()
	return res
}

func statusLabel(v evaluator.Verdict) string {
	switch v {
	case evaluator.Pass:
		return "PASS"
	case evaluator.Fail:
		return "FAIL"
	default:
		return "REVIEW"
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
