package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

const bannerWidth = 60

// PrintSummary writes the aggregate and per-category breakdown of a run.
// Pass, Fail, and NeedsReview are three distinct buckets; a review never
// counts toward passed or failed.
func PrintSummary(w io.Writer, s runner.Summary) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "TEST SUMMARY")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Total tests:     %d\n", s.Total)
	fmt.Fprintf(w, "Passed:          %d (%s)\n", s.Passed, percent(s.Passed, s.Total))
	fmt.Fprintf(w, "Failed:          %d (%s)\n", s.Failed, percent(s.Failed, s.Total))
	fmt.Fprintf(w, "Manual review:   %d (%s)\n", s.NeedsReview, percent(s.NeedsReview, s.Total))
	fmt.Fprintf(w, "Avg response:    %.0fms\n", s.AvgLatencyMs)
	fmt.Fprintln(w, banner)

	if len(s.Categories) == 0 {
		return
	}

	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nBy Category:")
	for _, name := range names {
		cc := s.Categories[name]
		fmt.Fprintf(w, "  %s: %d/%d passed, %d failed, %d review\n",
			name, cc.Passed, cc.Total(), cc.Failed, cc.NeedsReview)
	}
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
