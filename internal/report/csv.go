package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/stellarlinkco/prompt-stress/internal/evaluator"
	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

// Header is the fixed column order of a stress report.
var Header = []string{
	"test_id", "category", "input", "expected_behavior",
	"actual_response", "response_time_ms", "passed", "notes", "timestamp",
}

// Write serializes results as CSV, one row per result in run order.
// A NeedsReview verdict serializes as an empty passed field.
func Write(w io.Writer, results []runner.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.TestID,
			r.Category,
			r.Input,
			r.ExpectedBehavior,
			r.Response,
			strconv.FormatInt(r.LatencyMs, 10),
			verdictCell(r.Verdict),
			r.Notes,
			r.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write row %q: %w", r.TestID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return nil
}

// WriteFile writes the report to path as UTF-8 CSV.
func WriteFile(path string, results []runner.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", path, err)
	}

	if err := Write(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %q: %w", path, err)
	}
	return nil
}

// Read parses a report back into results.
func Read(r io.Reader) ([]runner.Result, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("report: read header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("report: unexpected header (%d columns, want %d)", len(header), len(Header))
	}

	var out []runner.Result
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report: read line %d: %w", line, err)
		}

		res, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("report: line %d: %w", line, err)
		}
		out = append(out, res)
	}
	return out, nil
}

// ReadFile parses the report file at path.
func ReadFile(path string) ([]runner.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: open %q: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func fromRow(row []string) (runner.Result, error) {
	if len(row) != len(Header) {
		return runner.Result{}, fmt.Errorf("unexpected column count %d", len(row))
	}

	latency, err := strconv.ParseInt(row[5], 10, 64)
	if err != nil {
		return runner.Result{}, fmt.Errorf("response_time_ms %q: %w", row[5], err)
	}

	verdict, ok := evaluator.ParseVerdict(row[6])
	if !ok {
		return runner.Result{}, fmt.Errorf("unknown verdict %q", row[6])
	}

	ts, err := time.Parse(time.RFC3339, row[8])
	if err != nil {
		return runner.Result{}, fmt.Errorf("timestamp %q: %w", row[8], err)
	}

	return runner.Result{
		TestID:           row[0],
		Category:         row[1],
		Input:            row[2],
		ExpectedBehavior: row[3],
		Response:         row[4],
		LatencyMs:        latency,
		Verdict:          verdict,
		Notes:            row[7],
		Timestamp:        ts,
	}, nil
}

func verdictCell(v evaluator.Verdict) string {
	if v == evaluator.NeedsReview {
		return ""
	}
	return v.String()
}
