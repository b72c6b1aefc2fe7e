package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/prompt-stress/internal/dataset"
	"github.com/stellarlinkco/prompt-stress/internal/report"
	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

type categoryInfo struct {
	Name  string `json:"name"`
	Cases int    `json:"cases"`
}

type reportInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

type reportRow struct {
	TestID           string    `json:"test_id"`
	Category         string    `json:"category"`
	Input            string    `json:"input"`
	ExpectedBehavior string    `json:"expected_behavior"`
	Response         string    `json:"actual_response"`
	LatencyMs        int64     `json:"response_time_ms"`
	Verdict          string    `json:"verdict"`
	Notes            string    `json:"notes"`
	Timestamp        time.Time `json:"timestamp"`
}

type categorySummary struct {
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	NeedsReview int `json:"needs_review"`
	Total       int `json:"total"`
}

type reportSummary struct {
	Total        int                        `json:"total"`
	Passed       int                        `json:"passed"`
	Failed       int                        `json:"failed"`
	NeedsReview  int                        `json:"needs_review"`
	AvgLatencyMs float64                    `json:"avg_latency_ms"`
	Categories   map[string]categorySummary `json:"categories"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListCases(c *gin.Context) {
	d, ok := s.loadDataset(c)
	if !ok {
		return
	}

	cases := d.TestCases
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		cases = dataset.Filter(cases, dataset.ParseCategoryFilter(raw))
	}

	c.JSON(http.StatusOK, gin.H{"cases": cases, "total": len(cases)})
}

func (s *Server) handleListCategories(c *gin.Context) {
	d, ok := s.loadDataset(c)
	if !ok {
		return
	}

	names, counts := dataset.Categories(d.TestCases)
	out := make([]categoryInfo, 0, len(names))
	for _, name := range names {
		out = append(out, categoryInfo{Name: name, Cases: counts[name]})
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (s *Server) handleListReports(c *gin.Context) {
	dir := s.reportDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read report dir: " + err.Error()})
		return
	}

	out := make([]reportInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ".csv" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, reportInfo{
			Name:       entry.Name(),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	c.JSON(http.StatusOK, gin.H{"reports": out})
}

func (s *Server) handleGetReport(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report name"})
		return
	}

	path := filepath.Join(s.reportDir(), name)
	results, err := report.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := make([]reportRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, reportRow{
			TestID:           r.TestID,
			Category:         r.Category,
			Input:            r.Input,
			ExpectedBehavior: r.ExpectedBehavior,
			Response:         r.Response,
			LatencyMs:        r.LatencyMs,
			Verdict:          r.Verdict.String(),
			Notes:            r.Notes,
			Timestamp:        r.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"name":    name,
		"rows":    rows,
		"summary": toSummaryJSON(runner.Summarize(results)),
	})
}

func (s *Server) loadDataset(c *gin.Context) (*dataset.Dataset, bool) {
	path := ""
	if s != nil && s.config != nil {
		path = s.config.Run.Dataset
	}

	d, err := dataset.LoadFromFile(path)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}
	return d, true
}

func (s *Server) reportDir() string {
	if s != nil && s.config != nil && strings.TrimSpace(s.config.Server.ReportDir) != "" {
		return s.config.Server.ReportDir
	}
	return "."
}

func toSummaryJSON(s runner.Summary) reportSummary {
	out := reportSummary{
		Total:        s.Total,
		Passed:       s.Passed,
		Failed:       s.Failed,
		NeedsReview:  s.NeedsReview,
		AvgLatencyMs: s.AvgLatencyMs,
		Categories:   make(map[string]categorySummary, len(s.Categories)),
	}
	for name, cc := range s.Categories {
		out.Categories[name] = categorySummary{
			Passed:      cc.Passed,
			Failed:      cc.Failed,
			NeedsReview: cc.NeedsReview,
			Total:       cc.Total(),
		}
	}
	return out
}
