package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/prompt-stress/internal/config"
	"github.com/stellarlinkco/prompt-stress/internal/evaluator"
	"github.com/stellarlinkco/prompt-stress/internal/report"
	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testDataset = `{
  "name": "stress",
  "test_cases": [
    {"id": "amb-001", "category": "Ambiguity", "input": "Fix it.", "expected_behavior": "Asks what to fix"},
    {"id": "edge-001", "category": "Edge Case", "input": "", "expected_behavior": "Acknowledges empty input"},
    {"id": "edge-002", "category": "Edge Case", "input": "a", "expected_behavior": "Handles single char"}
  ]
}`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	t.Setenv("STRESS_API_KEY", "")
	t.Setenv("STRESS_DISABLE_AUTH", "true")

	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "dataset.json")
	if err := os.WriteFile(datasetPath, []byte(testDataset), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	cfg := config.Default()
	cfg.Run.Dataset = datasetPath
	cfg.Server.ReportDir = dir

	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, dir
}

func doRequest(s *Server, method, target, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestNewServerNilConfig(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewServerMissingAuthConfig(t *testing.T) {
	t.Setenv("STRESS_API_KEY", "")
	t.Setenv("STRESS_DISABLE_AUTH", "")

	if _, err := NewServer(config.Default()); err == nil {
		t.Fatalf("expected auth configuration error")
	}
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Fatalf("body: %v", body)
	}
}

func TestHandleListCases(t *testing.T) {
	s, _ := newTestServer(t)

	{
		w := doRequest(s, http.MethodGet, "/api/cases", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["total"] != float64(3) {
			t.Fatalf("total: got %v", body["total"])
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/cases?category=Edge+Case", "")
		body := decodeBody(t, w)
		if body["total"] != float64(2) {
			t.Fatalf("filtered total: got %v", body["total"])
		}
	}
	{
		// Filter matching is case-sensitive, so a lowercase name is empty.
		w := doRequest(s, http.MethodGet, "/api/cases?category=edge+case", "")
		body := decodeBody(t, w)
		if body["total"] != float64(0) {
			t.Fatalf("case-sensitive total: got %v", body["total"])
		}
	}
}

func TestHandleListCasesMissingDataset(t *testing.T) {
	s, _ := newTestServer(t)
	s.config.Run.Dataset = filepath.Join(t.TempDir(), "nope.json")

	w := doRequest(s, http.MethodGet, "/api/cases", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", w.Code)
	}
}

func TestHandleListCategories(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var body struct {
		Categories []struct {
			Name  string `json:"name"`
			Cases int    `json:"cases"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Categories) != 2 {
		t.Fatalf("categories: %+v", body.Categories)
	}
	// Sorted by name.
	if body.Categories[0].Name != "Ambiguity" || body.Categories[0].Cases != 1 {
		t.Fatalf("categories[0]: %+v", body.Categories[0])
	}
	if body.Categories[1].Name != "Edge Case" || body.Categories[1].Cases != 2 {
		t.Fatalf("categories[1]: %+v", body.Categories[1])
	}
}

func TestHandleReports(t *testing.T) {
	s, dir := newTestServer(t)

	results := []runner.Result{
		{
			TestID:    "amb-001",
			Category:  "Ambiguity",
			Input:     "Fix it.",
			Response:  "Which one?",
			LatencyMs: 100,
			Verdict:   evaluator.Pass,
			Notes:     "Asked for clarification as expected",
			Timestamp: time.Now().UTC().Truncate(time.Second),
		},
		{
			TestID:    "edge-001",
			Category:  "Edge Case",
			Input:     "",
			Response:  "ok",
			LatencyMs: 200,
			Verdict:   evaluator.NeedsReview,
			Notes:     "Requires manual review",
			Timestamp: time.Now().UTC().Truncate(time.Second),
		},
	}
	if err := report.WriteFile(filepath.Join(dir, "run1.csv"), results); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write decoy: %v", err)
	}

	{
		w := doRequest(s, http.MethodGet, "/api/reports", "")
		if w.Code != http.StatusOK {
			t.Fatalf("list status: got %d", w.Code)
		}
		var body struct {
			Reports []struct {
				Name string `json:"name"`
			} `json:"reports"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// Only CSV files are listed.
		if len(body.Reports) != 1 || body.Reports[0].Name != "run1.csv" {
			t.Fatalf("reports: %+v", body.Reports)
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/reports/run1.csv", "")
		if w.Code != http.StatusOK {
			t.Fatalf("get status: got %d (%s)", w.Code, w.Body.String())
		}
		var body struct {
			Name    string `json:"name"`
			Rows    []struct {
				TestID  string `json:"test_id"`
				Verdict string `json:"verdict"`
			} `json:"rows"`
			Summary struct {
				Total       int `json:"total"`
				Passed      int `json:"passed"`
				NeedsReview int `json:"needs_review"`
			} `json:"summary"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Name != "run1.csv" || len(body.Rows) != 2 {
			t.Fatalf("body: %+v", body)
		}
		if body.Rows[0].Verdict != "Pass" || body.Rows[1].Verdict != "NeedsReview" {
			t.Fatalf("rows: %+v", body.Rows)
		}
		if body.Summary.Total != 2 || body.Summary.Passed != 1 || body.Summary.NeedsReview != 1 {
			t.Fatalf("summary: %+v", body.Summary)
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/reports/missing.csv", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("missing report status: got %d", w.Code)
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/reports/.hidden.csv", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("dotfile status: got %d", w.Code)
		}
	}
}

func TestAPIKeyAuth(t *testing.T) {
	t.Setenv("STRESS_API_KEY", "secret")
	t.Setenv("STRESS_DISABLE_AUTH", "")

	s, err := NewServer(config.Default())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	{
		w := doRequest(s, http.MethodGet, "/api/health", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("no key status: got %d", w.Code)
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/health", "wrong")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("wrong key status: got %d", w.Code)
		}
	}
	{
		w := doRequest(s, http.MethodGet, "/api/health", "secret")
		if w.Code != http.StatusOK {
			t.Fatalf("valid key status: got %d", w.Code)
		}
	}
}
