package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hirescore/internal/config"
	"hirescore/internal/errors"
	"hirescore/internal/observability"
	"hirescore/internal/types"
)

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger := errors.NewLogger(slog.LevelError)

	appCfg := &config.Config{
		App: config.AppConfig{
			LogLevel:    "error",
			MaxFileSize: 1 << 20,
		},
		Observability: config.ObservabilityConfig{
			HealthCheck: config.HealthCheckConfig{Timeout: 5 * time.Second},
		},
	}

	s := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "8080",
		Version:        "test",
		MaxRequestSize: 1 << 20,
	}, logger)

	store, err := NewLexiconStore("", logger)
	if err != nil {
		t.Fatalf("NewLexiconStore failed: %v", err)
	}
	s.Lexicon = store

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, appCfg)
	if err != nil {
		t.Fatalf("NewObservabilityManager failed: %v", err)
	}

	return s, om
}

func postJSON(t *testing.T, mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestTranscriptEndpoint(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	body := `{"transcript": "I led the migration project and communicated weekly with stakeholders. For example, we cut deployment time by 40% because we automated the release pipeline."}`
	rec := postJSON(t, mux, "/transcript", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.TranscriptResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.AnalysisMethod != types.AnalysisComprehensive {
		t.Errorf("expected comprehensive analysis, got %q", result.AnalysisMethod)
	}
	if result.OverallScore <= 0 {
		t.Errorf("expected positive overall score, got %v", result.OverallScore)
	}
}

func TestTranscriptEndpointMissingField(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	rec := postJSON(t, mux, "/transcript", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error != "Missing transcript" {
		t.Errorf("unexpected error: %q", errResp.Error)
	}
}

func TestTranscriptEndpointRequiresJSONContentType(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	req := httptest.NewRequest(http.MethodPost, "/transcript", strings.NewReader(`{"transcript": "hello"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestBreakdownEndpoint(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	body := `{"transcript": "I love collaborative teams and I solved a difficult scaling problem by redesigning the cache layer, which improved latency by 30%."}`
	rec := postJSON(t, mux, "/breakdown", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.AnalysisBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.SentimentAnalysis.SentimentLabel == "" {
		t.Error("expected a sentiment label in the breakdown")
	}
}

func TestScoreEndpointKeywordFallback(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	// No API key configured, so scoring must degrade to keyword matching
	body := `{"resumeText": "Senior engineer with five years of Python and Docker experience.", "requiredSkills": [{"skill": "Python"}, {"skill": "Kubernetes"}]}`
	rec := postJSON(t, mux, "/score", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.ATSResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Method != types.MethodFallback {
		t.Errorf("expected fallback method, got %q", result.Method)
	}
	if len(result.MissingSkills) != 1 || result.MissingSkills[0] != "Kubernetes" {
		t.Errorf("expected Kubernetes reported missing, got %v", result.MissingSkills)
	}
}

func TestScoreEndpointMissingResume(t *testing.T) {
	s, om := newTestServer(t)
	mux := s.setupRoutes(om)

	rec := postJSON(t, mux, "/score", `{"requiredSkills": [{"skill": "Go"}]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s, om := newTestServer(t)
	s.APIKeys = map[string]bool{"valid-key-12345": true}
	mux := s.setupRoutes(om)

	body := `{"transcript": "I led the team through a difficult quarter and we delivered the project on time because everyone communicated clearly."}`

	// Missing key
	rec := postJSON(t, mux, "/transcript", body)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without API key, got %d", rec.Code)
	}

	// Invalid key
	req := httptest.NewRequest(http.MethodPost, "/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "wrong-key")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with invalid API key, got %d", rec.Code)
	}

	// Valid key via header
	req = httptest.NewRequest(http.MethodPost, "/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "valid-key-12345")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid API key, got %d", rec.Code)
	}

	// Valid key via bearer token
	req = httptest.NewRequest(http.MethodPost, "/transcript", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-key-12345")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with bearer token, got %d", rec.Code)
	}

	// Health endpoint stays open
	healthReq := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, healthReq)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for /stats without API key, got %d", rec.Code)
	}
}

func TestRequestSizeLimit(t *testing.T) {
	s, om := newTestServer(t)
	s.MaxRequestSize = 128
	mux := s.setupRoutes(om)

	body := `{"transcript": "` + strings.Repeat("long transcript content ", 50) + `"}`
	rec := postJSON(t, mux, "/transcript", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for oversized body, got %d", rec.Code)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("expected short keys fully masked, got %q", got)
	}
	if got := maskAPIKey("abcdefgh12345678"); got != "abcdefgh****" {
		t.Errorf("unexpected mask: %q", got)
	}
}
