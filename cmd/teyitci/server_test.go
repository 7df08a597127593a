// cmd/teyitci/server_test.go
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestServer(t *testing.T, fetcher ArticleSource, catalog Corroborator, verifier Verifier) *Server {
	t.Helper()

	cfg := &Config{
		WebRoot:       t.TempDir(),
		HeadlinesPath: filepath.Join(t.TempDir(), "gundem_haberler.json"),
		FetchTimeout:  5 * time.Second,
		VerifyRate:    100,
		VerifyBurst:   100,
	}
	cfg.Sources.Feed.Name = "Test Kaynak"
	cfg.Sources.Feed.URL = "http://unused.invalid"
	cfg.Sources.Feed.Limit = 6

	pipeline := NewPipeline(fetcher, NewRegexExtractor(), catalog, verifier, 0)
	return NewServer(cfg, pipeline, NewHeadlineCache(cfg, nil), NewHub())
}

func TestHandleVerify_MissingLink(t *testing.T) {
	server := newTestServer(t, &fakeFetcher{}, &fakeCatalog{}, &fakeVerifier{})

	req := httptest.NewRequest("POST", "/api/verify", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON error payload, got %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected a non-empty error message")
	}
}

func TestHandleVerify_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &FetchError{URL: "https://example.com", Err: errors.New("timeout")}}
	server := newTestServer(t, fetcher, &fakeCatalog{}, &fakeVerifier{})

	req := httptest.NewRequest("POST", "/api/verify", strings.NewReader(`{"link":"https://example.com/haber"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "erişilemedi") {
		t.Errorf("Expected an access-failure message, got %s", rec.Body.String())
	}
}

func TestHandleVerify_ModelPathFailure(t *testing.T) {
	// No extractable claim, so the request falls through to the model path;
	// a simulated model failure must surface as a 500.
	fetcher := &fakeFetcher{article: &ArticleContent{
		Title: "Haber",
		Body:  "herhangi bir deprem iddiası içermeyen, tamamen küçük harfli bir metin örneği",
	}}
	verifier := &fakeVerifier{err: fmt.Errorf("service unavailable")}
	server := newTestServer(t, fetcher, &fakeCatalog{}, verifier)

	req := httptest.NewRequest("POST", "/api/verify", strings.NewReader(`{"link":"https://example.com/haber"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if verifier.calls != 1 {
		t.Errorf("Expected the model path to be attempted, got %d calls", verifier.calls)
	}
}

func TestHandleVerify_Success(t *testing.T) {
	fetcher := &fakeFetcher{article: &ArticleContent{
		Title: "Tatil İddiası",
		Body:  "Okulların yarın tatil edileceği iddiası sosyal medyada hızla yayıldı.",
	}}
	server := newTestServer(t, fetcher, &fakeCatalog{}, &fakeVerifier{summary: "**DOĞRULANDI**"})

	req := httptest.NewRequest("POST", "/api/verify", strings.NewReader(`{"link":"https://example.com/haber"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var verdict Verdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("Expected a verdict payload, got %v", err)
	}
	if !verdict.Success || verdict.Provenance != ProvenanceGemini {
		t.Errorf("Unexpected verdict: %+v", verdict)
	}
	if verdict.SourceURL != "https://example.com/haber" {
		t.Errorf("Unexpected source URL: %q", verdict.SourceURL)
	}
}

func TestHandleVerify_RateLimited(t *testing.T) {
	server := newTestServer(t, &fakeFetcher{}, &fakeCatalog{}, &fakeVerifier{})
	server.limiter = rate.NewLimiter(0, 0)

	req := httptest.NewRequest("POST", "/api/verify", strings.NewReader(`{"link":"https://example.com/haber"}`))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rec.Code)
	}
}

func TestHandleHeadlines_BeforeFirstRefresh(t *testing.T) {
	server := newTestServer(t, &fakeFetcher{}, &fakeCatalog{}, &fakeVerifier{})

	req := httptest.NewRequest("GET", "/api/headlines", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 before first refresh, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "bulunamadı") {
		t.Errorf("Expected a no-data message, got %s", rec.Body.String())
	}
}

func TestHandleHeadlines_ReturnsSnapshot(t *testing.T) {
	server := newTestServer(t, &fakeFetcher{}, &fakeCatalog{}, &fakeVerifier{})

	snapshot := []Headline{
		{Title: "Haber 0", Link: "https://example.com/0", PublishedAt: "27 10 2025 10:00", Source: "Test Kaynak"},
		{Title: "Haber 1", Link: "https://example.com/1", PublishedAt: "27 10 2025 10:01", Source: "Test Kaynak"},
	}
	data, _ := json.Marshal(snapshot)
	if err := os.WriteFile(server.cfg.HeadlinesPath, data, 0644); err != nil {
		t.Fatalf("Failed to seed snapshot: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/headlines", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var got []Headline
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Expected a headline array, got %v", err)
	}
	if len(got) != 2 || got[0].Title != "Haber 0" {
		t.Errorf("Unexpected headlines: %+v", got)
	}
}

func TestHandleHealthCheck(t *testing.T) {
	server := newTestServer(t, &fakeFetcher{}, &fakeCatalog{}, &fakeVerifier{})

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health payload: %s", rec.Body.String())
	}
}
