// cmd/teyitci/article_test.go
package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestArticleFetcher_Fetch(t *testing.T) {
	page := `<html><head><title> Son Dakika: İzmir Haberi </title></head><body>
		<article>
			<p>İzmir'de deprem oldu, vatandaşlar sokağa döküldü ve yetkililer açıklama yaptı.</p>
			<p>Depremin 5,2 büyüklüğünde olduğu açıklandı.</p>
		</article>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("Expected User-Agent test-agent, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewArticleFetcher("test-agent", 5*time.Second)
	article, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if article.Title != "Son Dakika: İzmir Haberi" {
		t.Errorf("Unexpected title: %q", article.Title)
	}
	if !strings.Contains(article.Body, "sokağa döküldü") {
		t.Errorf("Expected body to contain first paragraph, got %q", article.Body)
	}
	if !strings.Contains(article.Body, "5,2 büyüklüğünde") {
		t.Errorf("Expected body to contain second paragraph, got %q", article.Body)
	}
}

func TestArticleFetcher_ThinContentFallback(t *testing.T) {
	// Block elements yield under 50 characters, so the whole body text is
	// used instead.
	page := `<html><head><title>Kısa</title></head><body>
		Sayfanın blok dışı metni elli karakter eşiğini rahatça aşacak kadar uzun.
		<p>kısa</p>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewArticleFetcher("test-agent", 5*time.Second)
	article, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(article.Body, "elli karakter eşiğini") {
		t.Errorf("Expected whole-body fallback text, got %q", article.Body)
	}
}

func TestArticleFetcher_ThinContentThresholdCountsRunes(t *testing.T) {
	// 40 characters but well over 50 bytes of Turkish text: still thin
	// content, the threshold counts characters.
	thin := strings.Repeat("çğıöşü", 6) + "dört"
	page := `<html><head><title>Kısa</title></head><body>
		Blok dışındaki bu metin karakter eşiğini rahatça aşacak kadar uzun tutuldu.
		<p>` + thin + `</p>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer server.Close()

	fetcher := NewArticleFetcher("test-agent", 5*time.Second)
	article, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(article.Body, "Blok dışındaki bu metin") {
		t.Errorf("Expected whole-body fallback text, got %q", article.Body)
	}
}

func TestArticleFetcher_MissingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><p>Başlıksız bir sayfa ama içeriği elli karakterden uzun olsun diye yazıldı.</p></body></html>`))
	}))
	defer server.Close()

	fetcher := NewArticleFetcher("test-agent", 5*time.Second)
	article, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if article.Title != "Başlık bulunamadı" {
		t.Errorf("Expected title sentinel, got %q", article.Title)
	}
}

func TestArticleFetcher_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // force a connection error

	fetcher := NewArticleFetcher("test-agent", time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected an error")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("Expected a *FetchError, got %T: %v", err, err)
	}
}

func TestArticleFetcher_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewArticleFetcher("test-agent", time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a *FetchError for 404, got %v", err)
	}
}
