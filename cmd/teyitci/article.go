// cmd/teyitci/article.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

// Pages whose joined block text falls under this length are treated as thin
// content and re-read from the whole document body.
const minArticleLength = 50

// FetchError is a soft failure while retrieving or parsing an article page.
// Callers switch on the error type, never on sentinel strings.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ArticleFetcher retrieves raw news pages and reduces them to plain text
type ArticleFetcher struct {
	client    *http.Client
	userAgent string
}

// NewArticleFetcher creates a new article fetcher instance
func NewArticleFetcher(userAgent string, timeout time.Duration) *ArticleFetcher {
	return &ArticleFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves the page at url and extracts its title and visible text.
// Any transport or parse problem comes back as a *FetchError; there is no
// retry, a single failed attempt is terminal for the request.
func (f *ArticleFetcher) Fetch(ctx context.Context, url string) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	// Decode using the declared or sniffed character encoding before parsing;
	// Turkish news sites still serve ISO-8859-9 now and then.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "Başlık bulunamadı"
	}

	return &ArticleContent{
		Title: title,
		Body:  extractBodyText(doc),
	}, nil
}

// extractBodyText joins the visible text of paragraph, block, inline and
// article elements in document order. Nested containers repeat their text,
// matching the upstream scraper this replaces; only first matches of the
// claim patterns are used downstream, so the repetition is harmless.
func extractBodyText(doc *goquery.Document) string {
	var texts []string
	doc.Find("p, div, span, article").Each(func(_ int, s *goquery.Selection) {
		if t := squeezeWhitespace(s.Text()); t != "" {
			texts = append(texts, t)
		}
	})
	body := strings.Join(texts, " ")

	// Character count, not bytes; multi-byte Turkish letters must not widen
	// the threshold.
	if utf8.RuneCountInString(body) < minArticleLength {
		body = squeezeWhitespace(doc.Find("body").Text())
	}
	return body
}

// squeezeWhitespace collapses all runs of whitespace to single spaces
func squeezeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
