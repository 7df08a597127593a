// cmd/teyitci/headlines.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/gofeed"
)

// headlineDateFormat is the fallback publish-date rendering when the feed
// omits one.
const headlineDateFormat = "02 01 2006 15:04"

// ErrNoHeadlines means no snapshot has been written yet. It is a distinct
// not-found condition, not a failure.
var ErrNoHeadlines = errors.New("haber verisi bulunamadı")

// HeadlineCache periodically snapshots the configured feed into a JSON
// artifact. The artifact is the only state shared with request handlers, and
// it is only ever replaced whole, so readers never observe a partial write.
type HeadlineCache struct {
	client     *http.Client
	parser     *gofeed.Parser
	feedURL    string
	sourceName string
	limit      int
	path       string
	hub        *Hub
}

// NewHeadlineCache creates a new headline cache refresher
func NewHeadlineCache(cfg *Config, hub *Hub) *HeadlineCache {
	return &HeadlineCache{
		client: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		parser:     gofeed.NewParser(),
		feedURL:    cfg.Sources.Feed.URL,
		sourceName: cfg.Sources.Feed.Name,
		limit:      cfg.Sources.Feed.Limit,
		path:       cfg.HeadlinesPath,
		hub:        hub,
	}
}

// Refresh fetches the feed and atomically overwrites the snapshot with the
// first entries in feed order. On any error the previous artifact is left
// untouched.
func (h *HeadlineCache) Refresh(ctx context.Context) error {
	feed, err := h.fetchFeed(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %v", err)
	}

	// Always serialize an array, even when the feed is empty
	headlines := make([]Headline, 0, h.limit)
	for _, item := range feed.Items {
		if len(headlines) >= h.limit {
			break
		}

		published := item.Published
		if published == "" {
			published = time.Now().Format(headlineDateFormat)
		}

		headlines = append(headlines, Headline{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: published,
			Source:      h.sourceName,
		})
	}

	if err := h.writeSnapshot(headlines); err != nil {
		return err
	}

	AppLogger().Info("Saved %d headlines to %s", len(headlines), h.path)

	if h.hub != nil {
		h.hub.Broadcast("headlines_updated", map[string]int{"count": len(headlines)})
	}
	return nil
}

// fetchFeed retrieves and parses the configured feed
func (h *HeadlineCache) fetchFeed(ctx context.Context) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", h.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return h.parser.Parse(resp.Body)
}

// writeSnapshot replaces the artifact with a write-to-temp-then-rename so a
// concurrent reader sees either the old or the new file, never a torn one.
func (h *HeadlineCache) writeSnapshot(headlines []Headline) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	data, err := json.MarshalIndent(headlines, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal headlines: %v", err)
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %v", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %v", err)
	}

	return nil
}

// Load reads the current snapshot. A missing artifact before the first
// successful refresh comes back as ErrNoHeadlines.
func (h *HeadlineCache) Load() ([]Headline, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHeadlines
		}
		return nil, err
	}

	var headlines []Headline
	if err := json.Unmarshal(data, &headlines); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %v", err)
	}

	return headlines, nil
}
