// cmd/teyitci/afad.go
package main

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// magnitudeTolerance is the fuzz margin for matching a claimed magnitude
// against an AFAD record. Containment on the place name is equally fuzzy;
// neither side reports locations at the same granularity.
const magnitudeTolerance = 0.3

// turkishLower folds case the Turkish way, so "İzmir" matches "izmir".
// Casers are stateful, so one is built per call rather than shared.
func turkishLower(s string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(s))
}

// QuakeCatalog scrapes the AFAD last-earthquakes table. The record set is
// refetched on every lookup; AFAD updates it continuously and the list is
// short.
type QuakeCatalog struct {
	client    *http.Client
	url       string
	userAgent string
}

// NewQuakeCatalog creates a new AFAD catalog client
func NewQuakeCatalog(url, userAgent string, timeout time.Duration) *QuakeCatalog {
	return &QuakeCatalog{
		client: &http.Client{
			Timeout: timeout,
		},
		url:       url,
		userAgent: userAgent,
	}
}

// Recent fetches and parses the current AFAD table. Fetch or parse failure
// degrades to an empty record set so verification can fall through to the
// model path; it is never surfaced as an error.
func (c *QuakeCatalog) Recent(ctx context.Context) []QuakeRecord {
	req, err := http.NewRequestWithContext(ctx, "GET", c.url, nil)
	if err != nil {
		AppLogger().Warning("AFAD request failed: %v", err)
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		AppLogger().Warning("AFAD fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		AppLogger().Warning("AFAD fetch returned status %d", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		AppLogger().Warning("AFAD parse failed: %v", err)
		return nil
	}

	return parseQuakeTable(doc)
}

// parseQuakeTable reads data rows after the header row. Column positions are
// fixed by upstream markup (magnitude in column 5, place in column 6) and
// have no schema versioning; a markup change silently yields no records.
func parseQuakeTable(doc *goquery.Document) []QuakeRecord {
	var records []QuakeRecord

	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cols := row.Find("td")
		if cols.Length() < 7 {
			return
		}

		// An unparsable magnitude cell keeps the row with magnitude 0.0
		// rather than dropping it.
		magnitude, err := strconv.ParseFloat(strings.TrimSpace(cols.Eq(5).Text()), 64)
		if err != nil {
			magnitude = 0.0
		}

		records = append(records, QuakeRecord{
			Magnitude: magnitude,
			Location:  strings.TrimSpace(cols.Eq(6).Text()),
		})
	})

	return records
}

// Corroborate matches a claim against the live record set, returning the
// first matching record or nil.
func (c *QuakeCatalog) Corroborate(ctx context.Context, claim ExtractedClaim) *QuakeRecord {
	return matchQuake(c.Recent(ctx), claim)
}

// matchQuake scans records in source order for the first one within the
// magnitude tolerance whose place name contains the claimed location.
func matchQuake(records []QuakeRecord, claim ExtractedClaim) *QuakeRecord {
	if len(records) == 0 {
		return nil
	}

	// A magnitude with no place is ambiguous; it must never short-circuit
	// verification, so bail out before scanning.
	if claim.Location == "" {
		return nil
	}
	if claim.Magnitude == nil {
		return nil
	}

	want := turkishLower(claim.Location)
	for i := range records {
		if math.Abs(records[i].Magnitude-*claim.Magnitude) <= magnitudeTolerance &&
			strings.Contains(turkishLower(records[i].Location), want) {
			return &records[i]
		}
	}

	return nil
}
