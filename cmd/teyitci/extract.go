// cmd/teyitci/extract.go
package main

import (
	"regexp"
	"strconv"
	"strings"
)

// ClaimExtractor pulls a candidate earthquake claim out of article text.
// The regex strategy below is deliberately best-effort and replaceable.
type ClaimExtractor interface {
	Extract(text string) ExtractedClaim
	Keywords(text string, limit int) []string
}

var (
	// A decimal number (dot or comma separator) directly followed by a
	// magnitude trigger word.
	magnitudePattern = regexp.MustCompile(`(\d[.,]?\d?)\s*(?:büyüklüğünde|şiddetinde|depremi|sarsıntı)`)

	// A capitalized Turkish word, an optional locative suffix, then an
	// earthquake trigger word.
	locationPattern = regexp.MustCompile(`([A-ZÇĞİÖŞÜ][a-zçğıöşü]+)\s*(?:'de|'da|'ta|'te|yakınlarında)?\s+(?:deprem|sarsıntı)`)

	// Capitalized phrases of up to three words, used as prompt keywords.
	phrasePattern = regexp.MustCompile(`[A-ZÇĞİÖŞÜ][a-zçğıöşü]+(?:\s[A-ZÇĞİÖŞÜ][a-zçğıöşü]+){0,2}`)
)

// RegexExtractor is the pattern-matching ClaimExtractor used in production
type RegexExtractor struct{}

// NewRegexExtractor creates a new regex claim extractor
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns the first magnitude and location the patterns find.
// Both fields are optional; missing values are expected, not errors.
func (e *RegexExtractor) Extract(text string) ExtractedClaim {
	var claim ExtractedClaim

	if m := magnitudePattern.FindStringSubmatch(text); m != nil {
		raw := strings.ReplaceAll(m[1], ",", ".")
		if mag, err := strconv.ParseFloat(raw, 64); err == nil {
			claim.Magnitude = &mag
		}
	}

	if m := locationPattern.FindStringSubmatch(text); m != nil {
		claim.Location = m[1]
	}

	return claim
}

// Keywords returns up to limit capitalized phrases in document order
func (e *RegexExtractor) Keywords(text string, limit int) []string {
	return phrasePattern.FindAllString(text, limit)
}
