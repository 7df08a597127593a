// cmd/teyitci/types.go
package main

// ArticleContent is the best-effort text a news page reduces to.
// Body may be empty when the page is unreachable or has thin content.
type ArticleContent struct {
	Title string
	Body  string
}

// ExtractedClaim is the (magnitude, location) pair pulled from article text.
// Either field may be absent; that is a normal outcome, not an error.
type ExtractedClaim struct {
	Magnitude *float64
	Location  string
}

// QuakeRecord is one normalized row of the AFAD last-earthquakes table.
type QuakeRecord struct {
	Magnitude float64
	Location  string
}

// Verdict provenance values. A verdict carries exactly one.
const (
	ProvenanceAFAD   = "AFAD"
	ProvenanceGemini = "GEMINI"
)

// Verdict is the terminal output of one verification request.
type Verdict struct {
	Success    bool   `json:"success"`
	Summary    string `json:"summary"`
	SourceURL  string `json:"sourceUrl"`
	Provenance string `json:"provenance"`
}

// Headline is one entry of the cached current-headlines snapshot.
type Headline struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}
