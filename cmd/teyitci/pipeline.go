// cmd/teyitci/pipeline.go
package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// maxPromptKeywords caps the salient phrases fed into the model prompt
const maxPromptKeywords = 5

// ErrNoContent means the page yielded no text to verify; there is no
// fallback past this point.
var ErrNoContent = errors.New("haber içeriği çekilemedi veya site izin vermiyor")

// ArticleSource fetches article content for a URL
type ArticleSource interface {
	Fetch(ctx context.Context, url string) (*ArticleContent, error)
}

// Corroborator checks a claim against an authoritative record set
type Corroborator interface {
	Corroborate(ctx context.Context, claim ExtractedClaim) *QuakeRecord
}

// Pipeline drives one verification request from link to verdict: fetch,
// extract, deterministic AFAD corroboration, then the model fallback. The
// cheap deterministic path always runs before the expensive model call.
type Pipeline struct {
	fetcher   ArticleSource
	extractor ClaimExtractor
	catalog   Corroborator
	verifier  Verifier

	cacheMu  sync.RWMutex
	cache    map[string]cachedVerdict
	cacheTTL time.Duration
}

type cachedVerdict struct {
	verdict Verdict
	at      time.Time
}

// NewPipeline creates a new verification pipeline
func NewPipeline(fetcher ArticleSource, extractor ClaimExtractor, catalog Corroborator, verifier Verifier, cacheTTL time.Duration) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		catalog:   catalog,
		verifier:  verifier,
		cache:     make(map[string]cachedVerdict),
		cacheTTL:  cacheTTL,
	}
}

// Verify produces a verdict for the article behind link.
func (p *Pipeline) Verify(ctx context.Context, link string) (*Verdict, error) {
	if cached := p.getCached(link); cached != nil {
		return cached, nil
	}

	article, err := p.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	claim := p.extractor.Extract(article.Body)

	if claim.Magnitude != nil || claim.Location != "" {
		if record := p.catalog.Corroborate(ctx, claim); record != nil {
			verdict := &Verdict{
				Success:    true,
				Summary:    afadSummary(claim, record),
				SourceURL:  link,
				Provenance: ProvenanceAFAD,
			}
			p.putCached(link, verdict)
			return verdict, nil
		}
	}

	if article.Body == "" {
		return nil, ErrNoContent
	}

	keywords := p.extractor.Keywords(article.Body, maxPromptKeywords)
	if len(keywords) == 0 {
		keywords = titleKeywords(article.Title, maxPromptKeywords)
	}

	summary, err := p.verifier.Verify(ctx, article, keywords)
	if err != nil {
		return nil, fmt.Errorf("gemini API hatası: %v", err)
	}

	verdict := &Verdict{
		Success:    true,
		Summary:    summary,
		SourceURL:  link,
		Provenance: ProvenanceGemini,
	}
	p.putCached(link, verdict)
	return verdict, nil
}

// afadSummary renders the fixed deterministic-verdict template for a matched
// AFAD record.
func afadSummary(claim ExtractedClaim, record *QuakeRecord) string {
	return fmt.Sprintf(`### ✅ KESİN DEPREM KONTROLÜ (AFAD VERİSİ)

#### 🎯 Ana İddia
%s civarında %s büyüklüğünde deprem iddiası.

#### ✅ Güvenilirlik Hükmü
**DOĞRULANDI**

#### 📝 Kısa Açıklama
AFAD kayıtlarında **%s** bölgesinde **%s** büyüklüğünde bir deprem kaydı **BULUNMUŞTUR**.`,
		claim.Location,
		formatMagnitude(*claim.Magnitude),
		record.Location,
		formatMagnitude(record.Magnitude))
}

func formatMagnitude(m float64) string {
	return strconv.FormatFloat(m, 'f', 1, 64)
}

// titleKeywords falls back to the first words of the title when the body
// yields no capitalized phrases
func titleKeywords(title string, limit int) []string {
	words := strings.Fields(title)
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

func (p *Pipeline) getCached(link string) *Verdict {
	if p.cacheTTL <= 0 {
		return nil
	}

	p.cacheMu.RLock()
	defer p.cacheMu.RUnlock()

	entry, exists := p.cache[link]
	if !exists || time.Since(entry.at) > p.cacheTTL {
		return nil
	}

	verdict := entry.verdict
	return &verdict
}

func (p *Pipeline) putCached(link string, verdict *Verdict) {
	if p.cacheTTL <= 0 {
		return
	}

	p.cacheMu.Lock()
	defer p.cacheMu.Unlock()
	p.cache[link] = cachedVerdict{verdict: *verdict, at: time.Now()}
}
