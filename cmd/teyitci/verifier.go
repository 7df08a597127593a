// cmd/teyitci/verifier.go
package main

import (
	"context"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Verifier produces a free-text verdict for articles the AFAD catalog could
// not corroborate.
type Verifier interface {
	Verify(ctx context.Context, article *ArticleContent, keywords []string) (string, error)
}

// GeminiVerifier delegates verification to Gemini through its
// OpenAI-compatible endpoint, with deterministic sampling and a pinned model.
type GeminiVerifier struct {
	client        *openai.Client
	model         string
	referenceDate string
	trusted       []string
}

// NewGeminiVerifier creates a new Gemini verifier instance
func NewGeminiVerifier(cfg *Config) *GeminiVerifier {
	clientConfig := openai.DefaultConfig(cfg.GeminiAPIKey)
	if cfg.GeminiBaseURL != "" {
		clientConfig.BaseURL = cfg.GeminiBaseURL
	}

	return &GeminiVerifier{
		client:        openai.NewClientWithConfig(clientConfig),
		model:         cfg.GeminiModel,
		referenceDate: cfg.ReferenceDate,
		trusted:       cfg.Sources.Trusted,
	}
}

// Verify sends the instruction prompt and returns the raw model output as the
// verdict summary. Errors are surfaced to the caller unretried.
func (v *GeminiVerifier) Verify(ctx context.Context, article *ArticleContent, keywords []string) (string, error) {
	resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: v.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: v.buildPrompt(article, keywords),
			},
		},
		// The client omits a zero temperature from the request; the smallest
		// nonzero value keeps sampling deterministic.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("gemini returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// buildPrompt assembles the fixed-shape instruction prompt: the reference
// date and its suppression rules, the trusted-source priorities, the salient
// phrases and the full article body.
func (v *GeminiVerifier) buildPrompt(article *ArticleContent, keywords []string) string {
	trusted := strings.Join(v.trusted, ", ")
	salient := strings.Join(keywords, ", ")

	return fmt.Sprintf(`aşağıdaki haber metnini ve iddialarını analiz et.

**ÇOK ÖNEMLİ ZAMAN BİLGİSİ:** Şu anki teyit tarihi: %[1]s. (Bu bilgiyi çıktıya ASLA yazma.)

**YASAK ve ZORUNLULUKLAR:**
* **TARİH YASAĞI:** Çıktının hiçbir yerinde "şu anki teyit tarihi" veya "%[1]s" ifadesini kullanma.
* **YASAK:** Haberin tarihi güncel teyit tarihiyle aynı veya öncesinde olsa bile "henüz teyit edilemez" hükmü verme. YALNIZCA olayın gerçekleşip gerçekleşmediğini teyit et.
* **ÖNCELİK:** Haberin içeriğine göre (Trafik kazası ise İçişleri/Valilik, Eğitim ise MEB, Genel ise AA) en uygun güvenilir kaynağı ara.

**Hüküm İçin Adımlar:**
1. Haberdeki ana iddiayı ve gerçekleştiği iddia edilen tarihi 1-2 cümleyle çıkar.
2. Yukarıdaki YÖNERGEYE uyarak teyitini ara. Özellikle şu kaynakları kullan: %[2]s.
3. Tüm analizini, net bir **GÜVENİLİLİK HÜKMÜ** ile sonlandır.

**Öne Çıkan İfadeler:** %[3]s

**Çıktı Formatı:**
Çıktın SADECE aşağıdaki gibi kopyalanabilir ve kısa olmalıdır. Markdown formatını koru.

### 🚨 HIZLI DOĞRULUK KONTROLÜ (GEMINI)

#### 🎯 Ana İddia
[Habere ait 1 cümlelik özet ve tarihi.]

#### ✅ Güvenilirlik Hükmü
**[BURAYA SADECE ŞUNLARDAN BİRİNİ YAZ: DOĞRULANDI / YANLIŞ / HENÜZ DOĞRULANAMADI]**

#### 📝 Kısa Açıklama
[Hükmünü (neden doğru veya yanlış olduğunu) destekleyen 2-3 cümlelik çok kısa bir açıklama. Açıklamada teyit tarihi bilgisini KULLANMA. Sadece teyit edildiği kaynağı (DHA, Valilik vb.) belirt.]

Haber Metni:
---
%[4]s
---
`, v.referenceDate, trusted, salient, article.Body)
}
