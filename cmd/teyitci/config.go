// cmd/teyitci/config.go
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config holds application configuration, built once at startup and passed
// explicitly to the components that need it.
type Config struct {
	ListenAddr string
	WebRoot    string
	DataDir    string

	// Gemini generation service
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// Verification
	ReferenceDate string
	UserAgent     string
	FetchTimeout  time.Duration
	AFADURL       string
	VerdictTTL    time.Duration

	// Headline cache
	HeadlineCron  string
	HeadlinesPath string

	// Rate limiting for /api/verify
	VerifyRate  float64
	VerifyBurst int

	// Logging
	LogPath  string
	LogLevel LogLevel

	Sources SourcesConfig
}

// SourcesConfig is the content of config/sources.yml: the headline feed and
// the prioritized trusted-source list embedded in the verification prompt.
type SourcesConfig struct {
	Feed struct {
		Name  string `yaml:"name"`
		URL   string `yaml:"url"`
		Limit int    `yaml:"limit"`
	} `yaml:"feed"`
	Trusted []string `yaml:"trusted"`
}

// LoadConfig reads configuration from the environment and the sources file.
// A missing GEMINI_API_KEY is fatal; everything else has a default.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ListenAddr:    GetEnvString("LISTEN_ADDR", ":5000"),
		WebRoot:       GetEnvString("WEB_ROOT", "."),
		DataDir:       GetEnvString("DATA_DIR", "data"),
		GeminiAPIKey:  GetEnvString("GEMINI_API_KEY", ""),
		GeminiBaseURL: GetEnvString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		GeminiModel:   GetEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
		ReferenceDate: GetEnvString("REFERENCE_DATE", "27 Ekim 2025"),
		UserAgent:     GetEnvString("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
		FetchTimeout:  GetEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		AFADURL:       GetEnvString("AFAD_URL", "https://deprem.afad.gov.tr/last-earthquakes.html"),
		VerdictTTL:    GetEnvDuration("VERDICT_CACHE_TTL", 15*time.Minute),
		HeadlineCron:  GetEnvString("HEADLINE_CRON", "*/30 * * * *"),
		VerifyRate:    GetEnvFloat("VERIFY_RATE", 1),
		VerifyBurst:   GetEnvInt("VERIFY_BURST", 5),
		LogPath:       GetEnvString("LOG_PATH", "data/logs/teyitci.log"),
		LogLevel:      LogLevel(GetEnvInt("LOG_LEVEL", int(LogInfo))),
	}
	cfg.HeadlinesPath = GetEnvString("HEADLINES_PATH", cfg.DataDir+"/gundem_haberler.json")

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	sources, err := LoadSourcesConfig(GetEnvString("SOURCES_PATH", "config/sources.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load sources config: %v", err)
	}
	cfg.Sources = *sources

	return cfg, nil
}

// LoadSourcesConfig parses the YAML sources file.
func LoadSourcesConfig(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sources SourcesConfig
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	if sources.Feed.URL == "" {
		return nil, fmt.Errorf("sources config: feed.url is required")
	}
	if sources.Feed.Limit <= 0 {
		sources.Feed.Limit = 6
	}

	return &sources, nil
}
