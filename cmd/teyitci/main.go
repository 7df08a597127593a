// cmd/teyitci/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const VERSION = "1.0.0"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer RecoverFromPanic("main")

	fmt.Println("Teyitçi v" + VERSION + " starting up...")

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := InitLogger(cfg.LogPath, cfg.LogLevel); err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}

	hub := NewHub()
	headlines := NewHeadlineCache(cfg, hub)

	// Fetch headlines once eagerly so the read endpoint has data soon after
	// boot; a failure here is not fatal, the cron job will retry.
	if err := headlines.Refresh(ctx); err != nil {
		AppLogger().Warning("Initial headline refresh failed: %v", err)
	}

	cronManager := cron.New()
	if _, err := cronManager.AddFunc(cfg.HeadlineCron, func() {
		defer RecoverFromPanic("headline-refresh")

		refreshCtx, refreshCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer refreshCancel()

		if err := headlines.Refresh(refreshCtx); err != nil {
			AppLogger().Error("Headline refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule headline refresh: %v", err)
	}
	cronManager.Start()
	AppLogger().Info("Headline refresh scheduled (%s)", cfg.HeadlineCron)

	fetcher := NewArticleFetcher(cfg.UserAgent, cfg.FetchTimeout)
	catalog := NewQuakeCatalog(cfg.AFADURL, cfg.UserAgent, cfg.FetchTimeout)
	verifier := NewGeminiVerifier(cfg)
	pipeline := NewPipeline(fetcher, NewRegexExtractor(), catalog, verifier, cfg.VerdictTTL)

	server := NewServer(cfg, pipeline, headlines, hub)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}

	go func() {
		AppLogger().Info("Listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			AppLogger().Error("HTTP server failed: %v", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	AppLogger().Info("Shutting down...")

	cronManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		AppLogger().Error("HTTP shutdown failed: %v", err)
	}

	if err := AppLogger().Close(); err != nil {
		log.Printf("Failed to close logger: %v", err)
	}
}
