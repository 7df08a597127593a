// cmd/teyitci/server.go
package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// Server holds the HTTP surface: the front-end pages, static assets and the
// JSON API.
type Server struct {
	cfg       *Config
	pipeline  *Pipeline
	headlines *HeadlineCache
	hub       *Hub
	limiter   *rate.Limiter
	startTime time.Time
}

// NewServer creates a new server instance
func NewServer(cfg *Config, pipeline *Pipeline, headlines *HeadlineCache, hub *Hub) *Server {
	return &Server{
		cfg:       cfg,
		pipeline:  pipeline,
		headlines: headlines,
		hub:       hub,
		limiter:   rate.NewLimiter(rate.Limit(cfg.VerifyRate), cfg.VerifyBurst),
		startTime: time.Now(),
	}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/verify", s.handleVerify).Methods("POST")
	api.HandleFunc("/headlines", s.handleHeadlines).Methods("GET")
	api.HandleFunc("/ws", s.hub.Handle)

	r.HandleFunc("/healthcheck", s.handleHealthCheck).Methods("GET")

	// Static asset passthrough
	r.PathPrefix("/css/").Handler(http.StripPrefix("/css/",
		http.FileServer(http.Dir(filepath.Join(s.cfg.WebRoot, "css")))))
	r.PathPrefix("/img/").Handler(http.StripPrefix("/img/",
		http.FileServer(http.Dir(filepath.Join(s.cfg.WebRoot, "static", "img")))))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/",
		http.FileServer(http.Dir(filepath.Join(s.cfg.WebRoot, "static")))))

	// Front-end routes
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/search", s.handleSearch).Methods("GET")

	return r
}

// handleIndex serves the landing page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.WebRoot, "index.html"))
}

// handleSearch serves the search UI
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.WebRoot, "search_page.html"))
}

// verifyRequest is the body of POST /api/verify
type verifyRequest struct {
	Link string `json:"link"`
}

// handleVerify runs the verification pipeline for a submitted article link
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	defer RecoverFromPanic("verify-handler")

	if !s.limiter.Allow() {
		respondWithHTTPError(w, http.StatusTooManyRequests, "Çok fazla istek. Lütfen biraz bekleyin.")
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Link == "" {
		respondWithHTTPError(w, http.StatusBadRequest, "Lütfen bir haber linki girin.")
		return
	}
	defer r.Body.Close()

	verdict, err := s.pipeline.Verify(r.Context(), req.Link)
	if err != nil {
		var fetchErr *FetchError
		switch {
		case errors.As(err, &fetchErr):
			respondWithHTTPError(w, http.StatusInternalServerError, "Hata: Siteye erişilemedi")
		case errors.Is(err, ErrNoContent):
			respondWithHTTPError(w, http.StatusInternalServerError, ErrNoContent.Error())
		default:
			respondWithHTTPError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, verdict)
}

// handleHeadlines returns the latest headline snapshot
func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	headlines, err := s.headlines.Load()
	if err != nil {
		if errors.Is(err, ErrNoHeadlines) {
			respondWithHTTPError(w, http.StatusNotFound, "Haber verisi bulunamadı. Lütfen daha sonra tekrar deneyin.")
			return
		}
		respondWithHTTPError(w, http.StatusInternalServerError, "Haber verisi okunurken hata oluştu.")
		return
	}

	respondWithJSON(w, http.StatusOK, headlines)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": VERSION,
		"uptime":  FormatDuration(time.Since(s.startTime)),
	})
}
