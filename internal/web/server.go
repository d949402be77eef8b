// Package web provides the HTTP server that receives object-storage
// notifications and triggers ingestion runs.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"listing-pipeline/internal/config"
	"listing-pipeline/internal/logging"
	"listing-pipeline/internal/pipeline"
	"listing-pipeline/internal/storage"
	"listing-pipeline/internal/web/middleware"
)

// maxEventBody bounds the notification payload size. Bucket notifications
// are small; anything larger is not one.
const maxEventBody = 1 << 20

// Server is the HTTP server for the ingestion service.
type Server struct {
	service *pipeline.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *pipeline.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	// Built here, not in Start: Shutdown may run from the signal goroutine
	// before Start executes and must still see the server.
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	// A run must finish inside the request; give it the run timeout plus
	// headroom for the response write.
	s.router.Use(chimw.Timeout(s.cfg.Pipeline.RunTimeout + 10*time.Second))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/events", s.handleEvent)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEvent runs the pipeline for one object-created notification,
// synchronously. The platform retries delivery on non-2xx, so sink
// failures map to 502 and malformed payloads to 400.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("reading event body: %w", err))
		return
	}

	event, err := storage.DecodeEvent(payload)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	log.Info("event received", "bucket", event.Bucket, "key", event.Key)

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Pipeline.RunTimeout)
	defer cancel()

	result, err := s.service.Run(ctx, event.Bucket, event.Key)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		writeError(w, r, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":  result.RunID,
		"rows":    result.Rows,
		"loaded":  result.Loaded,
		"indexed": result.Indexed,
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server. Safe to call before Start; a
// subsequent Start returns http.ErrServerClosed without listening.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// writeError logs the full error and returns a JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.FromContext(r.Context()).Error("request failed", "status", status, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`+"\n", err.Error())
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
