// Package health provides a simple HTTP health check endpoint.
//
// Docker, Kubernetes, and similar orchestration use this endpoint to
// monitor the daemon's liveness. The payload also reports how many voices
// loaded per language, so deployments can verify the catalog didn't fall
// back unexpectedly.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charlavoz/charla/internal/voice"
)

// Server is a lightweight HTTP server that exposes /healthz and /readyz.
type Server struct {
	port    int
	catalog *voice.Catalog
	ready   atomic.Bool
	server  *http.Server
}

// New creates a new health check server.
func New(port int, catalog *voice.Catalog) *Server {
	return &Server{port: port, catalog: catalog}
}

// SetReady marks the daemon as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

type status struct {
	Status        string `json:"status"`
	EnglishVoices int    `json:"english_voices"`
	SpanishVoices int    `json:"spanish_voices"`
}

func (s *Server) writeStatus(w http.ResponseWriter) {
	english, spanish := s.catalog.Counts()
	st := status{Status: "ok", EnglishVoices: english, SpanishVoices: spanish}
	if !s.ready.Load() {
		st.Status = "not_ready"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(st)
}

// ListenAndServe starts the health check HTTP server.
// It blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeStatus(w)
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		s.writeStatus(w)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
