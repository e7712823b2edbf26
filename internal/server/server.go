// Package server exposes the blend engine over HTTP: single color mixes as
// JSON and per-mode swatch PNGs.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/colorblend/internal/gamma"
)

// Config configures the HTTP server.
type Config struct {
	// ArchivePath is an optional swatch archive served before rendering.
	ArchivePath string
	// SwatchSize is the edge length of swatches rendered on demand.
	SwatchSize int
	Gamma      gamma.Curve
	// GenerateMissing renders swatches absent from the archive.
	GenerateMissing      bool
	MaxConcurrentRenders int
	RenderTimeout        time.Duration
	CacheControl         string
}

// Server routes requests to the mix and swatch handlers.
type Server struct {
	swatches *Swatches
	logger   *slog.Logger
}

// New prepares the handlers. The archive, when configured, stays open until
// Close.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	sw, err := NewSwatches(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init swatches: %w", err)
	}
	return &Server{swatches: sw, logger: logger}, nil
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/modes", withCORS(http.HandlerFunc(s.serveModes)))
	mux.Handle("/mix", withCORS(http.HandlerFunc(s.serveMix)))
	mux.Handle("/swatches/", withCORS(s.swatches.Handler()))
	mux.Handle("/status", withCORS(s.swatches.StatusHandler()))
	return mux
}

// Close releases the swatch archive.
func (s *Server) Close() error {
	return s.swatches.Close()
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
