package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/colorblend/internal/archive"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/sheet"
)

// Swatches serves /swatches/{mode}.png from an archive, rendering and caching
// missing swatches in memory when enabled.
type Swatches struct {
	reader *archive.Reader
	gen    *sheet.Generator
	logger *slog.Logger
	sem    chan struct{}
	locks  sync.Map
	cache  sync.Map // blend.Mode -> []byte
	cfg    Config

	activeRenders atomic.Int32
	totalRendered atomic.Int64
	totalFailed   atomic.Int64
	archiveHits   atomic.Int64
	cacheHits     atomic.Int64
}

// SwatchStatus reports render counters as JSON.
type SwatchStatus struct {
	ActiveRenders int   `json:"active_renders"`
	TotalRendered int64 `json:"total_rendered"`
	TotalFailed   int64 `json:"total_failed"`
	ArchiveHits   int64 `json:"archive_hits"`
	CacheHits     int64 `json:"cache_hits"`
	MaxConcurrent int   `json:"max_concurrent"`
	Archive       bool  `json:"archive"`
}

// NewSwatches opens the configured archive and prepares the renderer.
func NewSwatches(cfg Config, logger *slog.Logger) (*Swatches, error) {
	if cfg.SwatchSize <= 0 {
		cfg.SwatchSize = sheet.DefaultSize
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = 1
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}

	s := &Swatches{
		cfg:    cfg,
		logger: logger,
		sem:    make(chan struct{}, cfg.MaxConcurrentRenders),
	}

	if cfg.ArchivePath != "" {
		reader, err := archive.OpenReader(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open archive: %w", err)
		}
		s.reader = reader
	}

	if cfg.GenerateMissing {
		gen, err := sheet.NewGenerator(sheet.Config{
			Size:    cfg.SwatchSize,
			Writer:  s,
			Gamma:   cfg.Gamma,
			Workers: 1,
			Logger:  logger,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.gen = gen
	}

	return s, nil
}

// WriteSwatch stores a rendered swatch in the memory cache.
func (s *Swatches) WriteSwatch(mode blend.Mode, _ int, pngData []byte) error {
	s.cache.Store(mode, pngData)
	return nil
}

// Status returns the current counters.
func (s *Swatches) Status() SwatchStatus {
	return SwatchStatus{
		ActiveRenders: int(s.activeRenders.Load()),
		TotalRendered: s.totalRendered.Load(),
		TotalFailed:   s.totalFailed.Load(),
		ArchiveHits:   s.archiveHits.Load(),
		CacheHits:     s.cacheHits.Load(),
		MaxConcurrent: s.cfg.MaxConcurrentRenders,
		Archive:       s.reader != nil,
	}
}

// StatusHandler serves Status as JSON.
func (s *Swatches) StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(s.Status()); err != nil {
			s.log().Error("failed to encode status", "error", err)
		}
	})
}

func (s *Swatches) Handler() http.Handler {
	return http.HandlerFunc(s.serveSwatch)
}

func (s *Swatches) serveSwatch(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseSwatchPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := s.lookup(r.Context(), mode)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		http.Error(w, fmt.Sprintf("swatch not found: %s", mode), http.StatusNotFound)
		return
	case errors.Is(err, context.Canceled):
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	case err != nil:
		http.Error(w, fmt.Sprintf("failed to render swatch %s: %v", mode, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Cache-Control", s.cfg.CacheControl)
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		s.log().Error("Failed to write response", "error", err)
	}
}

// lookup checks the memory cache, then the archive, then renders.
func (s *Swatches) lookup(ctx context.Context, mode blend.Mode) ([]byte, error) {
	if v, ok := s.cache.Load(mode); ok {
		s.cacheHits.Add(1)
		return v.([]byte), nil
	}

	if s.reader != nil {
		data, err := s.reader.ReadSwatch(mode)
		if err == nil {
			s.archiveHits.Add(1)
			return data, nil
		}
		if !errors.Is(err, archive.ErrNotFound) {
			s.log().Error("Failed to read swatch", "mode", mode.String(), "error", err)
		}
	}

	if s.gen == nil {
		return nil, fmt.Errorf("%w: %s", archive.ErrNotFound, mode)
	}
	return s.render(ctx, mode)
}

func (s *Swatches) render(ctx context.Context, mode blend.Mode) ([]byte, error) {
	mu := s.getLock(mode)
	mu.Lock()
	defer mu.Unlock()

	// another request may have rendered it while we waited
	if v, ok := s.cache.Load(mode); ok {
		s.cacheHits.Add(1)
		return v.([]byte), nil
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	start := time.Now()
	s.activeRenders.Add(1)
	_, err := s.gen.Generate(ctx, mode, true)
	s.activeRenders.Add(-1)
	if err != nil {
		s.totalFailed.Add(1)
		s.log().Error("failed to render swatch", "mode", mode.String(), "error", err)
		return nil, err
	}
	s.totalRendered.Add(1)
	s.log().Info("swatch rendered on-demand", "mode", mode.String(), "ms", time.Since(start).Milliseconds())

	v, _ := s.cache.Load(mode)
	return v.([]byte), nil
}

func (s *Swatches) getLock(mode blend.Mode) *sync.Mutex {
	if v, ok := s.locks.Load(mode); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := s.locks.LoadOrStore(mode, mu)
	return actual.(*sync.Mutex)
}

// Close closes the archive, if any.
func (s *Swatches) Close() error {
	if s.reader != nil {
		return s.reader.Close()
	}
	return nil
}

func (s *Swatches) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// parseSwatchPath parses /swatches/{mode}.png. Mode names follow ParseMode.
func parseSwatchPath(requestPath string) (blend.Mode, bool) {
	if !strings.HasPrefix(requestPath, "/swatches/") {
		return 0, false
	}
	base := path.Base(requestPath)
	if !strings.HasSuffix(base, ".png") {
		return 0, false
	}
	mode, err := blend.ParseMode(strings.TrimSuffix(base, ".png"))
	if err != nil {
		return 0, false
	}
	return mode, true
}

var _ sheet.SwatchWriter = (*Swatches)(nil)
