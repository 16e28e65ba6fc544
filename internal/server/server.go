// Package server exposes the card pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build info
//	GET  /api/fonts          selectable font families
//	POST /api/cards/layout   compose a card and return its visual tree
//	POST /api/cards/export   compose a card and download it as PNG or GIF
//
// Every request gets its own state, surface and exporter; the server keeps
// no card state between requests.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/guidecard/pkg/layout"
	"github.com/matzehuels/guidecard/pkg/pipeline"
)

const (
	maxBodyBytes    = 64 << 10
	shutdownTimeout = 10 * time.Second
	exportTimeout   = 30 * time.Second
)

// Config holds request defaults taken from the loaded configuration.
type Config struct {
	Canvas        layout.Canvas
	DefaultStyles layout.StyleSelection
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds the router. A zero Canvas falls back to the default card.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Canvas.Width == 0 || cfg.Canvas.Height == 0 {
		cfg.Canvas = layout.DefaultCanvas
	}
	s := &Server{runner: runner, cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/fonts", s.listFonts)
		r.Post("/cards/layout", s.layoutCard)
		r.With(middleware.Timeout(exportTimeout)).Post("/cards/export", s.exportCard)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
