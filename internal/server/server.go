package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rickgao/spacexy-tracker/internal/calc"
	"github.com/rickgao/spacexy-tracker/internal/config"
	"github.com/rickgao/spacexy-tracker/internal/metrics"
	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/poller"
)

// RoundsView provides the current round state.
type RoundsView interface {
	Snapshot() poller.RoundSnapshot
}

// StatsView provides the current statistics state.
type StatsView interface {
	Snapshot() poller.StatsSnapshot
}

// CrashStatsSource provides crash statistics for a game and period.
type CrashStatsSource interface {
	GetCrashStats(ctx context.Context, gameID string, period model.Period) (*model.CrashStats, error)
}

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Game           config.GameConfig
	Zones          []model.Zone
	DefaultPeriod  model.Period
}

// Deps are the components the server reads from.
type Deps struct {
	Rounds     RoundsView
	Stats      StatsView
	Crash      CrashStatsSource
	Calculator *calc.Calculator
	Feed       http.Handler // WebSocket hub
}

// Server is the consumer-facing HTTP server.
type Server struct {
	cfg        Config
	deps       Deps
	validator  *Validator
	logger     *slog.Logger
	httpServer *http.Server
	errc       chan error
}

// New creates a new Server.
func New(cfg Config, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:       cfg,
		deps:      deps,
		validator: NewValidator(cfg.Game),
		logger:    logger,
		errc:      make(chan error, 1),
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))
	r.Use(metrics.Middleware)
	r.Use(s.loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/feed", s.handleFeed)
		r.Get("/stats", s.handleStats)
		r.Get("/calculator", s.handleCalculator)
		r.Get("/cashout", s.handleCashout)
		r.Get("/crash", s.handleCrash)
		r.Get("/crash/{period}", s.handleCrash)
	})

	if s.deps.Feed != nil {
		r.Handle("/ws", s.deps.Feed)
	}

	return r
}

// loggingMiddleware logs completed requests. Health and metrics scrapes are
// skipped.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/health") || strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Start begins serving in the background. Errors other than a clean
// shutdown are reported by Err.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errc <- err
		}
	}()

	return nil
}

// Err reports a fatal serve error.
func (s *Server) Err() <-chan error {
	return s.errc
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
