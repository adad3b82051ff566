// Package server exposes the capital gains engine over HTTP.
//
// Every endpoint takes the pasted ledger text in a JSON body and answers with
// a {"success", "message", "data"} envelope:
//
//	GET  /api/crypto-tax/health
//	POST /api/crypto-tax/calculate
//	POST /api/crypto-tax/balances
//	POST /api/crypto-tax/tax-year
//	POST /api/crypto-tax/validate
//	GET  /metrics
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zacgt/cgt/config"
	"github.com/zacgt/cgt/logging"
	"golang.org/x/time/rate"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server is the cgt HTTP API server.
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	metrics  *metrics
	limiter  *rate.Limiter // nil when rate limiting is disabled
	cache    *resultCache
}

// New creates a server. Metrics are registered on a registry owned by the
// server.
func New(cfg *config.Config, logger *logging.Logger) *Server {
	if cfg == nil {
		cfg = config.NewDefault()
	}
	if logger == nil {
		logger = logging.NewSilent()
	}
	registry := prometheus.NewRegistry()
	s := &Server{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  newMetrics(registry),
	}
	if cfg.Limits.RateLimit > 0 {
		burst := max(cfg.Limits.Burst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Limits.RateLimit), burst)
	}
	s.cache = newResultCache(cfg.Limits.CacheSize, s.metrics)
	return s
}

// router returns a chi router with the middleware stack every route shares.
// Recovery runs inside logging and metrics so that a panic is still logged and
// counted as a 500.
func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(correlationIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(s.metricsMiddleware)
	r.Use(recoveryMiddleware(s.logger))
	r.Use(corsMiddleware(s.config.Server.AllowedOrigins))
	return r
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := s.router()

	r.Route("/api/crypto-tax", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Use(s.maxBodyMiddleware)
			r.Post("/calculate", s.handleCalculate)
			r.Post("/balances", s.handleBalances)
			r.Post("/tax-year", s.handleTaxYear)
			r.Post("/validate", s.handleValidate)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported on "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.Server.ReadTimeout.Std(),
		WriteTimeout: s.config.Server.WriteTimeout.Std(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout.Std())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
