// Package server exposes the tag cloud pipeline over HTTP.
//
// # Endpoints
//
//   - POST /v1/render: lay out and render the request body, return one artifact
//   - GET /v1/formats: list the output formats
//   - GET /healthz: liveness probe
//   - GET /metrics: Prometheus metrics
//
// A render request is either plain text, with options in the query string,
// or a JSON document that decodes into [pipeline.Options]:
//
//	curl -X POST --data-binary @speech.txt 'localhost:8080/v1/render?format=png&scale=2'
//	curl -X POST -H 'Content-Type: application/json' \
//	    -d '{"text": "go gopher go", "formats": ["svg"]}' localhost:8080/v1/render
//
// Every render response carries an X-Render-ID header that also appears in
// the server log.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tagcloud/pkg/buildinfo"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// =============================================================================
// Configuration
// =============================================================================

// Defaults for [Config].
const (
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 4 << 20
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the HTTP server settings. Zero fields take their defaults.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string

	// MaxBodyBytes caps the size of a render request body.
	MaxBodyBytes int64

	// RequestTimeout bounds the pipeline run of a single request.
	RequestTimeout time.Duration

	// ShutdownTimeout bounds the wait for in-flight requests on shutdown.
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}

// =============================================================================
// Server
// =============================================================================

// Server serves render requests with a shared pipeline runner. It is safe
// for concurrent use.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	metrics *Metrics
	logger  *log.Logger
	router  chi.Router
}

// New creates a server. The runner should report to metrics via
// pipeline.WithHooks(metrics.Hooks()); a nil metrics creates a private
// registry that only records HTTP traffic.
func New(runner *pipeline.Runner, metrics *Metrics, logger *log.Logger, cfg Config) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:     cfg.withDefaults(),
		runner:  runner,
		metrics: metrics,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", "addr", ln.Addr().String(), "version", buildinfo.Version)

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// instrument records request metrics and logs each request at debug level.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.metrics.inFlight.Inc()
		defer s.metrics.inFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		d := time.Since(start)
		s.metrics.observeRequest(route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"remote", r.RemoteAddr,
			"duration", d)
	})
}
