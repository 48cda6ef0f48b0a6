// Package api serves the food-ordering site: HTML pages, static client assets,
// and the small JSON API the order form talks to.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"foodorder/internal/catalog"
	"foodorder/internal/orders"
	"foodorder/internal/pages"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Catalog    *catalog.Catalog
	Aggregator *orders.Aggregator
	Pages      *pages.Renderer
	PublicDir  string
	Logger     *slog.Logger
	// Metrics enables /metrics and request instrumentation.
	Metrics bool
}

// Server represents the HTTP server
type Server struct {
	router     *http.ServeMux
	server     *http.Server
	addr       string
	logger     *slog.Logger
	catalog    *catalog.Catalog
	aggregator *orders.Aggregator
	pages      *pages.Renderer
	publicDir  string
	config     *ServerConfig
	metrics    *Metrics
	limiter    *rate.Limiter
	routes     map[string]bool
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance. A nil config means
// DefaultServerConfig.
func NewServer(addr string, deps Deps, config *ServerConfig) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	if deps.Catalog == nil || deps.Aggregator == nil || deps.Pages == nil {
		return nil, errors.New("catalog, aggregator and pages are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:     http.NewServeMux(),
		addr:       addr,
		logger:     logger,
		catalog:    deps.Catalog,
		aggregator: deps.Aggregator,
		pages:      deps.Pages,
		publicDir:  deps.PublicDir,
		config:     config,
		routes:     make(map[string]bool),
		startedAt:  time.Now(),
	}
	if deps.Metrics {
		s.metrics = NewMetrics(s.aggregator.Len)
	}
	if config.RateLimit.Enabled {
		s.limiter = rate.NewLimiter(rate.Limit(config.RateLimit.RequestsPerSecond), config.RateLimit.Burst)
	}

	s.registerRoutes()

	handler, err := s.applyMiddleware(s.router)
	if err != nil {
		return nil, err
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout.Duration,
		WriteTimeout: config.WriteTimeout.Duration,
		IdleTimeout:  config.IdleTimeout.Duration,
	}

	return s, nil
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())

	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully")
	return nil
}

// ShutdownTimeout is how long callers should wait for in-flight requests.
func (s *Server) ShutdownTimeout() time.Duration {
	return s.config.ShutdownTimeout.Duration
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) (http.Handler, error) {
	gzip, err := GzipMiddleware(s.config.Gzip)
	if err != nil {
		return nil, err
	}

	// Apply middleware in reverse order (last one wraps first)
	handler = gzip(handler)
	handler = RecoveryMiddleware(s.logger)(handler)
	if s.metrics != nil {
		handler = MetricsMiddleware(s.metrics, s.routeLabel)(handler)
	}
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware(s.config.CORS)(handler)
	return handler, nil
}
