package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getmockd/itemd/pkg/item"
	"github.com/getmockd/itemd/pkg/logging"
	"github.com/getmockd/itemd/pkg/metrics"
)

// ErrServerRunning is returned by Start when the server is already serving.
var ErrServerRunning = errors.New("server is already running")

// Config holds the listener settings.
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig binds all interfaces on port 5000.
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            5000,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server owns the HTTP listener and the dependencies handed to the handlers.
type Server struct {
	cfg        *Config
	store      item.Store
	metrics    *metrics.Registry
	log        *slog.Logger
	handler    *Handler
	httpServer *http.Server
	listener   net.Listener
	mu         sync.RWMutex
	running    bool
	startTime  time.Time
	serveErr   chan error
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithStore sets the item store. Defaults to a fresh MemoryStore.
// The caller keeps ownership and closes it after Stop.
func WithStore(store item.Store) ServerOption {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMetrics sets the metrics registry. Defaults to a fresh registry.
func WithMetrics(reg *metrics.Registry) ServerOption {
	return func(s *Server) {
		if reg != nil {
			s.metrics = reg
		}
	}
}

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a new Server with the given configuration.
// A nil cfg means DefaultConfig.
func NewServer(cfg *Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = item.NewMemoryStore()
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRegistry()
	}

	s.handler = NewHandler(s.store, s.metrics, s.log)
	return s
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrServerRunning
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	s.serveErr = make(chan error, 1)

	go func(srv *http.Server, errc chan<- error) {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
			errc <- err
		}
		close(errc)
	}(s.httpServer, s.serveErr)

	s.running = true
	s.startTime = time.Now()
	s.log.Info("server started", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts the listener down, waiting up to ShutdownTimeout for
// in-flight requests.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.running = false
	s.log.Info("server stopped", "uptime_seconds", int(time.Since(s.startTime).Seconds()))
	if err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// Done is closed when the serve loop exits; it yields the error, if any,
// that stopped it. Nil before Start.
func (s *Server) Done() <-chan error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serveErr
}

// Addr returns the bound listener address, or "" when not running.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns whether the server is currently serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns the number of whole seconds since Start, or 0 when stopped.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(time.Since(s.startTime).Seconds())
}

// Handler returns the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the registry the server records into.
func (s *Server) Metrics() *metrics.Registry {
	return s.metrics
}
