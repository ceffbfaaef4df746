package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"InflationPanel/pkg/http/middleware"
	xlogger "InflationPanel/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerOption configures Server.
type ServerOption func(*ServerConfig)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORS            bool
	AllowOrigins    []string
	MetricsPath     string
	SlowThreshold   time.Duration
	Logger          *xlogger.Logger
}

// Server wraps Echo HTTP server.
type Server struct {
	echo   *echo.Echo
	config *ServerConfig
	logger *xlogger.Logger
}

// NewServer creates a new HTTP server with Echo.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	cfg := &ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CORS:            true,
		AllowOrigins:    []string{"*"},
		SlowThreshold:   time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = xlogger.Nop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	// Middleware
	e.Use(middleware.Recover(cfg.Logger))
	e.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.MetricsPath != "" {
		e.Use(middleware.Metrics(cfg.Logger, cfg.SlowThreshold))
	}

	// The API is read-only.
	if cfg.CORS {
		e.Use(middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: []string{
				http.MethodGet,
				http.MethodHead,
				http.MethodOptions,
			},
			AllowHeaders: []string{
				echo.HeaderOrigin,
				echo.HeaderContentType,
				echo.HeaderAccept,
			},
			MaxAge: 600,
		}))
	}

	// Register routes
	if handler != nil {
		handler.RegisterRoutes(e)
	}

	if cfg.MetricsPath != "" {
		e.GET(cfg.MetricsPath, echo.WrapHandler(promhttp.Handler()))
	}

	return &Server{
		echo:   e,
		config: cfg,
		logger: cfg.Logger,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	go func() {
		s.logger.Info("http server listening", xlogger.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", xlogger.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server within the configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	s.logger.Info("http server stopped gracefully")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// WithHost sets server host.
func WithHost(host string) ServerOption {
	return func(c *ServerConfig) {
		c.Host = host
	}
}

// WithPort sets server port.
func WithPort(port int) ServerOption {
	return func(c *ServerConfig) {
		c.Port = port
	}
}

// WithTimeouts sets read/write timeouts.
func WithTimeouts(read, write, shutdown time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.ReadTimeout = read
		c.WriteTimeout = write
		c.ShutdownTimeout = shutdown
	}
}

// WithCORS enables/disables CORS and restricts the allowed origins when any are given.
func WithCORS(enabled bool, origins ...string) ServerOption {
	return func(c *ServerConfig) {
		c.CORS = enabled
		if len(origins) > 0 {
			c.AllowOrigins = origins
		}
	}
}

// WithMetrics exposes the Prometheus handler at path and records request metrics.
func WithMetrics(path string, slow time.Duration) ServerOption {
	return func(c *ServerConfig) {
		c.MetricsPath = path
		c.SlowThreshold = slow
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(l *xlogger.Logger) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = l
	}
}
