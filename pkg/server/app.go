package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"InflationPanel/internal/service/ratelimit"
	"InflationPanel/internal/usecase"
	"InflationPanel/pkg/cache"
	"InflationPanel/pkg/config"
	xhttp "InflationPanel/pkg/http"
	xlogger "InflationPanel/pkg/logger"
)

const (
	// retryInterval paces reloads after a failed start when periodic reloading is off.
	retryInterval = 30 * time.Second
	limiterIdle   = 10 * time.Minute
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *xlogger.Logger
	dash        *usecase.Dashboard
	httpHandler xhttp.Handler
	viewCache   cache.Service
	limiter     *ratelimit.Limiter
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *xlogger.Logger,
	dash *usecase.Dashboard,
	handler xhttp.Handler,
	viewCache cache.Service,
	limiter *ratelimit.Limiter,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		dash:        dash,
		httpHandler: handler,
		viewCache:   viewCache,
		limiter:     limiter,
	}
}

// Run loads the datasets, starts the HTTP server and blocks until interrupted.
// A failed initial load is not fatal: views answer 503 until a reload succeeds.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.dash.Load(ctx); err != nil {
		a.logger.Error("initial dataset load failed", xlogger.Error(err))
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithLogger(a.logger),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(a.cfg.Metrics.Path, time.Second))
	}
	a.httpServer = xhttp.NewServer(a.httpHandler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", xlogger.Error(err))
		return err
	}

	go a.reloadLoop(ctx)
	if a.limiter != nil {
		go a.sweepLoop(ctx)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// reloadLoop refreshes the datasets every reload interval. With reloading
// disabled it only retries until the first successful load.
func (a *App) reloadLoop(ctx context.Context) {
	every := a.cfg.Sources.ReloadInterval
	if every <= 0 {
		if a.dash.Ready() {
			return
		}
		every = retryInterval
	}

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := a.dash.Load(ctx); err != nil {
				a.logger.Warn("dataset reload failed", xlogger.Error(err), xlogger.Bool("serving_previous", a.dash.Ready()))
				continue
			}
			if a.cfg.Sources.ReloadInterval <= 0 {
				return
			}
		}
	}
}

func (a *App) sweepLoop(ctx context.Context) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Sweep(limiterIdle); n > 0 {
				a.logger.Debug("rate limiter swept", xlogger.Int("buckets", n))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", xlogger.Error(err))
	}

	if a.viewCache != nil {
		if err := a.viewCache.Close(); err != nil {
			a.logger.Warn("view cache close error", xlogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
