package di

import (
	"fmt"

	"InflationPanel/internal/domain/repository"
	"InflationPanel/internal/handler/api"
	internalrepo "InflationPanel/internal/repository"
	"InflationPanel/internal/service/ratelimit"
	"InflationPanel/internal/services/aligner"
	"InflationPanel/internal/usecase"
	"InflationPanel/pkg/cache"
	"InflationPanel/pkg/config"
	xhttp "InflationPanel/pkg/http"
	xlogger "InflationPanel/pkg/logger"
	"InflationPanel/pkg/metrics"
	"InflationPanel/pkg/server"
)

// ProvideLogger builds the structured logger from the log section.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(xlogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideHTTPClient creates the client used to fetch remote documents.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Sources.Timeout))
}

// ProvideDatasetSource locates the three documents.
func ProvideDatasetSource(client *xhttp.Client, m repository.Metrics, cfg *config.Config) repository.DatasetSource {
	return internalrepo.NewDocumentSource(client,
		internalrepo.SourceLocation{Location: cfg.Sources.ITO.URL},
		internalrepo.SourceLocation{Location: cfg.Sources.TUIK.URL, Label: cfg.Sources.TUIK.Label},
		internalrepo.SourceLocation{Location: cfg.Sources.ENAG.URL, Label: cfg.Sources.ENAG.Label},
		m,
	)
}

// ProvideViewCache creates the view cache. An unreachable Redis degrades to memory only.
func ProvideViewCache(cfg *config.Config, l *xlogger.Logger) cache.Service {
	opts := []cache.LayeredOption{
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredMemoryCleanup(cfg.Cache.MemoryCleanup),
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewLayeredCache(nil, opts...)
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Addr),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
	)
	if err != nil {
		l.Warn("redis unavailable, using memory cache only", xlogger.String("addr", cfg.Cache.Redis.Addr), xlogger.Error(err))
		return cache.NewLayeredCache(nil, opts...)
	}
	l.Info("redis view cache connected", xlogger.String("addr", cfg.Cache.Redis.Addr))
	return cache.NewLayeredCache(rc, opts...)
}

// ProvideDashboard creates the dashboard use case.
func ProvideDashboard(
	src repository.DatasetSource,
	viewCache cache.Service,
	m repository.Metrics,
	l *xlogger.Logger,
	cfg *config.Config,
) *usecase.Dashboard {
	return usecase.NewDashboard(src, l,
		usecase.WithAlignOptions(
			aligner.WithStrategy(aligner.Strategy(cfg.Alignment.Strategy)),
			aligner.WithGapPolicy(aligner.GapPolicy(cfg.Alignment.GapPolicy)),
		),
		usecase.WithViewCache(viewCache, cfg.Cache.TTL),
		usecase.WithMetrics(m),
	)
}

// ProvideLimiter returns nil when rate limiting is disabled.
func ProvideLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New()
}

// ProvideDashboardHandler creates the Echo handler for the dashboard views.
func ProvideDashboardHandler(l *xlogger.Logger, dash *usecase.Dashboard, limiter *ratelimit.Limiter, cfg *config.Config) *api.DashboardHandler {
	var opts []api.HandlerOption
	if limiter != nil {
		opts = append(opts, api.WithRateLimit(limiter, cfg.RateLimit.Burst, cfg.RateLimit.PerSecond))
	}
	return api.NewDashboardHandler(l, dash, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *xlogger.Logger,
	dash *usecase.Dashboard,
	handler *api.DashboardHandler,
	viewCache cache.Service,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, l, dash, handler, viewCache, limiter)
}
