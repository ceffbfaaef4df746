package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/aggregate"
	"InflationPanel/internal/services/aligner"
	"InflationPanel/internal/services/filter"
	"InflationPanel/internal/services/stats"
	"InflationPanel/pkg/cache"
	xlogger "InflationPanel/pkg/logger"
)

// ErrNotReady is returned by every view until the first successful load.
var ErrNotReady = errors.New("datasets not loaded")

// snapshot is the aligned series of one load. It is never mutated after publish.
type snapshot struct {
	series   []models.MonthRecord
	report   models.AlignReport
	hash     string
	loadedAt time.Time
}

// Dashboard owns the aligned series and serves memoized derived views.
type Dashboard struct {
	src       domrepo.DatasetSource
	cache     domrepo.ViewCache
	metrics   domrepo.Metrics
	logger    *xlogger.Logger
	alignOpts []aligner.Option
	ttl       time.Duration

	mu   sync.RWMutex
	snap *snapshot
}

type DashboardOption func(*Dashboard)

func WithAlignOptions(opts ...aligner.Option) DashboardOption {
	return func(d *Dashboard) { d.alignOpts = append(d.alignOpts, opts...) }
}

func WithViewCache(c domrepo.ViewCache, ttl time.Duration) DashboardOption {
	return func(d *Dashboard) {
		d.cache = c
		d.ttl = ttl
	}
}

func WithMetrics(m domrepo.Metrics) DashboardOption {
	return func(d *Dashboard) { d.metrics = m }
}

func NewDashboard(src domrepo.DatasetSource, logger *xlogger.Logger, opts ...DashboardOption) *Dashboard {
	if logger == nil {
		logger = xlogger.Nop()
	}
	d := &Dashboard{src: src, logger: logger, ttl: 10 * time.Minute}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches and aligns the datasets, replacing the current snapshot on success.
// A failed load leaves the previous snapshot in place.
func (d *Dashboard) Load(ctx context.Context) error {
	start := time.Now()
	ds, err := LoadDataset(ctx, d.src)
	if err != nil {
		d.recordError("load")
		d.logger.Error("dataset load failed", xlogger.Error(err))
		return err
	}

	series, report := aligner.Align(ds.ITO, ds.TUIK, ds.ENAG, d.alignOpts...)
	if len(report.Unrecognized) > 0 {
		counts := map[models.Source]int{}
		for _, u := range report.Unrecognized {
			counts[u.Source]++
		}
		for src, n := range counts {
			if d.metrics != nil {
				d.metrics.RecordUnrecognized(string(src), n)
			}
		}
		d.logger.Warn("unrecognized month names fell back to January",
			xlogger.Int("count", len(report.Unrecognized)),
			xlogger.Any("values", report.Unrecognized),
		)
	}
	if !report.Monotonic {
		d.logger.Warn("aligned series is not strictly increasing in time", xlogger.String("strategy", report.Strategy))
	}

	snap := &snapshot{series: series, report: report, hash: datasetHash(series), loadedAt: time.Now()}
	d.mu.Lock()
	prev := d.snap
	d.snap = snap
	d.mu.Unlock()

	if prev != nil && d.cache != nil {
		if err := d.cache.DeleteByPattern(ctx, cache.BuildPattern(cache.GenerateKey("view", prev.hash))); err != nil {
			d.logger.Debug("view cache purge failed", xlogger.Error(err))
		}
	}
	if d.metrics != nil {
		d.metrics.RecordSeriesLength(len(series))
		d.metrics.RecordLatency("load", time.Since(start).Seconds())
	}
	d.logger.Info("datasets loaded",
		xlogger.Int("records", len(series)),
		xlogger.Int("tuik", len(ds.TUIK)),
		xlogger.Int("enag", len(ds.ENAG)),
		xlogger.Int("ito", len(ds.ITO)),
		xlogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

// Ready reports whether a snapshot is available.
func (d *Dashboard) Ready() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap != nil
}

func (d *Dashboard) current() (*snapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snap == nil {
		return nil, ErrNotReady
	}
	return d.snap, nil
}

// Report returns the alignment report of the current snapshot.
func (d *Dashboard) Report(ctx context.Context) (models.AlignReport, error) {
	s, err := d.current()
	if err != nil {
		return models.AlignReport{}, err
	}
	return s.report, nil
}

// Series returns the aligned series restricted to tf.
func (d *Dashboard) Series(ctx context.Context, tf domrepo.Timeframe, now time.Time) ([]models.MonthRecord, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return memo(ctx, d, s, []interface{}{"series", filter.WindowStart(tf, now)}, func() []models.MonthRecord {
		return filter.ByTimeframe(s.series, tf, now)
	}), nil
}

// Latest returns latest figures and trends; these always use the unfiltered series.
func (d *Dashboard) Latest(ctx context.Context, mode models.Mode) (models.LatestFigures, error) {
	s, err := d.current()
	if err != nil {
		return models.LatestFigures{}, err
	}
	return memo(ctx, d, s, []interface{}{"latest", mode}, func() models.LatestFigures {
		return stats.LatestFigures(s.series, mode)
	}), nil
}

// Extremes returns the highest and lowest monthly reading of src within tf.
func (d *Dashboard) Extremes(ctx context.Context, src models.Source, tf domrepo.Timeframe, now time.Time) (models.Extremes, error) {
	s, err := d.current()
	if err != nil {
		return models.Extremes{}, err
	}
	return memo(ctx, d, s, []interface{}{"extremes", src, filter.WindowStart(tf, now)}, func() models.Extremes {
		return stats.Extremes(filter.ByTimeframe(s.series, tf, now), src)
	}), nil
}

// PeriodAverages returns crisis against pre-crisis monthly averages of src within tf.
func (d *Dashboard) PeriodAverages(ctx context.Context, src models.Source, tf domrepo.Timeframe, now time.Time) (models.PeriodAverages, error) {
	s, err := d.current()
	if err != nil {
		return models.PeriodAverages{}, err
	}
	return memo(ctx, d, s, []interface{}{"period_averages", src, filter.WindowStart(tf, now)}, func() models.PeriodAverages {
		return stats.PeriodAverages(filter.ByTimeframe(s.series, tf, now), src)
	}), nil
}

// YearlyView bundles the filtered yearly rows with the crisis comparison.
type YearlyView struct {
	Period         domrepo.Period              `json:"period"`
	Years          []models.YearlyAggregate    `json:"years"`
	PeriodAverages models.YearlyPeriodAverages `json:"period_averages"`
}

// Yearly returns yearly averages filtered by period. Period averages always cover every year.
func (d *Dashboard) Yearly(ctx context.Context, period domrepo.Period, now time.Time) (YearlyView, error) {
	s, err := d.current()
	if err != nil {
		return YearlyView{}, err
	}
	return memo(ctx, d, s, []interface{}{"yearly", period, now.Year()}, func() YearlyView {
		all := aggregate.YearlyAverages(s.series)
		return YearlyView{
			Period:         period,
			Years:          aggregate.FilterYearly(all, period, now),
			PeriodAverages: aggregate.YearlyPeriodAverages(all),
		}
	}), nil
}

// Heatmap returns the year x month grid of src.
func (d *Dashboard) Heatmap(ctx context.Context, src models.Source, period domrepo.Period, now time.Time) (models.HeatmapMatrix, error) {
	s, err := d.current()
	if err != nil {
		return models.HeatmapMatrix{}, err
	}
	return memo(ctx, d, s, []interface{}{"heatmap", src, period, now.Year()}, func() models.HeatmapMatrix {
		return aggregate.Heatmap(s.series, src, period, now)
	}), nil
}

// Differential returns ENAG minus TÜİK over the tf window.
func (d *Dashboard) Differential(ctx context.Context, mode models.Mode, tf domrepo.Timeframe, now time.Time) ([]models.DifferentialPoint, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return memo(ctx, d, s, []interface{}{"differential", mode, filter.WindowStart(tf, now)}, func() []models.DifferentialPoint {
		return stats.Differential(filter.ByTimeframe(s.series, tf, now), mode)
	}), nil
}

// MonthlyChart returns the monthly comparison window starting at from.
func (d *Dashboard) MonthlyChart(ctx context.Context, from int64) (models.MonthlyChart, error) {
	s, err := d.current()
	if err != nil {
		return models.MonthlyChart{}, err
	}
	return memo(ctx, d, s, []interface{}{"monthly_chart", from}, func() models.MonthlyChart {
		return stats.MonthlyChart(s.series, from)
	}), nil
}

// TableView is the last-n rows of the tf window with its "last updated" date.
type TableView struct {
	LastUpdated string               `json:"last_updated"`
	Rows        []models.MonthRecord `json:"rows"`
}

func (d *Dashboard) Table(ctx context.Context, tf domrepo.Timeframe, n int, now time.Time) (TableView, error) {
	s, err := d.current()
	if err != nil {
		return TableView{}, err
	}
	return memo(ctx, d, s, []interface{}{"table", filter.WindowStart(tf, now), n}, func() TableView {
		window := filter.ByTimeframe(s.series, tf, now)
		return TableView{LastUpdated: stats.LastUpdated(window), Rows: stats.Tail(window, n)}
	}), nil
}

// memo serves a view from the cache or computes and stores it.
// Views are pure functions of the snapshot and params, so the key needs nothing else.
func memo[T any](ctx context.Context, d *Dashboard, s *snapshot, params []interface{}, compute func() T) T {
	start := time.Now()
	if d.metrics != nil {
		defer func() {
			d.metrics.RecordLatency("view_"+params[0].(string), time.Since(start).Seconds())
		}()
	}
	if d.cache == nil {
		return compute()
	}

	key := cache.GenerateKeyWithParams(cache.GenerateKey("view", s.hash), params...)
	var out T
	if err := d.cache.Get(ctx, key, &out); err == nil {
		return out
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		d.logger.Debug("view cache get failed", xlogger.String("key", key), xlogger.Error(err))
	}

	out = compute()
	if err := d.cache.Set(ctx, key, out, d.ttl); err != nil {
		d.logger.Debug("view cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
	return out
}

func (d *Dashboard) recordError(kind string) {
	if d.metrics != nil {
		d.metrics.RecordError(kind)
	}
}

func datasetHash(series []models.MonthRecord) string {
	b, err := json.Marshal(series)
	if err != nil {
		return "unhashable"
	}
	return cache.HashKey(string(b))[:12]
}
