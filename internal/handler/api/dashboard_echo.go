package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/service/metrics"
	"InflationPanel/internal/service/ratelimit"
	"InflationPanel/internal/services/calendar"
	"InflationPanel/internal/services/stats"
	"InflationPanel/internal/usecase"
	xhttp "InflationPanel/pkg/http"
	xlogger "InflationPanel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the read-only dashboard views over Echo.
type DashboardHandler struct {
	logger  *xlogger.Logger
	dash    *usecase.Dashboard
	limiter *ratelimit.Limiter
	burst   float64
	perSec  float64
	now     func() time.Time
}

type HandlerOption func(*DashboardHandler)

// WithRateLimit enables a per-client, per-endpoint token bucket.
func WithRateLimit(l *ratelimit.Limiter, burst, perSecond float64) HandlerOption {
	return func(h *DashboardHandler) {
		h.limiter = l
		h.burst = burst
		h.perSec = perSecond
	}
}

// WithClock replaces the default time source for requests without a "now" parameter.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *DashboardHandler) { h.now = now }
}

func NewDashboardHandler(logger *xlogger.Logger, dash *usecase.Dashboard, opts ...HandlerOption) *DashboardHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	h := &DashboardHandler{logger: logger, dash: dash, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/readyz", h.Ready)

	g := e.Group("/api", h.rateLimit)
	g.GET("/series", h.observe("series", h.Series))
	g.GET("/latest", h.observe("latest", h.Latest))
	g.GET("/extremes", h.observe("extremes", h.Extremes))
	g.GET("/period-averages", h.observe("period_averages", h.PeriodAverages))
	g.GET("/yearly", h.observe("yearly", h.Yearly))
	g.GET("/heatmap", h.observe("heatmap", h.Heatmap))
	g.GET("/differential", h.observe("differential", h.Differential))
	g.GET("/monthly-chart", h.observe("monthly_chart", h.MonthlyChart))
	g.GET("/table", h.observe("table", h.Table))
	g.GET("/report", h.observe("report", h.Report))
}

func (h *DashboardHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{"status": "ok", "ready": h.dash.Ready()})
}

// Ready answers 503 until the first dataset load succeeds.
func (h *DashboardHandler) Ready(c echo.Context) error {
	if !h.dash.Ready() {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("datasets are not loaded yet"))
	}
	return xhttp.SuccessResponse(c, map[string]bool{"ready": true})
}

func (h *DashboardHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Series(c.Request().Context(), domrepo.NormalizeTimeframe(req.TF), now)
	if err != nil {
		return h.fail(c, "series", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Latest(c echo.Context) error {
	req := &models.LatestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.dash.Latest(c.Request().Context(), models.ParseMode(req.Mode))
	if err != nil {
		return h.fail(c, "latest", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Extremes(c echo.Context) error {
	req := &models.SourceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Extremes(c.Request().Context(), models.ParseSource(req.Source), domrepo.NormalizeTimeframe(req.TF), now)
	if err != nil {
		return h.fail(c, "extremes", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) PeriodAverages(c echo.Context) error {
	req := &models.SourceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.PeriodAverages(c.Request().Context(), models.ParseSource(req.Source), domrepo.NormalizeTimeframe(req.TF), now)
	if err != nil {
		return h.fail(c, "period averages", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Yearly(c echo.Context) error {
	req := &models.YearlyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Yearly(c.Request().Context(), domrepo.NormalizePeriod(req.Period), now)
	if err != nil {
		return h.fail(c, "yearly", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Heatmap(c echo.Context) error {
	req := &models.HeatmapRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Heatmap(c.Request().Context(), models.ParseSource(req.Source), domrepo.NormalizePeriod(req.Period), now)
	if err != nil {
		return h.fail(c, "heatmap", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Differential(c echo.Context) error {
	req := &models.DifferentialRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Differential(c.Request().Context(), models.ParseMode(req.Mode), domrepo.NormalizeTimeframe(req.TF), now)
	if err != nil {
		return h.fail(c, "differential", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) MonthlyChart(c echo.Context) error {
	req := &models.MonthlyChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from := stats.DefaultChartStart
	if req.From != "" {
		ym, ok := calendar.ParseMonthYear(req.From)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("from must look like \"Eki 2020\", got %q", req.From).WithParam("field", "from"))
		}
		from = ym.Timestamp()
	}

	res, err := h.dash.MonthlyChart(c.Request().Context(), from)
	if err != nil {
		return h.fail(c, "monthly chart", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Table(c echo.Context) error {
	req := &models.TableRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	now, aerr := h.clock(req.Now)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	res, err := h.dash.Table(c.Request().Context(), domrepo.NormalizeTimeframe(req.TF), *req.N, now)
	if err != nil {
		return h.fail(c, "table", err)
	}
	return h.ok(c, res)
}

func (h *DashboardHandler) Report(c echo.Context) error {
	res, err := h.dash.Report(c.Request().Context())
	if err != nil {
		return h.fail(c, "report", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) ok(c echo.Context, data interface{}) error {
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=60")
	return xhttp.SuccessResponse(c, data)
}

// clock resolves the optional "now" override.
func (h *DashboardHandler) clock(raw string) (time.Time, *xhttp.AppError) {
	if raw == "" {
		return h.now(), nil
	}
	t, ok := xhttp.ParseTime(raw)
	if !ok {
		return time.Time{}, xhttp.BadRequestErrorf("now must be RFC3339, a date or unix seconds, got %q", raw).WithParam("field", "now")
	}
	return t, nil
}

func (h *DashboardHandler) fail(c echo.Context, op string, err error) error {
	if errors.Is(err, usecase.ErrNotReady) {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("datasets are not loaded yet").WithError(err))
	}
	h.logger.Error(op+" view error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to build "+op).WithError(err))
}

func (h *DashboardHandler) observe(endpoint string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		metrics.ViewLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if status := c.Response().Status; status >= http.StatusBadRequest {
			metrics.ViewErrors.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		}
		return err
	}
}

func (h *DashboardHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.limiter == nil {
			return next(c)
		}
		route := c.Path()
		if !h.limiter.Allow(c.RealIP()+":"+route, h.burst, h.perSec) {
			metrics.RateLimited.WithLabelValues(route).Inc()
			h.logger.Warn("rate limited", xlogger.String("remote_ip", c.RealIP()), xlogger.String("route", route))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many requests"))
		}
		return next(c)
	}
}
