package stats

import (
	"math"

	"InflationPanel/internal/domain/models"
	"InflationPanel/internal/services/calendar"
	"InflationPanel/internal/services/filter"

	"github.com/sartorproj/goarima/timeseries"
)

// DefaultChartYMax is the y-axis bound of an empty monthly chart.
const DefaultChartYMax = 20

// ReferenceMonths are the marked months of the monthly comparison chart.
var ReferenceMonths = []string{"Ara 2021", "Tem 2023"}

// DefaultChartStart is October 2020, the start of the monthly comparison window.
var DefaultChartStart = calendar.ToTimestamp(2020, 9)

// Mean returns the arithmetic mean of the non-nil values, or nil when there are none.
func Mean(values []*float64) *float64 {
	s := present(values)
	if s == nil {
		return nil
	}
	return models.Float(s.Mean())
}

// Range returns the smallest and largest non-nil values, or nils when there are none.
func Range(values []*float64) (lo, hi *float64) {
	s := present(values)
	if s == nil {
		return nil, nil
	}
	return models.Float(s.Min()), models.Float(s.Max())
}

// present drops the gaps; nil when nothing is left, since an empty Series
// reports 0 or NaN instead of "no data".
func present(values []*float64) *timeseries.Series {
	vals := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			vals = append(vals, *v)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	return timeseries.New(vals)
}

// Extremes finds the highest and lowest monthly reading of src.
// Comparisons are strict, so the earliest record wins a tie.
func Extremes(series []models.MonthRecord, src models.Source) models.Extremes {
	res := models.Extremes{Source: src}
	for _, r := range series {
		v := r.Monthly(src)
		if v == nil {
			continue
		}
		if res.Highest == nil || *v > res.Highest.Value {
			res.Highest = &models.ExtremePoint{Date: r.Date, Value: *v}
		}
		if res.Lowest == nil || *v < res.Lowest.Value {
			res.Lowest = &models.ExtremePoint{Date: r.Date, Value: *v}
		}
	}
	return res
}

// PeriodAverages averages the monthly readings of src inside and before the crisis.
func PeriodAverages(series []models.MonthRecord, src models.Source) models.PeriodAverages {
	var crisis, pre []*float64
	for _, r := range series {
		v := r.Monthly(src)
		if v == nil {
			continue
		}
		switch {
		case filter.OpenCrisis.Contains(r.Year):
			crisis = append(crisis, v)
		case r.Year <= models.PreCrisisEndYear:
			pre = append(pre, v)
		}
	}
	res := models.PeriodAverages{CrisisAvg: Mean(crisis), PreCrisisAvg: Mean(pre)}
	if res.CrisisAvg != nil && res.PreCrisisAvg != nil {
		res.Delta = models.Float(*res.CrisisAvg - *res.PreCrisisAvg)
	}
	return res
}

// LatestAndTrend returns the last reading and its change from the one before.
// The delta is nil with fewer than two records or when either reading is missing.
func LatestAndTrend(series []models.MonthRecord, src models.Source, mode models.Mode) models.LatestTrend {
	n := len(series)
	if n == 0 {
		return models.LatestTrend{}
	}
	last := series[n-1].Value(src, mode)
	res := models.LatestTrend{Latest: models.CloneFloat(last)}
	if n < 2 {
		return res
	}
	prev := series[n-2].Value(src, mode)
	if last != nil && prev != nil {
		res.TrendDelta = models.Float(*last - *prev)
	}
	return res
}

// LatestFigures computes LatestAndTrend for every source.
func LatestFigures(series []models.MonthRecord, mode models.Mode) models.LatestFigures {
	res := models.LatestFigures{Mode: mode, Date: LastUpdated(series), By: make(map[models.Source]models.LatestTrend, len(models.Sources))}
	for _, src := range models.Sources {
		res.By[src] = LatestAndTrend(series, src, mode)
	}
	return res
}

// Differential is ENAG minus TÜİK per record; nil when either side is missing.
func Differential(series []models.MonthRecord, mode models.Mode) []models.DifferentialPoint {
	out := make([]models.DifferentialPoint, 0, len(series))
	for _, r := range series {
		p := models.DifferentialPoint{Date: r.Date, Timestamp: r.Timestamp}
		enag, tuik := r.Value(models.SourceENAG, mode), r.Value(models.SourceTUIK, mode)
		if enag != nil && tuik != nil {
			p.Value = models.Float(*enag - *tuik)
		}
		out = append(out, p)
	}
	return out
}

// MonthlyChart builds the monthly comparison window starting at from.
// YMax is ceil(max monthly reading * 1.1), counting gaps as 0.
func MonthlyChart(series []models.MonthRecord, from int64) models.MonthlyChart {
	points := filter.Since(series, from)
	chart := models.MonthlyChart{
		From:            from,
		Points:          points,
		YMax:            DefaultChartYMax,
		ReferenceMonths: []models.ReferenceMonth{},
	}
	if len(points) == 0 {
		return chart
	}

	peak := math.Inf(-1)
	for _, r := range points {
		for _, src := range models.Sources {
			v := 0.0
			if p := r.Monthly(src); p != nil {
				v = *p
			}
			if v > peak {
				peak = v
			}
		}
		for _, ref := range ReferenceMonths {
			if r.Date == ref {
				chart.ReferenceMonths = append(chart.ReferenceMonths, models.ReferenceMonth{Date: r.Date, Timestamp: r.Timestamp})
			}
		}
	}
	chart.YMax = math.Ceil(peak * 1.1)
	return chart
}

// Tail returns the last n records, oldest first.
func Tail(series []models.MonthRecord, n int) []models.MonthRecord {
	if n <= 0 {
		return []models.MonthRecord{}
	}
	if n > len(series) {
		n = len(series)
	}
	out := make([]models.MonthRecord, n)
	copy(out, series[len(series)-n:])
	return out
}

// LastUpdated is the display date of the last record, or "" for an empty series.
func LastUpdated(series []models.MonthRecord) string {
	if len(series) == 0 {
		return ""
	}
	return series[len(series)-1].Date
}
