package filter

import (
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
)

// RecentYears is the look-back of the "recent" period, counted from now's year.
const RecentYears = 5

// CrisisPolicy bounds the crisis period. To == 0 leaves it open-ended.
type CrisisPolicy struct {
	From int
	To   int
}

var (
	// ClosedCrisis is used by the heatmap row filter.
	ClosedCrisis = CrisisPolicy{From: models.CrisisStartYear, To: 2025}
	// OpenCrisis is used by the yearly view and the statistics split.
	OpenCrisis = CrisisPolicy{From: models.CrisisStartYear}
)

// Contains reports whether year falls inside the crisis.
func (p CrisisPolicy) Contains(year int) bool {
	if year < p.From {
		return false
	}
	return p.To == 0 || year <= p.To
}

// MatchYear applies period to a single year.
func MatchYear(year int, period domrepo.Period, policy CrisisPolicy, now time.Time) bool {
	switch period {
	case domrepo.PeriodRecent:
		return year >= now.Year()-RecentYears
	case domrepo.PeriodCrisis:
		return policy.Contains(year)
	case domrepo.PeriodPreCrisis:
		return year <= models.PreCrisisEndYear
	default:
		return true
	}
}

// ByTimeframe keeps records with Timestamp >= now minus the window.
// The result is always a fresh slice.
func ByTimeframe(series []models.MonthRecord, tf domrepo.Timeframe, now time.Time) []models.MonthRecord {
	cutoff, bounded := tf.Cutoff(now)
	out := make([]models.MonthRecord, 0, len(series))
	if !bounded {
		return append(out, series...)
	}
	from := cutoff.UnixMilli()
	for _, r := range series {
		if r.Timestamp >= from {
			out = append(out, r)
		}
	}
	return out
}

// WindowStart is the first month start kept by tf at now, or 0 for the whole series.
// Two instants with the same WindowStart select the same records.
func WindowStart(tf domrepo.Timeframe, now time.Time) int64 {
	cutoff, bounded := tf.Cutoff(now)
	if !bounded {
		return 0
	}
	cutoff = cutoff.UTC()
	start := time.Date(cutoff.Year(), cutoff.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start.Before(cutoff) {
		start = start.AddDate(0, 1, 0)
	}
	return start.UnixMilli()
}

// ByPeriod keeps records whose year matches period.
func ByPeriod(series []models.MonthRecord, period domrepo.Period, policy CrisisPolicy, now time.Time) []models.MonthRecord {
	out := make([]models.MonthRecord, 0, len(series))
	for _, r := range series {
		if MatchYear(r.Year, period, policy, now) {
			out = append(out, r)
		}
	}
	return out
}

// Since keeps records at or after from (Unix milliseconds).
func Since(series []models.MonthRecord, from int64) []models.MonthRecord {
	out := make([]models.MonthRecord, 0, len(series))
	for _, r := range series {
		if r.Timestamp >= from {
			out = append(out, r)
		}
	}
	return out
}

// Years filters a year list with the same rules as ByPeriod.
func Years(years []int, period domrepo.Period, policy CrisisPolicy, now time.Time) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if MatchYear(y, period, policy, now) {
			out = append(out, y)
		}
	}
	return out
}

// YearlyAggregates filters yearly rows; the yearly view uses OpenCrisis.
func YearlyAggregates(aggs []models.YearlyAggregate, period domrepo.Period, policy CrisisPolicy, now time.Time) []models.YearlyAggregate {
	out := make([]models.YearlyAggregate, 0, len(aggs))
	for _, a := range aggs {
		if MatchYear(a.Year, period, policy, now) {
			out = append(out, a)
		}
	}
	return out
}
