package aggregate

import (
	"sort"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/filter"
	"InflationPanel/internal/services/stats"
)

type yearBucket struct {
	tuik, enag, ito []*float64
}

// YearlyAverages groups the series by year and averages each source's monthly readings.
// Rows are ascending by year.
func YearlyAverages(series []models.MonthRecord) []models.YearlyAggregate {
	buckets := make(map[int]*yearBucket)
	for _, r := range series {
		b, ok := buckets[r.Year]
		if !ok {
			b = &yearBucket{}
			buckets[r.Year] = b
		}
		b.tuik = append(b.tuik, r.TUIKMonthly)
		b.enag = append(b.enag, r.ENAGMonthly)
		b.ito = append(b.ito, r.ITOMonthly)
	}

	out := make([]models.YearlyAggregate, 0, len(buckets))
	for year, b := range buckets {
		out = append(out, models.YearlyAggregate{
			Year:           year,
			TUIKAvg:        stats.Mean(b.tuik),
			ENAGAvg:        stats.Mean(b.enag),
			ITOAvg:         stats.Mean(b.ito),
			IsCrisisPeriod: filter.OpenCrisis.Contains(year),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// FilterYearly applies the yearly view's period filter, whose crisis is open-ended.
func FilterYearly(aggs []models.YearlyAggregate, period domrepo.Period, now time.Time) []models.YearlyAggregate {
	return filter.YearlyAggregates(aggs, period, filter.OpenCrisis, now)
}

// YearlyPeriodAverages averages the yearly averages of each source inside and before the crisis.
func YearlyPeriodAverages(aggs []models.YearlyAggregate) models.YearlyPeriodAverages {
	res := models.YearlyPeriodAverages{
		Crisis:    make(map[models.Source]*float64, len(models.Sources)),
		PreCrisis: make(map[models.Source]*float64, len(models.Sources)),
	}
	for _, src := range models.Sources {
		var crisis, pre []*float64
		for _, a := range aggs {
			switch {
			case filter.OpenCrisis.Contains(a.Year):
				crisis = append(crisis, a.Avg(src))
			case a.Year <= models.PreCrisisEndYear:
				pre = append(pre, a.Avg(src))
			}
		}
		res.Crisis[src] = stats.Mean(crisis)
		res.PreCrisis[src] = stats.Mean(pre)
	}
	return res
}
