package stats

import (
	"math"
	"testing"

	"InflationPanel/internal/domain/models"
	"InflationPanel/internal/services/calendar"
)

func rec(year, month int, tuik, enag *float64) models.MonthRecord {
	return models.MonthRecord{
		Date:        calendar.FormatMonthYear(year, month),
		Timestamp:   calendar.ToTimestamp(year, month),
		Year:        year,
		MonthIndex:  month,
		TUIKMonthly: tuik,
		TUIKAnnual:  tuik,
		ENAGMonthly: enag,
		ENAGAnnual:  enag,
	}
}

func f(v float64) *float64 { return models.Float(v) }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExtremesStrictComparison(t *testing.T) {
	series := []models.MonthRecord{
		rec(2021, 0, f(5), nil),
		rec(2021, 1, f(2), nil),
		rec(2021, 2, f(5), nil),
		rec(2021, 3, f(2), nil),
		rec(2021, 4, nil, nil),
	}
	ex := Extremes(series, models.SourceTUIK)
	if ex.Highest == nil || ex.Highest.Date != "Oca 2021" || ex.Highest.Value != 5 {
		t.Fatalf("highest should be earliest max, got %+v", ex.Highest)
	}
	if ex.Lowest == nil || ex.Lowest.Date != "Şub 2021" || ex.Lowest.Value != 2 {
		t.Fatalf("lowest should be earliest min, got %+v", ex.Lowest)
	}
}

func TestExtremesEmpty(t *testing.T) {
	ex := Extremes([]models.MonthRecord{rec(2021, 0, nil, nil)}, models.SourceTUIK)
	if ex.Highest != nil || ex.Lowest != nil {
		t.Fatalf("expected nil extremes")
	}
}

func TestPeriodAverages(t *testing.T) {
	series := []models.MonthRecord{
		rec(2019, 0, f(1), nil),
		rec(2020, 0, f(3), nil),
		rec(2021, 0, f(4), nil),
		rec(2022, 0, f(6), nil),
		rec(2022, 1, nil, nil),
	}
	pa := PeriodAverages(series, models.SourceTUIK)
	if pa.CrisisAvg == nil || !almostEqual(*pa.CrisisAvg, 5) {
		t.Fatalf("crisis avg %v", pa.CrisisAvg)
	}
	if pa.PreCrisisAvg == nil || !almostEqual(*pa.PreCrisisAvg, 2) {
		t.Fatalf("pre-crisis avg %v", pa.PreCrisisAvg)
	}
	if pa.Delta == nil || !almostEqual(*pa.Delta, 3) {
		t.Fatalf("delta %v", pa.Delta)
	}
}

func TestPeriodAveragesMissingPartition(t *testing.T) {
	pa := PeriodAverages([]models.MonthRecord{rec(2022, 0, f(6), nil)}, models.SourceTUIK)
	if pa.PreCrisisAvg != nil || pa.Delta != nil {
		t.Fatalf("expected nil pre-crisis and delta, got %+v", pa)
	}
}

func TestLatestAndTrend(t *testing.T) {
	series := []models.MonthRecord{rec(2023, 0, f(64.27), nil), rec(2023, 1, f(55.18), nil)}
	lt := LatestAndTrend(series, models.SourceTUIK, models.ModeAnnual)
	if lt.Latest == nil || *lt.Latest != 55.18 {
		t.Fatalf("latest %v", lt.Latest)
	}
	if lt.TrendDelta == nil || !almostEqual(*lt.TrendDelta, 55.18-64.27) {
		t.Fatalf("trend %v", lt.TrendDelta)
	}
}

func TestLatestAndTrendNilCases(t *testing.T) {
	single := LatestAndTrend([]models.MonthRecord{rec(2023, 0, f(1), nil)}, models.SourceTUIK, models.ModeMonthly)
	if single.Latest == nil || single.TrendDelta != nil {
		t.Fatalf("single record: %+v", single)
	}
	gap := LatestAndTrend([]models.MonthRecord{rec(2023, 0, nil, nil), rec(2023, 1, f(2), nil)}, models.SourceTUIK, models.ModeMonthly)
	if gap.TrendDelta != nil {
		t.Fatalf("expected nil trend when previous is missing")
	}
	empty := LatestAndTrend(nil, models.SourceTUIK, models.ModeMonthly)
	if empty.Latest != nil || empty.TrendDelta != nil {
		t.Fatalf("expected empty result")
	}
}

func TestLatestFigures(t *testing.T) {
	series := []models.MonthRecord{rec(2023, 0, f(1), f(3)), rec(2023, 1, f(2), f(7))}
	lf := LatestFigures(series, models.ModeMonthly)
	if lf.Date != "Şub 2023" {
		t.Fatalf("date %q", lf.Date)
	}
	if d := lf.By[models.SourceENAG].TrendDelta; d == nil || *d != 4 {
		t.Fatalf("enag trend %v", d)
	}
	if lf.By[models.SourceITO].Latest != nil {
		t.Fatalf("ito should be nil")
	}
}

func TestDifferential(t *testing.T) {
	series := []models.MonthRecord{rec(2023, 0, f(1), f(3.5)), rec(2023, 1, f(2), nil)}
	diff := Differential(series, models.ModeAnnual)
	if len(diff) != 2 || diff[0].Value == nil || *diff[0].Value != 2.5 {
		t.Fatalf("unexpected diff %+v", diff)
	}
	if diff[1].Value != nil {
		t.Fatalf("expected nil differential on gap")
	}
}

func TestMonthlyChart(t *testing.T) {
	series := []models.MonthRecord{
		rec(2020, 8, f(50), f(50)),
		rec(2020, 9, f(2), f(4)),
		rec(2021, 11, f(13.58), f(19.35)),
		rec(2023, 6, f(9.49), nil),
	}
	chart := MonthlyChart(series, DefaultChartStart)
	if len(chart.Points) != 3 {
		t.Fatalf("expected window from Eki 2020, got %d points", len(chart.Points))
	}
	if chart.YMax != math.Ceil(19.35*1.1) {
		t.Fatalf("y max %v", chart.YMax)
	}
	if len(chart.ReferenceMonths) != 2 || chart.ReferenceMonths[0].Date != "Ara 2021" {
		t.Fatalf("reference months %+v", chart.ReferenceMonths)
	}
}

func TestMonthlyChartEmpty(t *testing.T) {
	chart := MonthlyChart([]models.MonthRecord{rec(2019, 0, f(1), f(1))}, DefaultChartStart)
	if chart.YMax != DefaultChartYMax || len(chart.Points) != 0 {
		t.Fatalf("unexpected empty chart %+v", chart)
	}
}

func TestTailAndLastUpdated(t *testing.T) {
	var series []models.MonthRecord
	for m := 0; m < 12; m++ {
		series = append(series, rec(2022, m, f(float64(m)), nil))
	}
	tail := Tail(series, 3)
	if len(tail) != 3 || tail[0].Date != "Eki 2022" {
		t.Fatalf("unexpected tail %+v", tail)
	}
	if got := len(Tail(series, 50)); got != 12 {
		t.Fatalf("tail clamp %d", got)
	}
	if LastUpdated(series) != "Ara 2022" || LastUpdated(nil) != "" {
		t.Fatalf("last updated mismatch")
	}
}

func TestMean(t *testing.T) {
	if Mean(nil) != nil {
		t.Fatalf("expected nil mean")
	}
	if m := Mean([]*float64{f(0), nil, f(3)}); m == nil || *m != 1.5 {
		t.Fatalf("mean %v", m)
	}
}

func TestRange(t *testing.T) {
	if lo, hi := Range([]*float64{nil, nil}); lo != nil || hi != nil {
		t.Fatalf("expected nil range for gaps only")
	}
	lo, hi := Range([]*float64{nil, f(-0.5), f(13.58), f(0)})
	if lo == nil || hi == nil || *lo != -0.5 || *hi != 13.58 {
		t.Fatalf("range %v %v", lo, hi)
	}
}
