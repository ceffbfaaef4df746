package aggregate

import (
	"math"
	"testing"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/calendar"
)

var now = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return models.Float(v) }

func rec(date string, tuik, enag, ito *float64) models.MonthRecord {
	ym, _ := calendar.ParseMonthYear(date)
	return models.MonthRecord{
		Date:        date,
		Timestamp:   ym.Timestamp(),
		Year:        ym.Year,
		MonthIndex:  ym.Month,
		TUIKMonthly: tuik,
		ENAGMonthly: enag,
		ITOMonthly:  ito,
	}
}

func TestYearlyAverages(t *testing.T) {
	series := []models.MonthRecord{
		rec("Oca 2021", f(1), f(2), nil),
		rec("Şub 2021", f(3), f(4), nil),
		rec("Oca 2020", f(0.5), nil, f(1)),
	}
	got := YearlyAverages(series)
	if len(got) != 2 || got[0].Year != 2020 || got[1].Year != 2021 {
		t.Fatalf("unexpected rows %+v", got)
	}
	if got[0].IsCrisisPeriod || !got[1].IsCrisisPeriod {
		t.Fatalf("crisis flag wrong")
	}
	if *got[1].TUIKAvg != 2 || *got[1].ENAGAvg != 3 || got[1].ITOAvg != nil {
		t.Fatalf("2021 averages wrong %+v", got[1])
	}
	if got[0].ENAGAvg != nil || *got[0].ITOAvg != 1 {
		t.Fatalf("2020 averages wrong %+v", got[0])
	}
}

func TestYearlyAveragesEmpty(t *testing.T) {
	if got := YearlyAverages(nil); len(got) != 0 {
		t.Fatalf("expected empty")
	}
}

func TestFilterYearlyUsesOpenCrisis(t *testing.T) {
	aggs := []models.YearlyAggregate{{Year: 2020}, {Year: 2021}, {Year: 2026}}
	got := FilterYearly(aggs, domrepo.PeriodCrisis, now)
	if len(got) != 2 || got[1].Year != 2026 {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestYearlyPeriodAverages(t *testing.T) {
	aggs := []models.YearlyAggregate{
		{Year: 2019, TUIKAvg: f(1)},
		{Year: 2020, TUIKAvg: f(3), ENAGAvg: f(2)},
		{Year: 2021, TUIKAvg: f(4), ENAGAvg: f(8)},
		{Year: 2022, TUIKAvg: f(6), ENAGAvg: f(10)},
	}
	res := YearlyPeriodAverages(aggs)
	if *res.Crisis[models.SourceTUIK] != 5 || *res.PreCrisis[models.SourceTUIK] != 2 {
		t.Fatalf("tuik averages wrong")
	}
	if *res.Crisis[models.SourceENAG] != 9 || *res.PreCrisis[models.SourceENAG] != 2 {
		t.Fatalf("enag averages wrong")
	}
	if res.Crisis[models.SourceITO] != nil {
		t.Fatalf("ito should be nil")
	}
}

func TestHeatmap(t *testing.T) {
	series := []models.MonthRecord{
		rec("Oca 2021", f(1.68), nil, nil),
		rec("Şubat 2021", f(0.91), nil, nil),
		rec("Ara 2021", f(13.58), nil, nil),
		rec("Oca 2022", f(11.10), nil, nil),
		rec("Şub 2022", f(-0.5), nil, nil),
	}
	m := Heatmap(series, models.SourceTUIK, domrepo.PeriodAll, now)
	if len(m.Years) != 2 || m.Years[0] != 2021 {
		t.Fatalf("years %v", m.Years)
	}
	row := m.Cells[2021]
	if row[0] == nil || *row[0] != 1.68 || row[1] == nil || *row[1] != 0.91 || row[11] == nil || row[5] != nil {
		t.Fatalf("unexpected 2021 row")
	}
	if avg := m.YearlyAverages[2022]; avg == nil || math.Abs(*avg-5.3) > 1e-9 {
		t.Fatalf("2022 avg %v", avg)
	}
	if *m.Min != -0.5 || *m.Max != 13.58 {
		t.Fatalf("min/max %v %v", *m.Min, *m.Max)
	}
	if m.NegativeDivisor != 0.5 || m.PositiveDivisor != 13.58/2 {
		t.Fatalf("divisors %v %v", m.NegativeDivisor, m.PositiveDivisor)
	}
	if m.Months[0] != "Ocak" {
		t.Fatalf("months %v", m.Months)
	}
}

func TestHeatmapClosedCrisisAndEmptyScale(t *testing.T) {
	series := []models.MonthRecord{
		rec("Oca 2020", f(1), nil, nil),
		rec("Oca 2025", nil, nil, nil),
		rec("Oca 2026", f(2), nil, nil),
	}
	m := Heatmap(series, models.SourceTUIK, domrepo.PeriodCrisis, now)
	if len(m.Years) != 1 || m.Years[0] != 2025 {
		t.Fatalf("closed crisis should keep only 2025, got %v", m.Years)
	}
	if m.Min != nil || m.Max != nil || m.NegativeDivisor != 1 || m.PositiveDivisor != 1 {
		t.Fatalf("empty scale should fall back to 1")
	}
	if m.YearlyAverages[2025] != nil {
		t.Fatalf("expected nil average")
	}
}

func TestHeatmapZeroExtremes(t *testing.T) {
	m := Heatmap([]models.MonthRecord{rec("Oca 2021", f(0), nil, nil)}, models.SourceTUIK, domrepo.PeriodAll, now)
	if m.Min == nil || *m.Min != 0 || m.NegativeDivisor != 1 || m.PositiveDivisor != 1 {
		t.Fatalf("zero extremes should fall back to divisor 1, got %+v", m)
	}
}

func TestHeatmapSkipsUnknownMonth(t *testing.T) {
	r := rec("Oca 2021", f(1), nil, nil)
	r.Date = "Foo 2021"
	m := Heatmap([]models.MonthRecord{r}, models.SourceTUIK, domrepo.PeriodAll, now)
	for _, v := range m.Cells[2021] {
		if v != nil {
			t.Fatalf("unknown month should be skipped")
		}
	}
}
