package aggregate

import (
	"reflect"
	"testing"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/aligner"
	"InflationPanel/internal/services/filter"
	"InflationPanel/internal/services/stats"
)

func TestSingleMonthEndToEnd(t *testing.T) {
	ito := []models.ITORecord{{Year: 2021, Month: "Aralık", CPIWageEarners: models.WageEarnersIndex{MoMChangePct: f(10)}}}
	tuik := []models.LabeledRecord{{Date: "Aralık 2021", Monthly: f(25)}}
	enag := []models.LabeledRecord{{Date: "Aralık 2021", Monthly: f(15)}}

	series, report := aligner.Align(ito, tuik, enag)
	if len(series) != 1 || series[0].Date != "Aralık 2021" || report.MatchedITO != 1 {
		t.Fatalf("align %+v %+v", series, report)
	}

	want := map[models.Source]float64{models.SourceITO: 10, models.SourceTUIK: 25, models.SourceENAG: 15}
	for src, v := range want {
		ex := stats.Extremes(series, src)
		if ex.Highest == nil || ex.Lowest == nil || ex.Highest.Value != v || ex.Lowest.Value != v {
			t.Fatalf("%s extremes %+v", src, ex)
		}
		if ex.Highest.Date != "Aralık 2021" || *ex.Highest != *ex.Lowest {
			t.Fatalf("%s: highest and lowest should be the same record", src)
		}
	}
}

func TestYearlyAveragesAfterAllTimeframe(t *testing.T) {
	series := []models.MonthRecord{
		rec("Oca 2019", f(1), f(2), nil),
		rec("Şub 2019", f(3), nil, f(4)),
		rec("Oca 2023", f(6), f(7), f(8)),
	}
	filtered := filter.ByTimeframe(series, domrepo.TFAll, now)
	if !reflect.DeepEqual(YearlyAverages(filtered), YearlyAverages(series)) {
		t.Fatalf("timeframe all must not change yearly averages")
	}
}

func TestHeatmapPreCrisisExcludesCrisisYears(t *testing.T) {
	series := []models.MonthRecord{
		rec("Oca 2020", f(1), nil, nil),
		rec("Oca 2021", f(2), nil, nil),
		rec("Oca 2024", f(3), nil, nil),
	}
	m := Heatmap(series, models.SourceTUIK, domrepo.PeriodPreCrisis, now)
	if !reflect.DeepEqual(m.Years, []int{2020}) {
		t.Fatalf("pre-crisis years %v", m.Years)
	}
	if _, ok := m.Cells[2021]; ok {
		t.Fatalf("2021 row should be absent")
	}
}
