package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	"InflationPanel/internal/services/calendar"
	"InflationPanel/internal/services/filter"
	"InflationPanel/internal/services/stats"
)

// Heatmap lays out the monthly readings of src as a year x month grid.
// Rows are filtered with the closed crisis window. Cells are matched by the
// month name of the display date, full or abbreviated; unknown names are skipped
// and a later record for the same cell overwrites an earlier one.
func Heatmap(series []models.MonthRecord, src models.Source, period domrepo.Period, now time.Time) models.HeatmapMatrix {
	years := filter.Years(distinctYears(series), period, filter.ClosedCrisis, now)

	m := models.HeatmapMatrix{
		Source:          src,
		Years:           years,
		Months:          calendar.FullMonthNames,
		Cells:           make(map[int][12]*float64, len(years)),
		YearlyAverages:  make(map[int]*float64, len(years)),
		NegativeDivisor: 1,
		PositiveDivisor: 1,
	}

	for _, y := range years {
		m.Cells[y] = [12]*float64{}
	}
	for _, r := range series {
		row, ok := m.Cells[r.Year]
		if !ok {
			continue
		}
		idx := calendar.DisplayMonthIndex(monthName(r.Date))
		if idx < 0 {
			continue
		}
		row[idx] = models.CloneFloat(r.Monthly(src))
		m.Cells[r.Year] = row
	}

	cells := make([]*float64, 0, 12*len(years))
	for _, y := range years {
		row := m.Cells[y]
		m.YearlyAverages[y] = stats.Mean(row[:])
		cells = append(cells, row[:]...)
	}
	m.Min, m.Max = stats.Range(cells)
	if m.Min != nil {
		if *m.Min != 0 {
			m.NegativeDivisor = math.Abs(*m.Min)
		}
		if *m.Max/2 != 0 {
			m.PositiveDivisor = *m.Max / 2
		}
	}
	return m
}

func distinctYears(series []models.MonthRecord) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range series {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

func monthName(date string) string {
	if i := strings.IndexByte(date, ' '); i >= 0 {
		return date[:i]
	}
	return date
}
