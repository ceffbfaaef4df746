package aligner

import (
	"InflationPanel/internal/domain/models"
	"InflationPanel/internal/services/calendar"
)

// Strategy selects how Source C (ENAG) is paired with the base series.
type Strategy string

const (
	// StrategyKeyed joins every source on (year, month).
	StrategyKeyed Strategy = "keyed"
	// StrategyPositional pairs ENAG by array index, as the first dashboard did.
	// Output length is min(len(TÜİK), len(ENAG)).
	StrategyPositional Strategy = "positional"
)

// GapPolicy decides what happens to a base month that ENAG does not cover.
type GapPolicy string

const (
	GapFill GapPolicy = "fill"
	GapDrop GapPolicy = "drop"
)

type Options struct {
	Strategy  Strategy
	GapPolicy GapPolicy
}

type Option func(*Options)

func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s == StrategyPositional {
			o.Strategy = s
			return
		}
		o.Strategy = StrategyKeyed
	}
}

func WithGapPolicy(g GapPolicy) Option {
	return func(o *Options) {
		if g == GapDrop {
			o.GapPolicy = g
			return
		}
		o.GapPolicy = GapFill
	}
}

// Align merges the three raw series into one record per base (TÜİK) month.
// Output follows base order and is never re-sorted. Input slices are not modified.
func Align(ito []models.ITORecord, tuik, enag []models.LabeledRecord, opts ...Option) ([]models.MonthRecord, models.AlignReport) {
	o := &Options{Strategy: StrategyKeyed, GapPolicy: GapFill}
	for _, opt := range opts {
		opt(o)
	}

	report := models.AlignReport{
		Strategy:     string(o.Strategy),
		GapPolicy:    string(o.GapPolicy),
		BaseRecords:  len(tuik),
		Unrecognized: []models.UnrecognizedDate{},
	}
	itoIdx := indexITO(ito, &report)

	var out []models.MonthRecord
	if o.Strategy == StrategyPositional {
		out = alignPositional(itoIdx, tuik, enag, &report)
	} else {
		out = alignKeyed(itoIdx, tuik, enag, o.GapPolicy, &report)
	}

	report.Output = len(out)
	report.Monotonic = isMonotonic(out)
	return out, report
}

func alignKeyed(itoIdx monthIndex[models.ITORecord], tuik, enag []models.LabeledRecord, gaps GapPolicy, report *models.AlignReport) []models.MonthRecord {
	enagIdx := newMonthIndex[models.LabeledRecord](len(enag))
	for _, r := range enag {
		ym, ok := calendar.ParseMonthYear(r.Date)
		if !ok {
			report.Unrecognized = append(report.Unrecognized, models.UnrecognizedDate{Source: models.SourceENAG, Value: r.Date})
		}
		enagIdx.put(ym.Key(), r, ok)
	}

	out := make([]models.MonthRecord, 0, len(tuik))
	seen := make(map[int]struct{}, len(tuik))
	for _, base := range tuik {
		ym, ok := parseBase(base.Date, report)
		// Unrecognized rows only carry a fallback key and never claim a month.
		if ok {
			if _, dup := seen[ym.Key()]; dup {
				report.Duplicates++
				continue
			}
			seen[ym.Key()] = struct{}{}
		}

		c, hasC := enagIdx.get(ym.Key())
		if !hasC && gaps == GapDrop {
			report.Dropped++
			continue
		}

		rec := newRecord(base, ym)
		if hasC {
			report.MatchedENAG++
			rec.ENAGMonthly = models.CloneFloat(c.Monthly)
			rec.ENAGAnnual = models.CloneFloat(c.Annual)
		}
		attachITO(&rec, itoIdx, ym, report)
		out = append(out, rec)
	}
	return out
}

func alignPositional(itoIdx monthIndex[models.ITORecord], tuik, enag []models.LabeledRecord, report *models.AlignReport) []models.MonthRecord {
	n := len(tuik)
	if len(enag) < n {
		n = len(enag)
	}
	report.Dropped = len(tuik) - n

	out := make([]models.MonthRecord, 0, n)
	for i := 0; i < n; i++ {
		ym, _ := parseBase(tuik[i].Date, report)
		rec := newRecord(tuik[i], ym)
		rec.ENAGMonthly = models.CloneFloat(enag[i].Monthly)
		rec.ENAGAnnual = models.CloneFloat(enag[i].Annual)
		report.MatchedENAG++
		attachITO(&rec, itoIdx, ym, report)
		out = append(out, rec)
	}
	return out
}

func parseBase(date string, report *models.AlignReport) (calendar.YearMonth, bool) {
	ym, ok := calendar.ParseMonthYear(date)
	if !ok {
		report.Unrecognized = append(report.Unrecognized, models.UnrecognizedDate{Source: models.SourceTUIK, Value: date})
	}
	return ym, ok
}

func newRecord(base models.LabeledRecord, ym calendar.YearMonth) models.MonthRecord {
	return models.MonthRecord{
		Date:        base.Date,
		Timestamp:   ym.Timestamp(),
		Year:        ym.Year,
		MonthIndex:  ym.Month,
		TUIKMonthly: models.CloneFloat(base.Monthly),
		TUIKAnnual:  models.CloneFloat(base.Annual),
	}
}

func attachITO(rec *models.MonthRecord, idx monthIndex[models.ITORecord], ym calendar.YearMonth, report *models.AlignReport) {
	a, ok := idx.get(ym.Key())
	if !ok {
		return
	}
	report.MatchedITO++
	rec.ITOMonthly = models.CloneFloat(a.CPIWageEarners.MoMChangePct)
	rec.ITOAnnual = models.CloneFloat(a.CPIWageEarners.YoYChangePct)
}

// indexITO keys Source A by (year, month). The first recognized record of a
// month wins; a fallback record only fills a month nobody else claims.
func indexITO(ito []models.ITORecord, report *models.AlignReport) monthIndex[models.ITORecord] {
	idx := newMonthIndex[models.ITORecord](len(ito))
	for _, r := range ito {
		month, ok := calendar.ParseMonthName(r.Month)
		if !ok {
			report.Unrecognized = append(report.Unrecognized, models.UnrecognizedDate{Source: models.SourceITO, Value: r.Month})
		}
		idx.put(calendar.YearMonth{Year: r.Year, Month: month}.Key(), r, ok)
	}
	return idx
}

// monthIndex maps month keys to records, preferring recognized dates over
// January fallbacks.
type monthIndex[T any] struct {
	rows     map[int]T
	fallback map[int]bool
}

func newMonthIndex[T any](n int) monthIndex[T] {
	return monthIndex[T]{rows: make(map[int]T, n), fallback: make(map[int]bool)}
}

func (m monthIndex[T]) put(key int, row T, recognized bool) {
	if _, held := m.rows[key]; held && !(recognized && m.fallback[key]) {
		return
	}
	m.rows[key] = row
	m.fallback[key] = !recognized
}

func (m monthIndex[T]) get(key int) (T, bool) {
	row, ok := m.rows[key]
	return row, ok
}

func isMonotonic(series []models.MonthRecord) bool {
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp <= series[i-1].Timestamp {
			return false
		}
	}
	return true
}
