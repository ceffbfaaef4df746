package models

// Source identifies one of the three inflation publishers.
type Source string

const (
	SourceTUIK Source = "tuik"
	SourceENAG Source = "enag"
	SourceITO  Source = "ito"
)

// Sources lists every publisher in display order.
var Sources = []Source{SourceTUIK, SourceENAG, SourceITO}

// Mode selects the month-over-month or the year-over-year figure.
type Mode string

const (
	ModeMonthly Mode = "mom"
	ModeAnnual  Mode = "yoy"
)

// Crisis boundaries shared by the statistics and yearly views.
const (
	CrisisStartYear  = 2021
	PreCrisisEndYear = 2020
)

// ITORecord is one month of the Istanbul Chamber of Commerce wage-earners index.
type ITORecord struct {
	Year           int              `json:"year"`
	Month          string           `json:"month"`
	CPIWageEarners WageEarnersIndex `json:"cpi_wage_earners"`
}

type WageEarnersIndex struct {
	MoMChangePct *float64 `json:"mom_change_pct"`
	YoYChangePct *float64 `json:"yoy_change_pct"`
}

// LabeledRecord is one month of a "<Label> Monthly (%)" / "<Label> Annualized (%)" document.
type LabeledRecord struct {
	Date    string
	Monthly *float64
	Annual  *float64
}

// Dataset holds the three raw documents of one load.
type Dataset struct {
	ITO  []ITORecord
	TUIK []LabeledRecord
	ENAG []LabeledRecord
}

// MonthRecord is one aligned month across the three publishers.
// Nil values are gaps; zero is a real reading.
type MonthRecord struct {
	Date        string   `json:"date"`
	Timestamp   int64    `json:"timestamp"`
	Year        int      `json:"year"`
	MonthIndex  int      `json:"month_index"`
	TUIKMonthly *float64 `json:"tuik_monthly"`
	TUIKAnnual  *float64 `json:"tuik_annual"`
	ENAGMonthly *float64 `json:"enag_monthly"`
	ENAGAnnual  *float64 `json:"enag_annual"`
	ITOMonthly  *float64 `json:"ito_monthly"`
	ITOAnnual   *float64 `json:"ito_annual"`
}

// Value returns the reading of src for the given mode.
func (r MonthRecord) Value(src Source, mode Mode) *float64 {
	switch src {
	case SourceTUIK:
		if mode == ModeAnnual {
			return r.TUIKAnnual
		}
		return r.TUIKMonthly
	case SourceENAG:
		if mode == ModeAnnual {
			return r.ENAGAnnual
		}
		return r.ENAGMonthly
	case SourceITO:
		if mode == ModeAnnual {
			return r.ITOAnnual
		}
		return r.ITOMonthly
	}
	return nil
}

// Monthly is shorthand for Value(src, ModeMonthly).
func (r MonthRecord) Monthly(src Source) *float64 { return r.Value(src, ModeMonthly) }

// Float returns a pointer to a copy of v.
func Float(v float64) *float64 { return &v }

// CloneFloat copies the pointed-to value so callers never share storage.
func CloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ParseSource maps a query token onto a Source, defaulting to TÜİK.
func ParseSource(s string) Source {
	switch Source(s) {
	case SourceENAG, SourceITO:
		return Source(s)
	default:
		return SourceTUIK
	}
}

// ParseMode maps a query token onto a Mode, defaulting to annual.
func ParseMode(s string) Mode {
	if Mode(s) == ModeMonthly {
		return ModeMonthly
	}
	return ModeAnnual
}
