package repository

import "time"

// Timeframe is a trailing window ending at "now".
type Timeframe string

const (
	TF6m  Timeframe = "6m"
	TF1y  Timeframe = "1y"
	TF2y  Timeframe = "2y"
	TF5y  Timeframe = "5y"
	TFAll Timeframe = "all"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF6m, TF1y, TF2y, TF5y, TFAll:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the dashboard's initial timeframe.
func DefaultTimeframe() Timeframe { return TF1y }

// NormalizeTimeframe converts a raw token to a timeframe.
// Empty input yields the default; unknown tokens mean the whole series.
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return TFAll
}

// Cutoff returns the earliest instant kept by tf, and false for TFAll.
func (tf Timeframe) Cutoff(now time.Time) (time.Time, bool) {
	switch tf {
	case TF6m:
		return now.AddDate(0, -6, 0), true
	case TF1y:
		return now.AddDate(-1, 0, 0), true
	case TF2y:
		return now.AddDate(-2, 0, 0), true
	case TF5y:
		return now.AddDate(-5, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// Period is a year-based slice of the series.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodRecent    Period = "recent"
	PeriodCrisis    Period = "crisis"
	PeriodPreCrisis Period = "pre-crisis"
)

// NormalizePeriod converts a raw token to a period; unknown tokens mean all years.
func NormalizePeriod(s string) Period {
	switch p := Period(s); p {
	case PeriodRecent, PeriodCrisis, PeriodPreCrisis:
		return p
	default:
		return PeriodAll
	}
}
