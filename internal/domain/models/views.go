package models

// Derived views. No transport concerns here; JSON tags match the view adapter payloads.

type ExtremePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Extremes holds the highest and lowest monthly reading of one source.
type Extremes struct {
	Source  Source        `json:"source"`
	Highest *ExtremePoint `json:"highest"`
	Lowest  *ExtremePoint `json:"lowest"`
}

// PeriodAverages compares the crisis years against the years before.
type PeriodAverages struct {
	CrisisAvg    *float64 `json:"crisis_avg"`
	PreCrisisAvg *float64 `json:"pre_crisis_avg"`
	Delta        *float64 `json:"delta"`
}

type LatestTrend struct {
	Latest     *float64 `json:"latest"`
	TrendDelta *float64 `json:"trend_delta"`
}

// LatestFigures is the stat-card row: latest value and trend per source.
type LatestFigures struct {
	Mode Mode                   `json:"mode"`
	Date string                 `json:"date"`
	By   map[Source]LatestTrend `json:"by_source"`
}

type DifferentialPoint struct {
	Date      string   `json:"date"`
	Timestamp int64    `json:"timestamp"`
	Value     *float64 `json:"value"`
}

type ReferenceMonth struct {
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

// MonthlyChart is the monthly comparison window with its axis bounds.
// ReferenceMonths lists only the marked months present in Points.
type MonthlyChart struct {
	From            int64            `json:"from"`
	Points          []MonthRecord    `json:"points"`
	YMax            float64          `json:"y_max"`
	ReferenceMonths []ReferenceMonth `json:"reference_months"`
}

type YearlyAggregate struct {
	Year           int      `json:"year"`
	TUIKAvg        *float64 `json:"tuik_avg"`
	ENAGAvg        *float64 `json:"enag_avg"`
	ITOAvg         *float64 `json:"ito_avg"`
	IsCrisisPeriod bool     `json:"is_crisis_period"`
}

// Avg returns the yearly average of src.
func (y YearlyAggregate) Avg(src Source) *float64 {
	switch src {
	case SourceTUIK:
		return y.TUIKAvg
	case SourceENAG:
		return y.ENAGAvg
	case SourceITO:
		return y.ITOAvg
	}
	return nil
}

// YearlyPeriodAverages holds, per source, the mean of yearly averages inside and before the crisis.
type YearlyPeriodAverages struct {
	Crisis    map[Source]*float64 `json:"crisis"`
	PreCrisis map[Source]*float64 `json:"pre_crisis"`
}

// HeatmapMatrix is the year x month grid of one source's monthly readings.
type HeatmapMatrix struct {
	Source          Source               `json:"source"`
	Years           []int                `json:"years"`
	Months          [12]string           `json:"months"`
	Cells           map[int][12]*float64 `json:"cells"`
	YearlyAverages  map[int]*float64     `json:"yearly_averages"`
	Min             *float64             `json:"min"`
	Max             *float64             `json:"max"`
	NegativeDivisor float64              `json:"negative_divisor"`
	PositiveDivisor float64              `json:"positive_divisor"`
}

// UnrecognizedDate records a month name that fell back to January.
type UnrecognizedDate struct {
	Source Source `json:"source"`
	Value  string `json:"value"`
}

// AlignReport summarizes one alignment pass.
type AlignReport struct {
	Strategy     string             `json:"strategy"`
	GapPolicy    string             `json:"gap_policy"`
	BaseRecords  int                `json:"base_records"`
	Output       int                `json:"output"`
	MatchedITO   int                `json:"matched_ito"`
	MatchedENAG  int                `json:"matched_enag"`
	Duplicates   int                `json:"duplicates"`
	Dropped      int                `json:"dropped"`
	Monotonic    bool               `json:"monotonic"`
	Unrecognized []UnrecognizedDate `json:"unrecognized"`
}
