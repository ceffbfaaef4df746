package models

// Requests for the dashboard HTTP endpoints. Defined in domain for consistency and reuse.
// Now is an optional RFC3339 or unix-seconds clock override.

type SeriesRequest struct {
	TF  string `query:"tf" json:"tf" default:"1y" validate:"oneof=6m 1y 2y 5y all"`
	Now string `query:"now" json:"now"`
}

type LatestRequest struct {
	Mode string `query:"mode" json:"mode" default:"yoy" validate:"oneof=mom yoy"`
}

type SourceRequest struct {
	Source string `query:"source" json:"source" default:"tuik" validate:"oneof=tuik enag ito"`
	TF     string `query:"tf" json:"tf" default:"all" validate:"oneof=6m 1y 2y 5y all"`
	Now    string `query:"now" json:"now"`
}

type YearlyRequest struct {
	Period string `query:"period" json:"period" default:"all" validate:"oneof=all recent crisis pre-crisis"`
	Now    string `query:"now" json:"now"`
}

type HeatmapRequest struct {
	Source string `query:"source" json:"source" default:"tuik" validate:"oneof=tuik enag ito"`
	Period string `query:"period" json:"period" default:"all" validate:"oneof=all recent crisis pre-crisis"`
	Now    string `query:"now" json:"now"`
}

type DifferentialRequest struct {
	Mode string `query:"mode" json:"mode" default:"yoy" validate:"oneof=mom yoy"`
	TF   string `query:"tf" json:"tf" default:"1y" validate:"oneof=6m 1y 2y 5y all"`
	Now  string `query:"now" json:"now"`
}

// MonthlyChartRequest leaves From empty for the default window start.
type MonthlyChartRequest struct {
	From string `query:"from" json:"from"`
}

// TableRequest.N is a pointer so an explicit n=0 is validated instead of defaulted.
type TableRequest struct {
	TF  string `query:"tf" json:"tf" default:"1y" validate:"oneof=6m 1y 2y 5y all"`
	N   *int   `query:"n" json:"n" default:"12" validate:"required,gte=1,lte=600"`
	Now string `query:"now" json:"now"`
}
