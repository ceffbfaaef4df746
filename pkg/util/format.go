package util

import "github.com/shopspring/decimal"

// Placeholders for missing readings.
const (
	NotAvailable = "N/A"
	EmptyCell    = "-"
)

// Fixed2 renders v with two decimals, half away from zero.
func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Percent renders a reading as "12.34%", or N/A when missing.
func Percent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return Fixed2(*v) + "%"
}

// SignedPercent renders a delta with an explicit sign, e.g. "+1.20%".
func SignedPercent(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	d := decimal.NewFromFloat(*v).Round(2)
	if d.IsPositive() {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// Cell renders a heatmap or table cell, or "-" when missing.
func Cell(v *float64) string {
	if v == nil {
		return EmptyCell
	}
	return Fixed2(*v)
}
