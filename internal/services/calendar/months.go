package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FullMonthNames are the Turkish month names in calendar order.
var FullMonthNames = [12]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// ShortMonthNames are the three-letter abbreviations used in display dates.
var ShortMonthNames = [12]string{
	"Oca", "Şub", "Mar", "Nis", "May", "Haz",
	"Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara",
}

var monthIndex = func() map[string]int {
	m := make(map[string]int, 24)
	for i := 0; i < 12; i++ {
		m[FullMonthNames[i]] = i
		m[ShortMonthNames[i]] = i
	}
	return m
}()

// YearMonth is a calendar month with a zero-based month index.
type YearMonth struct {
	Year  int
	Month int
}

// Key orders months linearly; equal keys mean the same calendar month.
func (ym YearMonth) Key() int { return ym.Year*12 + ym.Month }

// Timestamp returns the Unix milliseconds of the first day of the month, UTC.
func (ym YearMonth) Timestamp() int64 { return ToTimestamp(ym.Year, ym.Month) }

// ParseMonthName maps an abbreviated or full Turkish month name to 0..11.
// Unknown names map to 0 (January) with ok=false so callers can report them.
func ParseMonthName(name string) (int, bool) {
	idx, ok := monthIndex[strings.TrimSpace(name)]
	return idx, ok
}

// ParseMonthYear parses a display date such as "Oca 2005" or "Ocak 2005".
// ok is false when either the month name or the year is not recognized;
// the returned value still carries the January fallback in that case.
func ParseMonthYear(s string) (YearMonth, bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return YearMonth{}, false
	}
	month, monthOK := ParseMonthName(parts[0])
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{Month: month}, false
	}
	return YearMonth{Year: year, Month: month}, monthOK
}

// ToTimestamp returns the Unix milliseconds of year-(month+1)-01T00:00:00Z.
func ToTimestamp(year, month int) int64 {
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
}

// DisplayMonthIndex matches a full month name or its first three letters.
// Unlike ParseMonthName there is no fallback: unknown names return -1.
func DisplayMonthIndex(name string) int {
	for i, full := range FullMonthNames {
		if name == full || prefix(full, 3) == name {
			return i
		}
	}
	return -1
}

// FormatMonthYear renders a short display date, e.g. "Ara 2021".
func FormatMonthYear(year, month int) string {
	if month < 0 || month > 11 {
		return strconv.Itoa(year)
	}
	return fmt.Sprintf("%s %d", ShortMonthNames[month], year)
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
