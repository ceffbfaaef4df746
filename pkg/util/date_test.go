package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("2024-06-15")
	if !ok || got.Year() != 2024 || got.Month() != time.June || got.Day() != 15 {
		t.Fatalf("unexpected %v %v", got, ok)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseTimeDefault("yesterday", def); !got.Equal(def) {
		t.Fatalf("expected default on garbage")
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC))
	if !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected %v", got)
	}
}
