package util

import "testing"

func TestPercent(t *testing.T) {
	v := 64.2666
	if got := Percent(&v); got != "64.27%" {
		t.Fatalf("got %q", got)
	}
	if got := Percent(nil); got != "N/A" {
		t.Fatalf("got %q", got)
	}
	zero := 0.0
	if got := Percent(&zero); got != "0.00%" {
		t.Fatalf("got %q", got)
	}
}

func TestSignedPercent(t *testing.T) {
	up, down := 1.2, -9.091
	if got := SignedPercent(&up); got != "+1.20%" {
		t.Fatalf("got %q", got)
	}
	if got := SignedPercent(&down); got != "-9.09%" {
		t.Fatalf("got %q", got)
	}
}

func TestCell(t *testing.T) {
	v := 13.58
	if Cell(&v) != "13.58" || Cell(nil) != "-" {
		t.Fatalf("unexpected cell formatting")
	}
}
