package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"InflationPanel/internal/domain/models"
	"InflationPanel/internal/services/stats"
	"InflationPanel/internal/usecase"
	xlogger "InflationPanel/pkg/logger"
)

type oneYear struct{}

func (oneYear) FetchITO(context.Context) ([]models.ITORecord, error) {
	return []models.ITORecord{
		{Year: 2021, Month: "Ocak", CPIWageEarners: models.WageEarnersIndex{MoMChangePct: models.Float(1.5), YoYChangePct: models.Float(16)}},
	}, nil
}

func (oneYear) FetchTUIK(context.Context) ([]models.LabeledRecord, error) {
	return []models.LabeledRecord{
		{Date: "Oca 2021", Monthly: models.Float(1.68), Annual: models.Float(14.97)},
		{Date: "Şub 2021", Monthly: models.Float(0.91), Annual: models.Float(15.61)},
	}, nil
}

func (oneYear) FetchENAG(context.Context) ([]models.LabeledRecord, error) {
	return []models.LabeledRecord{
		{Date: "Oca 2021", Monthly: models.Float(4.84), Annual: models.Float(32.3)},
		{Date: "Şub 2021", Monthly: nil, Annual: models.Float(34.5)},
	}, nil
}

func loaded(t *testing.T) *usecase.Dashboard {
	t.Helper()
	d := usecase.NewDashboard(oneYear{}, xlogger.Nop())
	if err := d.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return d
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{View: "table", TF: "all", N: 12, Now: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)}
	if err := Render(context.Background(), loaded(t), opts, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Oca 2021", "1.68", "14.97", "Şub 2021", "last updated"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in\n%s", want, out)
		}
	}
	// missing ENAG monthly and ITO in February render as "-"
	if !strings.Contains(out, "-") {
		t.Fatalf("expected placeholder cells in\n%s", out)
	}
}

func TestRenderLatestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(context.Background(), loaded(t), Options{View: "latest", Format: "json", Mode: "yoy"}, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got models.LatestFigures
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != "Şub 2021" || *got.By[models.SourceENAG].Latest != 34.5 {
		t.Fatalf("unexpected %+v", got)
	}
	if got.By[models.SourceITO].Latest != nil {
		t.Fatalf("ITO has no February reading")
	}
}

func TestRenderChartDefaultsToWindowStart(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(context.Background(), loaded(t), Options{View: "chart", Format: "json"}, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got models.MonthlyChart
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.From != stats.DefaultChartStart || len(got.Points) != 2 {
		t.Fatalf("chart from %d with %d points", got.From, len(got.Points))
	}
}

func TestRenderRejectsUnknownView(t *testing.T) {
	var buf bytes.Buffer
	err := Render(context.Background(), loaded(t), Options{View: "forecast"}, &buf)
	if err == nil || !strings.Contains(err.Error(), "unknown view") {
		t.Fatalf("expected unknown view error, got %v", err)
	}
	err = Render(context.Background(), loaded(t), Options{View: "chart", From: "Foo"}, &buf)
	if err == nil {
		t.Fatalf("expected bad month error")
	}
}
