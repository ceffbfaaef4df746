package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xhttp "InflationPanel/pkg/http"
)

const tuikDoc = `{"data":[
 {"Date":"Oca 2005","TÜİK Monthly (%)":0.55,"TÜİK Annualized (%)":9.24},
 {"Date":"Şub 2005","TÜİK Monthly (%)":0,"TÜİK Annualized (%)":null}
]}`

const enagDoc = `[{"Date":"Oca 2005","ENAG Monthly (%)":"1,5","ENAG Annualized (%)":""}]`

const itoDoc = `[{"year":2005,"month":"Ocak","cpi_wage_earners":{"mom_change_pct":0.7,"yoy_change_pct":null}}]`

func TestDecodeLabeledWrapped(t *testing.T) {
	recs, err := DecodeLabeled([]byte(tuikDoc), "TÜİK")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 2 || recs[0].Date != "Oca 2005" || *recs[0].Monthly != 0.55 {
		t.Fatalf("unexpected records %+v", recs)
	}
	if recs[1].Monthly == nil || *recs[1].Monthly != 0 {
		t.Fatalf("zero must be kept")
	}
	if recs[1].Annual != nil {
		t.Fatalf("null must decode to nil")
	}
}

func TestDecodeLabeledBareWithStrings(t *testing.T) {
	recs, err := DecodeLabeled([]byte(enagDoc), "ENAG")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *recs[0].Monthly != 1.5 || recs[0].Annual != nil {
		t.Fatalf("unexpected %+v", recs[0])
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeLabeled([]byte(`{"data":`), "TÜİK"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := DecodeLabeled([]byte(``), "TÜİK"); err == nil {
		t.Fatalf("expected error on empty document")
	}
	if _, err := DecodeITO([]byte(`{"rows":[]}`)); err == nil {
		t.Fatalf("expected error without data array")
	}
}

func TestDecodeITO(t *testing.T) {
	recs, err := DecodeITO([]byte(itoDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].Month != "Ocak" || *recs[0].CPIWageEarners.MoMChangePct != 0.7 || recs[0].CPIWageEarners.YoYChangePct != nil {
		t.Fatalf("unexpected %+v", recs)
	}
}

func TestDocumentSourceHTTPAndFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tuik.json":
			_, _ = w.Write([]byte(tuikDoc))
		case "/enag.json":
			_, _ = w.Write([]byte(enagDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	itoPath := filepath.Join(dir, "ito.json")
	if err := os.WriteFile(itoPath, []byte(itoDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := NewDocumentSource(xhttp.NewClient(),
		SourceLocation{Location: "file://" + itoPath},
		SourceLocation{Location: srv.URL + "/tuik.json"},
		SourceLocation{Location: srv.URL + "/enag.json"},
		nil,
	)
	ctx := context.Background()
	if recs, err := src.FetchITO(ctx); err != nil || len(recs) != 1 {
		t.Fatalf("ito: %v %v", recs, err)
	}
	if recs, err := src.FetchTUIK(ctx); err != nil || len(recs) != 2 {
		t.Fatalf("tuik: %v %v", recs, err)
	}
	if recs, err := src.FetchENAG(ctx); err != nil || len(recs) != 1 {
		t.Fatalf("enag: %v %v", recs, err)
	}
}

func TestDocumentSourceNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewDocumentSource(xhttp.NewClient(), SourceLocation{}, SourceLocation{Location: srv.URL}, SourceLocation{}, nil)
	_, err := src.FetchTUIK(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := src.FetchITO(context.Background()); err == nil {
		t.Fatalf("expected error without location")
	}
}
