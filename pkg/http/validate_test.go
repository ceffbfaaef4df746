package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

type pageRequest struct {
	TF string `query:"tf" default:"1y" validate:"oneof=6m 1y 2y 5y all"`
	N  *int   `query:"n" default:"12" validate:"required,gte=1,lte=600"`
}

func bindQuery(t *testing.T, query string) (*pageRequest, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	out := &pageRequest{}
	return out, ReadAndValidateRequest(c, out)
}

func TestReadAndValidateRequestDefaults(t *testing.T) {
	req, verr := bindQuery(t, "")
	if verr != nil {
		t.Fatalf("unexpected error %+v", verr)
	}
	if req.TF != "1y" || req.N == nil || *req.N != 12 {
		t.Fatalf("defaults not applied: %+v", req)
	}
}

func TestReadAndValidateRequestErrors(t *testing.T) {
	_, verr := bindQuery(t, "tf=3y&n=900")
	errs, ok := verr.([]ValidationError)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected two validation errors, got %#v", verr)
	}
	if errs[0].Field != "tf" || errs[0].Code != "ERR_ONEOF" {
		t.Fatalf("first error %+v", errs[0])
	}
	if errs[1].Field != "n" || errs[1].Params["max"] != "600" {
		t.Fatalf("second error %+v", errs[1])
	}

	req, verr := bindQuery(t, "n=0")
	errs, ok = verr.([]ValidationError)
	if !ok || len(errs) != 1 || errs[0].Field != "n" || errs[0].Code != "ERR_GTE" {
		t.Fatalf("explicit zero must be validated, got %#v (n=%v)", verr, req.N)
	}

	_, verr = bindQuery(t, "n=abc")
	errs, ok = verr.([]ValidationError)
	if !ok || len(errs) != 1 || errs[0].Code != "ERR_BIND" {
		t.Fatalf("expected bind error, got %#v", verr)
	}
}
