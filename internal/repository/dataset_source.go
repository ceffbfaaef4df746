package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"
	xhttp "InflationPanel/pkg/http"
)

// SourceLocation points at one raw document: an http(s) URL, a file:// URL or a plain path.
type SourceLocation struct {
	Location string
	Label    string
}

// DocumentSource fetches the three documents over HTTP or from disk.
type DocumentSource struct {
	client  *xhttp.Client
	ito     SourceLocation
	tuik    SourceLocation
	enag    SourceLocation
	metrics domrepo.Metrics
}

// NewDocumentSource creates a dataset source; metrics may be nil.
func NewDocumentSource(client *xhttp.Client, ito, tuik, enag SourceLocation, metrics domrepo.Metrics) *DocumentSource {
	if tuik.Label == "" {
		tuik.Label = "TÜİK"
	}
	if enag.Label == "" {
		enag.Label = "ENAG"
	}
	return &DocumentSource{client: client, ito: ito, tuik: tuik, enag: enag, metrics: metrics}
}

var _ domrepo.DatasetSource = (*DocumentSource)(nil)

func (s *DocumentSource) FetchITO(ctx context.Context) ([]models.ITORecord, error) {
	b, err := s.read(ctx, string(models.SourceITO), s.ito.Location)
	if err != nil {
		return nil, err
	}
	recs, err := DecodeITO(b)
	if err != nil {
		s.record(string(models.SourceITO), false)
		return nil, fmt.Errorf("decode %s: %w", models.SourceITO, err)
	}
	s.record(string(models.SourceITO), true)
	return recs, nil
}

func (s *DocumentSource) FetchTUIK(ctx context.Context) ([]models.LabeledRecord, error) {
	return s.fetchLabeled(ctx, string(models.SourceTUIK), s.tuik)
}

func (s *DocumentSource) FetchENAG(ctx context.Context) ([]models.LabeledRecord, error) {
	return s.fetchLabeled(ctx, string(models.SourceENAG), s.enag)
}

func (s *DocumentSource) fetchLabeled(ctx context.Context, name string, loc SourceLocation) ([]models.LabeledRecord, error) {
	b, err := s.read(ctx, name, loc.Location)
	if err != nil {
		return nil, err
	}
	recs, err := DecodeLabeled(b, loc.Label)
	if err != nil {
		s.record(name, false)
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	s.record(name, true)
	return recs, nil
}

// read performs a single full-document read.
func (s *DocumentSource) read(ctx context.Context, name, location string) ([]byte, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordLatency("fetch_"+name, time.Since(start).Seconds())
		}
	}()

	if location == "" {
		s.record(name, false)
		return nil, fmt.Errorf("fetch %s: no location configured", name)
	}

	var body []byte
	if isRemote(location) {
		if err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:  xhttp.MethodGet,
			URL:     location,
			Headers: map[string]string{"Accept": "application/json"},
		}, &body); err != nil {
			s.record(name, false)
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		return body, nil
	}

	body, err := os.ReadFile(strings.TrimPrefix(location, "file://"))
	if err != nil {
		s.record(name, false)
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return body, nil
}

func (s *DocumentSource) record(name string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordLoad(name, ok)
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
