package usecase

import (
	"context"
	"errors"
	"fmt"

	"InflationPanel/internal/domain/models"
	domrepo "InflationPanel/internal/domain/repository"

	"golang.org/x/sync/errgroup"
)

// ErrLoadFailed is returned when any of the three documents cannot be fetched or parsed.
var ErrLoadFailed = errors.New("failed to load data")

// LoadDataset fetches the three documents concurrently. The first failure
// cancels the others and no partial dataset is returned.
func LoadDataset(ctx context.Context, src domrepo.DatasetSource) (*models.Dataset, error) {
	var ds models.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := src.FetchITO(gctx)
		ds.ITO = recs
		return err
	})
	g.Go(func() error {
		recs, err := src.FetchTUIK(gctx)
		ds.TUIK = recs
		return err
	})
	g.Go(func() error {
		recs, err := src.FetchENAG(gctx)
		ds.ENAG = recs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return &ds, nil
}
