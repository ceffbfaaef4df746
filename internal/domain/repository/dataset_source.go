package repository

import (
	"context"

	"InflationPanel/internal/domain/models"
)

// DatasetSource provides read-only access to the three raw inflation documents.
type DatasetSource interface {
	FetchITO(ctx context.Context) ([]models.ITORecord, error)
	FetchTUIK(ctx context.Context) ([]models.LabeledRecord, error)
	FetchENAG(ctx context.Context) ([]models.LabeledRecord, error)
}
