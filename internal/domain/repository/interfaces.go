package repository

import (
	"context"
	"time"
)

type Metrics interface {
	RecordLoad(source string, ok bool)
	RecordError(kind string)
	RecordUnrecognized(source string, n int)
	RecordSeriesLength(n int)
	RecordLatency(op string, seconds float64)
}

// ViewCache memoizes derived views by key.
type ViewCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
