package attendancestats

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("stats cache miss")

// StatsCache stores computed monthly stats. Implementations return ErrCacheMiss
// when nothing is stored for the key.
type StatsCache interface {
	Get(ctx context.Context, employeeID string, year, month int) (MonthlyStatsResponse, error)
	Set(ctx context.Context, stats MonthlyStatsResponse) error
	Delete(ctx context.Context, employeeID string, year, month int) error
}
