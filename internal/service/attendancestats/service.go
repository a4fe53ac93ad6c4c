package attendancestats

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"go.uber.org/zap"
)

type StatsServiceImpl struct {
	entries clockentry.ClockEntryRepository
	cache   attendancestats.StatsCache
	logger  *zap.Logger
}

func NewStatsService(entries clockentry.ClockEntryRepository, cache attendancestats.StatsCache, logger *zap.Logger) *StatsServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsServiceImpl{
		entries: entries,
		cache:   cache,
		logger:  logger.Named("attendance_stats"),
	}
}

// GetMonthlyStats implements attendancestats.StatsService. Cache failures are
// logged and the stats are computed from storage.
func (s *StatsServiceImpl) GetMonthlyStats(ctx context.Context, req attendancestats.GetMonthlyStatsRequest) (attendancestats.MonthlyStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendancestats.MonthlyStatsResponse{}, err
	}

	cached, err := s.cache.Get(ctx, req.EmployeeID, req.Year, req.Month)
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, attendancestats.ErrCacheMiss):
		s.logger.Warn("failed to read cached monthly stats",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("year", req.Year),
			zap.Int("month", req.Month),
			zap.Error(err),
		)
	}

	from, to := req.Period()
	entries, err := s.entries.ListByEmployeeAndPeriod(ctx, req.EmployeeID, from, to)
	if err != nil {
		return attendancestats.MonthlyStatsResponse{}, fmt.Errorf("failed to list clock entries: %w", err)
	}

	stats := Aggregate(entries)
	stats.EmployeeID = req.EmployeeID
	stats.Year = req.Year
	stats.Month = req.Month

	resp := attendancestats.ToResponse(stats)
	if err := s.cache.Set(ctx, resp); err != nil {
		s.logger.Warn("failed to cache monthly stats",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
	}

	return resp, nil
}

var _ attendancestats.StatsService = (*StatsServiceImpl)(nil)
