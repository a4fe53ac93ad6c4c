package attendancestats

import "context"

type StatsService interface {
	GetMonthlyStats(ctx context.Context, req GetMonthlyStatsRequest) (MonthlyStatsResponse, error)
}
