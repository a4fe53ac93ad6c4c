package attendancestats_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/service/attendancestats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func entry(in, out string) clockentry.ClockEntry {
	e := clockentry.ClockEntry{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	if in != "" {
		e.InTime = strPtr(in)
	}
	if out != "" {
		e.OutTime = strPtr(out)
	}
	return e
}

func TestAggregate_InfersMidnightCrossingFromRawTimes(t *testing.T) {
	entries := []clockentry.ClockEntry{
		entry("09:00", "18:10"), // 550 min
		entry("18:00", "03:00"), // 540 min, crosses midnight
		entry("10:00", "09:30"), // 1410 min, crosses midnight without a night-shift flag
	}

	stats := attendancestats.Aggregate(entries)

	assert.Equal(t, 3, stats.TotalWorkingDays)
	assert.Equal(t, 3, stats.PresentDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.True(t, decimal.RequireFromString("41.7").Equal(stats.TotalWorkingHours), stats.TotalWorkingHours.String())
	assert.True(t, decimal.RequireFromString("13.9").Equal(stats.AverageWorkingHours), stats.AverageWorkingHours.String())
}

func TestAggregate_ExcludesAnomalies(t *testing.T) {
	entries := []clockentry.ClockEntry{
		entry("09:00", "17:00"), // 8h
		entry("09:00", "09:00"), // zero duration
		entry("09:00", ""),      // missing out
		entry("", ""),           // absent
		entry("9am", "17:00"),   // unparseable
	}

	stats := attendancestats.Aggregate(entries)

	assert.Equal(t, 5, stats.TotalWorkingDays)
	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 4, stats.AbsentDays)
	assert.True(t, decimal.NewFromInt(8).Equal(stats.TotalWorkingHours))
	assert.True(t, decimal.NewFromInt(8).Equal(stats.AverageWorkingHours))
}

func TestAggregate_Empty(t *testing.T) {
	stats := attendancestats.Aggregate(nil)

	assert.Zero(t, stats.TotalWorkingDays)
	assert.Zero(t, stats.PresentDays)
	assert.True(t, stats.TotalWorkingHours.IsZero())
	assert.True(t, stats.AverageWorkingHours.IsZero())
}

func TestAggregate_SumsOvertimeOverAllEntries(t *testing.T) {
	present := entry("09:00", "19:00")
	present.OvertimeMinutes = 60
	anomaly := entry("09:00", "09:00")
	anomaly.OvertimeMinutes = 15

	stats := attendancestats.Aggregate([]clockentry.ClockEntry{present, anomaly})

	assert.Equal(t, 75, stats.TotalOvertimeMinutes)
	assert.True(t, decimal.NewFromInt(10).Equal(stats.TotalWorkingHours))
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	entries := []clockentry.ClockEntry{
		entry("09:00", "17:20"), // 500 min = 8.333h
		entry("09:00", "17:10"), // 490 min = 8.166h
	}

	stats := attendancestats.Aggregate(entries)

	// 990 min = 16.5h, average 8.25 rounds half away from zero to 8.3
	assert.Equal(t, "16.5", stats.TotalWorkingHours.String())
	assert.Equal(t, "8.3", stats.AverageWorkingHours.String())
}
