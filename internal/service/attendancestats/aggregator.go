package attendancestats

import (
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/timeofday"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// Aggregate derives monthly totals from a set of clock entries in any order.
//
// An entry counts as present when both times parse and the worked span is in
// (0, 24h]. Midnight crossing is inferred from out < in; the stored night-shift
// flag is not consulted. Anything else is counted as absent, not reported.
func Aggregate(entries []clockentry.ClockEntry) attendancestats.MonthlyStats {
	stats := attendancestats.MonthlyStats{
		TotalWorkingDays:    len(entries),
		TotalWorkingHours:   decimal.Zero,
		AverageWorkingHours: decimal.Zero,
	}

	totalMinutes := 0
	for _, e := range entries {
		stats.TotalOvertimeMinutes += e.OvertimeMinutes

		minutes, ok := workedMinutes(e)
		if !ok {
			continue
		}
		stats.PresentDays++
		totalMinutes += minutes
	}

	stats.AbsentDays = stats.TotalWorkingDays - stats.PresentDays
	stats.TotalWorkingHours = decimal.NewFromInt(int64(totalMinutes)).Div(minutesPerHour).Round(1)
	if stats.PresentDays > 0 {
		stats.AverageWorkingHours = stats.TotalWorkingHours.
			Div(decimal.NewFromInt(int64(stats.PresentDays))).
			Round(1)
	}

	return stats
}

func workedMinutes(e clockentry.ClockEntry) (int, bool) {
	if e.InTime == nil || e.OutTime == nil {
		return 0, false
	}

	in, err := timeofday.Parse(*e.InTime)
	if err != nil {
		return 0, false
	}
	out, err := timeofday.Parse(*e.OutTime)
	if err != nil {
		return 0, false
	}

	minutes, err := timeofday.Duration(in, out, out < in)
	if err != nil {
		return 0, false
	}
	return minutes, true
}
