package attendancestats

import (
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
)

type GetMonthlyStatsRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r *GetMonthlyStatsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	now := time.Now()
	if r.Year == 0 {
		r.Year = now.Year()
	}
	if r.Month == 0 {
		r.Month = int(now.Month())
	}

	if r.Year < 2000 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 9999",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Period returns [first day of the month, first day of the next month).
func (r GetMonthlyStatsRequest) Period() (time.Time, time.Time) {
	from := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

type MonthlyStatsResponse struct {
	EmployeeID           string  `json:"employee_id"`
	Year                 int     `json:"year"`
	Month                int     `json:"month"`
	TotalWorkingDays     int     `json:"total_working_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	TotalWorkingHours    float64 `json:"total_working_hours"`
	AverageWorkingHours  float64 `json:"average_working_hours"`
	TotalOvertimeMinutes int     `json:"total_overtime_minutes"`
}

func ToResponse(s MonthlyStats) MonthlyStatsResponse {
	total, _ := s.TotalWorkingHours.Float64()
	average, _ := s.AverageWorkingHours.Float64()
	return MonthlyStatsResponse{
		EmployeeID:           s.EmployeeID,
		Year:                 s.Year,
		Month:                s.Month,
		TotalWorkingDays:     s.TotalWorkingDays,
		PresentDays:          s.PresentDays,
		AbsentDays:           s.AbsentDays,
		TotalWorkingHours:    total,
		AverageWorkingHours:  average,
		TotalOvertimeMinutes: s.TotalOvertimeMinutes,
	}
}
