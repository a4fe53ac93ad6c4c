package clockentry

import (
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
)

type ClockEntryResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	InTime          *string `json:"in_time,omitempty"`
	OutTime         *string `json:"out_time,omitempty"`
	BreakStart      *string `json:"break_start,omitempty"`
	BreakEnd        *string `json:"break_end,omitempty"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	IsNightShift    bool    `json:"is_night_shift"`
	RequestStatus   string  `json:"request_status"`
	RequestID       *string `json:"request_id,omitempty"`
}

func ToResponse(e ClockEntry) ClockEntryResponse {
	return ClockEntryResponse{
		ID:              e.ID,
		EmployeeID:      e.EmployeeID,
		Date:            e.Date.Format("2006-01-02"),
		InTime:          e.InTime,
		OutTime:         e.OutTime,
		BreakStart:      e.BreakStart,
		BreakEnd:        e.BreakEnd,
		OvertimeMinutes: e.OvertimeMinutes,
		IsNightShift:    e.IsNightShift,
		RequestStatus:   e.RequestStatusLabel(),
		RequestID:       e.RequestID,
	}
}

type ListMonthRequest struct {
	EmployeeID string
	Month      string // YYYY-MM, defaults to the current month
}

// Validate checks the request and returns the first day of the requested month.
func (r *ListMonthRequest) Validate(now time.Time) (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Month) {
		r.Month = now.Format("2006-01")
	}
	month, ok := validator.IsValidMonth(r.Month)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}

	return month, nil
}
