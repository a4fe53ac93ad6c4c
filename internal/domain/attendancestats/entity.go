package attendancestats

import (
	"github.com/shopspring/decimal"
)

// MonthlyStats summarises one employee's clock entries for a calendar month.
type MonthlyStats struct {
	EmployeeID string
	Year       int
	Month      int

	TotalWorkingDays     int
	PresentDays          int
	AbsentDays           int
	TotalWorkingHours    decimal.Decimal // rounded to one decimal place
	AverageWorkingHours  decimal.Decimal // rounded to one decimal place
	TotalOvertimeMinutes int
}
