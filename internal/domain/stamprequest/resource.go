package stamprequest

import (
	"time"
)

type ResourceKind string

const (
	ResourceStampRequest ResourceKind = "stamp_request"
	ResourceClockEntry   ResourceKind = "clock_entry"
	ResourceMonthlyStats ResourceKind = "monthly_stats"
)

// Resource names one logical thing a mutation changed.
// Monthly stats are keyed by EmployeeID and Period; the others by ID.
type Resource struct {
	Kind       ResourceKind
	ID         string
	EmployeeID string
	Period     time.Time // first day of the month, UTC
}

type Resources []Resource

// Add appends r unless an equal resource is already present.
func (rs Resources) Add(r Resource) Resources {
	for _, existing := range rs {
		if existing.Kind == r.Kind && existing.ID == r.ID &&
			existing.EmployeeID == r.EmployeeID && existing.Period.Equal(r.Period) {
			return rs
		}
	}
	return append(rs, r)
}

// Of returns the resources of the given kind.
func (rs Resources) Of(kind ResourceKind) Resources {
	var out Resources
	for _, r := range rs {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// MonthOf truncates t to the first day of its month in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
