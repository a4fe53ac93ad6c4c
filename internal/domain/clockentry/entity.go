package clockentry

import (
	"time"
)

// RequestStatusLabelNone is shown when an entry has never had a correction request.
// It is a presentation label only and is never stored.
const RequestStatusLabelNone = "NONE"

// ClockEntry is one calendar day of recorded attendance for an employee.
// Times are wall-clock "HH:MM" strings.
type ClockEntry struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	InTime          *string
	OutTime         *string
	BreakStart      *string
	BreakEnd        *string
	OvertimeMinutes int
	IsNightShift    bool

	// Owned by the correction workflow.
	RequestStatus string // mirrors the linked request's status, empty when none
	RequestID     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveRequest reports whether the entry links to a request.
func (e ClockEntry) HasActiveRequest() bool {
	return e.RequestID != nil && *e.RequestID != ""
}

// RequestStatusLabel returns the status for display, including the "no request" label.
func (e ClockEntry) RequestStatusLabel() string {
	if e.RequestStatus == "" {
		return RequestStatusLabelNone
	}
	return e.RequestStatus
}

// Correction carries the values an approved request writes onto an entry.
// Nil fields are left untouched.
type Correction struct {
	InTime       *string
	OutTime      *string
	BreakStart   *string
	BreakEnd     *string
	IsNightShift *bool
}

// Apply returns a copy of e with the supplied correction values set.
func (e ClockEntry) Apply(c Correction) ClockEntry {
	if c.InTime != nil {
		v := *c.InTime
		e.InTime = &v
	}
	if c.OutTime != nil {
		v := *c.OutTime
		e.OutTime = &v
	}
	if c.BreakStart != nil {
		v := *c.BreakStart
		e.BreakStart = &v
	}
	if c.BreakEnd != nil {
		v := *c.BreakEnd
		e.BreakEnd = &v
	}
	if c.IsNightShift != nil {
		e.IsNightShift = *c.IsNightShift
	}
	return e
}
