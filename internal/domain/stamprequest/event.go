package stamprequest

import (
	"strings"
	"time"
)

// StatusChangedEvent is published after a request is created or resolved.
type StatusChangedEvent struct {
	RequestID    string    `json:"request_id"`
	ClockEntryID string    `json:"clock_entry_id"`
	EmployeeID   string    `json:"employee_id"`
	Status       string    `json:"status"`
	ResolvedBy   *string   `json:"resolved_by,omitempty"`
	Affected     []string  `json:"affected"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RoutingKey is "stamp_request.<status>" in lower case.
func (e StatusChangedEvent) RoutingKey() string {
	return "stamp_request." + strings.ToLower(e.Status)
}

func NewStatusChangedEvent(outcome Outcome, at time.Time) StatusChangedEvent {
	affected := make([]string, 0, len(outcome.Affected))
	for _, r := range outcome.Affected {
		switch r.Kind {
		case ResourceMonthlyStats:
			affected = append(affected, string(r.Kind)+":"+r.EmployeeID+":"+r.Period.Format("2006-01"))
		default:
			affected = append(affected, string(r.Kind)+":"+r.ID)
		}
	}

	return StatusChangedEvent{
		RequestID:    outcome.Request.ID,
		ClockEntryID: outcome.Request.ClockEntryID,
		EmployeeID:   outcome.Request.EmployeeID,
		Status:       string(outcome.Request.Status),
		ResolvedBy:   outcome.Request.ResolvedBy,
		Affected:     affected,
		OccurredAt:   at,
	}
}
