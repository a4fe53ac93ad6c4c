package stamprequest

import (
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
)

// Status is the lifecycle state of a correction request.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Action is an operation that moves a request between states.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
)

type transition struct {
	action Action
	from   Status
	to     Status
}

// transitions is the complete state machine. Terminal states have no outgoing rows.
var transitions = []transition{
	{ActionApprove, StatusPending, StatusApproved},
	{ActionReject, StatusPending, StatusRejected},
	{ActionCancel, StatusPending, StatusCancelled},
}

// Next returns the state reached by applying action to s.
func (s Status) Next(action Action) (Status, error) {
	for _, t := range transitions {
		if t.action == action && t.from == s {
			return t.to, nil
		}
	}
	return "", ErrInvalidTransition
}

// Source returns the only state action may be applied from.
func (a Action) Source() Status {
	for _, t := range transitions {
		if t.action == a {
			return t.from
		}
	}
	return ""
}

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	for _, t := range transitions {
		if t.from == s {
			return false
		}
	}
	return s.IsValid()
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// AllStatuses lists the stored states in lifecycle order.
func AllStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusApproved),
		string(StatusRejected),
		string(StatusCancelled),
	}
}

// StampRequest is an employee's proposal to correct a clock entry.
type StampRequest struct {
	ID           string
	ClockEntryID string
	EmployeeID   string
	Status       Status
	Reason       string

	ProposedInTime     *string
	ProposedOutTime    *string
	ProposedBreakStart *string
	ProposedBreakEnd   *string
	ProposedNightShift *bool

	// At most one is set, matching the terminal status.
	ApprovalNote       *string
	RejectionReason    *string
	CancellationReason *string

	ResolvedBy *string
	ResolvedAt *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	ClockEntryDate *time.Time
}

// Correction returns the values that approval writes onto the clock entry.
func (r StampRequest) Correction() clockentry.Correction {
	return clockentry.Correction{
		InTime:       r.ProposedInTime,
		OutTime:      r.ProposedOutTime,
		BreakStart:   r.ProposedBreakStart,
		BreakEnd:     r.ProposedBreakEnd,
		IsNightShift: r.ProposedNightShift,
	}
}

// HasProposal reports whether at least one field would change on approval.
func (r StampRequest) HasProposal() bool {
	return r.ProposedInTime != nil || r.ProposedOutTime != nil ||
		r.ProposedBreakStart != nil || r.ProposedBreakEnd != nil ||
		r.ProposedNightShift != nil
}

// TransitionUpdate is written together with a status change.
type TransitionUpdate struct {
	To                 Status
	ApprovalNote       *string
	RejectionReason    *string
	CancellationReason *string
	ResolvedBy         string
	ResolvedAt         time.Time
}
