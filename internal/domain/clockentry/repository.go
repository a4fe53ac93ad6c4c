package clockentry

import (
	"context"
	"time"
)

// ClockEntryRepository defines data access for clock entries.
// Entries are created by the attendance recorder; this service only reads them and
// maintains the request linkage.
type ClockEntryRepository interface {
	// GetByID returns ErrClockEntryNotFound when the entry does not exist.
	GetByID(ctx context.Context, id string) (ClockEntry, error)

	// ListByEmployeeAndPeriod returns entries with from <= date < to.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]ClockEntry, error)

	// LinkRequest points the entry at a pending request. It fails with
	// ErrRequestAlreadyLinked while another pending request is linked.
	LinkRequest(ctx context.Context, id string, requestID string, status string) error

	// CloseRequest clears the request link and records the terminal status.
	// A non-nil correction is written onto the entry in the same statement.
	CloseRequest(ctx context.Context, id string, status string, correction *Correction) error
}
