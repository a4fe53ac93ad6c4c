package stamprequest

import (
	"context"
)

// StampRequestRepository defines data access for stamp requests.
// Requests are never deleted; terminal rows are the audit trail.
type StampRequestRepository interface {
	// Create stores a new request and returns it with ID and timestamps set.
	Create(ctx context.Context, request StampRequest) (StampRequest, error)

	// GetByID returns ErrStampRequestNotFound when the request does not exist.
	GetByID(ctx context.Context, id string) (StampRequest, error)

	// Transition is an atomic compare-and-set on the status column: the update is
	// written only while the stored status still equals from. It returns
	// ErrStampRequestNotFound for an unknown id and ErrInvalidTransition when the
	// stored status differs.
	Transition(ctx context.Context, id string, from Status, update TransitionUpdate) (StampRequest, error)

	// ListByEmployee returns one page of an employee's requests and the total count.
	ListByEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]StampRequest, int64, error)

	// List returns one page of requests across all employees and the total count.
	List(ctx context.Context, filter ListFilter) ([]StampRequest, int64, error)
}

// Transactor runs fn so that every repository call made with the context it
// receives commits or rolls back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
