package stamprequest

import (
	"context"
)

// Caller identifies who is acting. Authentication happens before the service is reached.
type Caller struct {
	EmployeeID string
	IsAdmin    bool
}

// StampRequestService defines the correction request workflow.
type StampRequestService interface {
	// Submit validates and creates a pending request for a clock entry.
	Submit(ctx context.Context, req SubmitRequest) (Outcome, error)

	// Approve commits the proposed values onto the clock entry.
	Approve(ctx context.Context, req ApproveRequest) (Outcome, error)

	// Reject closes the request and leaves the clock entry unchanged.
	Reject(ctx context.Context, req RejectRequest) (Outcome, error)

	// Cancel is the submitter withdrawing their own request.
	Cancel(ctx context.Context, req CancelRequest) (Outcome, error)

	BulkApprove(ctx context.Context, req BulkApproveRequest) (BulkOperationResult, error)
	BulkReject(ctx context.Context, req BulkRejectRequest) (BulkOperationResult, error)

	ListMine(ctx context.Context, employeeID string, filter ListFilter) (ListStampRequestResponse, error)
	ListPending(ctx context.Context, filter ListFilter) (ListStampRequestResponse, error)
	Get(ctx context.Context, id string, caller Caller) (StampRequestResponse, error)
}

// Propagator pushes the effects of a committed mutation to caches and subscribers.
// It never fails the caller; errors are logged by the implementation.
type Propagator interface {
	Propagate(ctx context.Context, outcome Outcome)
}
