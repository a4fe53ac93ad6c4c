package clockentry

import "context"

type ClockEntryService interface {
	// ListMonth returns the employee's entries for one month, oldest first.
	ListMonth(ctx context.Context, req ListMonthRequest) ([]ClockEntryResponse, error)
}
