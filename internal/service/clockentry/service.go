package clockentry

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
)

type ClockEntryServiceImpl struct {
	entries clockentry.ClockEntryRepository
	now     func() time.Time
}

func NewClockEntryService(entries clockentry.ClockEntryRepository) *ClockEntryServiceImpl {
	return &ClockEntryServiceImpl{entries: entries, now: time.Now}
}

// ListMonth implements clockentry.ClockEntryService.
func (s *ClockEntryServiceImpl) ListMonth(ctx context.Context, req clockentry.ListMonthRequest) ([]clockentry.ClockEntryResponse, error) {
	from, err := req.Validate(s.now())
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByEmployeeAndPeriod(ctx, req.EmployeeID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list clock entries: %w", err)
	}

	responses := make([]clockentry.ClockEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, clockentry.ToResponse(e))
	}
	return responses, nil
}

var _ clockentry.ClockEntryService = (*ClockEntryServiceImpl)(nil)
