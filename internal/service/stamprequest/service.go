package stamprequest

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"go.uber.org/zap"
)

const (
	defaultBulkMaxIDs      = 100
	defaultBulkConcurrency = 8
)

type Options struct {
	BulkMaxIDs      int
	BulkConcurrency int
}

type StampRequestServiceImpl struct {
	requests stamprequest.StampRequestRepository
	entries  clockentry.ClockEntryRepository
	tx       stamprequest.Transactor
	logger   *zap.Logger
	opts     Options
	now      func() time.Time
}

func NewStampRequestService(
	requests stamprequest.StampRequestRepository,
	entries clockentry.ClockEntryRepository,
	tx stamprequest.Transactor,
	logger *zap.Logger,
	opts Options,
) *StampRequestServiceImpl {
	if opts.BulkMaxIDs <= 0 {
		opts.BulkMaxIDs = defaultBulkMaxIDs
	}
	if opts.BulkConcurrency <= 0 {
		opts.BulkConcurrency = defaultBulkConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StampRequestServiceImpl{
		requests: requests,
		entries:  entries,
		tx:       tx,
		logger:   logger.Named("stamp_request"),
		opts:     opts,
		now:      time.Now,
	}
}

// ListMine implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) ListMine(ctx context.Context, employeeID string, filter stamprequest.ListFilter) (stamprequest.ListStampRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return stamprequest.ListStampRequestResponse{}, err
	}

	requests, totalCount, err := s.requests.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return stamprequest.ListStampRequestResponse{}, fmt.Errorf("failed to list stamp requests: %w", err)
	}

	return buildListResponse(requests, totalCount, filter), nil
}

// ListPending implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) ListPending(ctx context.Context, filter stamprequest.ListFilter) (stamprequest.ListStampRequestResponse, error) {
	pending := string(stamprequest.StatusPending)
	filter.Status = &pending
	if err := filter.Validate(); err != nil {
		return stamprequest.ListStampRequestResponse{}, err
	}

	requests, totalCount, err := s.requests.List(ctx, filter)
	if err != nil {
		return stamprequest.ListStampRequestResponse{}, fmt.Errorf("failed to list pending stamp requests: %w", err)
	}

	return buildListResponse(requests, totalCount, filter), nil
}

// Get implements stamprequest.StampRequestService. Employees only see their own requests.
func (s *StampRequestServiceImpl) Get(ctx context.Context, id string, caller stamprequest.Caller) (stamprequest.StampRequestResponse, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return stamprequest.StampRequestResponse{}, fmt.Errorf("failed to get stamp request: %w", err)
	}

	if !caller.IsAdmin && request.EmployeeID != caller.EmployeeID {
		return stamprequest.StampRequestResponse{}, stamprequest.ErrNotOwner
	}

	return stamprequest.ToResponse(request), nil
}

func buildListResponse(requests []stamprequest.StampRequest, totalCount int64, filter stamprequest.ListFilter) stamprequest.ListStampRequestResponse {
	responses := make([]stamprequest.StampRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, stamprequest.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(filter.PageSize)))

	start := (filter.Page-1)*filter.PageSize + 1
	end := start + len(responses) - 1
	if end > int(totalCount) {
		end = int(totalCount)
	}

	showing := fmt.Sprintf("%d-%d of %d results", start, end, totalCount)
	if totalCount == 0 || len(responses) == 0 {
		showing = fmt.Sprintf("0 of %d results", totalCount)
	}

	return stamprequest.ListStampRequestResponse{
		Requests:   responses,
		TotalCount: totalCount,
		PageNumber: filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
		Showing:    showing,
	}
}

var _ stamprequest.StampRequestService = (*StampRequestServiceImpl)(nil)
