package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
)

type stampRequestRepositoryImpl struct {
	store *Store
}

func NewStampRequestRepository(store *Store) stamprequest.StampRequestRepository {
	return &stampRequestRepositoryImpl{store: store}
}

// Create implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) Create(ctx context.Context, request stamprequest.StampRequest) (stamprequest.StampRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	request.ID = newID()
	request.CreatedAt = now
	request.UpdatedAt = now
	if request.SubmittedAt.IsZero() {
		request.SubmittedAt = now
	}
	request.ClockEntryDate = nil

	r.store.requests[request.ID] = cloneRequest(request)
	return r.withEntryDate(request), nil
}

// GetByID implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) GetByID(ctx context.Context, id string) (stamprequest.StampRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	request, ok := r.store.requests[id]
	if !ok {
		return stamprequest.StampRequest{}, stamprequest.ErrStampRequestNotFound
	}
	return r.withEntryDate(request), nil
}

// Transition implements stamprequest.StampRequestRepository. The status check and
// the write happen under one lock.
func (r *stampRequestRepositoryImpl) Transition(ctx context.Context, id string, from stamprequest.Status, update stamprequest.TransitionUpdate) (stamprequest.StampRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	request, ok := r.store.requests[id]
	if !ok {
		return stamprequest.StampRequest{}, stamprequest.ErrStampRequestNotFound
	}
	if request.Status != from {
		return stamprequest.StampRequest{}, stamprequest.ErrInvalidTransition
	}

	resolvedBy := update.ResolvedBy
	resolvedAt := update.ResolvedAt

	request.Status = update.To
	request.ApprovalNote = cloneString(update.ApprovalNote)
	request.RejectionReason = cloneString(update.RejectionReason)
	request.CancellationReason = cloneString(update.CancellationReason)
	request.ResolvedBy = &resolvedBy
	request.ResolvedAt = &resolvedAt
	request.UpdatedAt = r.store.now()

	r.store.requests[id] = request
	return r.withEntryDate(request), nil
}

// ListByEmployee implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64, error) {
	requests, total := r.page(func(req stamprequest.StampRequest) bool {
		return req.EmployeeID == employeeID
	}, filter)
	return requests, total, nil
}

// List implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) List(ctx context.Context, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64, error) {
	requests, total := r.page(func(stamprequest.StampRequest) bool { return true }, filter)
	return requests, total, nil
}

func (r *stampRequestRepositoryImpl) page(scope func(stamprequest.StampRequest) bool, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64) {
	matched := r.match(scope, filter)
	total := int64(len(matched))

	slices.SortFunc(matched, func(a, b stamprequest.StampRequest) int {
		c := compareBy(filter.SortBy, a, b)
		if filter.SortOrder == "desc" {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	offset := (filter.Page - 1) * filter.PageSize
	if offset < 0 || offset >= len(matched) {
		return []stamprequest.StampRequest{}, total
	}
	end := min(offset+filter.PageSize, len(matched))
	return matched[offset:end], total
}

func (r *stampRequestRepositoryImpl) match(scope func(stamprequest.StampRequest) bool, filter stamprequest.ListFilter) []stamprequest.StampRequest {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var search string
	if filter.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.Search))
	}

	var matched []stamprequest.StampRequest
	for _, req := range r.store.requests {
		if !scope(req) {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(req.Reason), search) {
			continue
		}
		matched = append(matched, r.withEntryDate(req))
	}
	return matched
}

func compareBy(field string, a, b stamprequest.StampRequest) int {
	switch field {
	case "date":
		switch {
		case a.ClockEntryDate == nil && b.ClockEntryDate == nil:
			return 0
		case a.ClockEntryDate == nil:
			return -1
		case b.ClockEntryDate == nil:
			return 1
		}
		return a.ClockEntryDate.Compare(*b.ClockEntryDate)
	case "status":
		return strings.Compare(string(a.Status), string(b.Status))
	default:
		return a.SubmittedAt.Compare(b.SubmittedAt)
	}
}

// withEntryDate returns a copy of request with the clock entry date filled in.
// Callers must hold store.mu.
func (r *stampRequestRepositoryImpl) withEntryDate(request stamprequest.StampRequest) stamprequest.StampRequest {
	request = cloneRequest(request)
	if e, ok := r.store.entries[request.ClockEntryID]; ok {
		date := e.Date
		request.ClockEntryDate = &date
	}
	return request
}
