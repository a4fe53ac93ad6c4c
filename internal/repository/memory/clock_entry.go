package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
)

type clockEntryRepositoryImpl struct {
	store *Store
}

func NewClockEntryRepository(store *Store) clockentry.ClockEntryRepository {
	return &clockEntryRepositoryImpl{store: store}
}

// GetByID implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) GetByID(ctx context.Context, id string) (clockentry.ClockEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.entries[id]
	if !ok {
		return clockentry.ClockEntry{}, clockentry.ErrClockEntryNotFound
	}
	return cloneEntry(e), nil
}

// ListByEmployeeAndPeriod implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]clockentry.ClockEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []clockentry.ClockEntry
	for _, e := range r.store.entries {
		if e.EmployeeID != employeeID {
			continue
		}
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		result = append(result, cloneEntry(e))
	}

	slices.SortFunc(result, func(a, b clockentry.ClockEntry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return result, nil
}

// LinkRequest implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) LinkRequest(ctx context.Context, id string, requestID string, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.entries[id]
	if !ok {
		return clockentry.ErrClockEntryNotFound
	}
	if e.HasActiveRequest() && e.RequestStatus == string(stamprequest.StatusPending) {
		return clockentry.ErrRequestAlreadyLinked
	}

	e.RequestID = &requestID
	e.RequestStatus = status
	e.UpdatedAt = r.store.now()
	r.store.entries[id] = e
	return nil
}

// CloseRequest implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) CloseRequest(ctx context.Context, id string, status string, correction *clockentry.Correction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.entries[id]
	if !ok {
		return clockentry.ErrClockEntryNotFound
	}

	if correction != nil {
		e = e.Apply(*correction)
	}
	e.RequestID = nil
	e.RequestStatus = status
	e.UpdatedAt = r.store.now()
	r.store.entries[id] = e
	return nil
}
