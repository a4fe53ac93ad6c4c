// Package memory keeps clock entries and stamp requests in process memory.
// It backs the "memory" storage driver and the service tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/google/uuid"
)

type txKey struct{}

// Store holds all rows. Reads and single writes take mu; WithinTransaction
// additionally serialises transactions on txMu and restores a snapshot on error.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	entries  map[string]clockentry.ClockEntry
	requests map[string]stamprequest.StampRequest
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries:  make(map[string]clockentry.ClockEntry),
		requests: make(map[string]stamprequest.StampRequest),
		now:      time.Now,
	}
}

// WithinTransaction implements stamprequest.Transactor. Nested calls join the
// outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	entries := maps.Clone(s.entries)
	requests := maps.Clone(s.requests)
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.entries = entries
		s.requests = requests
		s.mu.Unlock()
		return err
	}

	return nil
}

// AddClockEntry stores an entry as the attendance recorder would. An empty ID is
// replaced by a new one.
func (s *Store) AddClockEntry(e clockentry.ClockEntry) clockentry.ClockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	now := s.now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e = cloneEntry(e)
	s.entries[e.ID] = e
	return cloneEntry(e)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

var _ stamprequest.Transactor = (*Store)(nil)

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneEntry(e clockentry.ClockEntry) clockentry.ClockEntry {
	e.InTime = cloneString(e.InTime)
	e.OutTime = cloneString(e.OutTime)
	e.BreakStart = cloneString(e.BreakStart)
	e.BreakEnd = cloneString(e.BreakEnd)
	e.RequestID = cloneString(e.RequestID)
	return e
}

func cloneRequest(r stamprequest.StampRequest) stamprequest.StampRequest {
	r.ProposedInTime = cloneString(r.ProposedInTime)
	r.ProposedOutTime = cloneString(r.ProposedOutTime)
	r.ProposedBreakStart = cloneString(r.ProposedBreakStart)
	r.ProposedBreakEnd = cloneString(r.ProposedBreakEnd)
	r.ProposedNightShift = cloneBool(r.ProposedNightShift)
	r.ApprovalNote = cloneString(r.ApprovalNote)
	r.RejectionReason = cloneString(r.RejectionReason)
	r.CancellationReason = cloneString(r.CancellationReason)
	r.ResolvedBy = cloneString(r.ResolvedBy)
	r.ResolvedAt = cloneTime(r.ResolvedAt)
	r.ClockEntryDate = cloneTime(r.ClockEntryDate)
	return r
}
