package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStampRequestRepository_CreateAndGet(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStampRequestRepository(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	entryID := insertClockEntry(t, db, employeeID, "2025-03-14", "09:00", "17:00")

	created, err := repo.Create(ctx, stamprequest.StampRequest{
		ClockEntryID:    entryID,
		EmployeeID:      employeeID,
		Status:          stamprequest.StatusPending,
		Reason:          "forgot to clock out",
		ProposedOutTime: strPtr("18:30"),
		SubmittedAt:     time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stamprequest.StatusPending, got.Status)
	require.NotNil(t, got.ProposedOutTime)
	assert.Equal(t, "18:30", *got.ProposedOutTime)
	assert.Nil(t, got.ProposedInTime)
	require.NotNil(t, got.ClockEntryDate)
	assert.Equal(t, "2025-03-14", got.ClockEntryDate.Format("2006-01-02"))

	_, err = repo.GetByID(ctx, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, stamprequest.ErrStampRequestNotFound)
}

func TestStampRequestRepository_MalformedIDIsNotFound(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	requests := postgresql.NewStampRequestRepository(db)
	entries := postgresql.NewClockEntryRepository(db)

	_, err := requests.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, stamprequest.ErrStampRequestNotFound)

	_, err = requests.Transition(ctx, "not-a-uuid", stamprequest.StatusPending, stamprequest.TransitionUpdate{
		To:         stamprequest.StatusApproved,
		ResolvedBy: uuid.Must(uuid.NewV7()).String(),
		ResolvedAt: time.Now(),
	})
	assert.ErrorIs(t, err, stamprequest.ErrStampRequestNotFound)

	_, err = entries.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, clockentry.ErrClockEntryNotFound)

	err = entries.LinkRequest(ctx, "not-a-uuid", uuid.Must(uuid.NewV7()).String(), string(stamprequest.StatusPending))
	assert.ErrorIs(t, err, clockentry.ErrClockEntryNotFound)

	err = entries.CloseRequest(ctx, "not-a-uuid", string(stamprequest.StatusCancelled), nil)
	assert.ErrorIs(t, err, clockentry.ErrClockEntryNotFound)

	month, err := entries.ListByEmployeeAndPeriod(ctx, "not-a-uuid",
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, month)
}

func TestStampRequestRepository_OnePendingPerEntry(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStampRequestRepository(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	entryID := insertClockEntry(t, db, employeeID, "2025-03-14", "09:00", "17:00")

	request := stamprequest.StampRequest{
		ClockEntryID:   entryID,
		EmployeeID:     employeeID,
		Status:         stamprequest.StatusPending,
		Reason:         "wrong in time",
		ProposedInTime: strPtr("08:00"),
		SubmittedAt:    time.Now(),
	}
	_, err := repo.Create(ctx, request)
	require.NoError(t, err)

	_, err = repo.Create(ctx, request)
	assert.ErrorIs(t, err, stamprequest.ErrAlreadyHasActiveRequest)
}

func TestStampRequestRepository_TransitionIsCompareAndSet(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStampRequestRepository(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	approverID := uuid.Must(uuid.NewV7()).String()
	entryID := insertClockEntry(t, db, employeeID, "2025-03-14", "09:00", "17:00")

	created, err := repo.Create(ctx, stamprequest.StampRequest{
		ClockEntryID:   entryID,
		EmployeeID:     employeeID,
		Status:         stamprequest.StatusPending,
		Reason:         "wrong in time",
		ProposedInTime: strPtr("08:00"),
		SubmittedAt:    time.Now(),
	})
	require.NoError(t, err)

	const racers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Transition(ctx, created.ID, stamprequest.StatusPending, stamprequest.TransitionUpdate{
				To:         stamprequest.StatusApproved,
				ResolvedBy: approverID,
				ResolvedAt: time.Now(),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, stamprequest.ErrInvalidTransition) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, racers-1, conflicts)

	_, err = repo.Transition(ctx, uuid.Must(uuid.NewV7()).String(), stamprequest.StatusPending, stamprequest.TransitionUpdate{
		To:         stamprequest.StatusRejected,
		ResolvedBy: approverID,
		ResolvedAt: time.Now(),
	})
	assert.ErrorIs(t, err, stamprequest.ErrStampRequestNotFound)
}

func TestStampRequestRepository_ListFilters(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStampRequestRepository(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	otherID := uuid.Must(uuid.NewV7()).String()

	reasons := []string{"Forgot badge", "Train delay", "forgot to clock out"}
	for i, reason := range reasons {
		entryID := insertClockEntry(t, db, employeeID, time.Date(2025, 3, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), "09:00", "17:00")
		_, err := repo.Create(ctx, stamprequest.StampRequest{
			ClockEntryID:   entryID,
			EmployeeID:     employeeID,
			Status:         stamprequest.StatusPending,
			Reason:         reason,
			ProposedInTime: strPtr("08:30"),
			SubmittedAt:    time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	otherEntry := insertClockEntry(t, db, otherID, "2025-03-01", "09:00", "17:00")
	_, err := repo.Create(ctx, stamprequest.StampRequest{
		ClockEntryID:   otherEntry,
		EmployeeID:     otherID,
		Status:         stamprequest.StatusPending,
		Reason:         "forgot everything",
		ProposedInTime: strPtr("08:30"),
		SubmittedAt:    time.Now(),
	})
	require.NoError(t, err)

	filter := stamprequest.ListFilter{Search: strPtr("FORGOT")}
	require.NoError(t, filter.Validate())

	mine, total, err := repo.ListByEmployee(ctx, employeeID, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, mine, 2)
	assert.Equal(t, "forgot to clock out", mine[0].Reason, "newest first")

	all, total, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	byDate := stamprequest.ListFilter{SortBy: "date", SortOrder: "asc", PageSize: 1, Page: 2}
	require.NoError(t, byDate.Validate())
	page, total, err := repo.ListByEmployee(ctx, employeeID, byDate)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Train delay", page[0].Reason)
}

func TestStampRequestRepository_SearchIsLiteral(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStampRequestRepository(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	reasons := []string{"100% sure I was in", "badge_reader broken", "late train"}
	for i, reason := range reasons {
		entryID := insertClockEntry(t, db, employeeID, time.Date(2025, 4, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), "09:00", "17:00")
		_, err := repo.Create(ctx, stamprequest.StampRequest{
			ClockEntryID:   entryID,
			EmployeeID:     employeeID,
			Status:         stamprequest.StatusPending,
			Reason:         reason,
			ProposedInTime: strPtr("08:30"),
			SubmittedAt:    time.Now(),
		})
		require.NoError(t, err)
	}

	tests := []struct {
		search string
		want   int64
	}{
		{"100%", 1},
		{"%", 1},
		{"_", 1},
		{"e_r", 1},
		{`\`, 0},
		{" LATE ", 1},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			filter := stamprequest.ListFilter{Search: strPtr(tt.search)}
			require.NoError(t, filter.Validate())

			_, total, err := repo.ListByEmployee(ctx, employeeID, filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestClockEntryRepository_LinkAndClose(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	entries := postgresql.NewClockEntryRepository(db)
	requests := postgresql.NewStampRequestRepository(db)
	tx := postgresql.NewTransactor(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	entryID := insertClockEntry(t, db, employeeID, "2025-03-14", "09:00", "17:00")

	var requestID string
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := requests.Create(ctx, stamprequest.StampRequest{
			ClockEntryID:    entryID,
			EmployeeID:      employeeID,
			Status:          stamprequest.StatusPending,
			Reason:          "left late",
			ProposedOutTime: strPtr("19:15"),
			SubmittedAt:     time.Now(),
		})
		if err != nil {
			return err
		}
		requestID = created.ID
		return entries.LinkRequest(ctx, entryID, created.ID, string(stamprequest.StatusPending))
	})
	require.NoError(t, err)

	err = entries.LinkRequest(ctx, entryID, uuid.Must(uuid.NewV7()).String(), string(stamprequest.StatusPending))
	assert.ErrorIs(t, err, clockentry.ErrRequestAlreadyLinked)

	linked, err := entries.GetByID(ctx, entryID)
	require.NoError(t, err)
	require.NotNil(t, linked.RequestID)
	assert.Equal(t, requestID, *linked.RequestID)
	assert.Equal(t, "PENDING", linked.RequestStatusLabel())

	out := "19:15"
	require.NoError(t, entries.CloseRequest(ctx, entryID, string(stamprequest.StatusApproved), &clockentry.Correction{OutTime: &out}))

	closed, err := entries.GetByID(ctx, entryID)
	require.NoError(t, err)
	assert.Nil(t, closed.RequestID)
	assert.Equal(t, "APPROVED", closed.RequestStatus)
	require.NotNil(t, closed.OutTime)
	assert.Equal(t, "19:15", *closed.OutTime)
	require.NotNil(t, closed.InTime)
	assert.Equal(t, "09:00", *closed.InTime)

	month, err := entries.ListByEmployeeAndPeriod(ctx, employeeID,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, month, 1)

	_, err = entries.GetByID(ctx, uuid.Must(uuid.NewV7()).String())
	assert.ErrorIs(t, err, clockentry.ErrClockEntryNotFound)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	entries := postgresql.NewClockEntryRepository(db)
	tx := postgresql.NewTransactor(db)

	employeeID := uuid.Must(uuid.NewV7()).String()
	entryID := insertClockEntry(t, db, employeeID, "2025-03-14", "09:00", "17:00")

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := entries.CloseRequest(ctx, entryID, "REJECTED", nil); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	entry, err := entries.GetByID(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, clockentry.RequestStatusLabelNone, entry.RequestStatusLabel())
}
