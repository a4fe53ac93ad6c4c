package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const clockEntryColumns = `
	ce.id, ce.employee_id, ce.date,
	to_char(ce.in_time, 'HH24:MI'), to_char(ce.out_time, 'HH24:MI'),
	to_char(ce.break_start, 'HH24:MI'), to_char(ce.break_end, 'HH24:MI'),
	ce.overtime_minutes, ce.is_night_shift,
	ce.request_status, ce.request_id,
	ce.created_at, ce.updated_at`

type clockEntryRepositoryImpl struct {
	db *database.DB
}

func NewClockEntryRepository(db *database.DB) clockentry.ClockEntryRepository {
	return &clockEntryRepositoryImpl{db: db}
}

// GetByID implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) GetByID(ctx context.Context, id string) (clockentry.ClockEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockEntryColumns + `
		FROM clock_entries ce
		WHERE ce.id = $1
	`

	e, err := scanClockEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
			return clockentry.ClockEntry{}, clockentry.ErrClockEntryNotFound
		}
		return clockentry.ClockEntry{}, err
	}
	return e, nil
}

// ListByEmployeeAndPeriod implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]clockentry.ClockEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockEntryColumns + `
		FROM clock_entries ce
		WHERE ce.employee_id = $1 AND ce.date >= $2 AND ce.date < $3
		ORDER BY ce.date ASC, ce.id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		if hasCode(err, invalidTextRepresentation) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var entries []clockentry.ClockEntry
	for rows.Next() {
		e, err := scanClockEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	// An employee id that is not a UUID has no entries.
	if err := rows.Err(); err != nil && !hasCode(err, invalidTextRepresentation) {
		return nil, err
	}
	return entries, nil
}

// LinkRequest implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) LinkRequest(ctx context.Context, id string, requestID string, status string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clock_entries
		SET request_id = $2, request_status = $3, updated_at = NOW()
		WHERE id = $1 AND (request_id IS NULL OR request_status <> 'PENDING')
	`

	commandTag, err := q.Exec(ctx, query, id, requestID, status)
	if err != nil {
		if hasCode(err, invalidTextRepresentation) {
			return clockentry.ErrClockEntryNotFound
		}
		return err
	}
	if commandTag.RowsAffected() == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return clockentry.ErrRequestAlreadyLinked
}

// CloseRequest implements clockentry.ClockEntryRepository.
func (r *clockEntryRepositoryImpl) CloseRequest(ctx context.Context, id string, status string, correction *clockentry.Correction) error {
	q := GetQuerier(ctx, r.db)

	if correction == nil {
		correction = &clockentry.Correction{}
	}

	query := `
		UPDATE clock_entries
		SET request_id = NULL,
			request_status = $2,
			in_time = COALESCE($3::time, in_time),
			out_time = COALESCE($4::time, out_time),
			break_start = COALESCE($5::time, break_start),
			break_end = COALESCE($6::time, break_end),
			is_night_shift = COALESCE($7::boolean, is_night_shift),
			updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id, status,
		correction.InTime, correction.OutTime,
		correction.BreakStart, correction.BreakEnd,
		correction.IsNightShift,
	)
	if err != nil {
		if hasCode(err, invalidTextRepresentation) {
			return clockentry.ErrClockEntryNotFound
		}
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return clockentry.ErrClockEntryNotFound
	}
	return nil
}

func scanClockEntry(row pgx.Row) (clockentry.ClockEntry, error) {
	var e clockentry.ClockEntry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Date,
		&e.InTime, &e.OutTime,
		&e.BreakStart, &e.BreakEnd,
		&e.OvertimeMinutes, &e.IsNightShift,
		&e.RequestStatus, &e.RequestID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
