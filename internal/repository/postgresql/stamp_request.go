package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// hasCode reports whether err is a PostgreSQL error with the given SQLSTATE.
func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

const stampRequestColumns = `
	sr.id, sr.clock_entry_id, sr.employee_id, sr.status, sr.reason,
	to_char(sr.proposed_in_time, 'HH24:MI'), to_char(sr.proposed_out_time, 'HH24:MI'),
	to_char(sr.proposed_break_start, 'HH24:MI'), to_char(sr.proposed_break_end, 'HH24:MI'),
	sr.proposed_night_shift,
	sr.approval_note, sr.rejection_reason, sr.cancellation_reason,
	sr.resolved_by, sr.resolved_at,
	sr.submitted_at, sr.created_at, sr.updated_at,
	ce.date`

var sortColumns = map[string]string{
	"submitted_at": "sr.submitted_at",
	"date":         "ce.date",
	"status":       "sr.status",
}

type stampRequestRepositoryImpl struct {
	db *database.DB
}

func NewStampRequestRepository(db *database.DB) stamprequest.StampRequestRepository {
	return &stampRequestRepositoryImpl{db: db}
}

// Create implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) Create(ctx context.Context, request stamprequest.StampRequest) (stamprequest.StampRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO stamp_requests (
			id, clock_entry_id, employee_id, status, reason,
			proposed_in_time, proposed_out_time, proposed_break_start, proposed_break_end,
			proposed_night_shift,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4,
			$5::time, $6::time, $7::time, $8::time,
			$9,
			$10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ClockEntryID, request.EmployeeID, string(request.Status), request.Reason,
		request.ProposedInTime, request.ProposedOutTime, request.ProposedBreakStart, request.ProposedBreakEnd,
		request.ProposedNightShift,
		request.SubmittedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return stamprequest.StampRequest{}, stamprequest.ErrAlreadyHasActiveRequest
		}
		return stamprequest.StampRequest{}, err
	}

	return request, nil
}

// GetByID implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) GetByID(ctx context.Context, id string) (stamprequest.StampRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + stampRequestColumns + `
		FROM stamp_requests sr
		JOIN clock_entries ce ON sr.clock_entry_id = ce.id
		WHERE sr.id = $1
	`

	request, err := scanStampRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		// A malformed id cannot name a stored request.
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, invalidTextRepresentation) {
			return stamprequest.StampRequest{}, stamprequest.ErrStampRequestNotFound
		}
		return stamprequest.StampRequest{}, err
	}
	return request, nil
}

// Transition implements stamprequest.StampRequestRepository. The status
// precondition is part of the UPDATE, so concurrent callers cannot both win.
func (r *stampRequestRepositoryImpl) Transition(ctx context.Context, id string, from stamprequest.Status, update stamprequest.TransitionUpdate) (stamprequest.StampRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE stamp_requests
		SET status = $3,
			approval_note = $4,
			rejection_reason = $5,
			cancellation_reason = $6,
			resolved_by = $7,
			resolved_at = $8,
			updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	commandTag, err := q.Exec(ctx, query, id, string(from), string(update.To),
		update.ApprovalNote, update.RejectionReason, update.CancellationReason,
		update.ResolvedBy, update.ResolvedAt,
	)
	if err != nil {
		if hasCode(err, invalidTextRepresentation) {
			return stamprequest.StampRequest{}, stamprequest.ErrStampRequestNotFound
		}
		return stamprequest.StampRequest{}, err
	}

	if commandTag.RowsAffected() != 1 {
		// Tell an unknown id apart from a lost race or a terminal request.
		if _, err := r.GetByID(ctx, id); err != nil {
			return stamprequest.StampRequest{}, err
		}
		return stamprequest.StampRequest{}, stamprequest.ErrInvalidTransition
	}

	return r.GetByID(ctx, id)
}

// ListByEmployee implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64, error) {
	return r.list(ctx, "WHERE sr.employee_id = $1", []interface{}{employeeID}, filter)
}

// List implements stamprequest.StampRequestRepository.
func (r *stampRequestRepositoryImpl) List(ctx context.Context, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64, error) {
	return r.list(ctx, "WHERE TRUE", nil, filter)
}

func (r *stampRequestRepositoryImpl) list(ctx context.Context, whereClause string, args []interface{}, filter stamprequest.ListFilter) ([]stamprequest.StampRequest, int64, error) {
	q := GetQuerier(ctx, r.db)
	argIndex := len(args) + 1

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND sr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	// Plain substring match: %, _ and \ in the search text are literal.
	if filter.Search != nil {
		whereClause += fmt.Sprintf(" AND position(lower($%d) in lower(sr.reason)) > 0", argIndex)
		args = append(args, strings.TrimSpace(*filter.Search))
		argIndex++
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM stamp_requests sr
		JOIN clock_entries ce ON sr.clock_entry_id = ce.id
		%s
	`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = sortColumns["submitted_at"]
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`
		SELECT %s
		FROM stamp_requests sr
		JOIN clock_entries ce ON sr.clock_entry_id = ce.id
		%s
		ORDER BY %s %s, sr.id %s
		LIMIT $%d OFFSET $%d
	`, stampRequestColumns, whereClause, sortColumn, sortOrder, sortOrder, argIndex, argIndex+1)

	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := []stamprequest.StampRequest{}
	for rows.Next() {
		request, err := scanStampRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}

	return requests, total, rows.Err()
}

func scanStampRequest(row pgx.Row) (stamprequest.StampRequest, error) {
	var (
		req    stamprequest.StampRequest
		status string
	)
	err := row.Scan(
		&req.ID, &req.ClockEntryID, &req.EmployeeID, &status, &req.Reason,
		&req.ProposedInTime, &req.ProposedOutTime,
		&req.ProposedBreakStart, &req.ProposedBreakEnd,
		&req.ProposedNightShift,
		&req.ApprovalNote, &req.RejectionReason, &req.CancellationReason,
		&req.ResolvedBy, &req.ResolvedAt,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.ClockEntryDate,
	)
	req.Status = stamprequest.Status(status)
	return req, err
}
