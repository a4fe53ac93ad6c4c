package stamprequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"go.uber.org/zap"
)

// Submit implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) Submit(ctx context.Context, req stamprequest.SubmitRequest) (stamprequest.Outcome, error) {
	if err := req.Validate(); err != nil {
		return stamprequest.Outcome{}, err
	}
	if err := ValidateReasonLength(req.Reason, ReasonCreate); err != nil {
		return stamprequest.Outcome{}, err
	}

	entry, err := s.entries.GetByID(ctx, req.ClockEntryID)
	if err != nil {
		return stamprequest.Outcome{}, fmt.Errorf("failed to get clock entry: %w", err)
	}

	if entry.EmployeeID != req.EmployeeID {
		return stamprequest.Outcome{}, stamprequest.ErrNotOwner
	}

	isNightShift := entry.IsNightShift
	if req.ProposedNightShift != nil {
		isNightShift = *req.ProposedNightShift
	}
	if err := ValidateChronology(req.ProposedInTime, req.ProposedOutTime, req.ProposedBreakStart, req.ProposedBreakEnd, isNightShift); err != nil {
		return stamprequest.Outcome{}, err
	}

	var created stamprequest.StampRequest
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Re-read inside the transaction so the active check sees committed state.
		entry, err = s.entries.GetByID(ctx, req.ClockEntryID)
		if err != nil {
			return fmt.Errorf("failed to get clock entry: %w", err)
		}

		if err := s.ensureNoActiveRequest(ctx, entry); err != nil {
			return err
		}

		now := s.now()
		created, err = s.requests.Create(ctx, stamprequest.StampRequest{
			ClockEntryID:       entry.ID,
			EmployeeID:         req.EmployeeID,
			Status:             stamprequest.StatusPending,
			Reason:             req.Reason,
			ProposedInTime:     req.ProposedInTime,
			ProposedOutTime:    req.ProposedOutTime,
			ProposedBreakStart: req.ProposedBreakStart,
			ProposedBreakEnd:   req.ProposedBreakEnd,
			ProposedNightShift: req.ProposedNightShift,
			SubmittedAt:        now,
		})
		if err != nil {
			return fmt.Errorf("failed to create stamp request: %w", err)
		}

		if err := s.entries.LinkRequest(ctx, entry.ID, created.ID, string(stamprequest.StatusPending)); err != nil {
			if errors.Is(err, clockentry.ErrRequestAlreadyLinked) {
				return stamprequest.ErrAlreadyHasActiveRequest
			}
			return fmt.Errorf("failed to link clock entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return stamprequest.Outcome{}, err
	}

	created.ClockEntryDate = &entry.Date

	s.logger.Info("stamp request submitted",
		zap.String("request_id", created.ID),
		zap.String("clock_entry_id", entry.ID),
		zap.String("employee_id", created.EmployeeID),
	)

	return stamprequest.Outcome{
		Request:  created,
		Affected: affectedBy(created, entry, false),
	}, nil
}

// Approve implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) Approve(ctx context.Context, req stamprequest.ApproveRequest) (stamprequest.Outcome, error) {
	if req.ApprovalNote != nil {
		if err := ValidateReasonLength(*req.ApprovalNote, ReasonApprovalNote); err != nil {
			return stamprequest.Outcome{}, err
		}
	}

	return s.transition(ctx, req.RequestID, stamprequest.ActionApprove, stamprequest.TransitionUpdate{
		ApprovalNote: req.ApprovalNote,
		ResolvedBy:   req.ApproverID,
	})
}

// Reject implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) Reject(ctx context.Context, req stamprequest.RejectRequest) (stamprequest.Outcome, error) {
	if err := ValidateReasonLength(req.RejectionReason, ReasonReject); err != nil {
		return stamprequest.Outcome{}, err
	}

	reason := req.RejectionReason
	return s.transition(ctx, req.RequestID, stamprequest.ActionReject, stamprequest.TransitionUpdate{
		RejectionReason: &reason,
		ResolvedBy:      req.ApproverID,
	})
}

// Cancel implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) Cancel(ctx context.Context, req stamprequest.CancelRequest) (stamprequest.Outcome, error) {
	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return stamprequest.Outcome{}, fmt.Errorf("failed to get stamp request: %w", err)
	}

	// Checked regardless of status.
	if request.EmployeeID != req.EmployeeID {
		return stamprequest.Outcome{}, stamprequest.ErrNotOwner
	}

	if err := ValidateReasonLength(req.Reason, ReasonCancel); err != nil {
		return stamprequest.Outcome{}, err
	}

	reason := req.Reason
	return s.transition(ctx, req.RequestID, stamprequest.ActionCancel, stamprequest.TransitionUpdate{
		CancellationReason: &reason,
		ResolvedBy:         req.EmployeeID,
	})
}

// transition moves a pending request to the state action leads to and closes
// the link on its clock entry. Approval also writes the proposed values.
func (s *StampRequestServiceImpl) transition(
	ctx context.Context,
	requestID string,
	action stamprequest.Action,
	update stamprequest.TransitionUpdate,
) (stamprequest.Outcome, error) {
	var (
		updated stamprequest.StampRequest
		entry   clockentry.ClockEntry
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("failed to get stamp request: %w", err)
		}

		to, err := current.Status.Next(action)
		if err != nil {
			return err
		}

		entry, err = s.entries.GetByID(ctx, current.ClockEntryID)
		if err != nil {
			return fmt.Errorf("failed to get clock entry: %w", err)
		}

		update.To = to
		update.ResolvedAt = s.now()

		// The status check above is advisory; this conditional write is the guard.
		updated, err = s.requests.Transition(ctx, requestID, action.Source(), update)
		if err != nil {
			return err
		}

		var correction *clockentry.Correction
		if action == stamprequest.ActionApprove {
			c := updated.Correction()
			correction = &c
		}

		if err := s.entries.CloseRequest(ctx, entry.ID, string(to), correction); err != nil {
			return fmt.Errorf("failed to update clock entry: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Debug("stamp request transition failed",
			zap.String("request_id", requestID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return stamprequest.Outcome{}, err
	}

	updated.ClockEntryDate = &entry.Date

	s.logger.Info("stamp request transitioned",
		zap.String("request_id", updated.ID),
		zap.String("action", string(action)),
		zap.String("status", string(updated.Status)),
		zap.String("resolved_by", update.ResolvedBy),
	)

	return stamprequest.Outcome{
		Request:  updated,
		Affected: affectedBy(updated, entry, action == stamprequest.ActionApprove),
	}, nil
}

// ensureNoActiveRequest fails when entry is linked to a request that is still pending.
// A link to a terminal request is stale and is overwritten.
func (s *StampRequestServiceImpl) ensureNoActiveRequest(ctx context.Context, entry clockentry.ClockEntry) error {
	if !entry.HasActiveRequest() {
		return nil
	}

	linked, err := s.requests.GetByID(ctx, *entry.RequestID)
	if err != nil {
		if errors.Is(err, stamprequest.ErrStampRequestNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get linked stamp request: %w", err)
	}

	if !linked.Status.IsTerminal() {
		return stamprequest.ErrAlreadyHasActiveRequest
	}
	return nil
}

func affectedBy(request stamprequest.StampRequest, entry clockentry.ClockEntry, statsChanged bool) stamprequest.Resources {
	var affected stamprequest.Resources
	affected = affected.Add(stamprequest.Resource{Kind: stamprequest.ResourceStampRequest, ID: request.ID})
	affected = affected.Add(stamprequest.Resource{Kind: stamprequest.ResourceClockEntry, ID: entry.ID})
	if statsChanged {
		affected = affected.Add(stamprequest.Resource{
			Kind:       stamprequest.ResourceMonthlyStats,
			EmployeeID: entry.EmployeeID,
			Period:     stamprequest.MonthOf(entry.Date),
		})
	}
	return affected
}
