package stamprequest

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BulkApprove implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) BulkApprove(ctx context.Context, req stamprequest.BulkApproveRequest) (stamprequest.BulkOperationResult, error) {
	if err := req.Validate(s.opts.BulkMaxIDs); err != nil {
		return stamprequest.BulkOperationResult{}, err
	}
	if req.ApprovalNote != nil {
		if err := ValidateReasonLength(*req.ApprovalNote, ReasonApprovalNote); err != nil {
			return s.failAll(stamprequest.ActionApprove, req.RequestIDs, err), nil
		}
	}

	return s.runBulk(ctx, stamprequest.ActionApprove, req.RequestIDs, func(ctx context.Context, id string) (stamprequest.Outcome, error) {
		return s.Approve(ctx, stamprequest.ApproveRequest{
			RequestID:    id,
			ApproverID:   req.ApproverID,
			ApprovalNote: req.ApprovalNote,
		})
	}), nil
}

// BulkReject implements stamprequest.StampRequestService.
func (s *StampRequestServiceImpl) BulkReject(ctx context.Context, req stamprequest.BulkRejectRequest) (stamprequest.BulkOperationResult, error) {
	if err := req.Validate(s.opts.BulkMaxIDs); err != nil {
		return stamprequest.BulkOperationResult{}, err
	}
	if err := ValidateReasonLength(req.RejectionReason, ReasonReject); err != nil {
		return s.failAll(stamprequest.ActionReject, req.RequestIDs, err), nil
	}

	return s.runBulk(ctx, stamprequest.ActionReject, req.RequestIDs, func(ctx context.Context, id string) (stamprequest.Outcome, error) {
		return s.Reject(ctx, stamprequest.RejectRequest{
			RequestID:       id,
			ApproverID:      req.ApproverID,
			RejectionReason: req.RejectionReason,
		})
	}), nil
}

// runBulk applies op to every id on a bounded group of goroutines. Each result
// is stored at its input index; a failing id never stops the others.
func (s *StampRequestServiceImpl) runBulk(
	ctx context.Context,
	action stamprequest.Action,
	ids []string,
	op func(ctx context.Context, id string) (stamprequest.Outcome, error),
) stamprequest.BulkOperationResult {
	results := make([]stamprequest.OperationResult, len(ids))
	outcomes := make([]*stamprequest.Outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(s.opts.BulkConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			outcome, err := op(ctx, id)
			if err != nil {
				s.logger.Warn("bulk item failed",
					zap.String("request_id", id),
					zap.String("action", string(action)),
					zap.Error(err),
				)
				msg := operationMessage(err)
				results[i] = stamprequest.OperationResult{ID: id, Success: false, ErrorMessage: &msg}
				return nil
			}
			results[i] = stamprequest.OperationResult{ID: id, Success: true}
			outcomes[i] = &outcome
			return nil
		})
	}
	// Workers never return an error.
	_ = g.Wait()

	result := stamprequest.BulkOperationResult{Results: results}
	for i := range results {
		if results[i].Success {
			result.SuccessCount++
			result.Outcomes = append(result.Outcomes, *outcomes[i])
		} else {
			result.FailureCount++
		}
	}

	s.logger.Info("bulk stamp request operation finished",
		zap.String("action", string(action)),
		zap.Int("requested", len(ids)),
		zap.Int("succeeded", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
	)

	return result
}

// failAll reports err against every id without touching storage. It is used
// when the shared note or reason is invalid, which would fail each item alike.
func (s *StampRequestServiceImpl) failAll(action stamprequest.Action, ids []string, err error) stamprequest.BulkOperationResult {
	msg := operationMessage(err)
	results := make([]stamprequest.OperationResult, len(ids))
	for i, id := range ids {
		results[i] = stamprequest.OperationResult{ID: id, Success: false, ErrorMessage: &msg}
	}

	s.logger.Warn("bulk stamp request operation rejected every item",
		zap.String("action", string(action)),
		zap.Int("requested", len(ids)),
		zap.Error(err),
	)

	return stamprequest.BulkOperationResult{FailureCount: len(ids), Results: results}
}

var knownErrors = []error{
	stamprequest.ErrStampRequestNotFound,
	stamprequest.ErrInvalidTransition,
	stamprequest.ErrNotOwner,
	clockentry.ErrClockEntryNotFound,
	context.Canceled,
	context.DeadlineExceeded,
}

// operationMessage returns the caller-facing message for a per-item failure.
func operationMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs.Error()
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "internal error"
}
