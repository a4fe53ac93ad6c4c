package stamprequest

import (
	"fmt"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
)

// ReasonKind selects the length rule applied to a free-text reason.
type ReasonKind string

const (
	ReasonCreate       ReasonKind = "create"
	ReasonCancel       ReasonKind = "cancel"
	ReasonReject       ReasonKind = "reject"
	ReasonApprovalNote ReasonKind = "approval_note"
)

type reasonRule struct {
	field    string
	min, max int // max 0 means unbounded
}

var reasonRules = map[ReasonKind]reasonRule{
	ReasonCreate:       {field: "reason", min: 1},
	ReasonCancel:       {field: "reason", min: 10, max: 500},
	ReasonReject:       {field: "rejection_reason", min: 10, max: 500},
	ReasonApprovalNote: {field: "approval_note", min: 0, max: 500},
}

// ValidateReasonLength checks text against the rule for kind. Lengths are in characters.
func ValidateReasonLength(text string, kind ReasonKind) error {
	rule, ok := reasonRules[kind]
	if !ok {
		return fmt.Errorf("unknown reason kind %q", kind)
	}

	if rule.min > 0 && validator.IsEmpty(text) {
		return validator.Single(rule.field, rule.field+" is required", stamprequest.ErrInvalidReasonLength)
	}

	n := validator.CharLength(text)
	if n < rule.min {
		return validator.Single(rule.field,
			fmt.Sprintf("%s must be at least %d characters", rule.field, rule.min),
			stamprequest.ErrInvalidReasonLength)
	}
	if rule.max > 0 && n > rule.max {
		return validator.Single(rule.field,
			fmt.Sprintf("%s must not exceed %d characters", rule.field, rule.max),
			stamprequest.ErrInvalidReasonLength)
	}

	return nil
}

// ValidateChronology checks the ordering of each supplied time pair. A pair with
// a missing side is skipped. With isNightShift set, an out time at or before the
// in time is read as falling on the next day.
func ValidateChronology(in, out, breakStart, breakEnd *string, isNightShift bool) error {
	var errs validator.ValidationErrors

	parse := func(field string, value *string) (int, bool) {
		if value == nil {
			return 0, false
		}
		minutes, err := timeofday.Parse(*value)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in HH:MM format",
				Err:     timeofday.ErrInvalidFormat,
			})
			return 0, false
		}
		return minutes, true
	}

	inMinutes, hasIn := parse("proposed_in_time", in)
	outMinutes, hasOut := parse("proposed_out_time", out)
	breakStartMinutes, hasBreakStart := parse("proposed_break_start", breakStart)
	breakEndMinutes, hasBreakEnd := parse("proposed_break_end", breakEnd)

	if hasIn && hasOut {
		adjustedOut := outMinutes
		if isNightShift && outMinutes <= inMinutes {
			adjustedOut += timeofday.MinutesPerDay
		}
		if adjustedOut <= inMinutes {
			errs = append(errs, validator.ValidationError{
				Field:   "proposed_out_time",
				Message: "proposed_out_time must be after proposed_in_time",
				Err:     stamprequest.ErrInvalidTimeOrder,
			})
		}
	}

	if hasBreakStart && hasBreakEnd && breakEndMinutes <= breakStartMinutes {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed_break_end",
			Message: "proposed_break_end must be after proposed_break_start",
			Err:     stamprequest.ErrInvalidTimeOrder,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
