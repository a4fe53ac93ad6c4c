package stamprequest

import "errors"

var (
	ErrStampRequestNotFound    = errors.New("stamp request not found")
	ErrInvalidTransition       = errors.New("stamp request is not pending")
	ErrAlreadyHasActiveRequest = errors.New("clock entry already has an active stamp request")
	ErrNotOwner                = errors.New("stamp request does not belong to the caller")
	ErrInvalidTimeOrder        = errors.New("end time must be after start time")
	ErrInvalidReasonLength     = errors.New("reason length is out of range")
	ErrEmptyCorrection         = errors.New("at least one proposed value is required")
	ErrEmptyRequestIDs         = errors.New("request_ids must not be empty")
	ErrTooManyRequestIDs       = errors.New("too many request_ids")
)
