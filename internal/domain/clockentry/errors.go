package clockentry

import "errors"

var (
	ErrClockEntryNotFound   = errors.New("clock entry not found")
	ErrRequestAlreadyLinked = errors.New("clock entry is already linked to a pending request")
)
