package validator

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
	// Err is the domain sentinel behind this failure, if any.
	Err error
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the sentinels so errors.Is works on the aggregate.
func (v ValidationErrors) Unwrap() []error {
	var errs []error
	for _, err := range v {
		if err.Err != nil {
			errs = append(errs, err.Err)
		}
	}
	return errs
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Single wraps one failure as ValidationErrors.
func Single(field, message string, err error) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message, Err: err}}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// CharLength counts characters, not bytes.
func CharLength(s string) int {
	return utf8.RuneCountInString(s)
}

// IsValidUUID accepts only version 7 identifiers, which is what both storage drivers issue.
func IsValidUUID(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return parsed.Version() == 7 && len(id) == 36
}

// IsUUID accepts any RFC 4122 identifier in its canonical 36-character form.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidMonth parses "YYYY-MM".
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse("2006-01", monthStr)
	return month, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}
