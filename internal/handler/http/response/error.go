package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Stamp request domain errors
	case errors.Is(err, stamprequest.ErrStampRequestNotFound):
		NotFound(w, "Stamp request not found")
	case errors.Is(err, stamprequest.ErrInvalidTransition):
		Conflict(w, "Stamp request is no longer pending")
	case errors.Is(err, stamprequest.ErrAlreadyHasActiveRequest):
		Conflict(w, "Clock entry already has a pending stamp request")
	case errors.Is(err, stamprequest.ErrNotOwner):
		Forbidden(w, "Stamp request belongs to another employee")

	// Clock entry domain errors
	case errors.Is(err, clockentry.ErrClockEntryNotFound):
		NotFound(w, "Clock entry not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
