package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"validation", validator.Single("reason", "too short", stamprequest.ErrInvalidReasonLength), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"request not found", fmt.Errorf("get: %w", stamprequest.ErrStampRequestNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"entry not found", clockentry.ErrClockEntryNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not pending", stamprequest.ErrInvalidTransition, http.StatusConflict, "CONFLICT"},
		{"active request", stamprequest.ErrAlreadyHasActiveRequest, http.StatusConflict, "CONFLICT"},
		{"not owner", stamprequest.ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.Single("rejection_reason", "rejection_reason must be at least 10 characters", nil))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rejection_reason must be at least 10 characters", body.Error.Details["rejection_reason"])
}
