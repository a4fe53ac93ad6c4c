package http

import (
	"net/http"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/clockentry"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/response"
)

type ClockEntryHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
}

type ClockEntryHandlerImpl struct {
	clockEntryService clockentry.ClockEntryService
}

func NewClockEntryHandler(clockEntryService clockentry.ClockEntryService) ClockEntryHandler {
	return &ClockEntryHandlerImpl{clockEntryService: clockEntryService}
}

// ListMine implements ClockEntryHandler.
func (h *ClockEntryHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	entries, err := h.clockEntryService.ListMonth(r.Context(), clockentry.ListMonthRequest{
		EmployeeID: caller.EmployeeID,
		Month:      r.URL.Query().Get("month"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
