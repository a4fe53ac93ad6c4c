package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/attendancestats"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceStatsHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
}

type AttendanceStatsHandlerImpl struct {
	statsService attendancestats.StatsService
}

func NewAttendanceStatsHandler(statsService attendancestats.StatsService) AttendanceStatsHandler {
	return &AttendanceStatsHandlerImpl{statsService: statsService}
}

// GetMine implements AttendanceStatsHandler.
func (h *AttendanceStatsHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	h.respond(w, r, caller.EmployeeID)
}

// GetForEmployee implements AttendanceStatsHandler.
func (h *AttendanceStatsHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, chi.URLParam(r, "employeeID"))
}

func (h *AttendanceStatsHandlerImpl) respond(w http.ResponseWriter, r *http.Request, employeeID string) {
	req := attendancestats.GetMonthlyStatsRequest{EmployeeID: employeeID}

	for name, dst := range map[string]*int{"year": &req.Year, "month": &req.Month} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid query parameter", map[string]string{name: name + " must be an integer"})
			return
		}
		*dst = n
	}

	stats, err := h.statsService.GetMonthlyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
