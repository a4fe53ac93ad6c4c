package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type StampRequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	BulkReject(w http.ResponseWriter, r *http.Request)
}

type StampRequestHandlerImpl struct {
	stampRequestService stamprequest.StampRequestService
	propagator          stamprequest.Propagator
}

func NewStampRequestHandler(stampRequestService stamprequest.StampRequestService, propagator stamprequest.Propagator) StampRequestHandler {
	return &StampRequestHandlerImpl{
		stampRequestService: stampRequestService,
		propagator:          propagator,
	}
}

// decodeBody decodes a JSON body. An empty body is allowed when optional is set.
func decodeBody(r *http.Request, dst any, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Create implements StampRequestHandler.
func (h *StampRequestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.SubmitRequest
	if err := decodeBody(r, &req, false); err != nil {
		slog.Error("Create stamp request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	// The submitter is always the token holder.
	req.EmployeeID = caller.EmployeeID

	outcome, err := h.stampRequestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagator.Propagate(r.Context(), outcome)

	response.Created(w, "Stamp request submitted successfully", stamprequest.ToResponse(outcome.Request))
}

// ListMine implements StampRequestHandler.
func (h *StampRequestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	list, err := h.stampRequestService.ListMine(r.Context(), caller.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Get implements StampRequestHandler.
func (h *StampRequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	resp, err := h.stampRequestService.Get(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Cancel implements StampRequestHandler.
func (h *StampRequestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.CancelRequest
	if err := decodeBody(r, &req, false); err != nil {
		slog.Error("Cancel stamp request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.EmployeeID = caller.EmployeeID

	outcome, err := h.stampRequestService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagator.Propagate(r.Context(), outcome)

	response.SuccessWithMessage(w, "Stamp request cancelled successfully", stamprequest.ToResponse(outcome.Request))
}

// ListPending implements StampRequestHandler.
func (h *StampRequestHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseListFilter(w, r)
	if !ok {
		return
	}

	list, err := h.stampRequestService.ListPending(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// Approve implements StampRequestHandler.
func (h *StampRequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.ApproveRequest
	if err := decodeBody(r, &req, true); err != nil {
		slog.Error("Approve stamp request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = caller.EmployeeID

	outcome, err := h.stampRequestService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagator.Propagate(r.Context(), outcome)

	response.SuccessWithMessage(w, "Stamp request approved successfully", stamprequest.ToResponse(outcome.Request))
}

// Reject implements StampRequestHandler.
func (h *StampRequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.RejectRequest
	if err := decodeBody(r, &req, false); err != nil {
		slog.Error("Reject stamp request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = caller.EmployeeID

	outcome, err := h.stampRequestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagator.Propagate(r.Context(), outcome)

	response.SuccessWithMessage(w, "Stamp request rejected successfully", stamprequest.ToResponse(outcome.Request))
}

// BulkApprove implements StampRequestHandler.
func (h *StampRequestHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.BulkApproveRequest
	if err := decodeBody(r, &req, false); err != nil {
		slog.Error("BulkApprove decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApproverID = caller.EmployeeID

	result, err := h.stampRequestService.BulkApprove(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagateAll(r, result)

	response.Success(w, result)
}

// BulkReject implements StampRequestHandler.
func (h *StampRequestHandlerImpl) BulkReject(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req stamprequest.BulkRejectRequest
	if err := decodeBody(r, &req, false); err != nil {
		slog.Error("BulkReject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ApproverID = caller.EmployeeID

	result, err := h.stampRequestService.BulkReject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.propagateAll(r, result)

	response.Success(w, result)
}

func (h *StampRequestHandlerImpl) propagateAll(r *http.Request, result stamprequest.BulkOperationResult) {
	for _, outcome := range result.Outcomes {
		h.propagator.Propagate(r.Context(), outcome)
	}
}

// parseListFilter reads the list query parameters. It writes a 400 and
// returns false when a numeric parameter is malformed.
func parseListFilter(w http.ResponseWriter, r *http.Request) (stamprequest.ListFilter, bool) {
	query := r.URL.Query()
	filter := stamprequest.ListFilter{
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}

	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if search := query.Get("search"); search != "" {
		filter.Search = &search
	}

	for name, dst := range map[string]*int{"page": &filter.Page, "page_size": &filter.PageSize} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid query parameter", map[string]string{name: name + " must be an integer"})
			return filter, false
		}
		*dst = n
	}

	return filter, true
}
