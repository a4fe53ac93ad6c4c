package stamprequest

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
)

// ========================================
// LIFECYCLE DTOs
// ========================================

type SubmitRequest struct {
	ClockEntryID       string  `json:"clock_entry_id"`
	EmployeeID         string  `json:"-"`
	ProposedInTime     *string `json:"proposed_in_time,omitempty"`
	ProposedOutTime    *string `json:"proposed_out_time,omitempty"`
	ProposedBreakStart *string `json:"proposed_break_start,omitempty"`
	ProposedBreakEnd   *string `json:"proposed_break_end,omitempty"`
	ProposedNightShift *bool   `json:"proposed_night_shift,omitempty"`
	Reason             string  `json:"reason"`
}

// Validate checks the request shape. Time and reason rules are applied by the service.
func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockEntryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_entry_id",
			Message: "clock_entry_id is required",
		})
	}

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Blank strings mean "not supplied".
	r.ProposedInTime = normalizeTime(r.ProposedInTime)
	r.ProposedOutTime = normalizeTime(r.ProposedOutTime)
	r.ProposedBreakStart = normalizeTime(r.ProposedBreakStart)
	r.ProposedBreakEnd = normalizeTime(r.ProposedBreakEnd)

	if r.ProposedInTime == nil && r.ProposedOutTime == nil &&
		r.ProposedBreakStart == nil && r.ProposedBreakEnd == nil &&
		r.ProposedNightShift == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "proposed",
			Message: "at least one proposed value is required",
			Err:     ErrEmptyCorrection,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveRequest struct {
	RequestID    string  `json:"-"`
	ApproverID   string  `json:"-"`
	ApprovalNote *string `json:"approval_note,omitempty"`
}

type RejectRequest struct {
	RequestID       string `json:"-"`
	ApproverID      string `json:"-"`
	RejectionReason string `json:"rejection_reason"`
}

type CancelRequest struct {
	RequestID  string `json:"-"`
	EmployeeID string `json:"-"`
	Reason     string `json:"reason"`
}

// Outcome is the result of a successful mutation together with the logical
// resources it changed. Callers use Affected to refresh caches and views.
type Outcome struct {
	Request  StampRequest
	Affected Resources
}

// ========================================
// BULK DTOs
// ========================================

type BulkApproveRequest struct {
	RequestIDs   []string `json:"request_ids"`
	ApprovalNote *string  `json:"approval_note,omitempty"`
	ApproverID   string   `json:"-"`
}

func (r *BulkApproveRequest) Validate(maxIDs int) error {
	return validateRequestIDs(r.RequestIDs, maxIDs)
}

type BulkRejectRequest struct {
	RequestIDs      []string `json:"request_ids"`
	RejectionReason string   `json:"rejection_reason"`
	ApproverID      string   `json:"-"`
}

func (r *BulkRejectRequest) Validate(maxIDs int) error {
	return validateRequestIDs(r.RequestIDs, maxIDs)
}

func validateRequestIDs(ids []string, maxIDs int) error {
	var errs validator.ValidationErrors

	if len(ids) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "request_ids",
			Message: "request_ids must not be empty",
			Err:     ErrEmptyRequestIDs,
		})
	}
	if maxIDs > 0 && len(ids) > maxIDs {
		errs = append(errs, validator.ValidationError{
			Field:   "request_ids",
			Message: fmt.Sprintf("request_ids must not exceed %d items", maxIDs),
			Err:     ErrTooManyRequestIDs,
		})
	}
	for i, id := range ids {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("request_ids[%d]", i),
				Message: "request id must not be empty",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OperationResult struct {
	ID           string  `json:"id"`
	Success      bool    `json:"success"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

type BulkOperationResult struct {
	SuccessCount int               `json:"success_count"`
	FailureCount int               `json:"failure_count"`
	Results      []OperationResult `json:"results"`

	// Outcomes holds the successful transitions for propagation.
	Outcomes []Outcome `json:"-"`
}

// ========================================
// LIST DTOs
// ========================================

type ListFilter struct {
	Status *string `json:"status,omitempty"`
	Search *string `json:"search,omitempty"`

	// Pagination
	Page     int `json:"page"`
	PageSize int `json:"page_size"`

	// Sorting
	SortBy    string `json:"sort_by"`    // submitted_at, date, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Page size validation
	if f.PageSize < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must be a positive number",
		})
	}
	if f.PageSize == 0 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "page_size",
			Message: "page_size must not exceed 100",
		})
	}

	if f.Status != nil {
		upper := strings.ToUpper(*f.Status)
		f.Status = &upper
		if !validator.IsInSlice(upper, AllStatuses()) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(AllStatuses(), ", "),
			})
		}
	}

	if f.Search != nil && validator.IsEmpty(*f.Search) {
		f.Search = nil
	}

	if f.SortBy != "" {
		validSortFields := []string{"submitted_at", "date", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: submitted_at, date, status",
			})
		}
	} else {
		f.SortBy = "submitted_at"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StampRequestResponse struct {
	ID                 string     `json:"id"`
	ClockEntryID       string     `json:"clock_entry_id"`
	ClockEntryDate     *string    `json:"clock_entry_date,omitempty"`
	EmployeeID         string     `json:"employee_id"`
	Status             string     `json:"status"`
	Reason             string     `json:"reason"`
	ProposedInTime     *string    `json:"proposed_in_time,omitempty"`
	ProposedOutTime    *string    `json:"proposed_out_time,omitempty"`
	ProposedBreakStart *string    `json:"proposed_break_start,omitempty"`
	ProposedBreakEnd   *string    `json:"proposed_break_end,omitempty"`
	ProposedNightShift *bool      `json:"proposed_night_shift,omitempty"`
	ApprovalNote       *string    `json:"approval_note,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	ResolvedBy         *string    `json:"resolved_by,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
	SubmittedAt        time.Time  `json:"submitted_at"`
}

func ToResponse(r StampRequest) StampRequestResponse {
	resp := StampRequestResponse{
		ID:                 r.ID,
		ClockEntryID:       r.ClockEntryID,
		EmployeeID:         r.EmployeeID,
		Status:             string(r.Status),
		Reason:             r.Reason,
		ProposedInTime:     r.ProposedInTime,
		ProposedOutTime:    r.ProposedOutTime,
		ProposedBreakStart: r.ProposedBreakStart,
		ProposedBreakEnd:   r.ProposedBreakEnd,
		ProposedNightShift: r.ProposedNightShift,
		ApprovalNote:       r.ApprovalNote,
		RejectionReason:    r.RejectionReason,
		CancellationReason: r.CancellationReason,
		ResolvedBy:         r.ResolvedBy,
		ResolvedAt:         r.ResolvedAt,
		SubmittedAt:        r.SubmittedAt,
	}
	if r.ClockEntryDate != nil {
		date := r.ClockEntryDate.Format("2006-01-02")
		resp.ClockEntryDate = &date
	}
	return resp
}

type ListStampRequestResponse struct {
	Requests   []StampRequestResponse `json:"requests"`
	TotalCount int64                  `json:"total_count"`
	PageNumber int                    `json:"page_number"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
	Showing    string                 `json:"showing"`
}

func normalizeTime(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
