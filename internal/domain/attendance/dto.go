package attendance

import (
	"time"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/validator"
)

// LeaveTypes is the accepted set of leave categories.
var LeaveTypes = []string{"SICK", "CASUAL", "PERSONAL", "OTHER"}

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	PhotoURL   *string `json:"photo_url,omitempty"`
	Location   *string `json:"location,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Location   *string `json:"location,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *BreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkLeaveRequest struct {
	EmployeeID  string `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	LeaveReason string `json:"leave_reason"`
}

func (r *MarkLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.LeaveType, LeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of SICK, CASUAL, PERSONAL, OTHER",
		})
	}

	if validator.IsEmpty(r.LeaveReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_reason",
			Message: "leave_reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EditLeaveRequest struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveType   *string `json:"leave_type,omitempty"`
	LeaveReason *string `json:"leave_reason,omitempty"`
}

func (r *EditLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.LeaveType == nil && r.LeaveReason == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "at least one of leave_type or leave_reason must be provided",
		})
	}

	if r.LeaveType != nil && !validator.IsInSlice(*r.LeaveType, LeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of SICK, CASUAL, PERSONAL, OTHER",
		})
	}

	if r.LeaveReason != nil && validator.IsEmpty(*r.LeaveReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_reason",
			Message: "leave_reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RangeFilter struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (f *RangeFilter) Validate() (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	from, ok := validator.IsValidDate(f.From)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a date in YYYY-MM-DD format",
		})
	}
	to, ok = validator.IsValidDate(f.To)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a date in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
}

type RecordResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       string          `json:"employee_name"`
	Date               string          `json:"date"`
	Status             string          `json:"status"`
	CheckInTime        *string         `json:"check_in_time,omitempty"`
	CheckOutTime       *string         `json:"check_out_time,omitempty"`
	Breaks             []BreakResponse `json:"breaks,omitempty"`
	TotalBreakMinutes  int             `json:"total_break_minutes"`
	TotalWorkMinutes   int             `json:"total_work_minutes"`
	LeaveType          *string         `json:"leave_type,omitempty"`
	LeaveReason        *string         `json:"leave_reason,omitempty"`
	AutoCheckout       bool            `json:"auto_checkout"`
	AutoCheckoutReason *string         `json:"auto_checkout_reason,omitempty"`
}

// ReconcileResponse is the one-time notice surfaced to the employee after
// a stale prior-day record was force-closed.
type ReconcileResponse struct {
	Reconciled       bool   `json:"reconciled"`
	PreviousDate     string `json:"previous_date,omitempty"`
	PreviousStatus   string `json:"previous_status,omitempty"`
	TotalWorkMinutes int    `json:"total_work_minutes,omitempty"`
}
