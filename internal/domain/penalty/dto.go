package penalty

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/validator"
)

// ========================================
// PENALTY DTOs
// ========================================

type ManualPenaltyRequest struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	AppliedBy  string          `json:"-"`
}

func (r *ManualPenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RemovePenaltyRequest struct {
	PenaltyID string `json:"-"`
	Reason    string `json:"reason"`
	RemovedBy string `json:"-"`
}

func (r *RemovePenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PenaltyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "penalty_id",
			Message: "penalty_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkRemoveRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`  // daily removal: the day itself
	Month      string `json:"month"` // monthly removal: "YYYY-MM"
	Reason     string `json:"reason"`
	RemovedBy  string `json:"-"`
}

func (r *BulkRemoveRequest) ValidateDaily() (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return date, nil
}

func (r *BulkRemoveRequest) ValidateMonthly() (time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	month, err := time.Parse("2006-01", r.Month)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return month, nil
}

type UpdatePolicyRequest struct {
	HourlyPenaltyRate              *decimal.Decimal `json:"hourly_penalty_rate,omitempty"`
	LeavePenaltyRate               *decimal.Decimal `json:"leave_penalty_rate,omitempty"`
	LateArrivalThresholdMinutes    *int             `json:"late_arrival_threshold_minutes,omitempty"`
	EarlyDepartureThresholdMinutes *int             `json:"early_departure_threshold_minutes,omitempty"`
	ExpectedCheckIn                *string          `json:"expected_check_in,omitempty"`
	ExpectedCheckOut               *string          `json:"expected_check_out,omitempty"`
	StandardWorkMinutes            *int             `json:"standard_work_minutes,omitempty"`
	PaidLeavesPerMonth             *int             `json:"paid_leaves_per_month,omitempty"`
	WeekendPenaltyEnabled          *bool            `json:"weekend_penalty_enabled,omitempty"`
	AutoApplyPenalties             *bool            `json:"auto_apply_penalties,omitempty"`
	UpdatedBy                      string           `json:"-"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HourlyPenaltyRate != nil && r.HourlyPenaltyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_penalty_rate",
			Message: "hourly_penalty_rate must not be negative",
		})
	}
	if r.LeavePenaltyRate != nil && r.LeavePenaltyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_penalty_rate",
			Message: "leave_penalty_rate must not be negative",
		})
	}
	if r.LateArrivalThresholdMinutes != nil && *r.LateArrivalThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_arrival_threshold_minutes",
			Message: "late_arrival_threshold_minutes must not be negative",
		})
	}
	if r.EarlyDepartureThresholdMinutes != nil && *r.EarlyDepartureThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "early_departure_threshold_minutes",
			Message: "early_departure_threshold_minutes must not be negative",
		})
	}
	if r.ExpectedCheckIn != nil && !validator.IsValidClock(*r.ExpectedCheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_check_in",
			Message: "expected_check_in must be in HH:MM format",
		})
	}
	if r.ExpectedCheckOut != nil && !validator.IsValidClock(*r.ExpectedCheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_check_out",
			Message: "expected_check_out must be in HH:MM format",
		})
	}
	if r.StandardWorkMinutes != nil && *r.StandardWorkMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_minutes",
			Message: "standard_work_minutes must be greater than zero",
		})
	}
	if r.PaidLeavesPerMonth != nil && *r.PaidLeavesPerMonth < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_leaves_per_month",
			Message: "paid_leaves_per_month must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// RESPONSES
// ========================================

type EntryResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	Date               string          `json:"date"`
	Type               string          `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	Reason             string          `json:"reason"`
	LinkedAttendanceID *string         `json:"linked_attendance_id,omitempty"`
	AppliedBy          string          `json:"applied_by"`
	AppliedAt          string          `json:"applied_at"`
	Status             string          `json:"status"`
	RemovedBy          *string         `json:"removed_by,omitempty"`
	RemovedAt          *string         `json:"removed_at,omitempty"`
	RemovedReason      *string         `json:"removed_reason,omitempty"`
}

type PolicyResponse struct {
	HourlyPenaltyRate              decimal.Decimal `json:"hourly_penalty_rate"`
	LeavePenaltyRate               decimal.Decimal `json:"leave_penalty_rate"`
	LateArrivalThresholdMinutes    int             `json:"late_arrival_threshold_minutes"`
	EarlyDepartureThresholdMinutes int             `json:"early_departure_threshold_minutes"`
	ExpectedCheckIn                string          `json:"expected_check_in"`
	ExpectedCheckOut               string          `json:"expected_check_out"`
	StandardWorkMinutes            int             `json:"standard_work_minutes"`
	PaidLeavesPerMonth             int             `json:"paid_leaves_per_month"`
	WeekendPenaltyEnabled          bool            `json:"weekend_penalty_enabled"`
	AutoApplyPenalties             bool            `json:"auto_apply_penalties"`
}

type TotalResponse struct {
	EmployeeID string          `json:"employee_id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Total      decimal.Decimal `json:"total"`
}

type SalaryResponse struct {
	EmployeeID     string          `json:"employee_id"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	TotalPenalties decimal.Decimal `json:"total_penalties"`
	NetSalary      decimal.Decimal `json:"net_salary"`
}

type BulkRemoveResponse struct {
	RemovedCount int `json:"removed_count"`
}
