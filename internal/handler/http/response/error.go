package response

import (
	"errors"
	"net/http"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/employee"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAttendanceAlreadyExists):
		Conflict(w, "Attendance already recorded for today")
	case errors.Is(err, attendance.ErrInvalidTransition):
		UnprocessableEntity(w, "Action not allowed in the current attendance state")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		UnprocessableEntity(w, "Not checked in today")
	case errors.Is(err, attendance.ErrBreakNotOpen):
		UnprocessableEntity(w, "No break in progress")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		UnprocessableEntity(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrRecordFinalized):
		UnprocessableEntity(w, "Attendance record is already finalized")
	case errors.Is(err, attendance.ErrNotOnLeave):
		UnprocessableEntity(w, "No leave recorded for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Penalty domain errors
	case errors.Is(err, penalty.ErrPenaltyNotFound):
		NotFound(w, "Penalty entry not found")
	case errors.Is(err, penalty.ErrAlreadyRemoved):
		Conflict(w, "Penalty entry already removed")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
