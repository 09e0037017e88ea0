package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn        = errors.New("you have already checked in today")
	ErrAttendanceAlreadyExists = errors.New("attendance already recorded for today")

	// Transition errors
	ErrInvalidTransition = errors.New("action is not allowed in the current attendance state")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrBreakNotOpen      = errors.New("no break is currently open")
	ErrBreakAlreadyOpen  = errors.New("a break is already open")
	ErrRecordFinalized   = errors.New("attendance record is already finalized for the day")
	ErrNotOnLeave        = errors.New("attendance record is not a leave record")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
