package attendance

import (
	"time"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

// Status is the closed set of attendance states for one (employee, day).
type Status string

const (
	StatusNotCheckedIn Status = "NOT_CHECKED_IN"
	StatusCheckedIn    Status = "CHECKED_IN"
	StatusOnBreak      Status = "ON_BREAK"
	StatusCheckedOut   Status = "CHECKED_OUT"
	StatusOnLeave      Status = "ON_LEAVE"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusNotCheckedIn, StatusCheckedIn, StatusOnBreak, StatusCheckedOut, StatusOnLeave:
		return true
	}
	return false
}

// Terminal reports whether s ends the day. Terminal records are immutable
// except for reconciliation's one-time auto-close of a prior day.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusOnLeave
}

// LocationNotCaptured marks checkouts performed without a device location,
// i.e. the synthetic checkout written by reconciliation.
const LocationNotCaptured = "NOT_CAPTURED"

type Break struct {
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// Open reports whether the break has not been ended yet.
func (b Break) Open() bool {
	return b.EndTime == nil
}

// Record is the single per-employee-per-day attendance state object.
type Record struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Date         time.Time
	Status       Status

	CheckInTime  *time.Time
	CheckOutTime *time.Time

	Breaks            []Break
	TotalBreakMinutes int
	TotalWorkMinutes  int

	LeaveType   *string
	LeaveReason *string

	CheckInPhotoURL  *string
	CheckInLocation  *string
	CheckOutLocation *string

	AutoCheckout       bool
	AutoCheckoutReason *string
	AutoCheckoutAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpenBreak returns the index of the single open break, or -1. At most one
// break may be open at a time.
func (r *Record) OpenBreak() int {
	for i := range r.Breaks {
		if r.Breaks[i].Open() {
			return i
		}
	}
	return -1
}

// CloseBreak ends the open break at t and updates its duration.
func (r *Record) CloseBreak(t time.Time) {
	i := r.OpenBreak()
	if i < 0 {
		return
	}
	end := t
	duration := timeutil.MinutesBetween(r.Breaks[i].StartTime, end)
	r.Breaks[i].EndTime = &end
	r.Breaks[i].DurationMinutes = &duration
}

// RecomputeTotals rederives TotalBreakMinutes and TotalWorkMinutes from
// the break list and checkOut. Invariants: break durations sum to the
// break total, and work time never goes negative.
func (r *Record) RecomputeTotals(checkOut time.Time) {
	total := 0
	for _, b := range r.Breaks {
		if b.DurationMinutes != nil {
			total += *b.DurationMinutes
		}
	}
	r.TotalBreakMinutes = total

	if r.CheckInTime == nil {
		r.TotalWorkMinutes = 0
		return
	}
	elapsed := timeutil.MinutesBetween(*r.CheckInTime, checkOut)
	work := elapsed - total
	if work < 0 {
		work = 0
	}
	r.TotalWorkMinutes = work
}
