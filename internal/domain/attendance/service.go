package attendance

import (
	"context"
)

// Service defines business logic for the attendance lifecycle
type Service interface {
	// CheckIn opens the day's record for an employee
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the day's record and triggers penalty evaluation
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// StartBreak opens a break on a checked-in record
	StartBreak(ctx context.Context, req BreakRequest) (RecordResponse, error)

	// EndBreak closes the open break and recomputes break totals
	EndBreak(ctx context.Context, req BreakRequest) (RecordResponse, error)

	// MarkLeave records the day as leave; legal only before any attendance activity
	MarkLeave(ctx context.Context, req MarkLeaveRequest) (RecordResponse, error)

	// EditLeave updates leave type/reason in place without re-evaluating penalties
	EditLeave(ctx context.Context, req EditLeaveRequest) (RecordResponse, error)

	// Reconcile force-closes a stale record left open from a prior day
	Reconcile(ctx context.Context, employeeID string) (ReconcileResponse, error)

	// GetToday returns today's record for an employee, if any
	GetToday(ctx context.Context, employeeID string) (*RecordResponse, error)

	// GetRange returns records within an inclusive date range
	GetRange(ctx context.Context, employeeID string, filter RangeFilter) ([]RecordResponse, error)
}
