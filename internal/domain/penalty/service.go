package penalty

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
)

// Evaluator derives candidate penalties from a closed attendance record.
// Invoked as a side effect of the record's transition into a terminal
// state, atomically with that transition.
type Evaluator interface {
	EvaluateRecord(ctx context.Context, record attendance.Record) error
}

// Service defines business logic for the penalty ledger
type Service interface {
	Evaluator

	// ApplyManual records an admin-entered penalty, bypassing rule evaluation
	ApplyManual(ctx context.Context, req ManualPenaltyRequest) (EntryResponse, error)

	// Remove transitions an ACTIVE entry to REMOVED, preserving the row
	Remove(ctx context.Context, req RemovePenaltyRequest) (EntryResponse, error)

	// RemoveDaily removes every active entry for an employee on one day
	RemoveDaily(ctx context.Context, req BulkRemoveRequest) (BulkRemoveResponse, error)

	// RemoveMonthly removes every active entry for an employee in one month
	RemoveMonthly(ctx context.Context, req BulkRemoveRequest) (BulkRemoveResponse, error)

	// ListByEmployee returns entries of any status within the range
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]EntryResponse, error)

	// TotalActive sums ACTIVE entry amounts within the range
	TotalActive(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error)

	// FinalSalary is baseSalary minus active penalties, floored at zero
	FinalSalary(ctx context.Context, employeeID string, baseSalary decimal.Decimal, from, to time.Time) (SalaryResponse, error)
}
