package attendance

import (
	"context"
	"time"
)

// Repository is the persistence contract for attendance records. The core
// only needs lookup by (employee, date), range queries and per-key updates;
// it never requires joins or multi-record transactions.
type Repository interface {
	// Create persists a new record and returns it with ID and timestamps set.
	Create(ctx context.Context, record Record) (Record, error)

	// Update rewrites the record identified by its ID.
	Update(ctx context.Context, record Record) error

	// GetByEmployeeAndDate returns the record for the given day, or
	// (nil, nil) when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// GetRange returns records for employeeID with from <= date <= to,
	// ordered by date.
	GetRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListOpenBefore returns every record dated strictly before date whose
	// status is still non-terminal. Used by the reconciliation sweep.
	ListOpenBefore(ctx context.Context, date time.Time) ([]Record, error)

	// CountLeaveDays counts ON_LEAVE records for employeeID in
	// [from, to), excluding the record dated exclude. Recomputed per call
	// so retroactive edits to history stay consistent.
	CountLeaveDays(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error)
}
