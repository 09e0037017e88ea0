package penalty

import (
	"context"
	"time"
)

// Repository is the append-mostly ledger store. Rows are only ever
// inserted or status-transitioned, never deleted.
type Repository interface {
	// Create appends a new entry and returns it with ID and timestamps set.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// GetByID returns the entry or ErrPenaltyNotFound.
	GetByID(ctx context.Context, id string) (Entry, error)

	// Update rewrites the entry identified by its ID.
	Update(ctx context.Context, entry Entry) error

	// ListByEmployee returns entries (any status) for employeeID with
	// from <= date <= to, ordered by date.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)

	// ListActiveByEmployee is ListByEmployee filtered to ACTIVE entries.
	ListActiveByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
}
