package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies how a penalty entry came to exist.
type Type string

const (
	TypeHourly Type = "HOURLY"
	TypeLeave  Type = "LEAVE"
	TypeManual Type = "MANUAL"
)

// EntryStatus is the entry lifecycle. Entries are never hard-deleted;
// removal is a status transition that preserves the audit trail.
type EntryStatus string

const (
	StatusActive  EntryStatus = "ACTIVE"
	StatusRemoved EntryStatus = "REMOVED"
)

// Entry is one charged (or later removed) monetary penalty tied to an
// employee and date. Multiple entries may exist for the same day.
type Entry struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	Type               Type
	Amount             decimal.Decimal
	Reason             string
	LinkedAttendanceID *string
	AppliedBy          string
	AppliedAt          time.Time
	Status             EntryStatus
	RemovedBy          *string
	RemovedAt          *time.Time
	RemovedReason      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
