package penalty

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Policy is the per-tenant configuration driving penalty evaluation. It is
// loaded once per calculation call and passed in as a value; changing it
// never recomputes past penalties.
type Policy struct {
	ID                             string
	HourlyPenaltyRate              decimal.Decimal
	LeavePenaltyRate               decimal.Decimal
	LateArrivalThresholdMinutes    int
	EarlyDepartureThresholdMinutes int
	ExpectedCheckIn                string // "HH:MM"
	ExpectedCheckOut               string // "HH:MM"
	StandardWorkMinutes            int
	PaidLeavesPerMonth             int
	WeekendPenaltyEnabled          bool // weekend = Sunday only
	AutoApplyPenalties             bool
	UpdatedBy                      *string
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// DefaultPolicy is the documented fallback used when no policy row is
// configured: 8h standard day, 15-minute grace on both ends, 2 paid
// leaves/month, Sunday exempt.
func DefaultPolicy() Policy {
	return Policy{
		HourlyPenaltyRate:              decimal.NewFromInt(100),
		LeavePenaltyRate:               decimal.NewFromInt(500),
		LateArrivalThresholdMinutes:    15,
		EarlyDepartureThresholdMinutes: 15,
		ExpectedCheckIn:                "09:00",
		ExpectedCheckOut:               "17:00",
		StandardWorkMinutes:            480,
		PaidLeavesPerMonth:             2,
		WeekendPenaltyEnabled:          false,
		AutoApplyPenalties:             true,
	}
}

// PolicyRepository persists the single active policy row.
type PolicyRepository interface {
	// Get returns the active policy, or (nil, nil) when none is configured.
	Get(ctx context.Context) (*Policy, error)

	// Upsert replaces the active policy in place.
	Upsert(ctx context.Context, policy Policy) (Policy, error)
}

// PolicyService exposes penalty settings read/write. Privilege checks are
// enforced at the router.
type PolicyService interface {
	GetSettings(ctx context.Context) (PolicyResponse, error)
	UpdateSettings(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
}
