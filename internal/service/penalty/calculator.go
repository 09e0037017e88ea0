package penalty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

var sixty = decimal.NewFromInt(60)

// Calculator derives candidate penalty charges from closed attendance
// records. All methods are pure: the active policy is passed in as a
// value, never read from shared state.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// HourlyCharge holds the outcome of the hourly shortfall rule.
type HourlyCharge struct {
	ShortfallMinutes   int
	LateExcessMinutes  int
	EarlyExcessMinutes int
	ChargeableMinutes  int
	Amount             decimal.Decimal
	Reason             string
}

// HourlyPenalty evaluates the hourly rule against a CHECKED_OUT record.
// Returns (nil, nil) when nothing is chargeable.
func (c *Calculator) HourlyPenalty(record attendance.Record, policy penalty.Policy) (*HourlyCharge, error) {
	if record.Status != attendance.StatusCheckedOut {
		return nil, nil
	}

	// Sunday is the weekly off; shortfalls there are exempt unless the
	// policy explicitly charges weekends.
	if timeutil.IsSunday(record.Date) && !policy.WeekendPenaltyEnabled {
		return nil, nil
	}

	charge := HourlyCharge{}

	shortfall := policy.StandardWorkMinutes - record.TotalWorkMinutes
	if shortfall > 0 {
		charge.ShortfallMinutes = shortfall
	}

	expectedIn, err := timeutil.ClockMinutes(policy.ExpectedCheckIn)
	if err != nil {
		return nil, fmt.Errorf("policy expected_check_in: %w", err)
	}
	expectedOut, err := timeutil.ClockMinutes(policy.ExpectedCheckOut)
	if err != nil {
		return nil, fmt.Errorf("policy expected_check_out: %w", err)
	}

	if record.CheckInTime != nil {
		late := timeutil.MinuteOfDay(*record.CheckInTime) - expectedIn
		if late > policy.LateArrivalThresholdMinutes {
			charge.LateExcessMinutes = late - policy.LateArrivalThresholdMinutes
		}
	}

	if record.CheckOutTime != nil {
		early := expectedOut - timeutil.MinuteOfDay(*record.CheckOutTime)
		if early > policy.EarlyDepartureThresholdMinutes {
			charge.EarlyExcessMinutes = early - policy.EarlyDepartureThresholdMinutes
		}
	}

	charge.ChargeableMinutes = charge.ShortfallMinutes + charge.LateExcessMinutes + charge.EarlyExcessMinutes
	charge.Amount = decimal.NewFromInt(int64(charge.ChargeableMinutes)).
		Div(sixty).
		Mul(policy.HourlyPenaltyRate).
		Round(2)

	if !charge.Amount.IsPositive() {
		return nil, nil
	}

	charge.Reason = hourlyReason(charge)
	return &charge, nil
}

func hourlyReason(charge HourlyCharge) string {
	reason := fmt.Sprintf("Hourly penalty: %d chargeable minutes", charge.ChargeableMinutes)
	if charge.ShortfallMinutes > 0 {
		reason += fmt.Sprintf(", work shortfall %d min", charge.ShortfallMinutes)
	}
	if charge.LateExcessMinutes > 0 {
		reason += fmt.Sprintf(", late arrival %d min beyond grace", charge.LateExcessMinutes)
	}
	if charge.EarlyExcessMinutes > 0 {
		reason += fmt.Sprintf(", early departure %d min beyond grace", charge.EarlyExcessMinutes)
	}
	return reason
}

// LeavePenalty evaluates the leave quota rule. priorLeavesThisMonth is the
// count of ON_LEAVE days in the record's calendar month excluding the
// record's own date. Returns (nil, nil) while the leave falls inside the
// paid quota.
func (c *Calculator) LeavePenalty(record attendance.Record, priorLeavesThisMonth int, policy penalty.Policy) (*decimal.Decimal, string) {
	if record.Status != attendance.StatusOnLeave {
		return nil, ""
	}

	if priorLeavesThisMonth < policy.PaidLeavesPerMonth {
		return nil, ""
	}

	amount := policy.LeavePenaltyRate
	if !amount.IsPositive() {
		return nil, ""
	}

	reason := fmt.Sprintf("Leave penalty: paid quota of %d leave(s) for the month exhausted (%d already taken)",
		policy.PaidLeavesPerMonth, priorLeavesThisMonth)
	return &amount, reason
}
