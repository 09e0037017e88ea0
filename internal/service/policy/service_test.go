package policy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/repository/memory"
)

func TestGetSettings_DefaultsWhenUnconfigured(t *testing.T) {
	svc := NewPolicyService(memory.NewPolicyRepository())

	settings, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.True(t, settings.HourlyPenaltyRate.Equal(decimal.NewFromInt(100)))
	assert.True(t, settings.LeavePenaltyRate.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 480, settings.StandardWorkMinutes)
	assert.Equal(t, 2, settings.PaidLeavesPerMonth)
	assert.False(t, settings.WeekendPenaltyEnabled)
	assert.True(t, settings.AutoApplyPenalties)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	repo := memory.NewPolicyRepository()
	svc := NewPolicyService(repo)
	ctx := context.Background()

	rate := decimal.NewFromInt(150)
	quota := 3
	updated, err := svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{
		HourlyPenaltyRate:  &rate,
		PaidLeavesPerMonth: &quota,
		UpdatedBy:          "admin-1",
	})
	require.NoError(t, err)

	assert.True(t, updated.HourlyPenaltyRate.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 3, updated.PaidLeavesPerMonth)
	// Untouched fields keep their defaults.
	assert.Equal(t, "09:00", updated.ExpectedCheckIn)
	assert.Equal(t, 480, updated.StandardWorkMinutes)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.UpdatedBy)
	assert.Equal(t, "admin-1", *stored.UpdatedBy)
}

func TestUpdateSettings_SecondUpdateKeepsEarlierChanges(t *testing.T) {
	svc := NewPolicyService(memory.NewPolicyRepository())
	ctx := context.Background()

	rate := decimal.NewFromInt(150)
	_, err := svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{HourlyPenaltyRate: &rate, UpdatedBy: "admin-1"})
	require.NoError(t, err)

	clockIn := "08:30"
	updated, err := svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{ExpectedCheckIn: &clockIn, UpdatedBy: "admin-1"})
	require.NoError(t, err)

	assert.True(t, updated.HourlyPenaltyRate.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "08:30", updated.ExpectedCheckIn)
}

func TestUpdateSettings_RejectsInvalidValues(t *testing.T) {
	svc := NewPolicyService(memory.NewPolicyRepository())
	ctx := context.Background()

	negative := decimal.NewFromInt(-5)
	_, err := svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{HourlyPenaltyRate: &negative})
	require.Error(t, err)

	badClock := "25:00"
	_, err = svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{ExpectedCheckIn: &badClock})
	require.Error(t, err)

	zeroDay := 0
	_, err = svc.UpdateSettings(ctx, penalty.UpdatePolicyRequest{StandardWorkMinutes: &zeroDay})
	require.Error(t, err)
}
