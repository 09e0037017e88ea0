package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) penalty.PolicyRepository {
	return &policyRepository{db: db}
}

// Get implements penalty.PolicyRepository. The table holds at most one row.
func (p *policyRepository) Get(ctx context.Context) (*penalty.Policy, error) {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, hourly_penalty_rate, leave_penalty_rate,
			   late_arrival_threshold_minutes, early_departure_threshold_minutes,
			   expected_check_in, expected_check_out, standard_work_minutes,
			   paid_leaves_per_month, weekend_penalty_enabled, auto_apply_penalties,
			   updated_by, created_at, updated_at
		FROM penalty_policies
		LIMIT 1
	`

	var policy penalty.Policy
	err := q.QueryRow(ctx, query).Scan(
		&policy.ID, &policy.HourlyPenaltyRate, &policy.LeavePenaltyRate,
		&policy.LateArrivalThresholdMinutes, &policy.EarlyDepartureThresholdMinutes,
		&policy.ExpectedCheckIn, &policy.ExpectedCheckOut, &policy.StandardWorkMinutes,
		&policy.PaidLeavesPerMonth, &policy.WeekendPenaltyEnabled, &policy.AutoApplyPenalties,
		&policy.UpdatedBy, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get penalty policy: %w", err)
	}

	return &policy, nil
}

// Upsert implements penalty.PolicyRepository.
func (p *policyRepository) Upsert(ctx context.Context, policy penalty.Policy) (penalty.Policy, error) {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}

	query := `
		INSERT INTO penalty_policies (
			id, hourly_penalty_rate, leave_penalty_rate,
			late_arrival_threshold_minutes, early_departure_threshold_minutes,
			expected_check_in, expected_check_out, standard_work_minutes,
			paid_leaves_per_month, weekend_penalty_enabled, auto_apply_penalties,
			updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (id) DO UPDATE SET
			hourly_penalty_rate = EXCLUDED.hourly_penalty_rate,
			leave_penalty_rate = EXCLUDED.leave_penalty_rate,
			late_arrival_threshold_minutes = EXCLUDED.late_arrival_threshold_minutes,
			early_departure_threshold_minutes = EXCLUDED.early_departure_threshold_minutes,
			expected_check_in = EXCLUDED.expected_check_in,
			expected_check_out = EXCLUDED.expected_check_out,
			standard_work_minutes = EXCLUDED.standard_work_minutes,
			paid_leaves_per_month = EXCLUDED.paid_leaves_per_month,
			weekend_penalty_enabled = EXCLUDED.weekend_penalty_enabled,
			auto_apply_penalties = EXCLUDED.auto_apply_penalties,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.ID,
		policy.HourlyPenaltyRate,
		policy.LeavePenaltyRate,
		policy.LateArrivalThresholdMinutes,
		policy.EarlyDepartureThresholdMinutes,
		policy.ExpectedCheckIn,
		policy.ExpectedCheckOut,
		policy.StandardWorkMinutes,
		policy.PaidLeavesPerMonth,
		policy.WeekendPenaltyEnabled,
		policy.AutoApplyPenalties,
		policy.UpdatedBy,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)

	if err != nil {
		return penalty.Policy{}, fmt.Errorf("failed to upsert penalty policy: %w", err)
	}

	return policy, nil
}
