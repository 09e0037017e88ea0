package policy

import (
	"context"
	"fmt"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
)

type ServiceImpl struct {
	policyRepo penalty.PolicyRepository
}

func NewPolicyService(policyRepo penalty.PolicyRepository) penalty.PolicyService {
	return &ServiceImpl{policyRepo: policyRepo}
}

// GetSettings implements penalty.PolicyService. A missing row falls back
// to the documented defaults rather than failing.
func (s *ServiceImpl) GetSettings(ctx context.Context) (penalty.PolicyResponse, error) {
	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return penalty.PolicyResponse{}, fmt.Errorf("failed to get penalty settings: %w", err)
	}
	if p == nil {
		defaults := penalty.DefaultPolicy()
		return mapPolicyToResponse(defaults), nil
	}
	return mapPolicyToResponse(*p), nil
}

// UpdateSettings implements penalty.PolicyService. The single active row
// is replaced in place; past penalties are never recomputed.
func (s *ServiceImpl) UpdateSettings(ctx context.Context, req penalty.UpdatePolicyRequest) (penalty.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.PolicyResponse{}, err
	}

	current, err := s.policyRepo.Get(ctx)
	if err != nil {
		return penalty.PolicyResponse{}, fmt.Errorf("failed to get penalty settings: %w", err)
	}
	if current == nil {
		defaults := penalty.DefaultPolicy()
		current = &defaults
	}

	if req.HourlyPenaltyRate != nil {
		current.HourlyPenaltyRate = *req.HourlyPenaltyRate
	}
	if req.LeavePenaltyRate != nil {
		current.LeavePenaltyRate = *req.LeavePenaltyRate
	}
	if req.LateArrivalThresholdMinutes != nil {
		current.LateArrivalThresholdMinutes = *req.LateArrivalThresholdMinutes
	}
	if req.EarlyDepartureThresholdMinutes != nil {
		current.EarlyDepartureThresholdMinutes = *req.EarlyDepartureThresholdMinutes
	}
	if req.ExpectedCheckIn != nil {
		current.ExpectedCheckIn = *req.ExpectedCheckIn
	}
	if req.ExpectedCheckOut != nil {
		current.ExpectedCheckOut = *req.ExpectedCheckOut
	}
	if req.StandardWorkMinutes != nil {
		current.StandardWorkMinutes = *req.StandardWorkMinutes
	}
	if req.PaidLeavesPerMonth != nil {
		current.PaidLeavesPerMonth = *req.PaidLeavesPerMonth
	}
	if req.WeekendPenaltyEnabled != nil {
		current.WeekendPenaltyEnabled = *req.WeekendPenaltyEnabled
	}
	if req.AutoApplyPenalties != nil {
		current.AutoApplyPenalties = *req.AutoApplyPenalties
	}
	if req.UpdatedBy != "" {
		current.UpdatedBy = &req.UpdatedBy
	}

	updated, err := s.policyRepo.Upsert(ctx, *current)
	if err != nil {
		return penalty.PolicyResponse{}, fmt.Errorf("failed to update penalty settings: %w", err)
	}

	return mapPolicyToResponse(updated), nil
}

func mapPolicyToResponse(p penalty.Policy) penalty.PolicyResponse {
	return penalty.PolicyResponse{
		HourlyPenaltyRate:              p.HourlyPenaltyRate,
		LeavePenaltyRate:               p.LeavePenaltyRate,
		LateArrivalThresholdMinutes:    p.LateArrivalThresholdMinutes,
		EarlyDepartureThresholdMinutes: p.EarlyDepartureThresholdMinutes,
		ExpectedCheckIn:                p.ExpectedCheckIn,
		ExpectedCheckOut:               p.ExpectedCheckOut,
		StandardWorkMinutes:            p.StandardWorkMinutes,
		PaidLeavesPerMonth:             p.PaidLeavesPerMonth,
		WeekendPenaltyEnabled:          p.WeekendPenaltyEnabled,
		AutoApplyPenalties:             p.AutoApplyPenalties,
	}
}
