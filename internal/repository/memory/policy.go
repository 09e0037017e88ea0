package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
)

// PolicyRepository is an in-memory penalty.PolicyRepository holding the
// single active policy row.
type PolicyRepository struct {
	mu     sync.RWMutex
	policy *penalty.Policy
}

func NewPolicyRepository() *PolicyRepository {
	return &PolicyRepository{}
}

var _ penalty.PolicyRepository = (*PolicyRepository)(nil)

func (r *PolicyRepository) Get(_ context.Context) (*penalty.Policy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.policy == nil {
		return nil, nil
	}
	clone := *r.policy
	return &clone, nil
}

func (r *PolicyRepository) Upsert(_ context.Context, policy penalty.Policy) (penalty.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.policy == nil {
		if policy.ID == "" {
			policy.ID = uuid.NewString()
		}
		policy.CreatedAt = now
	} else {
		policy.ID = r.policy.ID
		policy.CreatedAt = r.policy.CreatedAt
	}
	policy.UpdatedAt = now
	clone := policy
	r.policy = &clone
	return policy, nil
}
