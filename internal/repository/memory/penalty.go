package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

// PenaltyRepository is an in-memory penalty.Repository.
type PenaltyRepository struct {
	mu      sync.RWMutex
	entries map[string]penalty.Entry
}

func NewPenaltyRepository() *PenaltyRepository {
	return &PenaltyRepository{entries: make(map[string]penalty.Entry)}
}

var _ penalty.Repository = (*PenaltyRepository)(nil)

func (r *PenaltyRepository) Create(_ context.Context, entry penalty.Entry) (penalty.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *PenaltyRepository) GetByID(_ context.Context, id string) (penalty.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return penalty.Entry{}, penalty.ErrPenaltyNotFound
	}
	return entry, nil
}

func (r *PenaltyRepository) Update(_ context.Context, entry penalty.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[entry.ID]
	if !ok {
		return penalty.ErrPenaltyNotFound
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = entry
	return nil
}

func (r *PenaltyRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]penalty.Entry, error) {
	return r.list(employeeID, from, to, false), nil
}

func (r *PenaltyRepository) ListActiveByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]penalty.Entry, error) {
	return r.list(employeeID, from, to, true), nil
}

func (r *PenaltyRepository) list(employeeID string, from, to time.Time, activeOnly bool) []penalty.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []penalty.Entry
	for _, entry := range r.entries {
		if entry.EmployeeID != employeeID {
			continue
		}
		if activeOnly && entry.Status != penalty.StatusActive {
			continue
		}
		if entry.Date.Before(timeutil.DateOf(from)) || entry.Date.After(timeutil.DateOf(to)) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
