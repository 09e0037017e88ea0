package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

// AttendanceRepository is an in-memory attendance.Repository used by
// service tests and local development.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record // keyed by ID
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]attendance.Record)}
}

var _ attendance.Repository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = cloneRecord(record)
	return record, nil
}

func (r *AttendanceRepository) Update(_ context.Context, record attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[record.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()
	r.records[record.ID] = cloneRecord(record)
	return nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.EmployeeID == employeeID && timeutil.SameDay(record.Date, date) {
			clone := cloneRecord(record)
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepository) GetRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, record := range r.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(timeutil.DateOf(from)) || record.Date.After(timeutil.DateOf(to)) {
			continue
		}
		out = append(out, cloneRecord(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepository) ListOpenBefore(_ context.Context, date time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, record := range r.records {
		if record.Status.Terminal() {
			continue
		}
		if record.Date.Before(timeutil.DateOf(date)) {
			out = append(out, cloneRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *AttendanceRepository) CountLeaveDays(_ context.Context, employeeID string, from, to, exclude time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, record := range r.records {
		if record.EmployeeID != employeeID || record.Status != attendance.StatusOnLeave {
			continue
		}
		if timeutil.SameDay(record.Date, exclude) {
			continue
		}
		if !record.Date.Before(timeutil.DateOf(from)) && record.Date.Before(timeutil.DateOf(to)) {
			count++
		}
	}
	return count, nil
}

func cloneRecord(record attendance.Record) attendance.Record {
	clone := record
	clone.Breaks = make([]attendance.Break, len(record.Breaks))
	copy(clone.Breaks, record.Breaks)
	return clone
}
