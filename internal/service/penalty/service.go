package penalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/clock"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

// SystemActor is recorded as AppliedBy on rule-derived entries.
const SystemActor = "system"

// LeaveCounter is the monthly leave aggregate. Kept behind an interface so
// a future implementation can maintain a running counter without touching
// calculation logic; the default is the attendance repository's full-month
// scan, recomputed per leave event.
type LeaveCounter interface {
	CountLeaveDays(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error)
}

type ServiceImpl struct {
	penaltyRepo  penalty.Repository
	policyRepo   penalty.PolicyRepository
	leaveCounter LeaveCounter
	calculator   *Calculator
	clock        clock.Clock
}

func NewPenaltyService(
	penaltyRepo penalty.Repository,
	policyRepo penalty.PolicyRepository,
	leaveCounter LeaveCounter,
	clk clock.Clock,
) penalty.Service {
	return &ServiceImpl{
		penaltyRepo:  penaltyRepo,
		policyRepo:   policyRepo,
		leaveCounter: leaveCounter,
		calculator:   NewCalculator(),
		clock:        clk,
	}
}

// loadPolicy returns the configured policy or the documented defaults.
// A missing policy row is never an error.
func (s *ServiceImpl) loadPolicy(ctx context.Context) (penalty.Policy, error) {
	p, err := s.policyRepo.Get(ctx)
	if err != nil {
		return penalty.Policy{}, fmt.Errorf("failed to load penalty policy: %w", err)
	}
	if p == nil {
		return penalty.DefaultPolicy(), nil
	}
	return *p, nil
}

// EvaluateRecord implements penalty.Evaluator. It runs whenever a record
// transitions into a terminal state and is a no-op when auto-apply is off.
func (s *ServiceImpl) EvaluateRecord(ctx context.Context, record attendance.Record) error {
	if !record.Status.Terminal() {
		return nil
	}

	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return err
	}
	if !policy.AutoApplyPenalties {
		return nil
	}

	switch record.Status {
	case attendance.StatusCheckedOut:
		return s.evaluateHourly(ctx, record, policy)
	case attendance.StatusOnLeave:
		return s.evaluateLeave(ctx, record, policy)
	}
	return nil
}

func (s *ServiceImpl) evaluateHourly(ctx context.Context, record attendance.Record, policy penalty.Policy) error {
	charge, err := s.calculator.HourlyPenalty(record, policy)
	if err != nil {
		return err
	}
	if charge == nil {
		return nil
	}

	entry := penalty.Entry{
		ID:                 uuid.NewString(),
		EmployeeID:         record.EmployeeID,
		Date:               record.Date,
		Type:               penalty.TypeHourly,
		Amount:             charge.Amount,
		Reason:             charge.Reason,
		LinkedAttendanceID: &record.ID,
		AppliedBy:          SystemActor,
		AppliedAt:          s.clock.Now(),
		Status:             penalty.StatusActive,
	}
	if _, err := s.penaltyRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record hourly penalty: %w", err)
	}

	slog.Info("Hourly penalty applied",
		"employee_id", record.EmployeeID,
		"date", record.Date.Format("2006-01-02"),
		"chargeable_minutes", charge.ChargeableMinutes,
		"amount", charge.Amount.String())
	return nil
}

func (s *ServiceImpl) evaluateLeave(ctx context.Context, record attendance.Record, policy penalty.Policy) error {
	monthStart, monthEnd := timeutil.MonthBounds(record.Date)
	prior, err := s.leaveCounter.CountLeaveDays(ctx, record.EmployeeID, monthStart, monthEnd, record.Date)
	if err != nil {
		return fmt.Errorf("failed to count leave days: %w", err)
	}

	amount, reason := s.calculator.LeavePenalty(record, prior, policy)
	if amount == nil {
		return nil
	}

	entry := penalty.Entry{
		ID:                 uuid.NewString(),
		EmployeeID:         record.EmployeeID,
		Date:               record.Date,
		Type:               penalty.TypeLeave,
		Amount:             *amount,
		Reason:             reason,
		LinkedAttendanceID: &record.ID,
		AppliedBy:          SystemActor,
		AppliedAt:          s.clock.Now(),
		Status:             penalty.StatusActive,
	}
	if _, err := s.penaltyRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record leave penalty: %w", err)
	}

	slog.Info("Leave penalty applied",
		"employee_id", record.EmployeeID,
		"date", record.Date.Format("2006-01-02"),
		"prior_leaves", prior,
		"amount", amount.String())
	return nil
}

// ApplyManual implements penalty.Service.
func (s *ServiceImpl) ApplyManual(ctx context.Context, req penalty.ManualPenaltyRequest) (penalty.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.EntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	entry := penalty.Entry{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Type:       penalty.TypeManual,
		Amount:     req.Amount,
		Reason:     req.Reason,
		AppliedBy:  req.AppliedBy,
		AppliedAt:  s.clock.Now(),
		Status:     penalty.StatusActive,
	}

	created, err := s.penaltyRepo.Create(ctx, entry)
	if err != nil {
		return penalty.EntryResponse{}, fmt.Errorf("failed to create manual penalty: %w", err)
	}

	return mapEntryToResponse(created), nil
}

// Remove implements penalty.Service. The row is preserved; only the
// lifecycle and removal audit fields change.
func (s *ServiceImpl) Remove(ctx context.Context, req penalty.RemovePenaltyRequest) (penalty.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.EntryResponse{}, err
	}

	entry, err := s.penaltyRepo.GetByID(ctx, req.PenaltyID)
	if err != nil {
		if errors.Is(err, penalty.ErrPenaltyNotFound) {
			return penalty.EntryResponse{}, penalty.ErrPenaltyNotFound
		}
		return penalty.EntryResponse{}, fmt.Errorf("failed to get penalty: %w", err)
	}

	if entry.Status != penalty.StatusActive {
		return penalty.EntryResponse{}, penalty.ErrAlreadyRemoved
	}

	now := s.clock.Now()
	entry.Status = penalty.StatusRemoved
	entry.RemovedBy = &req.RemovedBy
	entry.RemovedAt = &now
	entry.RemovedReason = &req.Reason

	if err := s.penaltyRepo.Update(ctx, entry); err != nil {
		return penalty.EntryResponse{}, fmt.Errorf("failed to remove penalty: %w", err)
	}

	return mapEntryToResponse(entry), nil
}

// RemoveDaily implements penalty.Service.
func (s *ServiceImpl) RemoveDaily(ctx context.Context, req penalty.BulkRemoveRequest) (penalty.BulkRemoveResponse, error) {
	date, err := req.ValidateDaily()
	if err != nil {
		return penalty.BulkRemoveResponse{}, err
	}
	return s.removeRange(ctx, req.EmployeeID, date, date, req.RemovedBy, req.Reason)
}

// RemoveMonthly implements penalty.Service.
func (s *ServiceImpl) RemoveMonthly(ctx context.Context, req penalty.BulkRemoveRequest) (penalty.BulkRemoveResponse, error) {
	month, err := req.ValidateMonthly()
	if err != nil {
		return penalty.BulkRemoveResponse{}, err
	}
	from, to := timeutil.MonthBounds(month)
	// Repository ranges are inclusive on both ends.
	return s.removeRange(ctx, req.EmployeeID, from, to.AddDate(0, 0, -1), req.RemovedBy, req.Reason)
}

// removeRange applies the removal transition to every matching active
// entry. Each entry keeps its own audit trail.
func (s *ServiceImpl) removeRange(ctx context.Context, employeeID string, from, to time.Time, removedBy, reason string) (penalty.BulkRemoveResponse, error) {
	entries, err := s.penaltyRepo.ListActiveByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return penalty.BulkRemoveResponse{}, fmt.Errorf("failed to list active penalties: %w", err)
	}

	now := s.clock.Now()
	removed := 0
	for _, entry := range entries {
		entry.Status = penalty.StatusRemoved
		entry.RemovedBy = &removedBy
		entry.RemovedAt = &now
		entry.RemovedReason = &reason
		if err := s.penaltyRepo.Update(ctx, entry); err != nil {
			return penalty.BulkRemoveResponse{}, fmt.Errorf("failed to remove penalty %s: %w", entry.ID, err)
		}
		removed++
	}

	return penalty.BulkRemoveResponse{RemovedCount: removed}, nil
}

// ListByEmployee implements penalty.Service.
func (s *ServiceImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]penalty.EntryResponse, error) {
	entries, err := s.penaltyRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}

	responses := make([]penalty.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapEntryToResponse(entry))
	}
	return responses, nil
}

// TotalActive implements penalty.Service.
func (s *ServiceImpl) TotalActive(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	entries, err := s.penaltyRepo.ListActiveByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list active penalties: %w", err)
	}

	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total, nil
}

// FinalSalary implements penalty.Service.
func (s *ServiceImpl) FinalSalary(ctx context.Context, employeeID string, baseSalary decimal.Decimal, from, to time.Time) (penalty.SalaryResponse, error) {
	total, err := s.TotalActive(ctx, employeeID, from, to)
	if err != nil {
		return penalty.SalaryResponse{}, err
	}

	net := baseSalary.Sub(total)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return penalty.SalaryResponse{
		EmployeeID:     employeeID,
		BaseSalary:     baseSalary,
		TotalPenalties: total,
		NetSalary:      net,
	}, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapEntryToResponse converts an Entry to EntryResponse
func mapEntryToResponse(entry penalty.Entry) penalty.EntryResponse {
	return penalty.EntryResponse{
		ID:                 entry.ID,
		EmployeeID:         entry.EmployeeID,
		Date:               entry.Date.Format("2006-01-02"),
		Type:               string(entry.Type),
		Amount:             entry.Amount,
		Reason:             entry.Reason,
		LinkedAttendanceID: entry.LinkedAttendanceID,
		AppliedBy:          entry.AppliedBy,
		AppliedAt:          entry.AppliedAt.Format("2006-01-02 15:04:05"),
		Status:             string(entry.Status),
		RemovedBy:          entry.RemovedBy,
		RemovedAt:          timePtrToString(entry.RemovedAt),
		RemovedReason:      entry.RemovedReason,
	}
}
