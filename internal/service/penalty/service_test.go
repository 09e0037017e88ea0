package penalty

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/clock"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/repository/memory"
)

type serviceFixture struct {
	svc            penalty.Service
	penaltyRepo    *memory.PenaltyRepository
	policyRepo     *memory.PolicyRepository
	attendanceRepo *memory.AttendanceRepository
	clock          *clock.Fixed
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	penaltyRepo := memory.NewPenaltyRepository()
	policyRepo := memory.NewPolicyRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	clk := &clock.Fixed{Instant: time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)}

	return &serviceFixture{
		svc:            NewPenaltyService(penaltyRepo, policyRepo, attendanceRepo, clk),
		penaltyRepo:    penaltyRepo,
		policyRepo:     policyRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
	}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func (f *serviceFixture) seedLeave(t *testing.T, employeeID, date string) {
	t.Helper()
	leaveType := "CASUAL"
	reason := "personal"
	_, err := f.attendanceRepo.Create(context.Background(), attendance.Record{
		EmployeeID:  employeeID,
		Date:        day(t, date),
		Status:      attendance.StatusOnLeave,
		LeaveType:   &leaveType,
		LeaveReason: &reason,
	})
	require.NoError(t, err)
}

func TestEvaluateRecord_HourlyShortfallCreatesEntry(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	record := checkedOutRecord(t, "2024-03-15", "09:00", "16:00", 420)
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, string(penalty.TypeHourly), entries[0].Type)
	assert.Equal(t, "2024-03-15", entries[0].Date)
	assert.Equal(t, SystemActor, entries[0].AppliedBy)
	require.NotNil(t, entries[0].LinkedAttendanceID)
	assert.Equal(t, record.ID, *entries[0].LinkedAttendanceID)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(175)))
}

func TestEvaluateRecord_NoChargeNoEntry(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	record := checkedOutRecord(t, "2024-03-15", "09:00", "17:00", 480)
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEvaluateRecord_AutoApplyDisabled(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	policy := penalty.DefaultPolicy()
	policy.AutoApplyPenalties = false
	_, err := f.policyRepo.Upsert(ctx, policy)
	require.NoError(t, err)

	record := checkedOutRecord(t, "2024-03-15", "09:00", "16:00", 420)
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEvaluateRecord_ThirdLeaveOfMonthCharged(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.seedLeave(t, "emp-1", "2024-03-04")
	f.seedLeave(t, "emp-1", "2024-03-08")

	leaveType := "SICK"
	reason := "fever"
	record := attendance.Record{
		ID:          "rec-leave-3",
		EmployeeID:  "emp-1",
		Date:        day(t, "2024-03-15"),
		Status:      attendance.StatusOnLeave,
		LeaveType:   &leaveType,
		LeaveReason: &reason,
	}
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(penalty.TypeLeave), entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestEvaluateRecord_SecondLeaveOfMonthFree(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.seedLeave(t, "emp-1", "2024-03-04")

	leaveType := "SICK"
	reason := "fever"
	record := attendance.Record{
		EmployeeID:  "emp-1",
		Date:        day(t, "2024-03-15"),
		Status:      attendance.StatusOnLeave,
		LeaveType:   &leaveType,
		LeaveReason: &reason,
	}
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEvaluateRecord_LeaveQuotaIgnoresOtherMonths(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	// Exhausted quota in February; March starts fresh.
	f.seedLeave(t, "emp-1", "2024-02-05")
	f.seedLeave(t, "emp-1", "2024-02-12")
	f.seedLeave(t, "emp-1", "2024-02-20")

	leaveType := "CASUAL"
	reason := "errand"
	record := attendance.Record{
		EmployeeID:  "emp-1",
		Date:        day(t, "2024-03-15"),
		Status:      attendance.StatusOnLeave,
		LeaveType:   &leaveType,
		LeaveReason: &reason,
	}
	require.NoError(t, f.svc.EvaluateRecord(ctx, record))

	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplyManual(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	entry, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-10",
		Amount:     decimal.NewFromInt(250),
		Reason:     "Till shortage",
		AppliedBy:  "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, string(penalty.TypeManual), entry.Type)
	assert.Equal(t, "admin-1", entry.AppliedBy)
	assert.Equal(t, string(penalty.StatusActive), entry.Status)
}

func TestApplyManual_RejectsNonPositiveAmount(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.ApplyManual(context.Background(), penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-10",
		Amount:     decimal.Zero,
		Reason:     "Till shortage",
		AppliedBy:  "admin-1",
	})
	require.Error(t, err)
}

func TestRemove_PreservesRow(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-10",
		Amount:     decimal.NewFromInt(250),
		Reason:     "Till shortage",
		AppliedBy:  "admin-1",
	})
	require.NoError(t, err)

	removed, err := f.svc.Remove(ctx, penalty.RemovePenaltyRequest{
		PenaltyID: created.ID,
		Reason:    "Waived after review",
		RemovedBy: "admin-2",
	})
	require.NoError(t, err)

	assert.Equal(t, string(penalty.StatusRemoved), removed.Status)
	require.NotNil(t, removed.RemovedBy)
	assert.Equal(t, "admin-2", *removed.RemovedBy)
	require.NotNil(t, removed.RemovedReason)
	assert.Equal(t, "Waived after review", *removed.RemovedReason)

	// The row survives with its original amount.
	entries, err := f.svc.ListByEmployee(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(250)))
}

func TestRemove_AlreadyRemoved(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-10",
		Amount:     decimal.NewFromInt(250),
		Reason:     "Till shortage",
		AppliedBy:  "admin-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Remove(ctx, penalty.RemovePenaltyRequest{
		PenaltyID: created.ID,
		Reason:    "Waived",
		RemovedBy: "admin-2",
	})
	require.NoError(t, err)

	_, err = f.svc.Remove(ctx, penalty.RemovePenaltyRequest{
		PenaltyID: created.ID,
		Reason:    "Waived again",
		RemovedBy: "admin-2",
	})
	assert.ErrorIs(t, err, penalty.ErrAlreadyRemoved)
}

func TestRemoveDaily(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, req := range []penalty.ManualPenaltyRequest{
		{EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(100), Reason: "a", AppliedBy: "admin-1"},
		{EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(200), Reason: "b", AppliedBy: "admin-1"},
		{EmployeeID: "emp-1", Date: "2024-03-11", Amount: decimal.NewFromInt(300), Reason: "c", AppliedBy: "admin-1"},
	} {
		_, err := f.svc.ApplyManual(ctx, req)
		require.NoError(t, err)
	}

	result, err := f.svc.RemoveDaily(ctx, penalty.BulkRemoveRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-10",
		Reason:     "System outage that day",
		RemovedBy:  "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemovedCount)

	total, err := f.svc.TotalActive(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(300)), "got %s", total)
}

func TestRemoveMonthly(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, req := range []penalty.ManualPenaltyRequest{
		{EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(100), Reason: "a", AppliedBy: "admin-1"},
		{EmployeeID: "emp-1", Date: "2024-03-31", Amount: decimal.NewFromInt(200), Reason: "b", AppliedBy: "admin-1"},
		{EmployeeID: "emp-1", Date: "2024-04-01", Amount: decimal.NewFromInt(300), Reason: "c", AppliedBy: "admin-1"},
	} {
		_, err := f.svc.ApplyManual(ctx, req)
		require.NoError(t, err)
	}

	result, err := f.svc.RemoveMonthly(ctx, penalty.BulkRemoveRequest{
		EmployeeID: "emp-1",
		Month:      "2024-03",
		Reason:     "Goodwill waiver",
		RemovedBy:  "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemovedCount)

	total, err := f.svc.TotalActive(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-04-30"))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(300)), "got %s", total)
}

func TestTotalActive_ExcludesRemoved(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(100), Reason: "a", AppliedBy: "admin-1",
	})
	require.NoError(t, err)
	_, err = f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1", Date: "2024-03-11", Amount: decimal.NewFromInt(200), Reason: "b", AppliedBy: "admin-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Remove(ctx, penalty.RemovePenaltyRequest{
		PenaltyID: first.ID, Reason: "Waived", RemovedBy: "admin-1",
	})
	require.NoError(t, err)

	total, err := f.svc.TotalActive(ctx, "emp-1", day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(200)), "got %s", total)
}

func TestFinalSalary(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(1750), Reason: "a", AppliedBy: "admin-1",
	})
	require.NoError(t, err)

	salary, err := f.svc.FinalSalary(ctx, "emp-1", decimal.NewFromInt(30000), day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)

	assert.True(t, salary.TotalPenalties.Equal(decimal.NewFromInt(1750)))
	assert.True(t, salary.NetSalary.Equal(decimal.NewFromInt(28250)), "got %s", salary.NetSalary)
}

func TestFinalSalary_FlooredAtZero(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyManual(ctx, penalty.ManualPenaltyRequest{
		EmployeeID: "emp-1", Date: "2024-03-10", Amount: decimal.NewFromInt(5000), Reason: "a", AppliedBy: "admin-1",
	})
	require.NoError(t, err)

	salary, err := f.svc.FinalSalary(ctx, "emp-1", decimal.NewFromInt(3000), day(t, "2024-03-01"), day(t, "2024-03-31"))
	require.NoError(t, err)
	assert.True(t, salary.NetSalary.IsZero())
}
