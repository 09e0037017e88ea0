package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
)

// openYesterday checks the employee in on the fixture's current day and
// moves the clock to the morning of the following day, leaving a stale
// record behind.
func openYesterday(t *testing.T, f *fixture, breakToo bool) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	if breakToo {
		f.clock.Advance(4 * time.Hour)
		_, err = f.svc.StartBreak(ctx, attendance.BreakRequest{EmployeeID: "emp-1"})
		require.NoError(t, err)
		f.clock.Advance(20 * time.Hour)
	} else {
		f.clock.Advance(24 * time.Hour)
	}
}

func TestReconcile_ClosesStaleRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openYesterday(t, f, false)

	result, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)

	assert.True(t, result.Reconciled)
	assert.Equal(t, "2024-03-15", result.PreviousDate)
	assert.Equal(t, string(attendance.StatusCheckedIn), result.PreviousStatus)
	// 09:00 check-in to 22:00 synthetic checkout.
	assert.Equal(t, 780, result.TotalWorkMinutes)

	record, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, attendance.StatusCheckedOut, record.Status)
	assert.True(t, record.AutoCheckout)
	require.NotNil(t, record.AutoCheckoutReason)
	require.NotNil(t, record.AutoCheckoutAt)
	require.NotNil(t, record.CheckOutTime)
	assert.Equal(t, 22, record.CheckOutTime.Hour())
	require.NotNil(t, record.CheckOutLocation)
	assert.Equal(t, attendance.LocationNotCaptured, *record.CheckOutLocation)
}

func TestReconcile_ClosesOpenBreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openYesterday(t, f, true)

	result, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)

	assert.True(t, result.Reconciled)
	assert.Equal(t, string(attendance.StatusOnBreak), result.PreviousStatus)

	record, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, record)

	require.Len(t, record.Breaks, 1)
	assert.False(t, record.Breaks[0].Open())
	// Break 13:00 to the 22:00 synthetic checkout is 540 minutes; work is
	// the remaining 240.
	assert.Equal(t, 540, record.TotalBreakMinutes)
	assert.Equal(t, 240, record.TotalWorkMinutes)
}

func TestReconcile_NoStaleRecord(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Reconcile(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.False(t, result.Reconciled)
}

func TestReconcile_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openYesterday(t, f, false)

	first, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, first.Reconciled)

	second, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, second.Reconciled)

	// Only one hourly evaluation happened.
	entries, err := f.penaltySvc.ListByEmployee(ctx,
		"emp-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(entries), 1)
}

func TestReconcile_SkipsTerminalDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	f.clock.Advance(8 * time.Hour)
	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)
	f.clock.Advance(16 * time.Hour)

	result, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)
	assert.False(t, result.Reconciled)
}

func TestReconcile_EvaluatesPenaltyOnSyntheticClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Checked in at 09:00 and left on break from 13:00 on: only 240
	// minutes of work survive, well short of the 480 standard.
	openYesterday(t, f, true)

	result, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)
	require.True(t, result.Reconciled)

	entries, err := f.penaltySvc.ListByEmployee(ctx,
		"emp-1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(penalty.TypeHourly), entries[0].Type)
}

func TestSweepStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openYesterday(t, f, false)

	closed, err := f.svc.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	record, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, attendance.StatusCheckedOut, record.Status)
	assert.True(t, record.AutoCheckout)
}

func TestSweepStale_NothingToDo(t *testing.T) {
	f := newFixture(t)

	closed, err := f.svc.SweepStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}

func TestSweepStale_AfterReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	openYesterday(t, f, false)

	_, err := f.svc.Reconcile(ctx, "emp-1")
	require.NoError(t, err)

	closed, err := f.svc.SweepStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, closed)
}
