package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

const reconcileAttempts = 3

// Reconcile implements attendance.Service. It inspects the previous day's
// record for the employee and force-closes it if it was left non-terminal.
// Reconciliation never blocks the caller's real intent: a failure is logged
// and reported as no action taken, and the synthetic close is applied at
// most once per record.
func (s *ServiceImpl) Reconcile(ctx context.Context, employeeID string) (attendance.ReconcileResponse, error) {
	_, today := s.today()
	prevDate := timeutil.PreviousDay(today)

	unlock := s.lockDay(employeeID, prevDate)
	defer unlock()

	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, prevDate)
	if err != nil {
		slog.Error("Reconciliation lookup failed",
			"employee_id", employeeID,
			"date", prevDate.Format("2006-01-02"),
			"error", err)
		return attendance.ReconcileResponse{Reconciled: false}, nil
	}
	if record == nil || record.Status.Terminal() {
		return attendance.ReconcileResponse{Reconciled: false}, nil
	}

	previousStatus := record.Status

	if err := s.closeStale(ctx, record); err != nil {
		slog.Error("Reconciliation close failed",
			"employee_id", employeeID,
			"date", prevDate.Format("2006-01-02"),
			"error", err)
		return attendance.ReconcileResponse{Reconciled: false}, nil
	}

	return attendance.ReconcileResponse{
		Reconciled:       true,
		PreviousDate:     prevDate.Format("2006-01-02"),
		PreviousStatus:   string(previousStatus),
		TotalWorkMinutes: record.TotalWorkMinutes,
	}, nil
}

// closeStale writes the synthetic checkout for a non-terminal prior-day
// record and runs penalty evaluation in the same transaction. The caller
// must hold the day lock.
func (s *ServiceImpl) closeStale(ctx context.Context, record *attendance.Record) error {
	// Compose the synthetic checkout on the record's calendar day in the
	// store timezone regardless of how the date was stored.
	day := time.Date(record.Date.Year(), record.Date.Month(), record.Date.Day(), 0, 0, 0, 0, s.opts.Location)
	syntheticCheckout, err := timeutil.At(day, s.opts.AutoCheckoutClock)
	if err != nil {
		return fmt.Errorf("invalid auto checkout clock %q: %w", s.opts.AutoCheckoutClock, err)
	}

	now := s.clock.Now().In(s.opts.Location)
	previousStatus := record.Status

	// An open break ends at the synthetic checkout instant.
	if record.Status == attendance.StatusOnBreak {
		record.CloseBreak(syntheticCheckout)
	}

	reason := fmt.Sprintf("Auto checkout: session left open in state %s", previousStatus)
	location := attendance.LocationNotCaptured

	record.CheckOutTime = &syntheticCheckout
	record.CheckOutLocation = &location
	record.Status = attendance.StatusCheckedOut
	record.AutoCheckout = true
	record.AutoCheckoutReason = &reason
	record.AutoCheckoutAt = &now
	record.RecomputeTotals(syntheticCheckout)

	return database.Retry(ctx, reconcileAttempts, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.repo.Update(ctx, *record); err != nil {
				return fmt.Errorf("failed to persist synthetic checkout: %w", err)
			}
			if err := s.evaluator.EvaluateRecord(ctx, *record); err != nil {
				return fmt.Errorf("failed to evaluate penalties: %w", err)
			}
			return nil
		})
	})
}

// SweepStale force-closes every non-terminal record dated before today.
// It is the nightly safety net behind on-demand reconciliation and returns
// the number of records closed. Per-record failures are logged and
// skipped so one bad record cannot stall the sweep.
func (s *ServiceImpl) SweepStale(ctx context.Context) (int, error) {
	_, today := s.today()

	stale, err := s.repo.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale attendance records: %w", err)
	}

	closed := 0
	for i := range stale {
		record := stale[i]

		err := func() error {
			unlock := s.lockDay(record.EmployeeID, record.Date)
			defer unlock()

			// Re-read under the lock; on-demand reconciliation may have
			// closed it already.
			current, err := s.repo.GetByEmployeeAndDate(ctx, record.EmployeeID, record.Date)
			if err != nil {
				return err
			}
			if current == nil || current.Status.Terminal() {
				return nil
			}
			if err := s.closeStale(ctx, current); err != nil {
				return err
			}
			closed++
			return nil
		}()
		if err != nil {
			slog.Error("Sweep failed to close stale record",
				"employee_id", record.EmployeeID,
				"date", record.Date.Format("2006-01-02"),
				"error", err)
		}
	}

	if closed > 0 {
		slog.Info("Stale attendance sweep completed",
			"closed", closed,
			"candidates", len(stale))
	}
	return closed, nil
}
