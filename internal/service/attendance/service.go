package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/employee"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/clock"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/keylock"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/timeutil"
)

// Options carries store-level operational settings for the service.
type Options struct {
	// Location is the store-local timezone attendance days are keyed by.
	Location *time.Location
	// AutoCheckoutClock is the synthetic checkout wall-clock ("HH:MM")
	// used when a stale record is force-closed.
	AutoCheckoutClock string
}

type ServiceImpl struct {
	tx           database.Transactor
	repo         attendance.Repository
	employeeRepo employee.Repository
	evaluator    penalty.Evaluator
	clock        clock.Clock
	locks        *keylock.KeyedMutex
	opts         Options
}

func NewAttendanceService(
	tx database.Transactor,
	repo attendance.Repository,
	employeeRepo employee.Repository,
	evaluator penalty.Evaluator,
	clk clock.Clock,
	opts Options,
) *ServiceImpl {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.AutoCheckoutClock == "" {
		opts.AutoCheckoutClock = "22:00"
	}
	return &ServiceImpl{
		tx:           tx,
		repo:         repo,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
		clock:        clk,
		locks:        keylock.New(),
		opts:         opts,
	}
}

var _ attendance.Service = (*ServiceImpl)(nil)

// lockDay serializes mutations per (employee, date).
func (s *ServiceImpl) lockDay(employeeID string, date time.Time) func() {
	return s.locks.Lock(employeeID + ":" + date.Format("2006-01-02"))
}

func (s *ServiceImpl) today() (now, date time.Time) {
	now = s.clock.Now().In(s.opts.Location)
	return now, timeutil.DateOf(now)
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	existing, err := s.repo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing != nil {
		// A record only ever exists with attendance activity on it.
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	checkIn := now
	record := attendance.Record{
		ID:              uuid.NewString(),
		EmployeeID:      req.EmployeeID,
		EmployeeName:    emp.FullName,
		Date:            date,
		Status:          attendance.StatusCheckedIn,
		CheckInTime:     &checkIn,
		CheckInPhotoURL: req.PhotoURL,
		CheckInLocation: req.Location,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return mapRecordToResponse(created), nil
}

// StartBreak implements attendance.Service.
func (s *ServiceImpl) StartBreak(ctx context.Context, req attendance.BreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	record, err := s.mustGetToday(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if record.Status == attendance.StatusOnBreak {
		return attendance.RecordResponse{}, attendance.ErrBreakAlreadyOpen
	}
	if record.Status.Terminal() {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalized
	}

	record.Breaks = append(record.Breaks, attendance.Break{StartTime: now})
	record.Status = attendance.StatusOnBreak
	record.RecomputeTotals(now)

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to start break: %w", err)
	}

	return mapRecordToResponse(*record), nil
}

// EndBreak implements attendance.Service.
func (s *ServiceImpl) EndBreak(ctx context.Context, req attendance.BreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	record, err := s.mustGetToday(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if record.Status.Terminal() {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalized
	}
	if record.Status != attendance.StatusOnBreak {
		return attendance.RecordResponse{}, attendance.ErrBreakNotOpen
	}

	record.CloseBreak(now)
	record.Status = attendance.StatusCheckedIn
	record.RecomputeTotals(now)

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	return mapRecordToResponse(*record), nil
}

// CheckOut implements attendance.Service. The record close and the
// penalty entries it produces commit together.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	record, err := s.mustGetToday(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Breaks must be ended before checkout; terminal records stay closed.
	if record.Status.Terminal() {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalized
	}
	if record.Status != attendance.StatusCheckedIn {
		return attendance.RecordResponse{}, attendance.ErrInvalidTransition
	}

	checkOut := now
	record.CheckOutTime = &checkOut
	record.CheckOutLocation = req.Location
	record.Status = attendance.StatusCheckedOut
	record.RecomputeTotals(checkOut)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, *record); err != nil {
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		if err := s.evaluator.EvaluateRecord(ctx, *record); err != nil {
			return fmt.Errorf("failed to evaluate penalties: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("Checkout failed, flagged for reconciliation",
			"employee_id", req.EmployeeID,
			"date", date.Format("2006-01-02"),
			"error", err)
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

// MarkLeave implements attendance.Service. Leave is terminal and only
// legal before any attendance activity for the day; penalty evaluation is
// a side effect of this create transition only.
func (s *ServiceImpl) MarkLeave(ctx context.Context, req attendance.MarkLeaveRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	_, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	existing, err := s.repo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAttendanceAlreadyExists
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.RecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	leaveType := req.LeaveType
	leaveReason := req.LeaveReason
	record := attendance.Record{
		ID:           uuid.NewString(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: emp.FullName,
		Date:         date,
		Status:       attendance.StatusOnLeave,
		LeaveType:    &leaveType,
		LeaveReason:  &leaveReason,
	}

	var created attendance.Record
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to create leave record: %w", err)
		}
		if err := s.evaluator.EvaluateRecord(ctx, created); err != nil {
			return fmt.Errorf("failed to evaluate penalties: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return mapRecordToResponse(created), nil
}

// EditLeave implements attendance.Service. Only the leave fields change
// and the penalty engine is never re-invoked, so edits cannot
// double-charge.
func (s *ServiceImpl) EditLeave(ctx context.Context, req attendance.EditLeaveRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	_, date := s.today()
	unlock := s.lockDay(req.EmployeeID, date)
	defer unlock()

	record, err := s.repo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if record == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}
	if record.Status != attendance.StatusOnLeave {
		return attendance.RecordResponse{}, attendance.ErrNotOnLeave
	}

	if req.LeaveType != nil {
		record.LeaveType = req.LeaveType
	}
	if req.LeaveReason != nil {
		record.LeaveReason = req.LeaveReason
	}

	if err := s.repo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to edit leave: %w", err)
	}

	return mapRecordToResponse(*record), nil
}

// GetToday implements attendance.Service.
func (s *ServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.RecordResponse, error) {
	_, date := s.today()

	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	resp := mapRecordToResponse(*record)
	return &resp, nil
}

// GetRange implements attendance.Service.
func (s *ServiceImpl) GetRange(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.RecordResponse, error) {
	from, to, err := filter.Validate()
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapRecordToResponse(record))
	}
	return responses, nil
}

// mustGetToday returns today's record or the not-checked-in error.
func (s *ServiceImpl) mustGetToday(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	record, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if record == nil {
		return nil, attendance.ErrNotCheckedIn
	}
	return record, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// mapRecordToResponse converts a Record entity to RecordResponse
func mapRecordToResponse(record attendance.Record) attendance.RecordResponse {
	breaks := make([]attendance.BreakResponse, 0, len(record.Breaks))
	for _, b := range record.Breaks {
		breaks = append(breaks, attendance.BreakResponse{
			StartTime:       b.StartTime.Format("15:04:05"),
			EndTime:         formatBreakEnd(b.EndTime),
			DurationMinutes: b.DurationMinutes,
		})
	}

	return attendance.RecordResponse{
		ID:                 record.ID,
		EmployeeID:         record.EmployeeID,
		EmployeeName:       record.EmployeeName,
		Date:               record.Date.Format("2006-01-02"),
		Status:             string(record.Status),
		CheckInTime:        timePtrToString(record.CheckInTime),
		CheckOutTime:       timePtrToString(record.CheckOutTime),
		Breaks:             breaks,
		TotalBreakMinutes:  record.TotalBreakMinutes,
		TotalWorkMinutes:   record.TotalWorkMinutes,
		LeaveType:          record.LeaveType,
		LeaveReason:        record.LeaveReason,
		AutoCheckout:       record.AutoCheckout,
		AutoCheckoutReason: record.AutoCheckoutReason,
	}
}

func formatBreakEnd(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("15:04:05")
	return &format
}
