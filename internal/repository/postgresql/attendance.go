package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/attendance"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, employee_name, date, status,
	check_in_time, check_out_time, breaks,
	total_break_minutes, total_work_minutes,
	leave_type, leave_reason,
	check_in_photo_url, check_in_location, check_out_location,
	auto_checkout, auto_checkout_reason, auto_checkout_at,
	created_at, updated_at`

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := json.Marshal(record.Breaks)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to marshal breaks: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, employee_name, date, status,
			check_in_time, check_out_time, breaks,
			total_break_minutes, total_work_minutes,
			leave_type, leave_reason,
			check_in_photo_url, check_in_location, check_out_location,
			auto_checkout, auto_checkout_reason, auto_checkout_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.EmployeeName,
		record.Date,
		record.Status,
		record.CheckInTime,
		record.CheckOutTime,
		breaksJSON,
		record.TotalBreakMinutes,
		record.TotalWorkMinutes,
		record.LeaveType,
		record.LeaveReason,
		record.CheckInPhotoURL,
		record.CheckInLocation,
		record.CheckOutLocation,
		record.AutoCheckout,
		record.AutoCheckoutReason,
		record.AutoCheckoutAt,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	breaksJSON, err := json.Marshal(record.Breaks)
	if err != nil {
		return fmt.Errorf("failed to marshal breaks: %w", err)
	}

	query := `
		UPDATE attendance_records SET
			status = $2,
			check_in_time = $3,
			check_out_time = $4,
			breaks = $5,
			total_break_minutes = $6,
			total_work_minutes = $7,
			leave_type = $8,
			leave_reason = $9,
			check_out_location = $10,
			auto_checkout = $11,
			auto_checkout_reason = $12,
			auto_checkout_at = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.Status,
		record.CheckInTime,
		record.CheckOutTime,
		breaksJSON,
		record.TotalBreakMinutes,
		record.TotalWorkMinutes,
		record.LeaveType,
		record.LeaveReason,
		record.CheckOutLocation,
		record.AutoCheckout,
		record.AutoCheckoutReason,
		record.AutoCheckoutAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &record, nil
}

// GetRange implements attendance.Repository.
func (a *attendanceRepository) GetRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// ListOpenBefore implements attendance.Repository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records
		WHERE date < $1
		  AND status NOT IN ('CHECKED_OUT', 'ON_LEAVE')
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// CountLeaveDays implements attendance.Repository.
func (a *attendanceRepository) CountLeaveDays(ctx context.Context, employeeID string, from, to, exclude time.Time) (int, error) {
	ctx, cancel := a.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE employee_id = $1
		  AND status = 'ON_LEAVE'
		  AND date >= $2
		  AND date < $3
		  AND date <> $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, from, to, exclude).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leave days: %w", err)
	}

	return count, nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	var breaksJSON []byte

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.EmployeeName, &record.Date, &record.Status,
		&record.CheckInTime, &record.CheckOutTime, &breaksJSON,
		&record.TotalBreakMinutes, &record.TotalWorkMinutes,
		&record.LeaveType, &record.LeaveReason,
		&record.CheckInPhotoURL, &record.CheckInLocation, &record.CheckOutLocation,
		&record.AutoCheckout, &record.AutoCheckoutReason, &record.AutoCheckoutAt,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if len(breaksJSON) > 0 {
		if err := json.Unmarshal(breaksJSON, &record.Breaks); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to unmarshal breaks: %w", err)
		}
	}

	return record, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}
	return records, nil
}
