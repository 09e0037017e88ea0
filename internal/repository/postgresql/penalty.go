package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alipatel16/patel-enterprise-backoffice/internal/domain/penalty"
	"github.com/alipatel16/patel-enterprise-backoffice/internal/pkg/database"
)

type penaltyRepository struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) penalty.Repository {
	return &penaltyRepository{db: db}
}

const penaltyColumns = `
	id, employee_id, date, type, amount, reason, linked_attendance_id,
	applied_by, applied_at, status, removed_by, removed_at, removed_reason,
	created_at, updated_at`

// Create implements penalty.Repository.
func (p *penaltyRepository) Create(ctx context.Context, entry penalty.Entry) (penalty.Entry, error) {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO penalty_entries (
			id, employee_id, date, type, amount, reason, linked_attendance_id,
			applied_by, applied_at, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.Date,
		entry.Type,
		entry.Amount,
		entry.Reason,
		entry.LinkedAttendanceID,
		entry.AppliedBy,
		entry.AppliedAt,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return penalty.Entry{}, fmt.Errorf("failed to create penalty entry: %w", err)
	}

	return entry, nil
}

// GetByID implements penalty.Repository.
func (p *penaltyRepository) GetByID(ctx context.Context, id string) (penalty.Entry, error) {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + penaltyColumns + `
		FROM penalty_entries
		WHERE id = $1
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return penalty.Entry{}, penalty.ErrPenaltyNotFound
		}
		return penalty.Entry{}, fmt.Errorf("failed to get penalty entry: %w", err)
	}

	return entry, nil
}

// Update implements penalty.Repository.
func (p *penaltyRepository) Update(ctx context.Context, entry penalty.Entry) error {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE penalty_entries SET
			status = $2,
			removed_by = $3,
			removed_at = $4,
			removed_reason = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		entry.ID,
		entry.Status,
		entry.RemovedBy,
		entry.RemovedAt,
		entry.RemovedReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update penalty entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return penalty.ErrPenaltyNotFound
	}

	return nil
}

// ListByEmployee implements penalty.Repository.
func (p *penaltyRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]penalty.Entry, error) {
	return p.list(ctx, employeeID, from, to, false)
}

// ListActiveByEmployee implements penalty.Repository.
func (p *penaltyRepository) ListActiveByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]penalty.Entry, error) {
	return p.list(ctx, employeeID, from, to, true)
}

func (p *penaltyRepository) list(ctx context.Context, employeeID string, from, to time.Time, activeOnly bool) ([]penalty.Entry, error) {
	ctx, cancel := p.db.Bound(ctx)
	defer cancel()
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + penaltyColumns + `
		FROM penalty_entries
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
	`
	if activeOnly {
		query += ` AND status = 'ACTIVE'`
	}
	query += ` ORDER BY date, applied_at`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalty entries: %w", err)
	}
	defer rows.Close()

	var entries []penalty.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan penalty entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read penalty entries: %w", err)
	}

	return entries, nil
}

func scanEntry(row pgx.Row) (penalty.Entry, error) {
	var entry penalty.Entry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.Date, &entry.Type, &entry.Amount,
		&entry.Reason, &entry.LinkedAttendanceID,
		&entry.AppliedBy, &entry.AppliedAt, &entry.Status,
		&entry.RemovedBy, &entry.RemovedAt, &entry.RemovedReason,
		&entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return penalty.Entry{}, err
	}
	return entry, nil
}
