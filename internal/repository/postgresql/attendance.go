package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/attendhq/payroll-engine-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListForRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, check_in, check_out,
			   late_minutes, early_leave_minutes, created_at, updated_at
		FROM attendance_records
		WHERE company_id = $1 AND employee_id = $2
		  AND check_in BETWEEN $3 AND $4
		ORDER BY check_in
	`

	rows, err := q.Query(ctx, query, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.CheckIn, &rec.CheckOut,
			&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) CountApprovedLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(LEAST(end_date, $4::date) - GREATEST(start_date, $3::date) + 1), 0)
		FROM leave_requests
		WHERE company_id = $1 AND employee_id = $2
		  AND status = 'approved'
		  AND start_date <= $4::date AND end_date >= $3::date
	`

	var days int
	if err := q.QueryRow(ctx, query, companyID, employeeID, from, to).Scan(&days); err != nil {
		return 0, fmt.Errorf("failed to count approved leave days: %w", err)
	}

	return days, nil
}
