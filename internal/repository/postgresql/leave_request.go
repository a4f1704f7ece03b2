package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// ListApprovedByEmployeeAndRange implements leave.LeaveRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_date, end_date, status
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = $2
		  AND start_date <= $4
		  AND end_date >= $3
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, leave.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		var rec leave.Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.StartDate, &rec.EndDate, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		if rec.EndDate.Before(rec.StartDate) {
			return nil, fmt.Errorf("leave request %s: %w", rec.ID, leave.ErrInvalidLeaveRange)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave requests: %w", err)
	}

	return records, nil
}
