package leave

import (
	"context"
	"time"
)

// LeaveRepository - read access to leave_requests for payroll
type LeaveRepository interface {
	// ListApprovedByEmployeeAndRange returns approved leave overlapping [from, to].
	ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
