package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines read access to imported attendance records.
type AttendanceRepository interface {
	// ListByEmployeeAndRange returns records whose date falls in [from, to], ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
