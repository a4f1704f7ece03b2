package leave

import "time"

// Record is a leave request covering an inclusive date range.
type Record struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Status     RequestStatus
}

type RequestStatus string

const (
	StatusWaitingApproval RequestStatus = "waiting_approval"
	StatusApproved        RequestStatus = "approved"
	StatusRejected        RequestStatus = "rejected"
	StatusCancelled       RequestStatus = "cancelled"
)

func (r Record) IsApproved() bool {
	return r.Status == StatusApproved
}

// Covers reports whether the civil date falls inside the leave range.
func (r Record) Covers(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(r.StartDate)) && !d.After(truncateDay(r.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
