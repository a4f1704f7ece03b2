package schedule

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid work schedule")
)
