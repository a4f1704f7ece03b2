package attendance

import "errors"

var (
	ErrUnknownDayStatus = errors.New("attendance record has an unknown day status")
)
