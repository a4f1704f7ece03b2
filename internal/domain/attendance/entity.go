package attendance

import (
	"time"
)

// Record is one employee's attendance for one calendar date.
type Record struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	Status      DayStatus
	WorkMinutes int
}

// DayStatus is the classification derived when the attendance was imported.
type DayStatus string

const (
	DayStatusPresent            DayStatus = "present"
	DayStatusAbsent             DayStatus = "absent"
	DayStatusHalfDay            DayStatus = "half_day"
	DayStatusLate               DayStatus = "late"
	DayStatusEarlyDeparture     DayStatus = "early_departure"
	DayStatusLateEarlyDeparture DayStatus = "late_early_departure"
)

var DayStatusValues = []string{
	string(DayStatusPresent),
	string(DayStatusAbsent),
	string(DayStatusHalfDay),
	string(DayStatusLate),
	string(DayStatusEarlyDeparture),
	string(DayStatusLateEarlyDeparture),
}

func (s DayStatus) IsValid() bool {
	switch s {
	case DayStatusPresent, DayStatusAbsent, DayStatusHalfDay, DayStatusLate,
		DayStatusEarlyDeparture, DayStatusLateEarlyDeparture:
		return true
	}
	return false
}
