package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// WorkSchedule is the weekly working pattern an employee is assigned to.
type WorkSchedule struct {
	CheckInTime  string // HH:MM
	CheckOutTime string // HH:MM
	DailyHours   decimal.Decimal
	WeeklyOff    []time.Weekday
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English day names, case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, name)
	}
	return day, nil
}

// ParseWeeklyOff converts stored day names into weekdays, dropping duplicates.
func ParseWeeklyOff(names []string) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(names))
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days, nil
}

// WeeklyOffNames is the inverse of ParseWeeklyOff.
func WeeklyOffNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, strings.ToLower(d.String()))
	}
	return names
}

// IsOff reports whether the weekday is a weekly-off day in this schedule.
func (s WorkSchedule) IsOff(day time.Weekday) bool {
	for _, d := range s.WeeklyOff {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks that the schedule leaves at least one working weekday and
// has a positive number of scheduled hours per day.
func (s WorkSchedule) Validate() error {
	off := make(map[time.Weekday]bool, len(s.WeeklyOff))
	for _, d := range s.WeeklyOff {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidSchedule, int(d))
		}
		off[d] = true
	}
	if len(off) >= 7 {
		return fmt.Errorf("%w: weekly off days cover the whole week", ErrInvalidSchedule)
	}
	if !s.DailyHours.IsPositive() {
		return fmt.Errorf("%w: daily hours must be greater than zero", ErrInvalidSchedule)
	}
	return nil
}
