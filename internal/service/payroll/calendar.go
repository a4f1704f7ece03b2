package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
)

// Period is one calendar month resolved against an employee's schedule.
type Period struct {
	Year         int
	Month        int
	From         time.Time // first day, 00:00 UTC
	To           time.Time // last day, 00:00 UTC
	WorkingDates []time.Time
}

// TotalWorkingDays is never zero for a resolved period.
func (p Period) TotalWorkingDays() int {
	return len(p.WorkingDates)
}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return validator.ValidationErrors{{Field: "period_month", Message: "must be between 1 and 12"}}
	}
	return nil
}

// WorkingDays counts the days of the month whose weekday is not a weekly-off day.
func WorkingDays(year, month int, weeklyOff []time.Weekday) (int, error) {
	if err := checkMonth(month); err != nil {
		return 0, err
	}
	off := make(map[time.Weekday]bool, len(weeklyOff))
	for _, d := range weeklyOff {
		off[d] = true
	}
	if len(off) >= 7 {
		return 0, fmt.Errorf("%w: weekly off days cover the whole week", schedule.ErrInvalidSchedule)
	}

	count := 0
	for day := firstOfMonth(year, month); int(day.Month()) == month; day = day.AddDate(0, 0, 1) {
		if !off[day.Weekday()] {
			count++
		}
	}
	return count, nil
}

// ResolveMonth validates the schedule and lists the month's working dates.
func ResolveMonth(year, month int, sched schedule.WorkSchedule) (Period, error) {
	if err := checkMonth(month); err != nil {
		return Period{}, err
	}
	if err := sched.Validate(); err != nil {
		return Period{}, err
	}

	first := firstOfMonth(year, month)
	p := Period{
		Year:  year,
		Month: month,
		From:  first,
		To:    first.AddDate(0, 1, -1),
	}
	for day := first; !day.After(p.To); day = day.AddDate(0, 0, 1) {
		if !sched.IsOff(day.Weekday()) {
			p.WorkingDates = append(p.WorkingDates, day)
		}
	}
	// unreachable with a valid schedule, every weekday occurs at least four times a month
	if len(p.WorkingDates) == 0 {
		return Period{}, fmt.Errorf("%w: no working days in %04d-%02d", schedule.ErrInvalidSchedule, year, month)
	}
	return p, nil
}

func firstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
