package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// AttendanceSummary is the month of attendance reduced to counts and minutes.
// Day counts are only filled in checkinCheckout mode.
type AttendanceSummary struct {
	WorkingDays int

	Present            int
	Absent             int // recorded absences only
	Late               int
	HalfDay            int
	EarlyDeparture     int
	LateEarlyDeparture int
	Leave              int
	Missing            int // working days with neither a record nor approved leave
	WeeklyOffWorked    int

	WorkedMinutes int
	// ExtraMinutes is the time worked beyond the scheduled day, summed over
	// working-day records.
	ExtraMinutes decimal.Decimal
	// ExpectedMinutes is scheduled daily hours times working days.
	ExpectedMinutes decimal.Decimal
}

// WorkedHours converts the summed minutes into hours.
func (s AttendanceSummary) WorkedHours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.WorkedMinutes)).Div(minutesPerHour)
}

type Aggregator struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
}

func NewAggregator(attendanceRepo attendance.AttendanceRepository, leaveRepo leave.LeaveRepository) *Aggregator {
	return &Aggregator{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

// Aggregate reads the employee's attendance (and, for checkinCheckout, approved
// leave) for the period. Store failures come back wrapped in payroll.ErrDataAccess.
func (a *Aggregator) Aggregate(ctx context.Context, emp employee.Employee, period Period, method payroll.AttendanceMarkingMethod) (AttendanceSummary, error) {
	records, err := a.attendanceRepo.ListByEmployeeAndRange(ctx, emp.ID, period.From, period.To)
	if err != nil {
		return AttendanceSummary{}, fmt.Errorf("%w: list attendance for employee %s: %w", payroll.ErrDataAccess, emp.ID, err)
	}

	scheduledMinutes := emp.Schedule.DailyHours.Mul(minutesPerHour)
	summary := AttendanceSummary{
		WorkingDays:     period.TotalWorkingDays(),
		ExtraMinutes:    decimal.Zero,
		ExpectedMinutes: scheduledMinutes.Mul(decimal.NewFromInt(int64(period.TotalWorkingDays()))),
	}

	if method == payroll.MethodWeeklyHours {
		for _, r := range records {
			if inPeriod(r.Date, period) {
				summary.WorkedMinutes += r.WorkMinutes
			}
		}
		return summary, nil
	}

	leaves, err := a.leaveRepo.ListApprovedByEmployeeAndRange(ctx, emp.ID, period.From, period.To)
	if err != nil {
		return AttendanceSummary{}, fmt.Errorf("%w: list leave for employee %s: %w", payroll.ErrDataAccess, emp.ID, err)
	}

	// one record per date; a later duplicate replaces the earlier one
	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		if !inPeriod(r.Date, period) {
			continue
		}
		if !r.Status.IsValid() {
			return AttendanceSummary{}, fmt.Errorf("%w: %w: %q on %s", payroll.ErrDataAccess, attendance.ErrUnknownDayStatus, r.Status, dayKey(r.Date))
		}
		byDate[dayKey(r.Date)] = r
	}

	working := make(map[string]bool, len(period.WorkingDates))
	for _, day := range period.WorkingDates {
		key := dayKey(day)
		working[key] = true

		r, ok := byDate[key]
		if !ok {
			if coveredByLeave(day, leaves) {
				summary.Leave++
			} else {
				summary.Missing++
			}
			continue
		}

		switch r.Status {
		case attendance.DayStatusPresent:
			summary.Present++
		case attendance.DayStatusAbsent:
			summary.Absent++
		case attendance.DayStatusLate:
			summary.Late++
		case attendance.DayStatusHalfDay:
			summary.HalfDay++
		case attendance.DayStatusEarlyDeparture:
			summary.EarlyDeparture++
		case attendance.DayStatusLateEarlyDeparture:
			summary.LateEarlyDeparture++
		}

		summary.WorkedMinutes += r.WorkMinutes
		if extra := decimal.NewFromInt(int64(r.WorkMinutes)).Sub(scheduledMinutes); extra.IsPositive() {
			summary.ExtraMinutes = summary.ExtraMinutes.Add(extra)
		}
	}

	for key := range byDate {
		if !working[key] {
			summary.WeeklyOffWorked++
		}
	}

	return summary, nil
}

func inPeriod(date time.Time, period Period) bool {
	key := dayKey(date)
	return key >= dayKey(period.From) && key <= dayKey(period.To)
}

func coveredByLeave(day time.Time, leaves []leave.Record) bool {
	for _, l := range leaves {
		if l.IsApproved() && l.Covers(day) {
			return true
		}
	}
	return false
}
