package payroll

import (
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculateAdditions computes extra-hours and off-day pay. Extra time is paid
// at the per-day salary spread over the scheduled hours. The bonus is left
// for EvaluateBonus.
func CalculateAdditions(s AttendanceSummary, policy payroll.CheckinCheckoutPolicy, perDay, dailyHours decimal.Decimal) payroll.AdditionBreakdown {
	a := payroll.AdditionBreakdown{
		ExtraHours:             s.ExtraMinutes.Div(minutesPerHour).Round(2),
		ExtraHoursPay:          decimal.Zero,
		OffDayWorkPay:          decimal.Zero,
		PerfectAttendanceBonus: decimal.Zero,
	}

	if policy.IncludeExtraWorkingHours && s.ExtraMinutes.IsPositive() {
		scheduledMinutes := dailyHours.Mul(minutesPerHour)
		a.ExtraHoursPay = s.ExtraMinutes.Mul(perDay).Div(scheduledMinutes).Round(2)
	}
	if policy.IncludeWeeklyOffDaysWorked {
		a.OffDayWorkPay = perDay.Mul(decimal.NewFromInt(int64(s.WeeklyOffWorked)))
	}

	a.TotalAdditions = a.ExtraHoursPay.Add(a.OffDayWorkPay)
	return a
}
