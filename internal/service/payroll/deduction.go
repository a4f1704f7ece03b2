package payroll

import (
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// PerDaySalary is floor(base / workingDays), so perDay × workingDays never exceeds base.
func PerDaySalary(base decimal.Decimal, workingDays int) decimal.Decimal {
	q, _ := base.QuoRem(decimal.NewFromInt(int64(workingDays)), 0)
	return q
}

// asAbsences converts a count of infractions into whole absent days.
// A threshold of 0 disables the rule.
func asAbsences(count, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	return count / threshold
}

// CalculateDeductions applies the checkinCheckout rules. Each threshold
// conversion is independent and the results are summed.
func CalculateDeductions(s AttendanceSummary, policy payroll.CheckinCheckoutPolicy, leaveThreshold int, perDay, other decimal.Decimal) payroll.DeductionBreakdown {
	d := payroll.DeductionBreakdown{
		AbsentDays:                 s.Absent,
		MissingDays:                s.Missing,
		LateAsAbsent:               asAbsences(s.Late, policy.LateThreshold),
		HalfDayAsAbsent:            asAbsences(s.HalfDay, policy.HalfDayThreshold),
		EarlyDepartureAsAbsent:     asAbsences(s.EarlyDeparture, policy.EarlyDepartureThreshold),
		LateEarlyDepartureAsAbsent: asAbsences(s.LateEarlyDeparture, policy.LateEarlyDepartureThreshold),
		ExcessLeaves:               max(0, s.Leave-leaveThreshold),
		ShortfallHoursDeduction:    decimal.Zero,
		OtherDeductions:            other,
	}
	d.AbsentDayEquivalents = d.AbsentDays + d.MissingDays +
		d.LateAsAbsent + d.HalfDayAsAbsent + d.EarlyDepartureAsAbsent + d.LateEarlyDepartureAsAbsent +
		d.ExcessLeaves
	d.AbsentDeduction = perDay.Mul(decimal.NewFromInt(int64(d.AbsentDayEquivalents)))
	d.TotalDeductions = d.AbsentDeduction.Add(other)
	return d
}

// CalculateHoursDeductions applies the weeklyHours rule: every hour short of
// the expected total costs the hourly rate.
func CalculateHoursDeductions(s AttendanceSummary, policy payroll.WeeklyHoursPolicy, other decimal.Decimal) (payroll.HoursBreakdown, payroll.DeductionBreakdown) {
	actual := decimal.NewFromInt(int64(s.WorkedMinutes))
	shortfall := decimal.Max(decimal.Zero, s.ExpectedMinutes.Sub(actual))

	hours := payroll.HoursBreakdown{
		ExpectedHours:       s.ExpectedMinutes.Div(minutesPerHour).Round(2),
		ActualHours:         actual.Div(minutesPerHour).Round(2),
		ShortfallHours:      shortfall.Div(minutesPerHour).Round(2),
		HourlyDeductionRate: policy.HourlyDeductionRate,
	}

	d := payroll.DeductionBreakdown{
		AbsentDeduction:         decimal.Zero,
		ShortfallHoursDeduction: shortfall.Mul(policy.HourlyDeductionRate).Div(minutesPerHour).Round(2),
		OtherDeductions:         other,
	}
	d.TotalDeductions = d.ShortfallHoursDeduction.Add(other)
	return hours, d
}
