package payroll

import (
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// AttendancePercentage is (present + late + half days / 2) over working days.
func AttendancePercentage(s AttendanceSummary) decimal.Decimal {
	if s.WorkingDays <= 0 {
		return decimal.Zero
	}
	attended := decimal.NewFromInt(int64(s.Present + s.Late)).
		Add(decimal.NewFromInt(int64(s.HalfDay)).Mul(half))
	return attended.Mul(hundred).Div(decimal.NewFromInt(int64(s.WorkingDays)))
}

// EvaluateBonus pays the configured amount when the percentage reaches the threshold.
func EvaluateBonus(percentage decimal.Decimal, policy payroll.BonusPolicy) decimal.Decimal {
	if !policy.Enabled || percentage.LessThan(policy.Threshold) {
		return decimal.Zero
	}
	return policy.Amount
}
