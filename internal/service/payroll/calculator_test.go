package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerDaySalary_FloorInvariant(t *testing.T) {
	bases := []string{"50000", "1", "0.99", "3100000", "4999999.99", "123456.78"}
	for _, b := range bases {
		base := decimal.RequireFromString(b)
		for days := 1; days <= 31; days++ {
			perDay := PerDaySalary(base, days)
			total := perDay.Mul(decimal.NewFromInt(int64(days)))

			assert.True(t, perDay.Equal(perDay.Floor()), "base %s days %d: %s is not whole", b, days, perDay)
			assert.True(t, total.LessThanOrEqual(base), "base %s days %d: %s > base", b, days, total)
			assert.True(t, base.Sub(total).LessThan(decimal.NewFromInt(int64(days))), "base %s days %d: not the floor", b, days)
		}
	}

	assert.True(t, PerDaySalary(decimal.NewFromInt(50000), 23).Equal(decimal.NewFromInt(2173)))
}

func TestCalculateDeductions_LateThreshold(t *testing.T) {
	policy := mustCriteriaPolicy(t, checkinCriteria(3))
	perDay := decimal.NewFromInt(100)

	tests := []struct {
		lates int
		want  int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{5, 1},
		{6, 2},
	}
	for _, tt := range tests {
		d := CalculateDeductions(AttendanceSummary{Late: tt.lates}, policy, 0, perDay, decimal.Zero)
		assert.Equal(t, tt.want, d.LateAsAbsent, "lates=%d", tt.lates)
		assert.Equal(t, tt.want, d.AbsentDayEquivalents, "lates=%d", tt.lates)
		assert.True(t, d.AbsentDeduction.Equal(perDay.Mul(decimal.NewFromInt(int64(tt.want)))))
	}
}

func TestCalculateDeductions_DisabledRules(t *testing.T) {
	policy := mustCriteriaPolicy(t, checkinCriteria(3))
	summary := AttendanceSummary{HalfDay: 9, EarlyDeparture: 7, LateEarlyDeparture: 4}

	d := CalculateDeductions(summary, policy, 0, decimal.NewFromInt(100), decimal.Zero)
	assert.Zero(t, d.HalfDayAsAbsent)
	assert.Zero(t, d.EarlyDepartureAsAbsent)
	assert.Zero(t, d.LateEarlyDepartureAsAbsent)
	assert.Zero(t, d.AbsentDayEquivalents)
	assert.True(t, d.TotalDeductions.IsZero())
}

func TestCalculateDeductions_Additive(t *testing.T) {
	req := checkinCriteria(3)
	req.HalfDayThreshold = intPtr(2)
	req.EarlyDepartureThreshold = intPtr(1)
	req.LateEarlyDepartureThreshold = intPtr(2)
	policy := mustCriteriaPolicy(t, req)

	summary := AttendanceSummary{
		Absent:             1,
		Missing:            2,
		Late:               4, // 1
		HalfDay:            5, // 2
		EarlyDeparture:     2, // 2
		LateEarlyDeparture: 3, // 1
		Leave:              4, // 1 over the allowance
	}
	d := CalculateDeductions(summary, policy, 3, decimal.NewFromInt(1000), decimal.NewFromInt(250))

	assert.Equal(t, 1, d.AbsentDays)
	assert.Equal(t, 2, d.MissingDays)
	assert.Equal(t, 1, d.LateAsAbsent)
	assert.Equal(t, 2, d.HalfDayAsAbsent)
	assert.Equal(t, 2, d.EarlyDepartureAsAbsent)
	assert.Equal(t, 1, d.LateEarlyDepartureAsAbsent)
	assert.Equal(t, 1, d.ExcessLeaves)
	assert.Equal(t, 10, d.AbsentDayEquivalents)
	assert.Equal(t, "10000", d.AbsentDeduction.String())
	assert.Equal(t, "250", d.OtherDeductions.String())
	assert.Equal(t, "10250", d.TotalDeductions.String())
}

func TestCalculateDeductions_LeaveWithinAllowance(t *testing.T) {
	policy := mustCriteriaPolicy(t, checkinCriteria(3))
	d := CalculateDeductions(AttendanceSummary{Leave: 2}, policy, 5, decimal.NewFromInt(1000), decimal.Zero)
	assert.Zero(t, d.ExcessLeaves)
	assert.True(t, d.TotalDeductions.IsZero())
}

func TestCalculateHoursDeductions(t *testing.T) {
	policy, ok := mustCriteria(weeklyCriteria(50)).WeeklyHours()
	require.True(t, ok)

	summary := AttendanceSummary{
		WorkingDays:     20,
		WorkedMinutes:   150 * 60,
		ExpectedMinutes: decimal.NewFromInt(160 * 60),
	}
	hours, d := CalculateHoursDeductions(summary, policy, decimal.Zero)

	assert.Equal(t, "160", hours.ExpectedHours.String())
	assert.Equal(t, "150", hours.ActualHours.String())
	assert.Equal(t, "10", hours.ShortfallHours.String())
	assert.Equal(t, "500", d.ShortfallHoursDeduction.String())
	assert.Equal(t, "500", d.TotalDeductions.String())
}

func TestCalculateHoursDeductions_NoShortfall(t *testing.T) {
	policy, _ := mustCriteria(weeklyCriteria(50)).WeeklyHours()
	summary := AttendanceSummary{
		WorkedMinutes:   170 * 60,
		ExpectedMinutes: decimal.NewFromInt(160 * 60),
	}
	hours, d := CalculateHoursDeductions(summary, policy, decimal.NewFromInt(75))

	assert.True(t, hours.ShortfallHours.IsZero())
	assert.True(t, d.ShortfallHoursDeduction.IsZero())
	assert.Equal(t, "75", d.TotalDeductions.String())
}

func TestCalculateAdditions(t *testing.T) {
	req := checkinCriteria(3)
	req.IncludeExtraWorkingHours = true
	req.IncludeWeeklyOffDaysWorked = true
	policy := mustCriteriaPolicy(t, req)

	summary := AttendanceSummary{
		ExtraMinutes:    decimal.NewFromInt(120),
		WeeklyOffWorked: 2,
	}
	a := CalculateAdditions(summary, policy, decimal.NewFromInt(2173), decimal.NewFromInt(8))

	assert.Equal(t, "2", a.ExtraHours.String())
	assert.Equal(t, "543.25", a.ExtraHoursPay.String())
	assert.Equal(t, "4346", a.OffDayWorkPay.String())
	assert.Equal(t, "4889.25", a.TotalAdditions.String())
}

func TestCalculateAdditions_Disabled(t *testing.T) {
	policy := mustCriteriaPolicy(t, checkinCriteria(3))
	summary := AttendanceSummary{
		ExtraMinutes:    decimal.NewFromInt(600),
		WeeklyOffWorked: 3,
	}
	a := CalculateAdditions(summary, policy, decimal.NewFromInt(2173), decimal.NewFromInt(8))

	assert.Equal(t, "10", a.ExtraHours.String())
	assert.True(t, a.ExtraHoursPay.IsZero())
	assert.True(t, a.OffDayWorkPay.IsZero())
	assert.True(t, a.TotalAdditions.IsZero())
}

func TestAttendancePercentage(t *testing.T) {
	tests := []struct {
		name    string
		summary AttendanceSummary
		want    string
	}{
		{"all present", AttendanceSummary{WorkingDays: 20, Present: 20}, "100"},
		{"late counts as present", AttendanceSummary{WorkingDays: 20, Present: 17, Late: 3}, "100"},
		{"half day counts half", AttendanceSummary{WorkingDays: 20, Present: 19, HalfDay: 1}, "97.5"},
		{"early departure not counted", AttendanceSummary{WorkingDays: 20, Present: 18, EarlyDeparture: 2}, "90"},
		{"no working days", AttendanceSummary{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttendancePercentage(tt.summary).String())
		})
	}
}

func TestEvaluateBonus_Boundary(t *testing.T) {
	policy := payroll.BonusPolicy{
		Enabled:   true,
		Threshold: decimal.NewFromInt(100),
		Amount:    decimal.NewFromInt(1500),
	}

	assert.True(t, EvaluateBonus(decimal.RequireFromString("99.99"), policy).IsZero())
	assert.Equal(t, "1500", EvaluateBonus(decimal.NewFromInt(100), policy).String())

	policy.Enabled = false
	assert.True(t, EvaluateBonus(decimal.NewFromInt(100), policy).IsZero())
}

func TestEvaluateBonus_FromSummary(t *testing.T) {
	policy := payroll.BonusPolicy{
		Enabled:   true,
		Threshold: decimal.RequireFromString("97.5"),
		Amount:    decimal.NewFromInt(500),
	}
	met := AttendanceSummary{WorkingDays: 20, Present: 19, HalfDay: 1}
	short := AttendanceSummary{WorkingDays: 20, Present: 18, HalfDay: 2}

	assert.Equal(t, "500", EvaluateBonus(AttendancePercentage(met), policy).String())
	assert.True(t, EvaluateBonus(AttendancePercentage(short), policy).IsZero())
}

func mustCriteriaPolicy(t *testing.T, req payroll.CriteriaRequest) payroll.CheckinCheckoutPolicy {
	t.Helper()
	c, err := payroll.NewCriteria(req)
	require.NoError(t, err)
	policy, ok := c.CheckinCheckout()
	require.True(t, ok)
	return policy
}
