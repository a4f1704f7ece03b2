package payroll

import (
	"testing"

	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func checkinRequest() CriteriaRequest {
	return CriteriaRequest{
		AttendanceMarkingMethod:     "checkinCheckout",
		LateThreshold:               intPtr(3),
		HalfDayThreshold:            intPtr(2),
		EarlyDepartureThreshold:     intPtr(0),
		LateEarlyDepartureThreshold: intPtr(1),
	}
}

func validationFields(t *testing.T, err error) validator.ValidationErrors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validator.ValidationErrors)
	require.True(t, ok, "expected ValidationErrors, got %T", err)
	return errs
}

func TestNewCriteria_CheckinCheckout(t *testing.T) {
	req := checkinRequest()
	req.HourlyDeductionRate = decPtr(-5) // other mode, ignored

	c, err := NewCriteria(req)
	require.NoError(t, err)
	assert.Equal(t, MethodCheckinCheckout, c.Method())

	policy, ok := c.CheckinCheckout()
	require.True(t, ok)
	assert.Equal(t, 3, policy.LateThreshold)
	assert.Equal(t, 0, policy.EarlyDepartureThreshold)
	assert.False(t, policy.Bonus.Enabled)

	_, ok = c.WeeklyHours()
	assert.False(t, ok)
	assert.Nil(t, c.Request().HourlyDeductionRate)
}

func TestNewCriteria_WeeklyHours(t *testing.T) {
	c, err := NewCriteria(CriteriaRequest{
		AttendanceMarkingMethod: "weeklyHours",
		HourlyDeductionRate:     decPtr(0),
		LateThreshold:           intPtr(-1), // other mode, ignored
	})
	require.NoError(t, err)

	policy, ok := c.WeeklyHours()
	require.True(t, ok)
	assert.True(t, policy.HourlyDeductionRate.IsZero())

	_, ok = c.CheckinCheckout()
	assert.False(t, ok)
}

func TestNewCriteria_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CriteriaRequest)
		field  string
	}{
		{"missing method", func(r *CriteriaRequest) { r.AttendanceMarkingMethod = "" }, "attendance_marking_method"},
		{"unknown method", func(r *CriteriaRequest) { r.AttendanceMarkingMethod = "daily" }, "attendance_marking_method"},
		{"late threshold zero", func(r *CriteriaRequest) { r.LateThreshold = intPtr(0) }, "late_threshold"},
		{"late threshold missing", func(r *CriteriaRequest) { r.LateThreshold = nil }, "late_threshold"},
		{"negative half day", func(r *CriteriaRequest) { r.HalfDayThreshold = intPtr(-1) }, "half_day_threshold"},
		{"negative early departure", func(r *CriteriaRequest) { r.EarlyDepartureThreshold = intPtr(-2) }, "early_departure_threshold"},
		{"bonus threshold below range", func(r *CriteriaRequest) { r.PerfectAttendanceThreshold = decPtr(49) }, "perfect_attendance_threshold"},
		{"bonus threshold above range", func(r *CriteriaRequest) { r.PerfectAttendanceThreshold = decPtr(101) }, "perfect_attendance_threshold"},
		{"bonus enabled without amount", func(r *CriteriaRequest) {
			r.PerfectAttendanceBonusEnabled = true
			r.PerfectAttendanceThreshold = decPtr(95)
		}, "perfect_attendance_bonus_amount"},
		{"negative bonus amount", func(r *CriteriaRequest) { r.PerfectAttendanceBonusAmount = decPtr(-1) }, "perfect_attendance_bonus_amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := checkinRequest()
			tt.mutate(&req)
			_, err := NewCriteria(req)
			errs := validationFields(t, err)
			assert.True(t, errs.HasField(tt.field), "want error on %s, got %v", tt.field, errs)
		})
	}
}

func TestNewCriteria_WeeklyHoursRequiresRate(t *testing.T) {
	_, err := NewCriteria(CriteriaRequest{AttendanceMarkingMethod: "weeklyHours"})
	errs := validationFields(t, err)
	assert.True(t, errs.HasField("hourly_deduction_rate"))

	_, err = NewCriteria(CriteriaRequest{AttendanceMarkingMethod: "weeklyHours", HourlyDeductionRate: decPtr(-1)})
	errs = validationFields(t, err)
	assert.True(t, errs.HasField("hourly_deduction_rate"))
}

func TestNewCriteria_BonusThresholdBounds(t *testing.T) {
	for _, v := range []int64{50, 100} {
		req := checkinRequest()
		req.PerfectAttendanceBonusEnabled = true
		req.PerfectAttendanceThreshold = decPtr(v)
		req.PerfectAttendanceBonusAmount = decPtr(1000)
		_, err := NewCriteria(req)
		assert.NoError(t, err, "threshold %d", v)
	}
}

func TestCriteria_RequestRoundTrip(t *testing.T) {
	req := checkinRequest()
	req.IncludeExtraWorkingHours = true
	req.PerfectAttendanceBonusEnabled = true
	req.PerfectAttendanceThreshold = decPtr(95)
	req.PerfectAttendanceBonusAmount = decPtr(500)

	c, err := NewCriteria(req)
	require.NoError(t, err)

	again, err := NewCriteria(c.Request())
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestCalculateSalaryRequest_Validate(t *testing.T) {
	req := CalculateSalaryRequest{
		PeriodMonth: 13,
		PeriodYear:  2025,
		Criteria:    CriteriaRequest{AttendanceMarkingMethod: "weeklyHours"},
	}
	errs := validationFields(t, req.Validate())
	assert.True(t, errs.HasField("employee_id"))
	assert.True(t, errs.HasField("period_month"))
	assert.True(t, errs.HasField("criteria.hourly_deduction_rate"))

	req = CalculateSalaryRequest{
		EmployeeID:  "emp-1",
		PeriodMonth: 2,
		PeriodYear:  2025,
		Criteria:    checkinRequest(),
	}
	assert.NoError(t, req.Validate())
}

func TestCalculateAllSalariesRequest_Validate(t *testing.T) {
	req := CalculateAllSalariesRequest{
		PeriodMonth:     1,
		PeriodYear:      2025,
		Criteria:        checkinRequest(),
		OtherDeductions: map[string]decimal.Decimal{"emp-2": decimal.NewFromInt(-10)},
	}
	errs := validationFields(t, req.Validate())
	assert.True(t, errs.HasField("other_deductions.emp-2"))

	req.OtherDeductions = map[string]decimal.Decimal{"emp-2": decimal.NewFromInt(250)}
	require.NoError(t, req.Validate())
	assert.True(t, req.OtherDeductionsFor("emp-2").Equal(decimal.NewFromInt(250)))
	assert.True(t, req.OtherDeductionsFor("emp-9").IsZero())
}
