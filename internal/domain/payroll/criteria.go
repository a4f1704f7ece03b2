package payroll

import (
	"strconv"

	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AttendanceMarkingMethod selects how attendance turns into deductions.
type AttendanceMarkingMethod string

const (
	MethodCheckinCheckout AttendanceMarkingMethod = "checkinCheckout"
	MethodWeeklyHours     AttendanceMarkingMethod = "weeklyHours"
)

var AttendanceMarkingMethodValues = []string{
	string(MethodCheckinCheckout),
	string(MethodWeeklyHours),
}

var (
	minBonusThreshold = decimal.NewFromInt(50)
	maxBonusThreshold = decimal.NewFromInt(100)
)

// CriteriaRequest is the administrator-supplied policy as it arrives on the wire.
type CriteriaRequest struct {
	AttendanceMarkingMethod       string           `json:"attendance_marking_method"`
	HourlyDeductionRate           *decimal.Decimal `json:"hourly_deduction_rate,omitempty"`
	LateThreshold                 *int             `json:"late_threshold,omitempty"`
	HalfDayThreshold              *int             `json:"half_day_threshold,omitempty"`
	EarlyDepartureThreshold       *int             `json:"early_departure_threshold,omitempty"`
	LateEarlyDepartureThreshold   *int             `json:"late_early_departure_threshold,omitempty"`
	IncludeExtraWorkingHours      bool             `json:"include_extra_working_hours"`
	IncludeWeeklyOffDaysWorked    bool             `json:"include_weekly_off_days_worked"`
	PerfectAttendanceBonusEnabled bool             `json:"perfect_attendance_bonus_enabled"`
	PerfectAttendanceThreshold    *decimal.Decimal `json:"perfect_attendance_threshold,omitempty"`
	PerfectAttendanceBonusAmount  *decimal.Decimal `json:"perfect_attendance_bonus_amount,omitempty"`
}

// CheckinCheckoutPolicy applies when attendance is tracked as per-day statuses.
// A threshold of 0 on the half-day and early-departure rules disables that rule.
type CheckinCheckoutPolicy struct {
	LateThreshold               int
	HalfDayThreshold            int
	EarlyDepartureThreshold     int
	LateEarlyDepartureThreshold int
	IncludeExtraWorkingHours    bool
	IncludeWeeklyOffDaysWorked  bool
	Bonus                       BonusPolicy
}

type BonusPolicy struct {
	Enabled   bool
	Threshold decimal.Decimal // attendance percentage, 50..100
	Amount    decimal.Decimal
}

// WeeklyHoursPolicy applies when attendance is tracked as total hours.
type WeeklyHoursPolicy struct {
	HourlyDeductionRate decimal.Decimal
}

// Criteria is the validated policy. Exactly one of the two mode policies is
// set, matching Method. The zero value is not usable; build it with NewCriteria.
type Criteria struct {
	method  AttendanceMarkingMethod
	checkin CheckinCheckoutPolicy
	weekly  WeeklyHoursPolicy
}

func (c Criteria) Method() AttendanceMarkingMethod {
	return c.method
}

func (c Criteria) CheckinCheckout() (CheckinCheckoutPolicy, bool) {
	return c.checkin, c.method == MethodCheckinCheckout
}

func (c Criteria) WeeklyHours() (WeeklyHoursPolicy, bool) {
	return c.weekly, c.method == MethodWeeklyHours
}

func (c Criteria) IsZero() bool {
	return c.method == ""
}

// NewCriteria validates the request and returns the normalized policy.
// Fields that belong to the other marking method are ignored.
func NewCriteria(req CriteriaRequest) (Criteria, error) {
	var errs validator.ValidationErrors

	method := AttendanceMarkingMethod(req.AttendanceMarkingMethod)
	switch {
	case validator.IsEmpty(req.AttendanceMarkingMethod):
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_marking_method",
			Message: "attendance_marking_method is required",
		})
	case !validator.IsInSlice(req.AttendanceMarkingMethod, AttendanceMarkingMethodValues):
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_marking_method",
			Message: "attendance_marking_method must be one of: checkinCheckout, weeklyHours",
		})
	}
	if len(errs) > 0 {
		return Criteria{}, errs
	}

	if method == MethodWeeklyHours {
		if req.HourlyDeductionRate == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_deduction_rate",
				Message: "hourly_deduction_rate is required",
			})
		} else if req.HourlyDeductionRate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_deduction_rate",
				Message: "hourly_deduction_rate must be a non-negative number",
			})
		}
		if len(errs) > 0 {
			return Criteria{}, errs
		}
		return Criteria{
			method: method,
			weekly: WeeklyHoursPolicy{HourlyDeductionRate: *req.HourlyDeductionRate},
		}, nil
	}

	errs = append(errs, checkThreshold("late_threshold", req.LateThreshold, 1)...)
	errs = append(errs, checkThreshold("half_day_threshold", req.HalfDayThreshold, 0)...)
	errs = append(errs, checkThreshold("early_departure_threshold", req.EarlyDepartureThreshold, 0)...)
	errs = append(errs, checkThreshold("late_early_departure_threshold", req.LateEarlyDepartureThreshold, 0)...)

	if req.PerfectAttendanceThreshold != nil {
		t := *req.PerfectAttendanceThreshold
		if t.LessThan(minBonusThreshold) || t.GreaterThan(maxBonusThreshold) {
			errs = append(errs, validator.ValidationError{
				Field:   "perfect_attendance_threshold",
				Message: "perfect_attendance_threshold must be between 50 and 100",
			})
		}
	} else if req.PerfectAttendanceBonusEnabled {
		errs = append(errs, validator.ValidationError{
			Field:   "perfect_attendance_threshold",
			Message: "perfect_attendance_threshold is required when the bonus is enabled",
		})
	}
	if req.PerfectAttendanceBonusAmount != nil {
		if req.PerfectAttendanceBonusAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "perfect_attendance_bonus_amount",
				Message: "perfect_attendance_bonus_amount must be a non-negative number",
			})
		}
	} else if req.PerfectAttendanceBonusEnabled {
		errs = append(errs, validator.ValidationError{
			Field:   "perfect_attendance_bonus_amount",
			Message: "perfect_attendance_bonus_amount is required when the bonus is enabled",
		})
	}

	if len(errs) > 0 {
		return Criteria{}, errs
	}

	policy := CheckinCheckoutPolicy{
		LateThreshold:               *req.LateThreshold,
		HalfDayThreshold:            *req.HalfDayThreshold,
		EarlyDepartureThreshold:     *req.EarlyDepartureThreshold,
		LateEarlyDepartureThreshold: *req.LateEarlyDepartureThreshold,
		IncludeExtraWorkingHours:    req.IncludeExtraWorkingHours,
		IncludeWeeklyOffDaysWorked:  req.IncludeWeeklyOffDaysWorked,
		Bonus: BonusPolicy{
			Enabled:   req.PerfectAttendanceBonusEnabled,
			Threshold: decimal.Zero,
			Amount:    decimal.Zero,
		},
	}
	if req.PerfectAttendanceThreshold != nil {
		policy.Bonus.Threshold = *req.PerfectAttendanceThreshold
	}
	if req.PerfectAttendanceBonusAmount != nil {
		policy.Bonus.Amount = *req.PerfectAttendanceBonusAmount
	}

	return Criteria{method: method, checkin: policy}, nil
}

func checkThreshold(field string, value *int, min int) validator.ValidationErrors {
	if value == nil {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if *value < min {
		msg := field + " must be a non-negative integer"
		if min > 0 {
			msg = field + " must be at least " + strconv.Itoa(min)
		}
		return validator.ValidationErrors{{Field: field, Message: msg}}
	}
	return nil
}

// Request renders the normalized policy back into its wire shape. Only the
// fields of the active method are populated.
func (c Criteria) Request() CriteriaRequest {
	req := CriteriaRequest{AttendanceMarkingMethod: string(c.method)}
	switch c.method {
	case MethodWeeklyHours:
		rate := c.weekly.HourlyDeductionRate
		req.HourlyDeductionRate = &rate
	case MethodCheckinCheckout:
		p := c.checkin
		late, half, early, lateEarly := p.LateThreshold, p.HalfDayThreshold, p.EarlyDepartureThreshold, p.LateEarlyDepartureThreshold
		threshold, amount := p.Bonus.Threshold, p.Bonus.Amount
		req.LateThreshold = &late
		req.HalfDayThreshold = &half
		req.EarlyDepartureThreshold = &early
		req.LateEarlyDepartureThreshold = &lateEarly
		req.IncludeExtraWorkingHours = p.IncludeExtraWorkingHours
		req.IncludeWeeklyOffDaysWorked = p.IncludeWeeklyOffDaysWorked
		req.PerfectAttendanceBonusEnabled = p.Bonus.Enabled
		req.PerfectAttendanceThreshold = &threshold
		req.PerfectAttendanceBonusAmount = &amount
	}
	return req
}
