package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusPending    SalaryStatus = "pending"
	SalaryStatusCalculated SalaryStatus = "calculated"
	SalaryStatusApproved   SalaryStatus = "approved"
	SalaryStatusPaid       SalaryStatus = "paid"
)

// SalaryResult - one employee's computed salary for a month
type SalaryResult struct {
	ID               string
	EmployeeID       string
	EmployeeName     string
	PeriodMonth      int
	PeriodYear       int
	Method           AttendanceMarkingMethod
	Criteria         CriteriaRequest // normalized policy that produced the figures
	BaseSalary       decimal.Decimal
	TotalWorkingDays int
	PerDaySalary     decimal.Decimal

	Attendance *AttendanceBreakdown // nil in weeklyHours mode
	Hours      *HoursBreakdown      // nil in checkinCheckout mode
	Deductions DeductionBreakdown
	Additions  *AdditionBreakdown // nil in weeklyHours mode

	TotalDeductions decimal.Decimal
	TotalAdditions  decimal.Decimal
	NetSalary       decimal.Decimal
	Status          SalaryStatus
	CalculatedBy    *string
	CalculatedAt    time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AttendanceBreakdown is stored as JSONB next to the result.
type AttendanceBreakdown struct {
	Present              int             `json:"present"`
	Absent               int             `json:"absent"`
	Late                 int             `json:"late"`
	HalfDay              int             `json:"half_day"`
	EarlyDeparture       int             `json:"early_departure"`
	LateEarlyDeparture   int             `json:"late_early_departure"`
	Leave                int             `json:"leave"`
	Missing              int             `json:"missing"`
	WeeklyOffWorked      int             `json:"weekly_off_worked"`
	WorkedHours          decimal.Decimal `json:"worked_hours"`
	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
}

type HoursBreakdown struct {
	ExpectedHours       decimal.Decimal `json:"expected_hours"`
	ActualHours         decimal.Decimal `json:"actual_hours"`
	ShortfallHours      decimal.Decimal `json:"shortfall_hours"`
	HourlyDeductionRate decimal.Decimal `json:"hourly_deduction_rate"`
}

type DeductionBreakdown struct {
	AbsentDays                 int             `json:"absent_days"`
	MissingDays                int             `json:"missing_days"`
	LateAsAbsent               int             `json:"late_as_absent"`
	HalfDayAsAbsent            int             `json:"half_day_as_absent"`
	EarlyDepartureAsAbsent     int             `json:"early_departure_as_absent"`
	LateEarlyDepartureAsAbsent int             `json:"late_early_departure_as_absent"`
	ExcessLeaves               int             `json:"excess_leaves"`
	AbsentDayEquivalents       int             `json:"absent_day_equivalents"`
	AbsentDeduction            decimal.Decimal `json:"absent_deduction"`
	ShortfallHoursDeduction    decimal.Decimal `json:"shortfall_hours_deduction"`
	OtherDeductions            decimal.Decimal `json:"other_deductions"`
	TotalDeductions            decimal.Decimal `json:"total_deductions"`
}

type AdditionBreakdown struct {
	ExtraHours             decimal.Decimal `json:"extra_hours"`
	ExtraHoursPay          decimal.Decimal `json:"extra_hours_pay"`
	OffDayWorkPay          decimal.Decimal `json:"off_day_work_pay"`
	PerfectAttendanceBonus decimal.Decimal `json:"perfect_attendance_bonus"`
	TotalAdditions         decimal.Decimal `json:"total_additions"`
}

// BulkResult - outcome of a calculation run over many employees
type BulkResult struct {
	Summary BulkSummary
	Results []SalaryResult
	Errors  []BulkError
}

type BulkSummary struct {
	TotalEmployees int
	Calculated     int
	Errors         int
	TotalNetSalary decimal.Decimal
}

// BulkError records why one employee could not be calculated.
type BulkError struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
