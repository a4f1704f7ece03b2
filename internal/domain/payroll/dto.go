package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type CalculateSalaryRequest struct {
	EmployeeID      string           `json:"employee_id" validate:"required"`
	PeriodMonth     int              `json:"period_month" validate:"min=1,max=12"`
	PeriodYear      int              `json:"period_year" validate:"min=2000,max=9999"`
	Criteria        CriteriaRequest  `json:"criteria"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`
	CalculatedBy    *string          `json:"-"`
}

func (r *CalculateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	if r.OtherDeductions != nil && r.OtherDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "must be non-negative"})
	}
	errs = append(errs, criteriaErrors(r.Criteria)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculateAllSalariesRequest struct {
	PeriodMonth  int             `json:"period_month" validate:"min=1,max=12"`
	PeriodYear   int             `json:"period_year" validate:"min=2000,max=9999"`
	DepartmentID *string         `json:"department_id,omitempty" validate:"omitempty,min=1"`
	Criteria     CriteriaRequest `json:"criteria"`
	// OtherDeductions holds per-employee adjustments keyed by employee id.
	OtherDeductions map[string]decimal.Decimal `json:"other_deductions,omitempty"`
	CalculatedBy    *string                    `json:"-"`
}

func (r *CalculateAllSalariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	for employeeID, amount := range r.OtherDeductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "other_deductions." + employeeID,
				Message: "must be non-negative",
			})
		}
	}
	errs = append(errs, criteriaErrors(r.Criteria)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OtherDeductionsFor returns the adjustment configured for one employee, or zero.
func (r *CalculateAllSalariesRequest) OtherDeductionsFor(employeeID string) decimal.Decimal {
	if amount, ok := r.OtherDeductions[employeeID]; ok {
		return amount
	}
	return decimal.Zero
}

func criteriaErrors(req CriteriaRequest) validator.ValidationErrors {
	_, err := NewCriteria(req)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return validator.ValidationErrors{{Field: "criteria", Message: err.Error()}}
	}
	out := make(validator.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validator.ValidationError{Field: "criteria." + fe.Field, Message: fe.Message})
	}
	return out
}

type PeriodQuery struct {
	PeriodMonth int `json:"month" validate:"min=1,max=12"`
	PeriodYear  int `json:"year" validate:"min=2000,max=9999"`
}

func (q *PeriodQuery) Validate() error {
	return validator.Struct(q)
}

// ========== RESPONSE DTOs ==========

type SalaryResultResponse struct {
	ID               *string              `json:"id,omitempty"`
	EmployeeID       string               `json:"employee_id"`
	EmployeeName     string               `json:"employee_name"`
	PeriodMonth      int                  `json:"period_month"`
	PeriodYear       int                  `json:"period_year"`
	Method           string               `json:"attendance_marking_method"`
	Criteria         CriteriaRequest      `json:"criteria"`
	BaseSalary       decimal.Decimal      `json:"base_salary"`
	TotalWorkingDays int                  `json:"total_working_days"`
	PerDaySalary     decimal.Decimal      `json:"per_day_salary"`
	Attendance       *AttendanceBreakdown `json:"attendance,omitempty"`
	Hours            *HoursBreakdown      `json:"hours,omitempty"`
	Deductions       DeductionBreakdown   `json:"deductions"`
	Additions        *AdditionBreakdown   `json:"additions,omitempty"`
	TotalDeductions  decimal.Decimal      `json:"total_deductions"`
	TotalAdditions   decimal.Decimal      `json:"total_additions"`
	NetSalary        decimal.Decimal      `json:"net_salary"`
	Status           string               `json:"status"`
	CalculatedBy     *string              `json:"calculated_by,omitempty"`
	CalculatedAt     string               `json:"calculated_at"`
}

type BulkSummaryResponse struct {
	TotalEmployees int             `json:"total_employees"`
	Calculated     int             `json:"calculated"`
	Errors         int             `json:"errors"`
	TotalNetSalary decimal.Decimal `json:"total_net_salary"`
}

type BulkResultResponse struct {
	Summary BulkSummaryResponse    `json:"summary"`
	Results []SalaryResultResponse `json:"results"`
	Errors  []BulkError            `json:"errors"`
}

func NewSalaryResultResponse(r SalaryResult) SalaryResultResponse {
	resp := SalaryResultResponse{
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		PeriodMonth:      r.PeriodMonth,
		PeriodYear:       r.PeriodYear,
		Method:           string(r.Method),
		Criteria:         r.Criteria,
		BaseSalary:       r.BaseSalary,
		TotalWorkingDays: r.TotalWorkingDays,
		PerDaySalary:     r.PerDaySalary,
		Attendance:       r.Attendance,
		Hours:            r.Hours,
		Deductions:       r.Deductions,
		Additions:        r.Additions,
		TotalDeductions:  r.TotalDeductions,
		TotalAdditions:   r.TotalAdditions,
		NetSalary:        r.NetSalary,
		Status:           string(r.Status),
		CalculatedBy:     r.CalculatedBy,
		CalculatedAt:     r.CalculatedAt.Format(time.RFC3339),
	}
	if r.ID != "" {
		id := r.ID
		resp.ID = &id
	}
	return resp
}

func NewSalaryResultResponses(results []SalaryResult) []SalaryResultResponse {
	out := make([]SalaryResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, NewSalaryResultResponse(r))
	}
	return out
}

func NewBulkResultResponse(b BulkResult) BulkResultResponse {
	errs := b.Errors
	if errs == nil {
		errs = []BulkError{}
	}
	return BulkResultResponse{
		Summary: BulkSummaryResponse{
			TotalEmployees: b.Summary.TotalEmployees,
			Calculated:     b.Summary.Calculated,
			Errors:         b.Summary.Errors,
			TotalNetSalary: b.Summary.TotalNetSalary,
		},
		Results: NewSalaryResultResponses(b.Results),
		Errors:  errs,
	}
}
