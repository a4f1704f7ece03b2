package employee

import (
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	DepartmentID     *string
	EmploymentStatus EmploymentStatus
	BaseSalary       *decimal.Decimal
	LeaveThreshold   int // paid leave days per month before leave counts as absence
	Schedule         schedule.WorkSchedule
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// HasBaseSalary reports whether a positive base salary is configured.
func (e Employee) HasBaseSalary() bool {
	return e.BaseSalary != nil && e.BaseSalary.IsPositive()
}
