package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrEmployeeHasNoBaseSalary = errors.New("employee has no base salary configured")
	ErrInvalidLeaveThreshold   = errors.New("employee leave threshold must be non-negative")
)
