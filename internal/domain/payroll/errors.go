package payroll

import "errors"

var (
	ErrSalaryResultNotFound = errors.New("salary result not found")
	// ErrDataAccess wraps failures of the employee, attendance, leave or salary stores.
	ErrDataAccess = errors.New("payroll data store unavailable")
)
