package payroll

import "context"

// SalaryRepository persists committed salary results, one row per
// (employee, month, year).
type SalaryRepository interface {
	// Upsert inserts the result or fully replaces the existing row for the
	// same key, and returns the stored row.
	Upsert(ctx context.Context, result SalaryResult) (SalaryResult, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (SalaryResult, error)
	ListByPeriod(ctx context.Context, month, year int) ([]SalaryResult, error)
}
