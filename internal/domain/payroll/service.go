package payroll

import "context"

type SalaryService interface {
	// Single employee
	PreviewSingle(ctx context.Context, req CalculateSalaryRequest) (SalaryResult, error)
	CommitSingle(ctx context.Context, req CalculateSalaryRequest) (SalaryResult, error)

	// Bulk
	PreviewAll(ctx context.Context, req CalculateAllSalariesRequest) (BulkResult, error)
	CommitAll(ctx context.Context, req CalculateAllSalariesRequest) (BulkResult, error)

	// Persisted results
	GetResult(ctx context.Context, employeeID string, month, year int) (SalaryResult, error)
	ListResults(ctx context.Context, month, year int) ([]SalaryResult, error)
}
