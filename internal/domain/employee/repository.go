package employee

import "context"

// EmployeeRepository is the read-only view of the HR directory used by payroll.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns active employees, optionally limited to one department.
	ListActive(ctx context.Context, departmentID *string) ([]Employee, error)
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)
}
