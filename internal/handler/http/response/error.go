package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/auth"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Data access comes first: a store failure may wrap a domain sentinel
	case errors.Is(err, payroll.ErrDataAccess):
		slog.Error("data access failure", "error", err)
		ServiceUnavailable(w, "Data store unavailable, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrEmployeeHasNoBaseSalary):
		UnprocessableEntity(w, err.Error())

	// Schedule domain errors
	case errors.Is(err, schedule.ErrInvalidSchedule):
		UnprocessableEntity(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryResultNotFound):
		NotFound(w, "Salary result not found")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
