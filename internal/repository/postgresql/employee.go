package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// employees without a work schedule come back with a zero schedule, which the
// calendar rejects as invalid
const employeeColumns = `
	e.id, e.employee_code, e.full_name, e.department_id, e.employment_status,
	e.base_salary, e.leave_threshold,
	COALESCE(to_char(ws.check_in_time, 'HH24:MI'), ''),
	COALESCE(to_char(ws.check_out_time, 'HH24:MI'), ''),
	COALESCE(ws.daily_hours, 0),
	COALESCE(ws.weekly_off, '{}')
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp       employee.Employee
		weeklyOff []string
	)
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.DepartmentID, &emp.EmploymentStatus,
		&emp.BaseSalary, &emp.LeaveThreshold,
		&emp.Schedule.CheckInTime, &emp.Schedule.CheckOutTime,
		&emp.Schedule.DailyHours, &weeklyOff,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.Schedule.WeeklyOff, err = schedule.ParseWeeklyOff(weeklyOff)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN work_schedules ws ON e.work_schedule_id = ws.id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN work_schedules ws ON e.work_schedule_id = ws.id
		WHERE e.employment_status = $1
		  AND e.deleted_at IS NULL
		  AND ($2::uuid IS NULL OR e.department_id = $2::uuid)
		ORDER BY e.id
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// DepartmentExists implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE id = $1 AND deleted_at IS NULL)`,
		departmentID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department existence: %w", err)
	}

	return exists, nil
}
