package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryResultColumns = `
	id, employee_id, employee_name, period_month, period_year,
	attendance_marking_method, criteria, base_salary, total_working_days, per_day_salary,
	attendance_breakdown, hours_breakdown, deduction_breakdown, addition_breakdown,
	total_deductions, total_additions, net_salary, status,
	calculated_by, calculated_at, created_at, updated_at
`

// nullableJSON encodes v as JSONB, or SQL NULL when v is nil.
func nullableJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanSalaryResult(row pgx.Row) (payroll.SalaryResult, error) {
	var (
		res                                        payroll.SalaryResult
		criteriaBytes, attendanceBytes, hoursBytes []byte
		deductionBytes, additionBytes              []byte
	)
	err := row.Scan(
		&res.ID, &res.EmployeeID, &res.EmployeeName, &res.PeriodMonth, &res.PeriodYear,
		&res.Method, &criteriaBytes, &res.BaseSalary, &res.TotalWorkingDays, &res.PerDaySalary,
		&attendanceBytes, &hoursBytes, &deductionBytes, &additionBytes,
		&res.TotalDeductions, &res.TotalAdditions, &res.NetSalary, &res.Status,
		&res.CalculatedBy, &res.CalculatedAt, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return payroll.SalaryResult{}, err
	}

	if err := json.Unmarshal(criteriaBytes, &res.Criteria); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode criteria: %w", err)
	}
	if err := json.Unmarshal(deductionBytes, &res.Deductions); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode deduction breakdown: %w", err)
	}
	if attendanceBytes != nil {
		res.Attendance = &payroll.AttendanceBreakdown{}
		if err := json.Unmarshal(attendanceBytes, res.Attendance); err != nil {
			return payroll.SalaryResult{}, fmt.Errorf("failed to decode attendance breakdown: %w", err)
		}
	}
	if hoursBytes != nil {
		res.Hours = &payroll.HoursBreakdown{}
		if err := json.Unmarshal(hoursBytes, res.Hours); err != nil {
			return payroll.SalaryResult{}, fmt.Errorf("failed to decode hours breakdown: %w", err)
		}
	}
	if additionBytes != nil {
		res.Additions = &payroll.AdditionBreakdown{}
		if err := json.Unmarshal(additionBytes, res.Additions); err != nil {
			return payroll.SalaryResult{}, fmt.Errorf("failed to decode addition breakdown: %w", err)
		}
	}

	return res, nil
}

// Upsert implements payroll.SalaryRepository. A conflicting row keeps its id
// and created_at; every other column is overwritten.
func (r *salaryRepository) Upsert(ctx context.Context, result payroll.SalaryResult) (payroll.SalaryResult, error) {
	q := GetQuerier(ctx, r.db)

	criteriaJSON, err := json.Marshal(result.Criteria)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode criteria: %w", err)
	}
	deductionJSON, err := json.Marshal(result.Deductions)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode deduction breakdown: %w", err)
	}
	attendanceJSON, err := nullableJSON(result.Attendance)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode attendance breakdown: %w", err)
	}
	hoursJSON, err := nullableJSON(result.Hours)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode hours breakdown: %w", err)
	}
	additionJSON, err := nullableJSON(result.Additions)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode addition breakdown: %w", err)
	}

	query := `
		INSERT INTO salary_results (
			id, employee_id, employee_name, period_month, period_year,
			attendance_marking_method, criteria, base_salary, total_working_days, per_day_salary,
			attendance_breakdown, hours_breakdown, deduction_breakdown, addition_breakdown,
			total_deductions, total_additions, net_salary, status,
			calculated_by, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (employee_id, period_month, period_year) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			attendance_marking_method = EXCLUDED.attendance_marking_method,
			criteria = EXCLUDED.criteria,
			base_salary = EXCLUDED.base_salary,
			total_working_days = EXCLUDED.total_working_days,
			per_day_salary = EXCLUDED.per_day_salary,
			attendance_breakdown = EXCLUDED.attendance_breakdown,
			hours_breakdown = EXCLUDED.hours_breakdown,
			deduction_breakdown = EXCLUDED.deduction_breakdown,
			addition_breakdown = EXCLUDED.addition_breakdown,
			total_deductions = EXCLUDED.total_deductions,
			total_additions = EXCLUDED.total_additions,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			calculated_by = EXCLUDED.calculated_by,
			calculated_at = EXCLUDED.calculated_at,
			updated_at = NOW()
		RETURNING ` + salaryResultColumns

	stored, err := scanSalaryResult(q.QueryRow(ctx, query,
		result.ID, result.EmployeeID, result.EmployeeName, result.PeriodMonth, result.PeriodYear,
		result.Method, criteriaJSON, result.BaseSalary, result.TotalWorkingDays, result.PerDaySalary,
		attendanceJSON, hoursJSON, deductionJSON, additionJSON,
		result.TotalDeductions, result.TotalAdditions, result.NetSalary, result.Status,
		result.CalculatedBy, result.CalculatedAt,
	))
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to upsert salary result: %w", err)
	}

	return stored, nil
}

// GetByEmployeePeriod implements payroll.SalaryRepository.
func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryResult, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryResultColumns + `
		FROM salary_results
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
	`

	res, err := scanSalaryResult(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryResult{}, payroll.ErrSalaryResultNotFound
		}
		return payroll.SalaryResult{}, fmt.Errorf("failed to get salary result: %w", err)
	}

	return res, nil
}

// ListByPeriod implements payroll.SalaryRepository.
func (r *salaryRepository) ListByPeriod(ctx context.Context, month, year int) ([]payroll.SalaryResult, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryResultColumns + `
		FROM salary_results
		WHERE period_month = $1 AND period_year = $2
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary results: %w", err)
	}
	defer rows.Close()

	results := []payroll.SalaryResult{}
	for rows.Next() {
		res, err := scanSalaryResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary results: %w", err)
	}

	return results, nil
}
