// Package sqlite stores salary results in a single SQLite file. It backs the
// engine when no PostgreSQL salary store is configured, for example on a
// laptop or in a single-node deployment. Employee, attendance and leave data
// are always read from PostgreSQL.
//
// The schema is created on Open. Decimals are stored as TEXT so that no
// precision is lost, breakdowns as JSON text, and timestamps as RFC 3339.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	_ "github.com/mattn/go-sqlite3"
)

type SalaryStore struct {
	db *sql.DB
}

// Open opens or creates the database at path. Use ":memory:" in tests.
func Open(path string) (*SalaryStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time, and an in-memory database lives on one connection
	db.SetMaxOpenConns(1)

	store := &SalaryStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SalaryStore) Close() error {
	return s.db.Close()
}

func (s *SalaryStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS salary_results (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		period_month INTEGER NOT NULL CHECK (period_month BETWEEN 1 AND 12),
		period_year INTEGER NOT NULL,
		attendance_marking_method TEXT NOT NULL,
		criteria_json TEXT NOT NULL,
		base_salary TEXT NOT NULL,
		total_working_days INTEGER NOT NULL,
		per_day_salary TEXT NOT NULL,
		attendance_json TEXT,
		hours_json TEXT,
		deduction_json TEXT NOT NULL,
		addition_json TEXT,
		total_deductions TEXT NOT NULL,
		total_additions TEXT NOT NULL,
		net_salary TEXT NOT NULL,
		status TEXT NOT NULL,
		calculated_by TEXT,
		calculated_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (employee_id, period_month, period_year)
	);

	CREATE INDEX IF NOT EXISTS idx_salary_results_period
		ON salary_results(period_year, period_month);
	`
	_, err := s.db.Exec(schema)
	return err
}

const salaryColumns = `
	id, employee_id, employee_name, period_month, period_year,
	attendance_marking_method, criteria_json, base_salary, total_working_days, per_day_salary,
	attendance_json, hours_json, deduction_json, addition_json,
	total_deductions, total_additions, net_salary, status,
	calculated_by, calculated_at, created_at, updated_at
`

func encodeOptional[T any](v *T) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeOptional[T any](raw sql.NullString) (*T, error) {
	if !raw.Valid {
		return nil, nil
	}
	v := new(T)
	if err := json.Unmarshal([]byte(raw.String), v); err != nil {
		return nil, err
	}
	return v, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSalaryResult(row rowScanner) (payroll.SalaryResult, error) {
	var (
		res                                     payroll.SalaryResult
		criteriaJSON, deductionJSON             string
		attendanceJSON, hoursJSON, additionJSON sql.NullString
		calculatedBy                            sql.NullString
		calculatedAt, createdAt, updatedAt      string
	)
	err := row.Scan(
		&res.ID, &res.EmployeeID, &res.EmployeeName, &res.PeriodMonth, &res.PeriodYear,
		&res.Method, &criteriaJSON, &res.BaseSalary, &res.TotalWorkingDays, &res.PerDaySalary,
		&attendanceJSON, &hoursJSON, &deductionJSON, &additionJSON,
		&res.TotalDeductions, &res.TotalAdditions, &res.NetSalary, &res.Status,
		&calculatedBy, &calculatedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return payroll.SalaryResult{}, err
	}

	if err := json.Unmarshal([]byte(criteriaJSON), &res.Criteria); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode criteria: %w", err)
	}
	if err := json.Unmarshal([]byte(deductionJSON), &res.Deductions); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode deduction breakdown: %w", err)
	}
	if res.Attendance, err = decodeOptional[payroll.AttendanceBreakdown](attendanceJSON); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode attendance breakdown: %w", err)
	}
	if res.Hours, err = decodeOptional[payroll.HoursBreakdown](hoursJSON); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode hours breakdown: %w", err)
	}
	if res.Additions, err = decodeOptional[payroll.AdditionBreakdown](additionJSON); err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to decode addition breakdown: %w", err)
	}
	if calculatedBy.Valid {
		res.CalculatedBy = &calculatedBy.String
	}

	for _, ts := range []struct {
		raw string
		dst *time.Time
	}{
		{calculatedAt, &res.CalculatedAt},
		{createdAt, &res.CreatedAt},
		{updatedAt, &res.UpdatedAt},
	} {
		if *ts.dst, err = time.Parse(time.RFC3339Nano, ts.raw); err != nil {
			return payroll.SalaryResult{}, fmt.Errorf("failed to parse timestamp %q: %w", ts.raw, err)
		}
	}

	return res, nil
}

// Upsert implements payroll.SalaryRepository. A conflicting row keeps its id
// and created_at; every other column is overwritten.
func (s *SalaryStore) Upsert(ctx context.Context, result payroll.SalaryResult) (payroll.SalaryResult, error) {
	criteriaJSON, err := json.Marshal(result.Criteria)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode criteria: %w", err)
	}
	deductionJSON, err := json.Marshal(result.Deductions)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode deduction breakdown: %w", err)
	}
	attendanceJSON, err := encodeOptional(result.Attendance)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode attendance breakdown: %w", err)
	}
	hoursJSON, err := encodeOptional(result.Hours)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode hours breakdown: %w", err)
	}
	additionJSON, err := encodeOptional(result.Additions)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to encode addition breakdown: %w", err)
	}

	var calculatedBy sql.NullString
	if result.CalculatedBy != nil {
		calculatedBy = sql.NullString{String: *result.CalculatedBy, Valid: true}
	}
	now := formatTime(time.Now())

	query := `
		INSERT INTO salary_results (` + salaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, period_month, period_year) DO UPDATE SET
			employee_name = excluded.employee_name,
			attendance_marking_method = excluded.attendance_marking_method,
			criteria_json = excluded.criteria_json,
			base_salary = excluded.base_salary,
			total_working_days = excluded.total_working_days,
			per_day_salary = excluded.per_day_salary,
			attendance_json = excluded.attendance_json,
			hours_json = excluded.hours_json,
			deduction_json = excluded.deduction_json,
			addition_json = excluded.addition_json,
			total_deductions = excluded.total_deductions,
			total_additions = excluded.total_additions,
			net_salary = excluded.net_salary,
			status = excluded.status,
			calculated_by = excluded.calculated_by,
			calculated_at = excluded.calculated_at,
			updated_at = excluded.updated_at
		RETURNING ` + salaryColumns

	stored, err := scanSalaryResult(s.db.QueryRowContext(ctx, query,
		result.ID, result.EmployeeID, result.EmployeeName, result.PeriodMonth, result.PeriodYear,
		string(result.Method), string(criteriaJSON), result.BaseSalary.String(), result.TotalWorkingDays, result.PerDaySalary.String(),
		attendanceJSON, hoursJSON, string(deductionJSON), additionJSON,
		result.TotalDeductions.String(), result.TotalAdditions.String(), result.NetSalary.String(), string(result.Status),
		calculatedBy, formatTime(result.CalculatedAt), now, now,
	))
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to upsert salary result: %w", err)
	}

	return stored, nil
}

// GetByEmployeePeriod implements payroll.SalaryRepository.
func (s *SalaryStore) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryResult, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salary_results
		WHERE employee_id = ? AND period_month = ? AND period_year = ?
	`

	res, err := scanSalaryResult(s.db.QueryRowContext(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payroll.SalaryResult{}, payroll.ErrSalaryResultNotFound
		}
		return payroll.SalaryResult{}, fmt.Errorf("failed to get salary result: %w", err)
	}

	return res, nil
}

// ListByPeriod implements payroll.SalaryRepository.
func (s *SalaryStore) ListByPeriod(ctx context.Context, month, year int) ([]payroll.SalaryResult, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salary_results
		WHERE period_month = ? AND period_year = ?
		ORDER BY employee_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, month, year)
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

var _ payroll.SalaryRepository = (*SalaryStore)(nil)
