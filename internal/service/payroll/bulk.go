package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ========== BULK ==========

func (s *SalaryServiceImpl) PreviewAll(ctx context.Context, req payroll.CalculateAllSalariesRequest) (payroll.BulkResult, error) {
	return s.runAll(ctx, req, false)
}

func (s *SalaryServiceImpl) CommitAll(ctx context.Context, req payroll.CalculateAllSalariesRequest) (payroll.BulkResult, error) {
	return s.runAll(ctx, req, true)
}

type outcome struct {
	result payroll.SalaryResult
	err    error
}

// runAll calculates every eligible employee on a bounded worker pool. A failed
// employee is reported in Errors and never stops the others.
func (s *SalaryServiceImpl) runAll(ctx context.Context, req payroll.CalculateAllSalariesRequest, commit bool) (payroll.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkResult{}, err
	}
	criteria, err := payroll.NewCriteria(req.Criteria)
	if err != nil {
		return payroll.BulkResult{}, err
	}

	if req.DepartmentID != nil {
		exists, err := s.employeeRepo.DepartmentExists(ctx, *req.DepartmentID)
		if err != nil {
			return payroll.BulkResult{}, fmt.Errorf("%w: check department %s: %w", payroll.ErrDataAccess, *req.DepartmentID, err)
		}
		if !exists {
			return payroll.BulkResult{}, employee.ErrDepartmentNotFound
		}
	}

	employees, err := s.employeeRepo.ListActive(ctx, req.DepartmentID)
	if err != nil {
		return payroll.BulkResult{}, fmt.Errorf("%w: list active employees: %w", payroll.ErrDataAccess, err)
	}

	outcomes := make([]outcome, len(employees))

	var g errgroup.Group
	g.SetLimit(s.maxWorkers)
	for i, emp := range employees {
		calc := calculation{
			month:           req.PeriodMonth,
			year:            req.PeriodYear,
			criteria:        criteria,
			otherDeductions: req.OtherDeductionsFor(emp.ID),
			calculatedBy:    req.CalculatedBy,
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			if commit {
				outcomes[i].result, outcomes[i].err = s.commit(ctx, emp, calc)
			} else {
				outcomes[i].result, outcomes[i].err = s.calculate(ctx, emp, calc)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return payroll.BulkResult{}, err
	}

	bulk := payroll.BulkResult{
		Summary: payroll.BulkSummary{
			TotalEmployees: len(employees),
			TotalNetSalary: decimal.Zero,
		},
		Results: make([]payroll.SalaryResult, 0, len(employees)),
		Errors:  []payroll.BulkError{},
	}
	for i, o := range outcomes {
		if o.err != nil {
			emp := employees[i]
			slog.Warn("Salary calculation failed for employee",
				"employee_id", emp.ID,
				"period_month", req.PeriodMonth,
				"period_year", req.PeriodYear,
				"error", o.err,
			)
			bulk.Errors = append(bulk.Errors, payroll.BulkError{
				EmployeeID: emp.ID,
				Name:       emp.FullName,
				Message:    o.err.Error(),
			})
			continue
		}
		bulk.Results = append(bulk.Results, o.result)
		bulk.Summary.TotalNetSalary = bulk.Summary.TotalNetSalary.Add(o.result.NetSalary)
	}
	bulk.Summary.Calculated = len(bulk.Results)
	bulk.Summary.Errors = len(bulk.Errors)

	sort.Slice(bulk.Results, func(i, j int) bool { return bulk.Results[i].EmployeeID < bulk.Results[j].EmployeeID })
	sort.Slice(bulk.Errors, func(i, j int) bool { return bulk.Errors[i].EmployeeID < bulk.Errors[j].EmployeeID })

	slog.Info("Salary calculation finished",
		"commit", commit,
		"period_month", req.PeriodMonth,
		"period_year", req.PeriodYear,
		"total_employees", bulk.Summary.TotalEmployees,
		"calculated", bulk.Summary.Calculated,
		"errors", bulk.Summary.Errors,
	)
	return bulk, nil
}
