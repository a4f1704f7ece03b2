package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/keylock"
	"github.com/cmlabs-hris/hris-salary-engine/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultMaxWorkers = 8

type SalaryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	salaryRepo   payroll.SalaryRepository
	aggregator   *Aggregator
	locks        *keylock.KeyLock
	maxWorkers   int
	now          func() time.Time
}

func NewSalaryService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	salaryRepo payroll.SalaryRepository,
	maxWorkers int,
) payroll.SalaryService {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &SalaryServiceImpl{
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		aggregator:   NewAggregator(attendanceRepo, leaveRepo),
		locks:        keylock.New(),
		maxWorkers:   maxWorkers,
		now:          time.Now,
	}
}

// calculation is one employee's normalized input.
type calculation struct {
	month, year     int
	criteria        payroll.Criteria
	otherDeductions decimal.Decimal
	calculatedBy    *string
}

// ========== SINGLE ==========

func (s *SalaryServiceImpl) PreviewSingle(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryResult, error) {
	emp, calc, err := s.prepareSingle(ctx, req)
	if err != nil {
		return payroll.SalaryResult{}, err
	}
	return s.calculate(ctx, emp, calc)
}

func (s *SalaryServiceImpl) CommitSingle(ctx context.Context, req payroll.CalculateSalaryRequest) (payroll.SalaryResult, error) {
	emp, calc, err := s.prepareSingle(ctx, req)
	if err != nil {
		return payroll.SalaryResult{}, err
	}
	return s.commit(ctx, emp, calc)
}

func (s *SalaryServiceImpl) prepareSingle(ctx context.Context, req payroll.CalculateSalaryRequest) (employee.Employee, calculation, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, calculation{}, err
	}
	criteria, err := payroll.NewCriteria(req.Criteria)
	if err != nil {
		return employee.Employee{}, calculation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, calculation{}, err
		}
		return employee.Employee{}, calculation{}, fmt.Errorf("%w: get employee %s: %w", payroll.ErrDataAccess, req.EmployeeID, err)
	}

	other := decimal.Zero
	if req.OtherDeductions != nil {
		other = *req.OtherDeductions
	}

	return emp, calculation{
		month:           req.PeriodMonth,
		year:            req.PeriodYear,
		criteria:        criteria,
		otherDeductions: other,
		calculatedBy:    req.CalculatedBy,
	}, nil
}

// calculate runs the whole pipeline for one employee without touching the store.
func (s *SalaryServiceImpl) calculate(ctx context.Context, emp employee.Employee, calc calculation) (payroll.SalaryResult, error) {
	if !emp.HasBaseSalary() {
		return payroll.SalaryResult{}, fmt.Errorf("%w: employee %s", employee.ErrEmployeeHasNoBaseSalary, emp.ID)
	}

	period, err := ResolveMonth(calc.year, calc.month, emp.Schedule)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("employee %s: %w", emp.ID, err)
	}

	summary, err := s.aggregator.Aggregate(ctx, emp, period, calc.criteria.Method())
	if err != nil {
		return payroll.SalaryResult{}, err
	}

	result := Compose(emp, period, summary, calc.criteria, calc.otherDeductions)
	result.CalculatedBy = calc.calculatedBy
	result.CalculatedAt = s.now().UTC()
	return result, nil
}

// commit recalculates under the per-key lock and replaces the stored row.
func (s *SalaryServiceImpl) commit(ctx context.Context, emp employee.Employee, calc calculation) (payroll.SalaryResult, error) {
	unlock := s.locks.Lock(fmt.Sprintf("%s/%04d-%02d", emp.ID, calc.year, calc.month))
	defer unlock()

	result, err := s.calculate(ctx, emp, calc)
	if err != nil {
		return payroll.SalaryResult{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("failed to generate salary result id: %w", err)
	}
	result.ID = id.String()
	result.Status = payroll.SalaryStatusCalculated

	stored, err := s.salaryRepo.Upsert(ctx, result)
	if err != nil {
		return payroll.SalaryResult{}, fmt.Errorf("%w: save salary result for employee %s: %w", payroll.ErrDataAccess, emp.ID, err)
	}
	return stored, nil
}

// Compose turns an attendance summary into a salary result. It is pure; the
// returned result has status pending and no id.
func Compose(emp employee.Employee, period Period, summary AttendanceSummary, criteria payroll.Criteria, otherDeductions decimal.Decimal) payroll.SalaryResult {
	base := *emp.BaseSalary
	perDay := PerDaySalary(base, period.TotalWorkingDays())

	result := payroll.SalaryResult{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName,
		PeriodMonth:      period.Month,
		PeriodYear:       period.Year,
		Method:           criteria.Method(),
		Criteria:         criteria.Request(),
		BaseSalary:       base,
		TotalWorkingDays: period.TotalWorkingDays(),
		PerDaySalary:     perDay,
		TotalAdditions:   decimal.Zero,
		Status:           payroll.SalaryStatusPending,
	}

	if policy, ok := criteria.WeeklyHours(); ok {
		hours, deductions := CalculateHoursDeductions(summary, policy, otherDeductions)
		result.Hours = &hours
		result.Deductions = deductions
	} else if policy, ok := criteria.CheckinCheckout(); ok {
		percentage := AttendancePercentage(summary)
		result.Attendance = &payroll.AttendanceBreakdown{
			Present:              summary.Present,
			Absent:               summary.Absent + summary.Missing,
			Late:                 summary.Late,
			HalfDay:              summary.HalfDay,
			EarlyDeparture:       summary.EarlyDeparture,
			LateEarlyDeparture:   summary.LateEarlyDeparture,
			Leave:                summary.Leave,
			Missing:              summary.Missing,
			WeeklyOffWorked:      summary.WeeklyOffWorked,
			WorkedHours:          summary.WorkedHours().Round(2),
			AttendancePercentage: percentage.Round(2),
		}
		result.Deductions = CalculateDeductions(summary, policy, emp.LeaveThreshold, perDay, otherDeductions)

		additions := CalculateAdditions(summary, policy, perDay, emp.Schedule.DailyHours)
		additions.PerfectAttendanceBonus = EvaluateBonus(percentage, policy.Bonus)
		additions.TotalAdditions = additions.TotalAdditions.Add(additions.PerfectAttendanceBonus)
		result.Additions = &additions
		result.TotalAdditions = additions.TotalAdditions
	}

	result.TotalDeductions = result.Deductions.TotalDeductions
	result.NetSalary = base.Sub(result.TotalDeductions).Add(result.TotalAdditions)
	return result
}

// ========== PERSISTED RESULTS ==========

func (s *SalaryServiceImpl) GetResult(ctx context.Context, employeeID string, month, year int) (payroll.SalaryResult, error) {
	if validator.IsEmpty(employeeID) {
		return payroll.SalaryResult{}, validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}
	query := payroll.PeriodQuery{PeriodMonth: month, PeriodYear: year}
	if err := query.Validate(); err != nil {
		return payroll.SalaryResult{}, err
	}

	result, err := s.salaryRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryResultNotFound) {
			return payroll.SalaryResult{}, err
		}
		return payroll.SalaryResult{}, fmt.Errorf("%w: %w", payroll.ErrDataAccess, err)
	}
	return result, nil
}

func (s *SalaryServiceImpl) ListResults(ctx context.Context, month, year int) ([]payroll.SalaryResult, error) {
	query := payroll.PeriodQuery{PeriodMonth: month, PeriodYear: year}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	results, err := s.salaryRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", payroll.ErrDataAccess, err)
	}
	return results, nil
}
