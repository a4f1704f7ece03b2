package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/employee"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/leave"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

type fakeEmployeeRepo struct {
	employees   []employee.Employee
	departments map[string]bool
	err         error
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if f.err != nil {
		return employee.Employee{}, f.err
	}
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []employee.Employee
	for _, e := range f.employees {
		if e.EmploymentStatus != employee.EmploymentStatusActive {
			continue
		}
		if departmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *departmentID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.departments[departmentID], nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.Record
	err     error
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.Record
	for _, r := range f.records[employeeID] {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves map[string][]leave.Record
	err    error
}

func (f *fakeLeaveRepo) ListApprovedByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []leave.Record
	for _, l := range f.leaves[employeeID] {
		if l.IsApproved() && !l.EndDate.Before(from) && !l.StartDate.After(to) {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeSalaryRepo mirrors the upsert semantics of the SQL stores: the first
// insert keeps its id and created_at, everything else is replaced.
type fakeSalaryRepo struct {
	mu      sync.Mutex
	rows    map[string]payroll.SalaryResult
	upserts int
	err     error
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{rows: make(map[string]payroll.SalaryResult)}
}

func salaryKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s/%04d-%02d", employeeID, year, month)
}

func (f *fakeSalaryRepo) Upsert(ctx context.Context, result payroll.SalaryResult) (payroll.SalaryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return payroll.SalaryResult{}, f.err
	}
	f.upserts++

	key := salaryKey(result.EmployeeID, result.PeriodMonth, result.PeriodYear)
	if existing, ok := f.rows[key]; ok {
		result.ID = existing.ID
		result.CreatedAt = existing.CreatedAt
	} else {
		result.CreatedAt = result.CalculatedAt
	}
	result.UpdatedAt = result.CalculatedAt
	f.rows[key] = result
	return result, nil
}

func (f *fakeSalaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return payroll.SalaryResult{}, f.err
	}
	r, ok := f.rows[salaryKey(employeeID, month, year)]
	if !ok {
		return payroll.SalaryResult{}, payroll.ErrSalaryResultNotFound
	}
	return r, nil
}

func (f *fakeSalaryRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.SalaryResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []payroll.SalaryResult
	for _, r := range f.rows {
		if r.PeriodMonth == month && r.PeriodYear == year {
			out = append(out, r)
		}
	}
	return out, nil
}

// ========== fixtures ==========

type fixture struct {
	employees  *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	leaves     *fakeLeaveRepo
	salaries   *fakeSalaryRepo
	svc        *SalaryServiceImpl
}

func newFixture(emps ...employee.Employee) *fixture {
	f := &fixture{
		employees:  &fakeEmployeeRepo{employees: emps, departments: map[string]bool{}},
		attendance: &fakeAttendanceRepo{records: map[string][]attendance.Record{}},
		leaves:     &fakeLeaveRepo{leaves: map[string][]leave.Record{}},
		salaries:   newFakeSalaryRepo(),
	}
	f.svc = NewSalaryService(f.employees, f.attendance, f.leaves, f.salaries, 2).(*SalaryServiceImpl)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func weekendSchedule() schedule.WorkSchedule {
	return schedule.WorkSchedule{
		CheckInTime:  "09:00",
		CheckOutTime: "17:00",
		DailyHours:   decimal.NewFromInt(8),
		WeeklyOff:    []time.Weekday{time.Saturday, time.Sunday},
	}
}

func newEmployee(id string, base int64) employee.Employee {
	salary := decimal.NewFromInt(base)
	return employee.Employee{
		ID:               id,
		EmployeeCode:     "EMP-" + id,
		FullName:         "Employee " + id,
		EmploymentStatus: employee.EmploymentStatusActive,
		BaseSalary:       &salary,
		Schedule:         weekendSchedule(),
	}
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// monthRecords gives one 8-hour present record per weekday of the month,
// with status overrides keyed by day of month.
func monthRecords(employeeID string, year, month int, overrides map[int]attendance.DayStatus) []attendance.Record {
	var out []attendance.Record
	for d := date(year, month, 1); int(d.Month()) == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		status := attendance.DayStatusPresent
		if s, ok := overrides[d.Day()]; ok {
			status = s
		}
		minutes := 480
		switch status {
		case attendance.DayStatusAbsent:
			minutes = 0
		case attendance.DayStatusHalfDay:
			minutes = 240
		}
		out = append(out, attendance.Record{
			ID:          fmt.Sprintf("%s-%d", employeeID, d.Day()),
			EmployeeID:  employeeID,
			Date:        d,
			Status:      status,
			WorkMinutes: minutes,
		})
	}
	return out
}

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func checkinCriteria(late int) payroll.CriteriaRequest {
	return payroll.CriteriaRequest{
		AttendanceMarkingMethod:     string(payroll.MethodCheckinCheckout),
		LateThreshold:               intPtr(late),
		HalfDayThreshold:            intPtr(0),
		EarlyDepartureThreshold:     intPtr(0),
		LateEarlyDepartureThreshold: intPtr(0),
	}
}

func weeklyCriteria(rate int64) payroll.CriteriaRequest {
	return payroll.CriteriaRequest{
		AttendanceMarkingMethod: string(payroll.MethodWeeklyHours),
		HourlyDeductionRate:     decPtr(rate),
	}
}

func mustCriteria(req payroll.CriteriaRequest) payroll.Criteria {
	c, err := payroll.NewCriteria(req)
	if err != nil {
		panic(err)
	}
	return c
}
