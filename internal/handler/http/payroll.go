package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-salary-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-salary-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type PayrollHandler interface {
	// Single employee
	Preview(w http.ResponseWriter, r *http.Request)
	Calculate(w http.ResponseWriter, r *http.Request)

	// All active employees
	PreviewAll(w http.ResponseWriter, r *http.Request)
	CalculateAll(w http.ResponseWriter, r *http.Request)

	// Persisted results
	GetResult(w http.ResponseWriter, r *http.Request)
	ListResults(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	salaryService payroll.SalaryService
}

func NewPayrollHandler(salaryService payroll.SalaryService) PayrollHandler {
	return &payrollHandlerImpl{salaryService: salaryService}
}

// callerID returns the user_id claim of the verified token, if any.
func callerID(r *http.Request) *string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil
	}
	return &userID
}

func periodFromQuery(r *http.Request) (month, year int) {
	// unparsable values stay zero and fail validation in the service
	month, _ = strconv.Atoi(r.URL.Query().Get("month"))
	year, _ = strconv.Atoi(r.URL.Query().Get("year"))
	return month, year
}

// ========== SINGLE ==========

func (h *payrollHandlerImpl) decodeSingle(w http.ResponseWriter, r *http.Request) (payroll.CalculateSalaryRequest, bool) {
	var req payroll.CalculateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("calculate salary decode error", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return req, false
	}
	req.CalculatedBy = callerID(r)
	return req, true
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSingle(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.PreviewSingle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSalaryResultResponse(result))
}

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSingle(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.CommitSingle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary calculated", payroll.NewSalaryResultResponse(result))
}

// ========== BULK ==========

func (h *payrollHandlerImpl) decodeAll(w http.ResponseWriter, r *http.Request) (payroll.CalculateAllSalariesRequest, bool) {
	var req payroll.CalculateAllSalariesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("calculate all salaries decode error", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return req, false
	}
	req.CalculatedBy = callerID(r)
	return req, true
}

func (h *payrollHandlerImpl) PreviewAll(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAll(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.PreviewAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewBulkResultResponse(result))
}

func (h *payrollHandlerImpl) CalculateAll(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAll(w, r)
	if !ok {
		return
	}

	result, err := h.salaryService.CommitAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaries calculated", payroll.NewBulkResultResponse(result))
}

// ========== RESULTS ==========

func (h *payrollHandlerImpl) GetResult(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	month, year := periodFromQuery(r)

	result, err := h.salaryService.GetResult(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSalaryResultResponse(result))
}

func (h *payrollHandlerImpl) ListResults(w http.ResponseWriter, r *http.Request) {
	month, year := periodFromQuery(r)

	results, err := h.salaryService.ListResults(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSalaryResultResponses(results))
}
