package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/attendhq/payroll-engine-go/internal/handler/http/response"
	"github.com/attendhq/payroll-engine-go/internal/service/export"
	"github.com/attendhq/payroll-engine-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payslip
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
	ExportPayslip(w http.ResponseWriter, r *http.Request)

	// Policy
	GetPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)

	// Deduction rules
	CreateBandRule(w http.ResponseWriter, r *http.Request)
	ListBandRules(w http.ResponseWriter, r *http.Request)
	UpdateBandRule(w http.ResponseWriter, r *http.Request)
	DeleteBandRule(w http.ResponseWriter, r *http.Request)

	// Penalties
	CreatePenalty(w http.ResponseWriter, r *http.Request)
	ListPenalties(w http.ResponseWriter, r *http.Request)
	UpdatePenaltyStatus(w http.ResponseWriter, r *http.Request)
	DeletePenalty(w http.ResponseWriter, r *http.Request)

	// Bonuses
	CreateBonus(w http.ResponseWriter, r *http.Request)
	ListBonuses(w http.ResponseWriter, r *http.Request)
	UpdateBonusStatus(w http.ResponseWriter, r *http.Request)
	DeleteBonus(w http.ResponseWriter, r *http.Request)

	// Delay permissions
	CreateDelayPermission(w http.ResponseWriter, r *http.Request)
	UpdateDelayPermissionStatus(w http.ResponseWriter, r *http.Request)
	DeleteDelayPermission(w http.ResponseWriter, r *http.Request)

	// Simulation
	RunSimulation(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PAYSLIP ==========

func payslipRequestFromQuery(r *http.Request) (domain.PayslipRequest, error) {
	req := domain.PayslipRequest{EmployeeID: chi.URLParam(r, "id")}

	query := r.URL.Query()
	req.Year, _ = strconv.Atoi(query.Get("year"))
	req.Month, _ = strconv.Atoi(query.Get("month"))

	if raw := query.Get("from_day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("from_day must be a number")
		}
		req.FromDay = &day
	}
	if raw := query.Get("to_day"); raw != "" {
		day, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("to_day must be a number")
		}
		req.ToDay = &day
	}

	return req, nil
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetPayslips(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportPayslip(w http.ResponseWriter, r *http.Request) {
	req, err := payslipRequestFromQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	f, err := export.BuildPayslipWorkbook(result)
	if err != nil {
		response.InternalServerError(w, "Failed to build payslip workbook")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("payslip_%s_%04d-%02d.xlsx", result.EmployeeID, result.PeriodYear, result.PeriodMonth)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		// Headers already sent; nothing sensible left to return.
		return
	}
}

// ========== POLICY ==========

func (h *payrollHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== DEDUCTION RULES ==========

func (h *payrollHandlerImpl) CreateBandRule(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBandRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateBandRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction rule created", result)
}

func (h *payrollHandlerImpl) ListBandRules(w http.ResponseWriter, r *http.Request) {
	kind := domain.RuleKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = domain.RuleKindLate
	}
	if kind != domain.RuleKindLate && kind != domain.RuleKindEarlyCheckout {
		response.BadRequest(w, "kind must be 'late' or 'early_checkout'", nil)
		return
	}

	result, err := h.payrollService.ListBandRules(r.Context(), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateBandRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rule ID is required", nil)
		return
	}

	var req domain.CreateBandRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateBandRule(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteBandRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Rule ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteBandRule(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction rule deleted", nil)
}

// ========== PENALTIES ==========

func (h *payrollHandlerImpl) CreatePenalty(w http.ResponseWriter, r *http.Request) {
	h.createAdjustment(w, r, domain.DirectionDebit, "Penalty created")
}

func (h *payrollHandlerImpl) ListPenalties(w http.ResponseWriter, r *http.Request) {
	h.listAdjustments(w, r, domain.DirectionDebit)
}

func (h *payrollHandlerImpl) UpdatePenaltyStatus(w http.ResponseWriter, r *http.Request) {
	h.updateAdjustmentStatus(w, r, "Penalty status updated")
}

func (h *payrollHandlerImpl) DeletePenalty(w http.ResponseWriter, r *http.Request) {
	h.deleteAdjustment(w, r, "Penalty deleted")
}

// ========== BONUSES ==========

func (h *payrollHandlerImpl) CreateBonus(w http.ResponseWriter, r *http.Request) {
	h.createAdjustment(w, r, domain.DirectionCredit, "Bonus created")
}

func (h *payrollHandlerImpl) ListBonuses(w http.ResponseWriter, r *http.Request) {
	h.listAdjustments(w, r, domain.DirectionCredit)
}

func (h *payrollHandlerImpl) UpdateBonusStatus(w http.ResponseWriter, r *http.Request) {
	h.updateAdjustmentStatus(w, r, "Bonus status updated")
}

func (h *payrollHandlerImpl) DeleteBonus(w http.ResponseWriter, r *http.Request) {
	h.deleteAdjustment(w, r, "Bonus deleted")
}

func (h *payrollHandlerImpl) createAdjustment(w http.ResponseWriter, r *http.Request, direction domain.Direction, message string) {
	var req domain.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Direction = string(direction)

	result, err := h.payrollService.CreateAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, message, result)
}

func (h *payrollHandlerImpl) listAdjustments(w http.ResponseWriter, r *http.Request, direction domain.Direction) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	result, err := h.payrollService.ListAdjustments(r.Context(), employeeID, direction)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (r updateStatusRequest) parse() (domain.AdjustmentStatus, bool) {
	switch domain.AdjustmentStatus(r.Status) {
	case domain.AdjustmentStatusApproved, domain.AdjustmentStatusRejected, domain.AdjustmentStatusPending:
		return domain.AdjustmentStatus(r.Status), true
	}
	return "", false
}

func (h *payrollHandlerImpl) updateAdjustmentStatus(w http.ResponseWriter, r *http.Request, message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "ID is required", nil)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	status, ok := req.parse()
	if !ok {
		response.BadRequest(w, "status must be pending, approved or rejected", nil)
		return
	}

	if err := h.payrollService.UpdateAdjustmentStatus(r.Context(), id, status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

func (h *payrollHandlerImpl) deleteAdjustment(w http.ResponseWriter, r *http.Request, message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteAdjustment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ========== DELAY PERMISSIONS ==========

func (h *payrollHandlerImpl) CreateDelayPermission(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDelayPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateDelayPermission(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Delay permission created", result)
}

func (h *payrollHandlerImpl) UpdateDelayPermissionStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Permission ID is required", nil)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	status, ok := req.parse()
	if !ok {
		response.BadRequest(w, "status must be pending, approved or rejected", nil)
		return
	}

	if err := h.payrollService.UpdateDelayPermissionStatus(r.Context(), id, status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Delay permission status updated", nil)
}

func (h *payrollHandlerImpl) DeleteDelayPermission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Permission ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteDelayPermission(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Delay permission deleted", nil)
}

// ========== SIMULATION ==========

func (h *payrollHandlerImpl) RunSimulation(w http.ResponseWriter, r *http.Request) {
	report, err := h.payrollService.RunSimulation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
