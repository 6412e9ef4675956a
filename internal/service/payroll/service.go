package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/attendhq/payroll-engine-go/internal/pkg/database"
	"github.com/attendhq/payroll-engine-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    domain.Repository
	employeeRepo   employee.Repository
	attendanceRepo attendance.Repository
}

type PayrollService interface {
	GetPayslip(ctx context.Context, req domain.PayslipRequest) (domain.PayslipResponse, error)
	GetPayslips(ctx context.Context, req domain.PayslipRequest) ([]domain.PayslipResponse, error)

	GetPolicy(ctx context.Context) (domain.PolicyResponse, error)
	UpdatePolicy(ctx context.Context, req domain.UpdatePolicyRequest) (domain.PolicyResponse, error)

	CreateBandRule(ctx context.Context, req domain.CreateBandRuleRequest) (domain.BandRuleResponse, error)
	ListBandRules(ctx context.Context, kind domain.RuleKind) ([]domain.BandRuleResponse, error)
	UpdateBandRule(ctx context.Context, id string, req domain.CreateBandRuleRequest) (domain.BandRuleResponse, error)
	DeleteBandRule(ctx context.Context, id string) error

	CreateAdjustment(ctx context.Context, req domain.CreateAdjustmentRequest) (domain.AdjustmentResponse, error)
	ListAdjustments(ctx context.Context, employeeID string, direction domain.Direction) ([]domain.AdjustmentResponse, error)
	UpdateAdjustmentStatus(ctx context.Context, id string, status domain.AdjustmentStatus) error
	DeleteAdjustment(ctx context.Context, id string) error

	CreateDelayPermission(ctx context.Context, req domain.CreateDelayPermissionRequest) (domain.DelayPermissionResponse, error)
	UpdateDelayPermissionStatus(ctx context.Context, id string, status domain.AdjustmentStatus) error
	DeleteDelayPermission(ctx context.Context, id string) error

	RunSimulation(ctx context.Context) (SimulationReport, error)
}

func NewPayrollService(
	db *database.DB,
	payrollRepo domain.Repository,
	employeeRepo employee.Repository,
	attendanceRepo attendance.Repository,
) PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== PAYSLIP ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, req domain.PayslipRequest) (domain.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.PayslipResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return domain.PayslipResponse{}, err
	}

	return s.buildPayslip(ctx, companyID, emp, req)
}

// GetPayslips computes the payslip of every active employee in the company
// for one shared period. Per-employee salary-mode and workday overrides
// still apply individually.
func (s *PayrollServiceImpl) GetPayslips(ctx context.Context, req domain.PayslipRequest) ([]domain.PayslipResponse, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return nil, domain.ErrInvalidPeriod
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	slips := make([]domain.PayslipResponse, 0, len(employees))
	for _, emp := range employees {
		empReq := req
		empReq.EmployeeID = emp.ID

		slip, err := s.buildPayslip(ctx, companyID, emp, empReq)
		if err != nil {
			return nil, fmt.Errorf("failed to build payslip for employee %s: %w", emp.ID, err)
		}
		slips = append(slips, slip)
	}

	return slips, nil
}

func (s *PayrollServiceImpl) buildPayslip(ctx context.Context, companyID string, emp employee.Employee, req domain.PayslipRequest) (domain.PayslipResponse, error) {
	policy, err := s.payrollRepo.GetPolicy(ctx, companyID)
	if err != nil {
		if !errors.Is(err, domain.ErrPolicyNotFound) {
			return domain.PayslipResponse{}, err
		}
		policy = domain.DefaultPolicy(companyID)
	}

	partial := req.PartialRange()
	fromDay, toDay := 1, DaysInMonth(req.Year, req.Month)
	if req.FromDay != nil {
		fromDay = *req.FromDay
	}
	if req.ToDay != nil {
		toDay = *req.ToDay
	}
	rng := BuildDateRange(req.Year, req.Month, fromDay, toDay)

	records, err := s.attendanceRepo.ListForRange(ctx, companyID, emp.ID, rng.StartDate, rng.EndDate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	leaveDays, err := s.attendanceRepo.CountApprovedLeaveDays(ctx, companyID, emp.ID, rng.StartDate, rng.EndDate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load leave days: %w", err)
	}

	workingDaysInMonth := EffectiveWorkdays(policy, emp, req.Year, req.Month, leaveDays)
	workingDaysInRange := workingDaysInMonth
	if partial {
		workingDaysInRange = WorkdaysInRange(rng.StartDate, rng.EndDate, workingDaysInMonth)
	}

	lateRules, err := s.payrollRepo.ListBandRules(ctx, companyID, domain.RuleKindLate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load late rules: %w", err)
	}
	earlyRules, err := s.payrollRepo.ListBandRules(ctx, companyID, domain.RuleKindEarlyCheckout)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load early-checkout rules: %w", err)
	}

	penalties, err := s.payrollRepo.ListApprovedAdjustments(ctx, companyID, emp.ID, domain.DirectionDebit, rng.StartDate, rng.EndDate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load penalties: %w", err)
	}
	bonuses, err := s.payrollRepo.ListApprovedAdjustments(ctx, companyID, emp.ID, domain.DirectionCredit, rng.StartDate, rng.EndDate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load bonuses: %w", err)
	}
	permissions, err := s.payrollRepo.ListApprovedDelayPermissions(ctx, companyID, emp.ID, rng.StartDate, rng.EndDate)
	if err != nil {
		return domain.PayslipResponse{}, fmt.Errorf("failed to load delay permissions: %w", err)
	}

	calc := Calculate(CalculationInput{
		Employee:           emp,
		Records:            records,
		Penalties:          penalties,
		Bonuses:            bonuses,
		LateRules:          lateRules,
		EarlyRules:         earlyRules,
		WorkingDaysInMonth: workingDaysInMonth,
		WorkingDaysInRange: workingDaysInRange,
		ApprovedLeaveDays:  leaveDays,
		Permissions:        permissions,
		Insurance:          policy.Insurance,
		Tax:                policy.Tax,
		PartialRange:       partial,
	})

	// The window end is exclusive for hour summation, so extend past the
	// last clamped second to the next midnight.
	worked := WorkedWithin(records, rng.StartDate, rng.EndDate.Add(time.Second))

	return domain.PayslipResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		SalaryMode:   emp.SalaryMode,
		PeriodYear:   req.Year,
		PeriodMonth:  req.Month,
		PeriodStart:  rng.StartDate.Format("2006-01-02"),
		PeriodEnd:    rng.EndDate.Format("2006-01-02"),
		WorkedHours:  worked.Hours(),
		Calculation:  calc,
	}, nil
}

// ========== POLICY ==========

func (s *PayrollServiceImpl) GetPolicy(ctx context.Context) (domain.PolicyResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.PolicyResponse{}, err
	}

	policy, err := s.payrollRepo.GetPolicy(ctx, companyID)
	if err != nil {
		if errors.Is(err, domain.ErrPolicyNotFound) {
			return mapToPolicyResponse(domain.DefaultPolicy(companyID)), nil
		}
		return domain.PolicyResponse{}, err
	}

	return mapToPolicyResponse(policy), nil
}

func (s *PayrollServiceImpl) UpdatePolicy(ctx context.Context, req domain.UpdatePolicyRequest) (domain.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.PolicyResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.PolicyResponse{}, err
	}

	current, err := s.payrollRepo.GetPolicy(ctx, companyID)
	if err != nil {
		if !errors.Is(err, domain.ErrPolicyNotFound) {
			return domain.PolicyResponse{}, err
		}
		current = domain.DefaultPolicy(companyID)
	}

	if req.WorkdaysMode != nil {
		current.WorkdaysMode = domain.WorkdaysMode(*req.WorkdaysMode)
	}
	if req.FixedWorkdays != nil {
		current.FixedWorkdays = *req.FixedWorkdays
	}
	if req.WeeklyOffDays != nil {
		days := make([]time.Weekday, 0, len(req.WeeklyOffDays))
		for _, d := range req.WeeklyOffDays {
			days = append(days, time.Weekday(d))
		}
		current.WeeklyOffDays = days
	}
	if req.Insurance != nil {
		current.Insurance = &domain.ContributionPolicy{
			Type:  domain.DeductionType(req.Insurance.Type),
			Value: req.Insurance.Value,
		}
	}
	if req.Tax != nil {
		current.Tax = &domain.ContributionPolicy{
			Type:  domain.DeductionType(req.Tax.Type),
			Value: req.Tax.Value,
		}
	}

	updated, err := s.payrollRepo.UpsertPolicy(ctx, current)
	if err != nil {
		return domain.PolicyResponse{}, err
	}

	return mapToPolicyResponse(updated), nil
}

// ========== BAND RULES ==========

func (s *PayrollServiceImpl) CreateBandRule(ctx context.Context, req domain.CreateBandRuleRequest) (domain.BandRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.BandRuleResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.BandRuleResponse{}, err
	}

	rule := domain.BandRule{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		Kind:          domain.RuleKind(req.Kind),
		Name:          req.Name,
		FromMinutes:   req.FromMinutes,
		ToMinutes:     req.ToMinutes,
		DeductionType: domain.DeductionType(req.DeductionType),
		Value:         req.Value,
	}

	// Overlap is rejected at save time; the matcher stays defensive anyway.
	// The check and the insert share one transaction so concurrent saves
	// cannot slip an overlapping band past each other.
	var created domain.BandRule
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.payrollRepo.ListBandRules(txCtx, companyID, rule.Kind)
		if err != nil {
			return err
		}
		if err := ValidateBandRuleSet(existing, rule); err != nil {
			return err
		}

		created, err = s.payrollRepo.CreateBandRule(txCtx, rule)
		return err
	})
	if err != nil {
		return domain.BandRuleResponse{}, err
	}

	return mapToBandRuleResponse(created), nil
}

func (s *PayrollServiceImpl) ListBandRules(ctx context.Context, kind domain.RuleKind) ([]domain.BandRuleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.payrollRepo.ListBandRules(ctx, companyID, kind)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BandRuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, mapToBandRuleResponse(r))
	}
	return result, nil
}

func (s *PayrollServiceImpl) UpdateBandRule(ctx context.Context, id string, req domain.CreateBandRuleRequest) (domain.BandRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.BandRuleResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.BandRuleResponse{}, err
	}

	rule := domain.BandRule{
		ID:            id,
		CompanyID:     companyID,
		Kind:          domain.RuleKind(req.Kind),
		Name:          req.Name,
		FromMinutes:   req.FromMinutes,
		ToMinutes:     req.ToMinutes,
		DeductionType: domain.DeductionType(req.DeductionType),
		Value:         req.Value,
	}

	var updated domain.BandRule
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := s.payrollRepo.ListBandRules(txCtx, companyID, rule.Kind)
		if err != nil {
			return err
		}
		if err := ValidateBandRuleSet(existing, rule); err != nil {
			return err
		}

		updated, err = s.payrollRepo.UpdateBandRule(txCtx, rule)
		return err
	})
	if err != nil {
		return domain.BandRuleResponse{}, err
	}

	return mapToBandRuleResponse(updated), nil
}

func (s *PayrollServiceImpl) DeleteBandRule(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteBandRule(ctx, id, companyID)
}

// ========== PENALTIES / BONUSES ==========

func (s *PayrollServiceImpl) CreateAdjustment(ctx context.Context, req domain.CreateAdjustmentRequest) (domain.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.AdjustmentResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.AdjustmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return domain.AdjustmentResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	adj := domain.Adjustment{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Type:       domain.AdjustmentType(req.Type),
		Direction:  domain.Direction(req.Direction),
		Value:      req.Value,
		Reason:     req.Reason,
		Status:     domain.AdjustmentStatusPending,
		Date:       date,
	}

	created, err := s.payrollRepo.CreateAdjustment(ctx, adj)
	if err != nil {
		return domain.AdjustmentResponse{}, err
	}

	return mapToAdjustmentResponse(created), nil
}

func (s *PayrollServiceImpl) ListAdjustments(ctx context.Context, employeeID string, direction domain.Direction) ([]domain.AdjustmentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.ListAdjustments(ctx, companyID, employeeID, direction)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AdjustmentResponse, 0, len(items))
	for _, item := range items {
		result = append(result, mapToAdjustmentResponse(item))
	}
	return result, nil
}

func (s *PayrollServiceImpl) UpdateAdjustmentStatus(ctx context.Context, id string, status domain.AdjustmentStatus) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.UpdateAdjustmentStatus(ctx, id, companyID, status)
}

func (s *PayrollServiceImpl) DeleteAdjustment(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteAdjustment(ctx, id, companyID)
}

// ========== DELAY PERMISSIONS ==========

func (s *PayrollServiceImpl) CreateDelayPermission(ctx context.Context, req domain.CreateDelayPermissionRequest) (domain.DelayPermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.DelayPermissionResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return domain.DelayPermissionResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return domain.DelayPermissionResponse{}, err
	}

	perm := domain.DelayPermission{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Minutes:    req.Minutes,
		Status:     domain.AdjustmentStatusPending,
	}

	created, err := s.payrollRepo.CreateDelayPermission(ctx, perm)
	if err != nil {
		return domain.DelayPermissionResponse{}, err
	}

	return domain.DelayPermissionResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		Date:       created.Date,
		Minutes:    created.Minutes,
		Status:     string(created.Status),
	}, nil
}

func (s *PayrollServiceImpl) UpdateDelayPermissionStatus(ctx context.Context, id string, status domain.AdjustmentStatus) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.UpdateDelayPermissionStatus(ctx, id, companyID, status)
}

func (s *PayrollServiceImpl) DeleteDelayPermission(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeleteDelayPermission(ctx, id, companyID)
}

// ========== SIMULATION ==========

func (s *PayrollServiceImpl) RunSimulation(ctx context.Context) (SimulationReport, error) {
	if _, _, err := getClaimsFromContext(ctx); err != nil {
		return SimulationReport{}, err
	}

	return RunSimulation(), nil
}

// ========== HELPERS ==========

func mapToPolicyResponse(p domain.Policy) domain.PolicyResponse {
	offDays := make([]int, 0, len(p.WeeklyOffDays))
	for _, d := range p.WeeklyOffDays {
		offDays = append(offDays, int(d))
	}

	resp := domain.PolicyResponse{
		ID:            p.ID,
		CompanyID:     p.CompanyID,
		WorkdaysMode:  string(p.WorkdaysMode),
		FixedWorkdays: p.FixedWorkdays,
		WeeklyOffDays: offDays,
	}
	if p.Insurance != nil {
		resp.Insurance = &domain.ContributionDTO{Type: string(p.Insurance.Type), Value: p.Insurance.Value}
	}
	if p.Tax != nil {
		resp.Tax = &domain.ContributionDTO{Type: string(p.Tax.Type), Value: p.Tax.Value}
	}
	return resp
}

func mapToBandRuleResponse(r domain.BandRule) domain.BandRuleResponse {
	return domain.BandRuleResponse{
		ID:            r.ID,
		Kind:          string(r.Kind),
		Name:          r.Name,
		FromMinutes:   r.FromMinutes,
		ToMinutes:     r.ToMinutes,
		DeductionType: string(r.DeductionType),
		Value:         r.Value,
	}
}

func mapToAdjustmentResponse(a domain.Adjustment) domain.AdjustmentResponse {
	return domain.AdjustmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Direction:  string(a.Direction),
		Type:       string(a.Type),
		Value:      a.Value,
		Reason:     a.Reason,
		Status:     string(a.Status),
		Date:       a.Date.Format("2006-01-02"),
	}
}
