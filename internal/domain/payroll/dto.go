package payroll

import (
	"github.com/attendhq/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYSLIP DTOs ==========

type PayslipRequest struct {
	EmployeeID string `json:"-"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	FromDay    *int   `json:"from_day,omitempty"`
	ToDay      *int   `json:"to_day,omitempty"`
}

func (r *PayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PartialRange reports whether the request asks for a sub-interval of the
// month rather than the whole month.
func (r *PayslipRequest) PartialRange() bool {
	return r.FromDay != nil || r.ToDay != nil
}

type PayslipResponse struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	SalaryMode   SalaryMode  `json:"salary_mode"`
	PeriodYear   int         `json:"period_year"`
	PeriodMonth  int         `json:"period_month"`
	PeriodStart  string      `json:"period_start"`
	PeriodEnd    string      `json:"period_end"`
	WorkedHours  float64     `json:"worked_hours"`
	Calculation  Calculation `json:"calculation"`
}

// ========== POLICY DTOs ==========

type PolicyResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	WorkdaysMode  string           `json:"workdays_mode"`
	FixedWorkdays int              `json:"fixed_workdays"`
	WeeklyOffDays []int            `json:"weekly_off_days"`
	Insurance     *ContributionDTO `json:"insurance,omitempty"`
	Tax           *ContributionDTO `json:"tax,omitempty"`
}

type ContributionDTO struct {
	Type  string          `json:"deduction_type"`
	Value decimal.Decimal `json:"value"`
}

type UpdatePolicyRequest struct {
	WorkdaysMode  *string          `json:"workdays_mode,omitempty"`
	FixedWorkdays *int             `json:"fixed_workdays,omitempty"`
	WeeklyOffDays []int            `json:"weekly_off_days,omitempty"`
	Insurance     *ContributionDTO `json:"insurance,omitempty"`
	Tax           *ContributionDTO `json:"tax,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkdaysMode != nil && *r.WorkdaysMode != string(WorkdaysModeCalendar) && *r.WorkdaysMode != string(WorkdaysModeFixed) {
		errs = append(errs, validator.ValidationError{Field: "workdays_mode", Message: "must be 'calendar' or 'fixed'"})
	}
	if r.FixedWorkdays != nil && (*r.FixedWorkdays < 1 || *r.FixedWorkdays > 31) {
		errs = append(errs, validator.ValidationError{Field: "fixed_workdays", Message: "must be between 1 and 31"})
	}
	for _, d := range r.WeeklyOffDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "weekday must be between 0 (Sunday) and 6 (Saturday)"})
			break
		}
	}
	for field, c := range map[string]*ContributionDTO{"insurance": r.Insurance, "tax": r.Tax} {
		if c == nil {
			continue
		}
		if c.Type != string(DeductionTypeFixed) && c.Type != string(DeductionTypePercent) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "deduction_type must be 'fixed' or 'percent'"})
		}
		if c.Value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "value must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BAND RULE DTOs ==========

type CreateBandRuleRequest struct {
	Kind          string          `json:"kind"`
	Name          string          `json:"name"`
	FromMinutes   int             `json:"from_minutes"`
	ToMinutes     int             `json:"to_minutes"`
	DeductionType string          `json:"deduction_type"`
	Value         decimal.Decimal `json:"value"`
}

func (r *CreateBandRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind != string(RuleKindLate) && r.Kind != string(RuleKindEarlyCheckout) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'late' or 'early_checkout'"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.FromMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "from_minutes", Message: "must be non-negative"})
	}
	if r.ToMinutes <= r.FromMinutes {
		errs = append(errs, validator.ValidationError{Field: "to_minutes", Message: "must be greater than from_minutes"})
	}
	if r.DeductionType != string(DeductionTypeFixed) && r.DeductionType != string(DeductionTypePercent) {
		errs = append(errs, validator.ValidationError{Field: "deduction_type", Message: "must be 'fixed' or 'percent'"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BandRuleResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Name          string          `json:"name"`
	FromMinutes   int             `json:"from_minutes"`
	ToMinutes     int             `json:"to_minutes"`
	DeductionType string          `json:"deduction_type"`
	Value         decimal.Decimal `json:"value"`
}

// ========== ADJUSTMENT DTOs ==========

type CreateAdjustmentRequest struct {
	EmployeeID string          `json:"employee_id"`
	Direction  string          `json:"-"`
	Type       string          `json:"penalty_type"`
	Value      decimal.Decimal `json:"value"`
	Reason     string          `json:"reason"`
	Date       string          `json:"date"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	validTypes := []string{
		string(AdjustmentTypeFixed),
		string(AdjustmentTypeFixedAmount),
		string(AdjustmentTypeDays),
		string(AdjustmentTypeFraction),
		string(AdjustmentTypeSalaryPercent),
	}
	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{Field: "penalty_type", Message: "must be one of fixed, fixed_amount, days, fraction, salary_percent"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Direction  string          `json:"direction"`
	Type       string          `json:"penalty_type"`
	Value      decimal.Decimal `json:"value"`
	Reason     string          `json:"reason,omitempty"`
	Status     string          `json:"status"`
	Date       string          `json:"date"`
}

// ========== DELAY PERMISSION DTOs ==========

type CreateDelayPermissionRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Minutes    int    `json:"minutes"`
}

func (r *CreateDelayPermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.Minutes <= 0 {
		errs = append(errs, validator.ValidationError{Field: "minutes", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DelayPermissionResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Minutes    int    `json:"minutes"`
	Status     string `json:"status"`
}
