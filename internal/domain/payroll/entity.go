package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryMode enum
type SalaryMode string

const (
	SalaryModeMonthly SalaryMode = "monthly"
	SalaryModeDaily   SalaryMode = "daily"
)

// RuleKind enum - which attendance event a band rule applies to
type RuleKind string

const (
	RuleKindLate          RuleKind = "late"
	RuleKindEarlyCheckout RuleKind = "early_checkout"
)

// DeductionType enum for band rules and contribution policies
type DeductionType string

const (
	DeductionTypeFixed   DeductionType = "fixed"
	DeductionTypePercent DeductionType = "percent"
)

// BandRule maps a lateness/early-checkout minute band [FromMinutes, ToMinutes)
// to a deduction. Bands within one rule set are kept non-overlapping by the
// settings layer; the engine still resolves overlap by taking the highest
// resulting deduction.
type BandRule struct {
	ID            string
	CompanyID     string
	Kind          RuleKind
	Name          string
	FromMinutes   int
	ToMinutes     int
	DeductionType DeductionType
	Value         decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Matches reports whether the given minute count falls inside the band.
func (r BandRule) Matches(minutes int) bool {
	return minutes >= r.FromMinutes && minutes < r.ToMinutes
}

// AdjustmentType enum - how a penalty/bonus value converts to currency
type AdjustmentType string

const (
	AdjustmentTypeFixed         AdjustmentType = "fixed"
	AdjustmentTypeFixedAmount   AdjustmentType = "fixed_amount"
	AdjustmentTypeDays          AdjustmentType = "days"
	AdjustmentTypeFraction      AdjustmentType = "fraction"
	AdjustmentTypeSalaryPercent AdjustmentType = "salary_percent"
)

// Direction enum - penalties debit the employee, bonuses credit them
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// AdjustmentStatus enum
type AdjustmentStatus string

const (
	AdjustmentStatusPending  AdjustmentStatus = "pending"
	AdjustmentStatusApproved AdjustmentStatus = "approved"
	AdjustmentStatusRejected AdjustmentStatus = "rejected"
)

// Adjustment - a penalty or bonus. Penalties and bonuses share one shape;
// Direction carries the sign explicitly rather than leaving it to the
// call site.
type Adjustment struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Type       AdjustmentType
	Direction  Direction
	Value      decimal.Decimal
	Reason     string
	Status     AdjustmentStatus
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DelayPermission - an approved request forgiving up to Minutes of lateness
// on one specific date. Date is matched by exact "2006-01-02" string against
// the attendance record's check-in date.
type DelayPermission struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Date       string
	Minutes    int
	Status     AdjustmentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorkdaysMode enum - how the monthly working-day base count is derived
type WorkdaysMode string

const (
	WorkdaysModeCalendar WorkdaysMode = "calendar"
	WorkdaysModeFixed    WorkdaysMode = "fixed"
)

// ContributionPolicy - company-wide insurance or tax policy. When present it
// overrides the employee's stored flat value.
type ContributionPolicy struct {
	Type  DeductionType
	Value decimal.Decimal
}

// Policy - company payroll configuration consumed by the engine. Passed in
// explicitly; the engine reads no ambient state.
type Policy struct {
	ID            string
	CompanyID     string
	WorkdaysMode  WorkdaysMode
	FixedWorkdays int
	WeeklyOffDays []time.Weekday
	Insurance     *ContributionPolicy
	Tax           *ContributionPolicy
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultPolicy returns the configuration used when a company has not saved
// payroll settings yet.
func DefaultPolicy(companyID string) Policy {
	return Policy{
		CompanyID:     companyID,
		WorkdaysMode:  WorkdaysModeCalendar,
		WeeklyOffDays: []time.Weekday{time.Sunday},
	}
}

// DateRange - a resolved calculation window, clamped to valid days of its
// month. Shared by the interval aggregator and the assembler.
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
	FromDay   int
	ToDay     int
}

// LateDayDetail - per-day lateness breakdown kept for audit/display.
type LateDayDetail struct {
	Date              string          `json:"date"`
	RawLateMinutes    int             `json:"rawLateMinutes"`
	PermissionMinutes int             `json:"permissionMinutes"`
	NetLateMinutes    int             `json:"netLateMinutes"`
	RuleName          *string         `json:"ruleName,omitempty"`
	Deduction         decimal.Decimal `json:"deduction"`
}

// AdjustmentDetail - per-item penalty/bonus breakdown.
type AdjustmentDetail struct {
	ID     string          `json:"id"`
	Type   AdjustmentType  `json:"penalty_type"`
	Value  decimal.Decimal `json:"value"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
	Date   string          `json:"date"`
}

// CalculationMetadata carries the full breakdown behind a payslip's totals.
type CalculationMetadata struct {
	WorkingDaysInMonth     int                `json:"workingDaysInMonth"`
	WorkingDaysInRange     int                `json:"workingDaysInRange"`
	PresentDays            int                `json:"presentDays"`
	AbsenceDays            int                `json:"absenceDays"`
	LateDays               int                `json:"lateDays"`
	DailyRate              decimal.Decimal    `json:"dailyRate"`
	TotalPermissionMinutes int                `json:"totalPermissionMinutes"`
	IsPartialRange         bool               `json:"isPartialRange"`
	LateDayDetails         []LateDayDetail    `json:"lateDayDetails"`
	PenaltyDetails         []AdjustmentDetail `json:"penaltyDetails"`
	BonusDetails           []AdjustmentDetail `json:"bonusDetails"`
}

// Calculation - the assembled payslip. Constructed once per calculation
// call, never mutated afterwards. Field names are the wire contract shared
// with the payslip view and the export renderers.
type Calculation struct {
	BaseSalary             decimal.Decimal     `json:"baseSalary"`
	BasePayForRange        decimal.Decimal     `json:"basePayForRange"`
	AllowancesAmount       decimal.Decimal     `json:"allowancesAmount"`
	GrossSalary            decimal.Decimal     `json:"grossSalary"`
	OvertimeAmount         decimal.Decimal     `json:"overtimeAmount"`
	BonusesAmount          decimal.Decimal     `json:"bonusesAmount"`
	AbsenceDeduction       decimal.Decimal     `json:"absenceDeduction"`
	LatenessDeduction      decimal.Decimal     `json:"latenessDeduction"`
	EarlyCheckoutDeduction decimal.Decimal     `json:"earlyCheckoutDeduction"`
	PenaltiesDeduction     decimal.Decimal     `json:"penaltiesDeduction"`
	SocialInsurance        decimal.Decimal     `json:"socialInsurance"`
	IncomeTax              decimal.Decimal     `json:"incomeTax"`
	OtherDeductions        decimal.Decimal     `json:"otherDeductions"`
	TotalDeductions        decimal.Decimal     `json:"totalDeductions"`
	NetSalary              decimal.Decimal     `json:"netSalary"`
	Metadata               CalculationMetadata `json:"metadata"`
}
