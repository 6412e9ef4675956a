package employee

import (
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	CompanyID    string
	EmployeeCode string
	FullName     string
	HireDate     time.Time
	Status       Status

	// Salary configuration. Exactly one of MonthlySalary/DailyWage is
	// meaningful, selected by SalaryMode.
	SalaryMode    payroll.SalaryMode
	MonthlySalary decimal.Decimal
	DailyWage     decimal.Decimal
	Allowances    decimal.Decimal

	// Flat fallbacks used only when the company has no insurance/tax
	// policy configured. Never prorated.
	SocialInsuranceValue *decimal.Decimal
	IncomeTaxValue       *decimal.Decimal

	// Per-employee working-day overrides.
	CustomWorkdaysEnabled bool
	CustomWorkdays        int
	WeeklyOffDays         []time.Weekday

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusResigned   Status = "resigned"
	StatusTerminated Status = "terminated"
)

// BaseSalaryReference returns the full-month salary figure used for
// percentage-based deductions: the monthly salary in monthly mode, or the
// daily wage times the working-day count in daily mode.
func (e Employee) BaseSalaryReference(workingDaysInMonth int) decimal.Decimal {
	if e.SalaryMode == payroll.SalaryModeDaily {
		return e.DailyWage.Mul(decimal.NewFromInt(int64(workingDaysInMonth)))
	}
	return e.MonthlySalary
}

// DailyRate returns the unit price of one working day. workingDaysInMonth
// is clamped to 1 to keep the division defined.
func (e Employee) DailyRate(workingDaysInMonth int) decimal.Decimal {
	if e.SalaryMode == payroll.SalaryModeDaily {
		return e.DailyWage
	}
	if workingDaysInMonth < 1 {
		workingDaysInMonth = 1
	}
	return e.MonthlySalary.Div(decimal.NewFromInt(int64(workingDaysInMonth)))
}
