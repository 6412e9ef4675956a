package payroll

import (
	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// CalculationInput is everything the assembler needs, gathered by the
// caller. Penalties, bonuses and permissions must already be filtered to
// approved items within the requested range.
type CalculationInput struct {
	Employee           employee.Employee
	Records            []attendance.Record
	Penalties          []domain.Adjustment
	Bonuses            []domain.Adjustment
	LateRules          []domain.BandRule
	EarlyRules         []domain.BandRule
	WorkingDaysInMonth int
	WorkingDaysInRange int
	ApprovedLeaveDays  int
	Permissions        []domain.DelayPermission
	Insurance          *domain.ContributionPolicy
	Tax                *domain.ContributionPolicy
	PartialRange       bool
}

// Calculate assembles a payslip from raw attendance and configuration. It
// is pure arithmetic: no I/O, no errors. Malformed inputs (negative day
// counts, empty slices) degrade to zero-valued lines instead of failing,
// so one bad employee record cannot abort a batch run.
//
// Present days count every passed-in record, including open sessions that
// contribute no worked hours. The two treatments intentionally differ; see
// WorkedWithin for the hour-summation side.
func Calculate(in CalculationInput) domain.Calculation {
	workingDaysInMonth := in.WorkingDaysInMonth
	if workingDaysInMonth < 1 {
		workingDaysInMonth = 1
	}

	emp := in.Employee
	dailyRate := emp.DailyRate(workingDaysInMonth)
	presentDays := len(in.Records)
	presentDaysDec := decimal.NewFromInt(int64(presentDays))

	// Full-month reference salary, computed regardless of range mode. All
	// percentage-based deductions key off this figure.
	baseSalary := emp.BaseSalaryReference(workingDaysInMonth)

	basePayForRange := dailyRate.Mul(presentDaysDec)
	allowancesForRange := emp.Allowances
	if emp.SalaryMode == domain.SalaryModeMonthly {
		allowancesForRange = emp.Allowances.
			Div(decimal.NewFromInt(int64(workingDaysInMonth))).
			Mul(presentDaysDec)
	}

	// Per-day lateness, netted against same-date approved permissions
	// before rule matching.
	permByDate := make(map[string]int, len(in.Permissions))
	totalPermissionMinutes := 0
	for _, perm := range in.Permissions {
		permByDate[perm.Date] += perm.Minutes
		totalPermissionMinutes += perm.Minutes
	}

	latenessDeduction := decimal.Zero
	lateDays := 0
	var lateDetails []domain.LateDayDetail
	for _, rec := range in.Records {
		if rec.LateMinutes <= 0 {
			continue
		}
		permMinutes := permByDate[rec.DateKey()]
		netLate := NetLateMinutes(rec.LateMinutes, permMinutes)

		deduction := decimal.Zero
		var ruleName *string
		if netLate > 0 {
			var rule *domain.BandRule
			deduction, rule = BandDeduction(netLate, dailyRate, in.LateRules)
			if rule != nil {
				name := rule.Name
				ruleName = &name
			}
			lateDays++
		}

		latenessDeduction = latenessDeduction.Add(deduction)
		lateDetails = append(lateDetails, domain.LateDayDetail{
			Date:              rec.DateKey(),
			RawLateMinutes:    rec.LateMinutes,
			PermissionMinutes: permMinutes,
			NetLateMinutes:    netLate,
			RuleName:          ruleName,
			Deduction:         deduction,
		})
	}

	// Early checkout uses its own independently configured rule set and no
	// permission netting.
	earlyDeduction := decimal.Zero
	for _, rec := range in.Records {
		if rec.EarlyLeaveMinutes <= 0 {
			continue
		}
		deduction, _ := BandDeduction(rec.EarlyLeaveMinutes, dailyRate, in.EarlyRules)
		earlyDeduction = earlyDeduction.Add(deduction)
	}

	penaltiesDeduction, penaltyDetails := sumAdjustments(in.Penalties, dailyRate, baseSalary)
	bonusesAmount, bonusDetails := sumAdjustments(in.Bonuses, dailyRate, baseSalary)

	// Range-mode branch: partial ranges pay strictly for attended days and
	// waive the absence deduction; full months grant monthly-mode employees
	// their whole entitlement and charge absence separately.
	var grossSalary decimal.Decimal
	absenceDays := 0
	absenceDeduction := decimal.Zero
	if in.PartialRange {
		grossSalary = basePayForRange.Add(allowancesForRange)
	} else {
		if emp.SalaryMode == domain.SalaryModeMonthly {
			grossSalary = baseSalary.Add(emp.Allowances)
		} else {
			grossSalary = basePayForRange.Add(allowancesForRange)
		}

		absenceDays = in.WorkingDaysInRange - presentDays - in.ApprovedLeaveDays
		if absenceDays < 0 {
			absenceDays = 0
		}
		// Daily-mode employees are only paid for days worked, so absence
		// never turns into a deduction for them.
		if emp.SalaryMode == domain.SalaryModeMonthly {
			absenceDeduction = decimal.NewFromInt(int64(absenceDays)).Mul(dailyRate)
		}
	}

	insurance := contributionAmount(in.Insurance, emp.SocialInsuranceValue, baseSalary, emp.SalaryMode, in.PartialRange, presentDays, workingDaysInMonth)
	incomeTax := contributionAmount(in.Tax, emp.IncomeTaxValue, baseSalary, emp.SalaryMode, in.PartialRange, presentDays, workingDaysInMonth)

	overtimeAmount := decimal.Zero
	otherDeductions := decimal.Zero

	totalDeductions := absenceDeduction.
		Add(latenessDeduction).
		Add(earlyDeduction).
		Add(penaltiesDeduction).
		Add(insurance).
		Add(incomeTax).
		Add(otherDeductions)

	netSalary := grossSalary.Add(overtimeAmount).Add(bonusesAmount).Sub(totalDeductions)

	return domain.Calculation{
		BaseSalary:             baseSalary,
		BasePayForRange:        basePayForRange,
		AllowancesAmount:       allowancesForRange,
		GrossSalary:            grossSalary,
		OvertimeAmount:         overtimeAmount,
		BonusesAmount:          bonusesAmount,
		AbsenceDeduction:       absenceDeduction,
		LatenessDeduction:      latenessDeduction,
		EarlyCheckoutDeduction: earlyDeduction,
		PenaltiesDeduction:     penaltiesDeduction,
		SocialInsurance:        insurance,
		IncomeTax:              incomeTax,
		OtherDeductions:        otherDeductions,
		TotalDeductions:        totalDeductions,
		NetSalary:              netSalary,
		Metadata: domain.CalculationMetadata{
			WorkingDaysInMonth:     workingDaysInMonth,
			WorkingDaysInRange:     in.WorkingDaysInRange,
			PresentDays:            presentDays,
			AbsenceDays:            absenceDays,
			LateDays:               lateDays,
			DailyRate:              dailyRate,
			TotalPermissionMinutes: totalPermissionMinutes,
			IsPartialRange:         in.PartialRange,
			LateDayDetails:         lateDetails,
			PenaltyDetails:         penaltyDetails,
			BonusDetails:           bonusDetails,
		},
	}
}

func sumAdjustments(items []domain.Adjustment, dailyRate, baseSalary decimal.Decimal) (decimal.Decimal, []domain.AdjustmentDetail) {
	total := decimal.Zero
	var details []domain.AdjustmentDetail
	for _, item := range items {
		amount := AdjustmentAmount(item, dailyRate, baseSalary)
		total = total.Add(amount)
		details = append(details, domain.AdjustmentDetail{
			ID:     item.ID,
			Type:   item.Type,
			Value:  item.Value,
			Amount: amount,
			Reason: item.Reason,
			Date:   item.Date.Format("2006-01-02"),
		})
	}
	return total, details
}

// contributionAmount resolves insurance/tax: a company policy computes from
// the full-month base salary (prorated by attendance for monthly-mode
// partial ranges); with no policy the employee's stored flat value applies
// unmodified.
func contributionAmount(
	policy *domain.ContributionPolicy,
	flatValue *decimal.Decimal,
	baseSalary decimal.Decimal,
	mode domain.SalaryMode,
	partialRange bool,
	presentDays, workingDaysInMonth int,
) decimal.Decimal {
	if policy == nil {
		if flatValue == nil {
			return decimal.Zero
		}
		return *flatValue
	}

	amount := policy.Value
	if policy.Type == domain.DeductionTypePercent {
		amount = policy.Value.Div(oneHundred).Mul(baseSalary)
	}

	if mode == domain.SalaryModeMonthly && partialRange {
		amount = amount.
			Mul(decimal.NewFromInt(int64(presentDays))).
			Div(decimal.NewFromInt(int64(workingDaysInMonth)))
	}

	return amount
}
