package payroll

import (
	"testing"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlyEmp pays 100/day with a 26-day month and 10/day allowances.
func monthlyEmp() employee.Employee {
	return employee.Employee{
		ID:            "emp-1",
		FullName:      "Test Employee",
		SalaryMode:    domain.SalaryModeMonthly,
		MonthlySalary: decimal.NewFromInt(2600),
		Allowances:    decimal.NewFromInt(260),
	}
}

func marchRecords(days ...int) []attendance.Record {
	records := make([]attendance.Record, 0, len(days))
	for _, day := range days {
		records = append(records, mkSession(time.Date(2024, 3, day, 9, 0, 0, 0, time.Local), 8*time.Hour))
	}
	return records
}

func TestCalculateLatenessNetting(t *testing.T) {
	records := marchRecords(5)
	records[0].LateMinutes = 45

	calc := Calculate(CalculationInput{
		Employee:           monthlyEmp(),
		Records:            records,
		LateRules:          []domain.BandRule{fixedRule("band", 0, 30, 50)},
		Permissions:        []domain.DelayPermission{{Date: "2024-03-05", Minutes: 30}},
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 26,
	})

	assert.Equal(t, "50", calc.LatenessDeduction.String())
	assert.Equal(t, 1, calc.Metadata.LateDays)

	require.Len(t, calc.Metadata.LateDayDetails, 1)
	detail := calc.Metadata.LateDayDetails[0]
	assert.Equal(t, "2024-03-05", detail.Date)
	assert.Equal(t, 45, detail.RawLateMinutes)
	assert.Equal(t, 30, detail.PermissionMinutes)
	assert.Equal(t, 15, detail.NetLateMinutes)
	require.NotNil(t, detail.RuleName)
	assert.Equal(t, "band", *detail.RuleName)
}

func TestCalculatePermissionCoversLateness(t *testing.T) {
	records := marchRecords(5)
	records[0].LateMinutes = 20

	calc := Calculate(CalculationInput{
		Employee:           monthlyEmp(),
		Records:            records,
		LateRules:          []domain.BandRule{fixedRule("band", 0, 30, 50)},
		Permissions:        []domain.DelayPermission{{Date: "2024-03-05", Minutes: 30}},
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 26,
	})

	assert.True(t, calc.LatenessDeduction.IsZero())
	assert.Equal(t, 0, calc.Metadata.LateDays)

	// The day still shows up in the detail with its netted minutes.
	require.Len(t, calc.Metadata.LateDayDetails, 1)
	assert.Equal(t, 0, calc.Metadata.LateDayDetails[0].NetLateMinutes)
	assert.Nil(t, calc.Metadata.LateDayDetails[0].RuleName)
}

func TestCalculateFullMonthMonthly(t *testing.T) {
	days := make([]int, 0, 24)
	for d := 1; d <= 24; d++ {
		days = append(days, d)
	}

	calc := Calculate(CalculationInput{
		Employee:           monthlyEmp(),
		Records:            marchRecords(days...),
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 26,
		ApprovedLeaveDays:  1,
	})

	// Full-month monthly employees get their whole entitlement as gross.
	assert.Equal(t, "2860", calc.GrossSalary.String())

	// 26 expected - 24 present - 1 leave = 1 unexcused absence at 100/day.
	assert.Equal(t, 1, calc.Metadata.AbsenceDays)
	assert.Equal(t, "100", calc.AbsenceDeduction.String())
	assert.Equal(t, "2760", calc.NetSalary.String())
}

func TestCalculatePartialRangeWaivesAbsence(t *testing.T) {
	calc := Calculate(CalculationInput{
		Employee:           monthlyEmp(),
		Records:            marchRecords(2, 5, 8),
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 6,
		PartialRange:       true,
	})

	// 3 days at 100 plus 3 days of prorated allowances at 10.
	assert.Equal(t, "330", calc.GrossSalary.String())
	assert.True(t, calc.AbsenceDeduction.IsZero())
	assert.Equal(t, 0, calc.Metadata.AbsenceDays)
}

func TestCalculateDailyMode(t *testing.T) {
	emp := employee.Employee{
		SalaryMode: domain.SalaryModeDaily,
		DailyWage:  decimal.NewFromInt(80),
		Allowances: decimal.NewFromInt(30),
	}

	calc := Calculate(CalculationInput{
		Employee:           emp,
		Records:            marchRecords(2, 5, 8),
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 26,
	})

	// Daily wage x present days, allowances flat, no absence deduction.
	assert.Equal(t, "270", calc.GrossSalary.String())
	assert.True(t, calc.AbsenceDeduction.IsZero())
	// Absence days still reported for visibility.
	assert.Equal(t, 23, calc.Metadata.AbsenceDays)
}

func TestCalculateEarlyCheckout(t *testing.T) {
	records := marchRecords(5)
	records[0].EarlyLeaveMinutes = 20

	calc := Calculate(CalculationInput{
		Employee:           monthlyEmp(),
		Records:            records,
		EarlyRules:         []domain.BandRule{fixedRule("early", 0, 30, 25)},
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 26,
		PartialRange:       true,
	})

	assert.Equal(t, "25", calc.EarlyCheckoutDeduction.String())
	assert.Equal(t, "25", calc.TotalDeductions.String())
}

func TestCalculateContributions(t *testing.T) {
	percentPolicy := &domain.ContributionPolicy{
		Type:  domain.DeductionTypePercent,
		Value: decimal.NewFromInt(10),
	}

	t.Run("policy percent of base salary", func(t *testing.T) {
		calc := Calculate(CalculationInput{
			Employee:           monthlyEmp(),
			Records:            marchRecords(2),
			Insurance:          percentPolicy,
			WorkingDaysInMonth: 26,
			WorkingDaysInRange: 26,
		})

		assert.Equal(t, "260", calc.SocialInsurance.String())
	})

	t.Run("prorated for monthly partial ranges", func(t *testing.T) {
		days := make([]int, 0, 13)
		for d := 1; d <= 13; d++ {
			days = append(days, d)
		}

		calc := Calculate(CalculationInput{
			Employee:           monthlyEmp(),
			Records:            marchRecords(days...),
			Insurance:          percentPolicy,
			WorkingDaysInMonth: 26,
			WorkingDaysInRange: 13,
			PartialRange:       true,
		})

		assert.Equal(t, "130", calc.SocialInsurance.String())
	})

	t.Run("flat employee value when no policy", func(t *testing.T) {
		emp := monthlyEmp()
		flat := decimal.NewFromInt(75)
		emp.IncomeTaxValue = &flat

		calc := Calculate(CalculationInput{
			Employee:           emp,
			Records:            marchRecords(2),
			WorkingDaysInMonth: 26,
			WorkingDaysInRange: 26,
			PartialRange:       true,
		})

		// Flat values apply verbatim, never prorated.
		assert.Equal(t, "75", calc.IncomeTax.String())
	})

	t.Run("zero when neither policy nor flat value", func(t *testing.T) {
		calc := Calculate(CalculationInput{
			Employee:           monthlyEmp(),
			Records:            marchRecords(2),
			WorkingDaysInMonth: 26,
			WorkingDaysInRange: 26,
		})

		assert.True(t, calc.SocialInsurance.IsZero())
		assert.True(t, calc.IncomeTax.IsZero())
	})
}

func TestCalculateAdjustments(t *testing.T) {
	calc := Calculate(CalculationInput{
		Employee: monthlyEmp(),
		Records:  marchRecords(2, 5, 8),
		Penalties: []domain.Adjustment{
			{Type: domain.AdjustmentTypeFixed, Value: decimal.NewFromInt(100), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)},
		},
		Bonuses: []domain.Adjustment{
			{Type: domain.AdjustmentTypeDays, Value: decimal.NewFromInt(1), Date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local)},
		},
		WorkingDaysInMonth: 26,
		WorkingDaysInRange: 6,
		PartialRange:       true,
	})

	assert.Equal(t, "100", calc.PenaltiesDeduction.String())
	// One bonus day at the 100 daily rate.
	assert.Equal(t, "100", calc.BonusesAmount.String())

	// gross 330 + bonus 100 - penalty 100.
	assert.Equal(t, "330", calc.NetSalary.String())

	require.Len(t, calc.Metadata.PenaltyDetails, 1)
	require.Len(t, calc.Metadata.BonusDetails, 1)
	assert.Equal(t, "100", calc.Metadata.BonusDetails[0].Amount.String())
}

func TestCalculateApprovedLeaveAlongsideAbsence(t *testing.T) {
	// Approved leave enters on both sides of the absence math: it shrinks
	// the expected-day denominator and is netted out of absence days again.
	// 26 fixed workdays minus 2 leave days -> 24 expected; 21 present ->
	// 24 - 21 - 2 = 1 unexcused absence.
	policy := domain.Policy{WorkdaysMode: domain.WorkdaysModeFixed, FixedWorkdays: 26}
	emp := employee.Employee{
		SalaryMode:    domain.SalaryModeMonthly,
		MonthlySalary: decimal.NewFromInt(2400),
	}

	leaveDays := 2
	workingDays := EffectiveWorkdays(policy, emp, 2024, 3, leaveDays)
	require.Equal(t, 24, workingDays)

	days := make([]int, 0, 21)
	for d := 1; d <= 21; d++ {
		days = append(days, d)
	}

	calc := Calculate(CalculationInput{
		Employee:           emp,
		Records:            marchRecords(days...),
		WorkingDaysInMonth: workingDays,
		WorkingDaysInRange: workingDays,
		ApprovedLeaveDays:  leaveDays,
	})

	assert.Equal(t, 1, calc.Metadata.AbsenceDays)
	// Daily rate 2400/24 = 100; one unexcused day.
	assert.Equal(t, "100", calc.AbsenceDeduction.String())
}

func TestCalculateDegradesOnMalformedInput(t *testing.T) {
	// Zero working days and no records must not panic or divide by zero.
	calc := Calculate(CalculationInput{Employee: monthlyEmp()})

	assert.Equal(t, 1, calc.Metadata.WorkingDaysInMonth)
	assert.Equal(t, 0, calc.Metadata.PresentDays)
	assert.True(t, calc.BasePayForRange.IsZero())
}
