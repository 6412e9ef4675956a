package payroll

import (
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SimulationCheck - one expected-vs-actual assertion from a simulation run.
type SimulationCheck struct {
	Name     string `json:"name"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Passed   bool   `json:"passed"`
}

// SimulationReport - outcome of the built-in calculation self-test.
type SimulationReport struct {
	Passed      bool              `json:"passed"`
	GeneratedAt string            `json:"generated_at"`
	Checks      []SimulationCheck `json:"checks"`
}

// RunSimulation exercises the assembler against synthetic fixtures with
// deliberately placed in-range and out-of-range entries, verifying that
// only in-range items reach the payslip. It runs entirely in memory and is
// safe to call in production as a calculation self-test.
func RunSimulation() SimulationReport {
	companyID := uuid.NewString()
	emp := employee.Employee{
		ID:            uuid.NewString(),
		CompanyID:     companyID,
		FullName:      "Simulation Employee",
		SalaryMode:    domain.SalaryModeMonthly,
		MonthlySalary: decimal.NewFromInt(5000),
		Allowances:    decimal.NewFromInt(500),
	}

	// Partial range: days 2-8 of March 2024, attended on days 2, 5 and 8.
	// One extra record on day 15 sits outside the range and must be
	// ignored by the caller-side range filter this harness emulates.
	year, month := 2024, 3
	rng := BuildDateRange(year, month, 2, 8)

	allRecords := []attendance.Record{
		simRecord(emp, year, month, 2),
		simRecord(emp, year, month, 5),
		simRecord(emp, year, month, 8),
		simRecord(emp, year, month, 15),
	}
	var inRange []attendance.Record
	for _, rec := range allRecords {
		if !rec.CheckIn.Before(rng.StartDate) && rec.CheckIn.Before(rng.EndDate.Add(time.Second)) {
			inRange = append(inRange, rec)
		}
	}

	penalties := []domain.Adjustment{
		simAdjustment(emp, domain.DirectionDebit, 100, year, month, 5),
		simAdjustment(emp, domain.DirectionDebit, 200, year, month, 20),
	}
	bonuses := []domain.Adjustment{
		simAdjustment(emp, domain.DirectionCredit, 150, year, month, 6),
		simAdjustment(emp, domain.DirectionCredit, 75, year, month, 25),
	}
	inRangePenalties := filterAdjustmentsInRange(penalties, rng)
	inRangeBonuses := filterAdjustmentsInRange(bonuses, rng)

	workingDaysInMonth := 26
	calc := Calculate(CalculationInput{
		Employee:           emp,
		Records:            inRange,
		Penalties:          inRangePenalties,
		Bonuses:            inRangeBonuses,
		WorkingDaysInMonth: workingDaysInMonth,
		WorkingDaysInRange: WorkdaysInRange(rng.StartDate, rng.EndDate, workingDaysInMonth),
		PartialRange:       true,
	})

	dailyRate := emp.MonthlySalary.Div(decimal.NewFromInt(int64(workingDaysInMonth)))
	expectedAllowances := emp.Allowances.Div(decimal.NewFromInt(int64(workingDaysInMonth))).Mul(decimal.NewFromInt(3))
	expectedGross := dailyRate.Mul(decimal.NewFromInt(3)).Add(expectedAllowances)
	expectedNet := expectedGross.Add(decimal.NewFromInt(150)).Sub(decimal.NewFromInt(100))

	checks := []SimulationCheck{
		decimalCheck("in-range present days only", decimal.NewFromInt(3), decimal.NewFromInt(int64(calc.Metadata.PresentDays))),
		decimalCheck("partial range waives absence deduction", decimal.Zero, calc.AbsenceDeduction),
		decimalCheck("only in-range penalty counted", decimal.NewFromInt(100), calc.PenaltiesDeduction),
		decimalCheck("only in-range bonus counted", decimal.NewFromInt(150), calc.BonusesAmount),
		decimalCheck("gross pays attended days plus prorated allowances", expectedGross, calc.GrossSalary),
		decimalCheck("net salary", expectedNet, calc.NetSalary),
	}

	// Open-session exclusion: a record without check-out contributes zero
	// worked time but still counts as present above.
	open := simRecord(emp, year, month, 2)
	open.CheckOut = nil
	worked := WorkedWithin([]attendance.Record{open}, rng.StartDate, rng.EndDate.Add(time.Second))
	checks = append(checks, decimalCheck("open session contributes no worked time",
		decimal.Zero, decimal.NewFromInt(int64(worked))))

	passed := true
	for _, c := range checks {
		if !c.Passed {
			passed = false
			break
		}
	}

	return SimulationReport{
		Passed:      passed,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Checks:      checks,
	}
}

func simRecord(emp employee.Employee, year, month, day int) attendance.Record {
	checkIn := time.Date(year, time.Month(month), day, 9, 0, 0, 0, time.Local)
	checkOut := checkIn.Add(8 * time.Hour)
	return attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		CompanyID:  emp.CompanyID,
		CheckIn:    checkIn,
		CheckOut:   &checkOut,
	}
}

func simAdjustment(emp employee.Employee, direction domain.Direction, value int64, year, month, day int) domain.Adjustment {
	return domain.Adjustment{
		ID:         uuid.NewString(),
		CompanyID:  emp.CompanyID,
		EmployeeID: emp.ID,
		Type:       domain.AdjustmentTypeFixed,
		Direction:  direction,
		Value:      decimal.NewFromInt(value),
		Status:     domain.AdjustmentStatusApproved,
		Date:       time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local),
	}
}

func filterAdjustmentsInRange(items []domain.Adjustment, rng domain.DateRange) []domain.Adjustment {
	var result []domain.Adjustment
	for _, item := range items {
		if !item.Date.Before(rng.StartDate) && item.Date.Before(rng.EndDate.Add(time.Second)) {
			result = append(result, item)
		}
	}
	return result
}

func decimalCheck(name string, expected, actual decimal.Decimal) SimulationCheck {
	return SimulationCheck{
		Name:     name,
		Expected: expected.String(),
		Actual:   actual.String(),
		Passed:   expected.Equal(actual),
	}
}
