package export

import (
	"testing"

	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayslipWorkbook(t *testing.T) {
	ruleName := "band"
	slip := domain.PayslipResponse{
		EmployeeID:   "emp-1",
		EmployeeName: "Test Employee",
		SalaryMode:   domain.SalaryModeMonthly,
		PeriodStart:  "2024-03-01",
		PeriodEnd:    "2024-03-31",
		WorkedHours:  168,
		Calculation: domain.Calculation{
			BaseSalary:  decimal.NewFromInt(2600),
			GrossSalary: decimal.NewFromInt(2860),
			NetSalary:   decimal.NewFromInt(2760),
			Metadata: domain.CalculationMetadata{
				WorkingDaysInMonth: 26,
				PresentDays:        24,
				LateDayDetails: []domain.LateDayDetail{
					{
						Date:              "2024-03-05",
						RawLateMinutes:    45,
						PermissionMinutes: 30,
						NetLateMinutes:    15,
						RuleName:          &ruleName,
						Deduction:         decimal.NewFromInt(50),
					},
				},
			},
		},
	}

	f, err := BuildPayslipWorkbook(slip)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Payslip")
	assert.Contains(t, f.GetSheetList(), "Lateness")

	name, err := f.GetCellValue("Payslip", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Test Employee", name)

	date, err := f.GetCellValue("Lateness", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", date)
}

func TestBuildPayslipWorkbookWithoutLateness(t *testing.T) {
	f, err := BuildPayslipWorkbook(domain.PayslipResponse{EmployeeName: "No Lateness"})
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Lateness")
}
