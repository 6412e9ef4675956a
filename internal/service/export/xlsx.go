package export

import (
	"fmt"

	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const payslipSheet = "Payslip"

// BuildPayslipWorkbook renders an already-computed payslip into an XLSX
// workbook: one earnings/deductions line per row plus the attendance
// figures behind them. It contains no calculation logic of its own and
// consumes the same field names the payslip view uses.
func BuildPayslipWorkbook(slip domain.PayslipResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(payslipSheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	calc := slip.Calculation
	meta := calc.Metadata

	rows := [][]interface{}{
		{"Employee", slip.EmployeeName},
		{"Salary Mode", string(slip.SalaryMode)},
		{"Period", fmt.Sprintf("%s - %s", slip.PeriodStart, slip.PeriodEnd)},
		{},
		{"Attendance", ""},
		{"Working Days (Month)", meta.WorkingDaysInMonth},
		{"Working Days (Range)", meta.WorkingDaysInRange},
		{"Present Days", meta.PresentDays},
		{"Absence Days", meta.AbsenceDays},
		{"Late Days", meta.LateDays},
		{"Worked Hours", slip.WorkedHours},
		{},
		{"Earnings", ""},
		{"Base Salary", calc.BaseSalary},
		{"Base Pay For Range", calc.BasePayForRange},
		{"Allowances", calc.AllowancesAmount},
		{"Overtime", calc.OvertimeAmount},
		{"Bonuses", calc.BonusesAmount},
		{"Gross Salary", calc.GrossSalary},
		{},
		{"Deductions", ""},
		{"Absence", calc.AbsenceDeduction},
		{"Lateness", calc.LatenessDeduction},
		{"Early Checkout", calc.EarlyCheckoutDeduction},
		{"Penalties", calc.PenaltiesDeduction},
		{"Social Insurance", calc.SocialInsurance},
		{"Income Tax", calc.IncomeTax},
		{"Total Deductions", calc.TotalDeductions},
		{},
		{"Net Salary", calc.NetSalary},
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(payslipSheet, cell, cellValue(value)); err != nil {
				return nil, err
			}
		}
	}

	// Per-day lateness detail on its own sheet when present.
	if len(meta.LateDayDetails) > 0 {
		if err := writeLatenessSheet(f, meta); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func writeLatenessSheet(f *excelize.File, meta domain.CalculationMetadata) error {
	const sheet = "Lateness"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Date", "Raw Minutes", "Permission Minutes", "Net Minutes", "Rule", "Deduction"}
	for j, header := range headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, detail := range meta.LateDayDetails {
		ruleName := ""
		if detail.RuleName != nil {
			ruleName = *detail.RuleName
		}
		values := []interface{}{
			detail.Date,
			detail.RawLateMinutes,
			detail.PermissionMinutes,
			detail.NetLateMinutes,
			ruleName,
			detail.Deduction.InexactFloat64(),
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// cellValue flattens decimals to floats so excelize stores numbers, not
// their string form.
func cellValue(v interface{}) interface{} {
	type floater interface{ InexactFloat64() float64 }
	if d, ok := v.(floater); ok {
		return d.InexactFloat64()
	}
	return v
}
