package payroll

import (
	"testing"

	"github.com/attendhq/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayslipRequestValidate(t *testing.T) {
	t.Run("valid full month", func(t *testing.T) {
		req := PayslipRequest{EmployeeID: "emp-1", Year: 2024, Month: 3}
		assert.NoError(t, req.Validate())
		assert.False(t, req.PartialRange())
	})

	t.Run("sub-range is partial", func(t *testing.T) {
		from := 2
		req := PayslipRequest{EmployeeID: "emp-1", Year: 2024, Month: 3, FromDay: &from}
		assert.NoError(t, req.Validate())
		assert.True(t, req.PartialRange())
	})

	t.Run("collects field errors", func(t *testing.T) {
		req := PayslipRequest{Month: 13}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := errs.ToMap()
		assert.Contains(t, fields, "employee_id")
		assert.Contains(t, fields, "month")
		assert.Contains(t, fields, "year")
	})
}

func TestCreateBandRuleRequestValidate(t *testing.T) {
	valid := CreateBandRuleRequest{
		Kind:          string(RuleKindLate),
		Name:          "first band",
		FromMinutes:   0,
		ToMinutes:     30,
		DeductionType: string(DeductionTypeFixed),
		Value:         decimal.NewFromInt(50),
	}
	assert.NoError(t, valid.Validate())

	t.Run("rejects empty band", func(t *testing.T) {
		req := valid
		req.ToMinutes = req.FromMinutes
		err := req.Validate()

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "to_minutes")
	})

	t.Run("rejects unknown kind and type", func(t *testing.T) {
		req := valid
		req.Kind = "sometimes"
		req.DeductionType = "vibes"
		err := req.Validate()

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := errs.ToMap()
		assert.Contains(t, fields, "kind")
		assert.Contains(t, fields, "deduction_type")
	})
}

func TestCreateAdjustmentRequestValidate(t *testing.T) {
	valid := CreateAdjustmentRequest{
		EmployeeID: "emp-1",
		Type:       string(AdjustmentTypeFixed),
		Value:      decimal.NewFromInt(100),
		Date:       "2024-03-05",
	}
	assert.NoError(t, valid.Validate())

	t.Run("rejects bad date and type", func(t *testing.T) {
		req := valid
		req.Type = "double"
		req.Date = "05-03-2024"
		err := req.Validate()

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		fields := errs.ToMap()
		assert.Contains(t, fields, "penalty_type")
		assert.Contains(t, fields, "date")
	})

	t.Run("rejects negative value", func(t *testing.T) {
		req := valid
		req.Value = decimal.NewFromInt(-5)
		assert.Error(t, req.Validate())
	})
}

func TestBandRuleMatches(t *testing.T) {
	rule := BandRule{FromMinutes: 10, ToMinutes: 30}

	assert.False(t, rule.Matches(9))
	assert.True(t, rule.Matches(10))
	assert.True(t, rule.Matches(29))
	assert.False(t, rule.Matches(30))
}
