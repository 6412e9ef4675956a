package payroll

import (
	"testing"
	"time"

	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRule(id string, from, to int, value int64) domain.BandRule {
	return domain.BandRule{
		ID:            id,
		Kind:          domain.RuleKindLate,
		Name:          id,
		FromMinutes:   from,
		ToMinutes:     to,
		DeductionType: domain.DeductionTypeFixed,
		Value:         decimal.NewFromInt(value),
	}
}

func percentRule(id string, from, to int, value int64) domain.BandRule {
	r := fixedRule(id, from, to, value)
	r.DeductionType = domain.DeductionTypePercent
	return r
}

func TestBandDeduction(t *testing.T) {
	dailyRate := decimal.NewFromInt(500)

	t.Run("no rules yields zero", func(t *testing.T) {
		deduction, applied := BandDeduction(15, dailyRate, nil)
		assert.True(t, deduction.IsZero())
		assert.Nil(t, applied)
	})

	t.Run("no matching band yields zero", func(t *testing.T) {
		rules := []domain.BandRule{fixedRule("a", 30, 60, 50)}
		deduction, applied := BandDeduction(15, dailyRate, rules)
		assert.True(t, deduction.IsZero())
		assert.Nil(t, applied)
	})

	t.Run("bands are half-open", func(t *testing.T) {
		rules := []domain.BandRule{fixedRule("a", 0, 30, 50)}

		_, applied := BandDeduction(0, dailyRate, rules)
		assert.NotNil(t, applied)

		_, applied = BandDeduction(29, dailyRate, rules)
		assert.NotNil(t, applied)

		_, applied = BandDeduction(30, dailyRate, rules)
		assert.Nil(t, applied)
	})

	t.Run("percent rule computes from the daily rate", func(t *testing.T) {
		rules := []domain.BandRule{percentRule("p", 0, 60, 20)}

		deduction, applied := BandDeduction(10, dailyRate, rules)
		require.NotNil(t, applied)
		assert.Equal(t, "100", deduction.String())
	})

	t.Run("overlapping bands pick the highest deduction", func(t *testing.T) {
		rules := []domain.BandRule{
			fixedRule("small", 0, 30, 50),
			percentRule("big", 10, 60, 20), // 20% of 500 = 100
		}

		deduction, applied := BandDeduction(15, dailyRate, rules)
		require.NotNil(t, applied)
		assert.Equal(t, "big", applied.ID)
		assert.Equal(t, "100", deduction.String())
	})
}

func TestNetLateMinutes(t *testing.T) {
	assert.Equal(t, 15, NetLateMinutes(45, 30))
	assert.Equal(t, 0, NetLateMinutes(10, 30))
	assert.Equal(t, 45, NetLateMinutes(45, 0))
}

func TestAdjustmentAmount(t *testing.T) {
	dailyRate := decimal.NewFromInt(500)
	baseSalary := decimal.NewFromInt(5000)

	mk := func(typ domain.AdjustmentType, value int64) domain.Adjustment {
		return domain.Adjustment{
			Type:  typ,
			Value: decimal.NewFromInt(value),
			Date:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		}
	}

	assert.Equal(t, "100", AdjustmentAmount(mk(domain.AdjustmentTypeFixed, 100), dailyRate, baseSalary).String())
	assert.Equal(t, "100", AdjustmentAmount(mk(domain.AdjustmentTypeFixedAmount, 100), dailyRate, baseSalary).String())
	assert.Equal(t, "1000", AdjustmentAmount(mk(domain.AdjustmentTypeDays, 2), dailyRate, baseSalary).String())
	assert.Equal(t, "1000", AdjustmentAmount(mk(domain.AdjustmentTypeFraction, 2), dailyRate, baseSalary).String())
	assert.Equal(t, "500", AdjustmentAmount(mk(domain.AdjustmentTypeSalaryPercent, 10), dailyRate, baseSalary).String())
	assert.True(t, AdjustmentAmount(mk(domain.AdjustmentType("unknown"), 100), dailyRate, baseSalary).IsZero())
}

func TestValidateBandRuleSet(t *testing.T) {
	existing := []domain.BandRule{fixedRule("a", 0, 30, 50)}

	t.Run("rejects overlap of the same kind", func(t *testing.T) {
		err := ValidateBandRuleSet(existing, fixedRule("b", 20, 40, 75))
		assert.ErrorIs(t, err, domain.ErrBandRuleOverlap)
	})

	t.Run("adjacent bands do not overlap", func(t *testing.T) {
		err := ValidateBandRuleSet(existing, fixedRule("b", 30, 60, 75))
		assert.NoError(t, err)
	})

	t.Run("different kinds never conflict", func(t *testing.T) {
		candidate := fixedRule("b", 20, 40, 75)
		candidate.Kind = domain.RuleKindEarlyCheckout
		assert.NoError(t, ValidateBandRuleSet(existing, candidate))
	})

	t.Run("updating a rule skips itself", func(t *testing.T) {
		candidate := fixedRule("a", 0, 45, 60)
		assert.NoError(t, ValidateBandRuleSet(existing, candidate))
	})
}
