package payroll

import (
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// BandDeduction matches elapsed minutes against a band rule set and returns
// the deduction plus the rule that produced it. Bands are half-open
// [FromMinutes, ToMinutes). When several bands match (the settings layer
// prevents overlap, but the engine does not rely on that), the highest
// resulting deduction wins - not the first or narrowest band. No match
// yields zero. The same matching serves lateness and early-checkout rule
// sets; they differ only in which rules the caller passes.
func BandDeduction(minutes int, dailyRate decimal.Decimal, rules []domain.BandRule) (decimal.Decimal, *domain.BandRule) {
	best := decimal.Zero
	var applied *domain.BandRule

	for i := range rules {
		rule := rules[i]
		if !rule.Matches(minutes) {
			continue
		}

		deduction := rule.Value
		if rule.DeductionType == domain.DeductionTypePercent {
			deduction = rule.Value.Div(oneHundred).Mul(dailyRate)
		}

		if applied == nil || deduction.GreaterThan(best) {
			best = deduction
			applied = &rules[i]
		}
	}

	if applied == nil {
		return decimal.Zero, nil
	}
	return best, applied
}

// NetLateMinutes nets same-day approved delay-permission minutes against
// raw lateness before rule matching. Floors at zero.
func NetLateMinutes(rawLateMinutes, permissionMinutes int) int {
	net := rawLateMinutes - permissionMinutes
	if net < 0 {
		return 0
	}
	return net
}

// AdjustmentAmount converts a penalty/bonus value into a currency amount:
//
//	fixed, fixed_amount -> value verbatim
//	days, fraction      -> value x dailyRate
//	salary_percent      -> value/100 x baseSalary (zero when baseSalary is zero)
//
// The same conversion serves penalties and bonuses; the caller applies the
// sign via the item's Direction.
func AdjustmentAmount(item domain.Adjustment, dailyRate, baseSalary decimal.Decimal) decimal.Decimal {
	switch item.Type {
	case domain.AdjustmentTypeFixed, domain.AdjustmentTypeFixedAmount:
		return item.Value
	case domain.AdjustmentTypeDays, domain.AdjustmentTypeFraction:
		return item.Value.Mul(dailyRate)
	case domain.AdjustmentTypeSalaryPercent:
		return item.Value.Div(oneHundred).Mul(baseSalary)
	default:
		return decimal.Zero
	}
}

// ValidateBandRuleSet rejects a new band that overlaps an existing band of
// the same kind. This is the settings-save contract; the engine stays
// defensive regardless.
func ValidateBandRuleSet(existing []domain.BandRule, candidate domain.BandRule) error {
	for _, rule := range existing {
		if rule.ID == candidate.ID || rule.Kind != candidate.Kind {
			continue
		}
		if candidate.FromMinutes < rule.ToMinutes && rule.FromMinutes < candidate.ToMinutes {
			return domain.ErrBandRuleOverlap
		}
	}
	return nil
}
