package payroll

import "errors"

var (
	ErrPolicyNotFound          = errors.New("payroll policy not found")
	ErrBandRuleNotFound        = errors.New("deduction rule not found")
	ErrBandRuleOverlap         = errors.New("deduction rule band overlaps an existing rule")
	ErrAdjustmentNotFound      = errors.New("penalty or bonus not found")
	ErrDelayPermissionNotFound = errors.New("delay permission not found")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrEmployeeHasNoSalary     = errors.New("employee has no salary configured")
)
