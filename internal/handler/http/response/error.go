package response

import (
	"errors"
	"net/http"

	"github.com/attendhq/payroll-engine-go/internal/domain/auth"
	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	"github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/attendhq/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrCompanyClaimMissing):
		Unauthorized(w, "Company claim missing")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotActive):
		BadRequest(w, "Employee is not active", nil)
	case errors.Is(err, employee.ErrMissingSalaryValue):
		BadRequest(w, "Employee has no salary value for its salary mode", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrPolicyNotFound):
		NotFound(w, "Payroll policy not found")
	case errors.Is(err, payroll.ErrBandRuleNotFound):
		NotFound(w, "Deduction rule not found")
	case errors.Is(err, payroll.ErrBandRuleOverlap):
		Conflict(w, "Deduction rule band overlaps an existing rule")
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Penalty or bonus not found")
	case errors.Is(err, payroll.ErrDelayPermissionNotFound):
		NotFound(w, "Delay permission not found")
	case errors.Is(err, payroll.ErrEmployeeHasNoSalary):
		BadRequest(w, "Employee has no salary configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
