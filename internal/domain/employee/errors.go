package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNotActive  = errors.New("employee is not active")
	ErrInvalidSalaryMode  = errors.New("invalid salary mode")
	ErrMissingSalaryValue = errors.New("employee has no salary value for its salary mode")
)
