package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or missing token")
	ErrCompanyClaimMissing    = errors.New("company_id claim is missing or invalid")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
