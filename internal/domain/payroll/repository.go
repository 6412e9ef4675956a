package payroll

import (
	"context"
	"time"
)

// Repository is the persistence port for payroll configuration and the
// approved items the engine consumes. Status filtering happens here, in
// SQL - the engine assumes everything it receives is already approved.
type Repository interface {
	// Policy
	GetPolicy(ctx context.Context, companyID string) (Policy, error)
	UpsertPolicy(ctx context.Context, policy Policy) (Policy, error)

	// Band rules
	CreateBandRule(ctx context.Context, rule BandRule) (BandRule, error)
	ListBandRules(ctx context.Context, companyID string, kind RuleKind) ([]BandRule, error)
	UpdateBandRule(ctx context.Context, rule BandRule) (BandRule, error)
	DeleteBandRule(ctx context.Context, id, companyID string) error

	// Penalties and bonuses
	CreateAdjustment(ctx context.Context, adj Adjustment) (Adjustment, error)
	ListAdjustments(ctx context.Context, companyID, employeeID string, direction Direction) ([]Adjustment, error)
	ListApprovedAdjustments(ctx context.Context, companyID, employeeID string, direction Direction, from, to time.Time) ([]Adjustment, error)
	UpdateAdjustmentStatus(ctx context.Context, id, companyID string, status AdjustmentStatus) error
	DeleteAdjustment(ctx context.Context, id, companyID string) error

	// Delay permissions
	CreateDelayPermission(ctx context.Context, perm DelayPermission) (DelayPermission, error)
	ListApprovedDelayPermissions(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]DelayPermission, error)
	UpdateDelayPermissionStatus(ctx context.Context, id, companyID string, status AdjustmentStatus) error
	DeleteDelayPermission(ctx context.Context, id, companyID string) error
}
