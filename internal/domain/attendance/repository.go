package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// ListForRange returns every record whose check-in falls inside
	// [from, to], ordered by check-in time.
	ListForRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Record, error)

	// CountApprovedLeaveDays counts approved leave days for the employee
	// within [from, to].
	CountApprovedLeaveDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}
