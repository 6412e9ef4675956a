package attendance

import (
	"time"
)

// Record - one attendance session. CheckOut is nil while the session is
// still open; open sessions are excluded from worked-time totals but the
// record still counts as a present day for absence math.
type Record struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	CheckIn           time.Time
	CheckOut          *time.Time
	LateMinutes       int
	EarlyLeaveMinutes int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DateKey returns the check-in date formatted the way delay permissions
// are keyed.
func (r Record) DateKey() string {
	return r.CheckIn.Format("2006-01-02")
}

// Complete reports whether the session has a check-out.
func (r Record) Complete() bool {
	return r.CheckOut != nil
}
