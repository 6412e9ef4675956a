package payroll

import (
	"testing"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestBuildDateRange(t *testing.T) {
	t.Run("full month", func(t *testing.T) {
		rng := BuildDateRange(2024, 3, 1, 31)

		assert.Equal(t, 1, rng.FromDay)
		assert.Equal(t, 31, rng.ToDay)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), rng.StartDate)
		assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local), rng.EndDate)
	})

	t.Run("swaps reversed days", func(t *testing.T) {
		rng := BuildDateRange(2024, 3, 8, 2)

		assert.Equal(t, 2, rng.FromDay)
		assert.Equal(t, 8, rng.ToDay)
	})

	t.Run("clamps out-of-range days", func(t *testing.T) {
		rng := BuildDateRange(2024, 2, -5, 40)

		assert.Equal(t, 1, rng.FromDay)
		assert.Equal(t, 29, rng.ToDay) // leap year
		assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local), rng.EndDate)
	})

	t.Run("day 31 clamped in a 30-day month", func(t *testing.T) {
		rng := BuildDateRange(2024, 4, 1, 31)

		assert.Equal(t, 30, rng.ToDay)
	})
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2023, 2))
	assert.Equal(t, 30, DaysInMonth(2024, 4))
	assert.Equal(t, 31, DaysInMonth(2024, 12))
}

func TestEffectiveWorkdays(t *testing.T) {
	policy := domain.Policy{
		WorkdaysMode:  domain.WorkdaysModeCalendar,
		WeeklyOffDays: []time.Weekday{time.Sunday},
	}

	t.Run("calendar mode subtracts weekly off days", func(t *testing.T) {
		// March 2024: 31 days, 5 Sundays.
		got := EffectiveWorkdays(policy, employee.Employee{}, 2024, 3, 0)
		assert.Equal(t, 26, got)
	})

	t.Run("vacation days are subtracted", func(t *testing.T) {
		got := EffectiveWorkdays(policy, employee.Employee{}, 2024, 3, 2)
		assert.Equal(t, 24, got)
	})

	t.Run("fixed mode uses company setting", func(t *testing.T) {
		fixed := domain.Policy{WorkdaysMode: domain.WorkdaysModeFixed, FixedWorkdays: 22}
		got := EffectiveWorkdays(fixed, employee.Employee{}, 2024, 3, 0)
		assert.Equal(t, 22, got)
	})

	t.Run("employee weekly off override wins", func(t *testing.T) {
		// March 2024 has 5 Saturdays too, but check the override is the one applied.
		emp := employee.Employee{WeeklyOffDays: []time.Weekday{time.Saturday, time.Sunday}}
		got := EffectiveWorkdays(policy, emp, 2024, 3, 0)
		assert.Equal(t, 21, got)
	})

	t.Run("employee custom workdays override", func(t *testing.T) {
		emp := employee.Employee{CustomWorkdaysEnabled: true, CustomWorkdays: 20}
		got := EffectiveWorkdays(policy, emp, 2024, 3, 0)
		assert.Equal(t, 20, got)
	})

	t.Run("floors at one", func(t *testing.T) {
		emp := employee.Employee{CustomWorkdaysEnabled: true, CustomWorkdays: 2}
		got := EffectiveWorkdays(policy, emp, 2024, 3, 25)
		assert.Equal(t, 1, got)
	})
}

func TestWorkdaysInRange(t *testing.T) {
	t.Run("prorates over the sub-range", func(t *testing.T) {
		// 7-day span of a 31-day month with 26 working days:
		// round(7 * 26 / 31) = round(5.87) = 6.
		rng := BuildDateRange(2024, 3, 2, 8)
		got := WorkdaysInRange(rng.StartDate, rng.EndDate, 26)
		assert.Equal(t, 6, got)
	})

	t.Run("full month span returns the full count", func(t *testing.T) {
		rng := BuildDateRange(2024, 3, 1, 31)
		got := WorkdaysInRange(rng.StartDate, rng.EndDate, 26)
		assert.Equal(t, 26, got)
	})

	t.Run("zero when end precedes start", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
		end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
		assert.Equal(t, 0, WorkdaysInRange(start, end, 26))
	})

	t.Run("zero when no working days configured", func(t *testing.T) {
		rng := BuildDateRange(2024, 3, 2, 8)
		assert.Equal(t, 0, WorkdaysInRange(rng.StartDate, rng.EndDate, 0))
	})
}
