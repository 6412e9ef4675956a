package payroll

import (
	"math"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/employee"
	domain "github.com/attendhq/payroll-engine-go/internal/domain/payroll"
)

// BuildDateRange resolves a year/month plus optional day sub-range into a
// concrete window. Reversed from/to days are swapped; out-of-range days are
// clamped into [1, daysInMonth] rather than rejected, so callers always get
// a usable window. Start is at 00:00:00 and end at 23:59:59 local time.
func BuildDateRange(year, month, fromDay, toDay int) domain.DateRange {
	if fromDay > toDay {
		fromDay, toDay = toDay, fromDay
	}

	last := DaysInMonth(year, month)
	fromDay = clampDay(fromDay, last)
	toDay = clampDay(toDay, last)

	return domain.DateRange{
		StartDate: time.Date(year, time.Month(month), fromDay, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(year, time.Month(month), toDay, 23, 59, 59, 0, time.Local),
		FromDay:   fromDay,
		ToDay:     toDay,
	}
}

// EffectiveWorkdays returns the expected working-day count for one employee
// in one month: the absence-math denominator. Priority order:
//
//  1. employee custom fixed workdays, when enabled;
//  2. company fixed workdays, when the policy is in fixed mode;
//  3. the true calendar day count, minus every occurrence of each configured
//     weekly-off weekday (employee override wins over company default).
//
// Approved vacation days are subtracted in every branch. The result is
// floored at 1 so daily-rate divisions stay defined.
func EffectiveWorkdays(policy domain.Policy, emp employee.Employee, year, month, approvedVacationDays int) int {
	if emp.CustomWorkdaysEnabled && emp.CustomWorkdays > 0 {
		days := emp.CustomWorkdays - approvedVacationDays
		if days < 1 {
			return 1
		}
		return days
	}

	base := DaysInMonth(year, month)
	if policy.WorkdaysMode == domain.WorkdaysModeFixed && policy.FixedWorkdays > 0 {
		base = policy.FixedWorkdays
	}

	offDays := policy.WeeklyOffDays
	if len(emp.WeeklyOffDays) > 0 {
		offDays = emp.WeeklyOffDays
	}
	for _, wd := range offDays {
		base -= weekdayOccurrences(year, month, wd)
	}

	base -= approvedVacationDays
	if base < 1 {
		return 1
	}
	return base
}

// WorkdaysInRange prorates a monthly working-day count over an arbitrary
// sub-range: round(daySpan x workdaysPerMonth / daysInMonth). It is an
// approximation that ignores which specific days are weekly-off, used by
// partial-range simulations; full-month payroll uses EffectiveWorkdays.
// Floors at 0.
func WorkdaysInRange(rangeStart, rangeEnd time.Time, workdaysPerMonth int) int {
	if rangeEnd.Before(rangeStart) || workdaysPerMonth <= 0 {
		return 0
	}

	daySpan := int(rangeEnd.Sub(rangeStart).Hours()/24) + 1
	calendarDays := DaysInMonth(rangeStart.Year(), int(rangeStart.Month()))

	prorated := int(math.Round(float64(daySpan) * float64(workdaysPerMonth) / float64(calendarDays)))
	if prorated < 0 {
		return 0
	}
	return prorated
}

// DaysInMonth returns the calendar day count of the given month.
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(day, last int) int {
	if day < 1 {
		return 1
	}
	if day > last {
		return last
	}
	return day
}

// weekdayOccurrences counts how many times the weekday occurs within the
// given month.
func weekdayOccurrences(year, month int, weekday time.Weekday) int {
	count := 0
	last := DaysInMonth(year, month)
	for day := 1; day <= last; day++ {
		if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() == weekday {
			count++
		}
	}
	return count
}
