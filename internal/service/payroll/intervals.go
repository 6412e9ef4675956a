package payroll

import (
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
)

// WorkedWithin sums the worked time of the given records inside
// [windowStart, windowEnd). Open sessions (nil check-out) contribute
// nothing. Sessions straddling a window boundary are clipped at the
// boundary, so a shift spanning midnight on the last day of the month is
// split correctly between months and never double counted.
func WorkedWithin(records []attendance.Record, windowStart, windowEnd time.Time) time.Duration {
	var total time.Duration

	for _, rec := range records {
		if rec.CheckOut == nil {
			continue
		}
		checkIn, checkOut := rec.CheckIn, *rec.CheckOut

		if !checkIn.Before(windowEnd) || !checkOut.After(windowStart) {
			continue
		}

		clippedStart := checkIn
		if clippedStart.Before(windowStart) {
			clippedStart = windowStart
		}
		clippedEnd := checkOut
		if clippedEnd.After(windowEnd) {
			clippedEnd = windowEnd
		}

		if clippedStart.Before(clippedEnd) {
			total += clippedEnd.Sub(clippedStart)
		}
	}

	return total
}
