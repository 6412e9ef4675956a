package payroll

import (
	"testing"
	"time"

	"github.com/attendhq/payroll-engine-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func mkSession(checkIn time.Time, worked time.Duration) attendance.Record {
	checkOut := checkIn.Add(worked)
	return attendance.Record{CheckIn: checkIn, CheckOut: &checkOut}
}

func TestWorkedWithin(t *testing.T) {
	marchStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	aprilStart := time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)

	t.Run("fully contained session", func(t *testing.T) {
		rec := mkSession(time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local), 8*time.Hour)

		total := WorkedWithin([]attendance.Record{rec}, marchStart, aprilStart)
		assert.Equal(t, 8*time.Hour, total)
	})

	t.Run("session straddling month end is clipped", func(t *testing.T) {
		// 23:00 March 31 to 01:00 April 1: only the March hour counts.
		rec := mkSession(time.Date(2024, 3, 31, 23, 0, 0, 0, time.Local), 2*time.Hour)

		total := WorkedWithin([]attendance.Record{rec}, marchStart, aprilStart)
		assert.Equal(t, time.Hour, total)

		// And the April side gets exactly the other hour.
		mayStart := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
		total = WorkedWithin([]attendance.Record{rec}, aprilStart, mayStart)
		assert.Equal(t, time.Hour, total)
	})

	t.Run("open session contributes nothing", func(t *testing.T) {
		rec := attendance.Record{CheckIn: time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local)}

		total := WorkedWithin([]attendance.Record{rec}, marchStart, aprilStart)
		assert.Equal(t, time.Duration(0), total)
	})

	t.Run("disjoint session contributes nothing", func(t *testing.T) {
		rec := mkSession(time.Date(2024, 4, 2, 9, 0, 0, 0, time.Local), 8*time.Hour)

		total := WorkedWithin([]attendance.Record{rec}, marchStart, aprilStart)
		assert.Equal(t, time.Duration(0), total)
	})

	t.Run("session ending exactly at window start is excluded", func(t *testing.T) {
		rec := mkSession(time.Date(2024, 2, 29, 22, 0, 0, 0, time.Local), 2*time.Hour)

		total := WorkedWithin([]attendance.Record{rec}, marchStart, aprilStart)
		assert.Equal(t, time.Duration(0), total)
	})

	t.Run("sums multiple sessions", func(t *testing.T) {
		records := []attendance.Record{
			mkSession(time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local), 8*time.Hour),
			mkSession(time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local), 4*time.Hour),
		}

		total := WorkedWithin(records, marchStart, aprilStart)
		assert.Equal(t, 12*time.Hour, total)
	})
}
