// Package dates is the single home for loan date arithmetic. Every caller
// that needs "days left" or "days overdue" goes through DaysBetween instead
// of redoing wall-clock math.
package dates

import "time"

const day = 24 * time.Hour

// DaysBetween returns the number of days from `from` to `to`, any partial
// day rounded up. Returns 0 when `to` is not after `from`.
func DaysBetween(from, to time.Time) int64 {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	return n
}
