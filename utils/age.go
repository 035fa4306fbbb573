package utils

import "time"

// MonthsBetween counts whole calendar months from birth to now,
// borrowing a month when the day of month has not been reached yet.
// Never returns a negative value.
func MonthsBetween(birth, now time.Time) int {
	if now.Before(birth) {
		return 0
	}
	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	total := years*12 + months
	if total < 0 {
		return 0
	}
	return total
}

// DaysSince returns full days elapsed from then to now.
func DaysSince(then, now time.Time) int {
	return int(now.Sub(then).Hours() / 24)
}
