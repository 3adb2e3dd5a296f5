package model

import "time"

// ClockOn returns the instant on day's calendar date at the given
// fractional hour, in day's location.
func ClockOn(day time.Time, h float64) time.Time {
	hour, minute := ReminderClock(h)
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

// NextDaily moves a target that already passed forward by exactly one
// calendar day so a timer armed for it fires in the future.
func NextDaily(target, now time.Time) time.Time {
	if target.Before(now) {
		return target.AddDate(0, 0, 1)
	}
	return target
}

// FollowingDay is the same wall-clock time one calendar day later.
func FollowingDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1)
}
