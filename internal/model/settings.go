package model

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidReminderTime = errors.New("model: invalid reminder time")

// Settings are the user preferences that survive restarts. Reminder
// times are fractional hours of the day, so 14.5 means 14:30.
type Settings struct {
	IsDark               bool      `json:"isDark"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	PrayerNotifications  bool      `json:"prayerNotifications"`
	ReminderTimes        []float64 `json:"reminderTimes"`
}

func DefaultSettings() Settings {
	return Settings{
		PrayerNotifications: true,
		ReminderTimes:       []float64{9, 14, 17},
	}
}

func (s Settings) Validate() error {
	for i, h := range s.ReminderTimes {
		if math.IsNaN(h) || h < 0 || h >= 24 {
			return fmt.Errorf("%w: reminder %d = %v", ErrInvalidReminderTime, i, h)
		}
	}
	return nil
}

// RoundReminderTime rounds a fractional hour to two decimals.
func RoundReminderTime(h float64) float64 {
	return math.Round(h*100) / 100
}

// ReminderClock splits a fractional hour into hour and minute.
func ReminderClock(h float64) (int, int) {
	hour := int(math.Floor(h))
	minute := int(math.Round((h - float64(hour)) * 60))
	if minute == 60 {
		hour++
		minute = 0
	}
	return hour, minute
}

func FormatReminderTime(h float64) string {
	hour, minute := ReminderClock(h)
	return fmt.Sprintf("%d:%02d", hour, minute)
}
