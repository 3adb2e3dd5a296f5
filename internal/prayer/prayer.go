package prayer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrNoSolution = errors.New("prayer: sun does not reach the required angle")

type Prayer string

const (
	Fajr    Prayer = "fajr"
	Dhuhr   Prayer = "dhuhr"
	Asr     Prayer = "asr"
	Maghrib Prayer = "maghrib"
	Isha    Prayer = "isha"
)

// Prayers is the chronological order of the five daily prayers.
var Prayers = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

var arabicNames = map[Prayer]string{
	Fajr:    "الفجر",
	Dhuhr:   "الظهر",
	Asr:     "العصر",
	Maghrib: "المغرب",
	Isha:    "العشاء",
}

func (p Prayer) IsValid() bool {
	_, ok := arabicNames[p]
	return ok
}

func (p Prayer) ArabicName() string {
	if name, ok := arabicNames[p]; ok {
		return name
	}
	return string(p)
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Mecca is used whenever the device location is unavailable.
var Mecca = Coordinates{Latitude: 21.4225, Longitude: 39.8262}

func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// Times holds one day's prayer timestamps.
type Times map[Prayer]time.Time

type Entry struct {
	Name Prayer
	Time time.Time
}

// Ordered returns the prayers in their fixed daily order.
func (t Times) Ordered() []Entry {
	out := make([]Entry, 0, len(Prayers))
	for _, p := range Prayers {
		if tm, ok := t[p]; ok {
			out = append(out, Entry{Name: p, Time: tm})
		}
	}
	return out
}

// Calculator computes the prayer times of date's calendar day, in
// date's location.
type Calculator interface {
	Calculate(coords Coordinates, date time.Time) (Times, error)
}
