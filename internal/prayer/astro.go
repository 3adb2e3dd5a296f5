package prayer

import (
	"fmt"
	"math"
	"time"
)

const (
	mwlFajrAngle = 18.0
	mwlIshaAngle = 17.0
	sunsetAngle  = 0.833
	shafiiFactor = 1.0
)

// MWLCalculator implements the Muslim World League convention: Fajr at
// 18° and Isha at 17° below the horizon, Shafi'i shadow factor for Asr.
type MWLCalculator struct{}

func (MWLCalculator) Calculate(coords Coordinates, date time.Time) (Times, error) {
	if !coords.Valid() {
		return nil, fmt.Errorf("prayer: invalid coordinates %s", coords)
	}
	y, m, d := date.Date()
	sc := solarCalc{
		lat:   coords.Latitude,
		jDate: julianDate(y, int(m), d) - coords.Longitude/(15*24),
	}

	fajr := sc.sunAngleTime(mwlFajrAngle, 5.0/24, true)
	dhuhr := sc.midDay(12.0 / 24)
	asr := sc.asrTime(shafiiFactor, 13.0/24)
	maghrib := sc.sunAngleTime(sunsetAngle, 18.0/24, false)
	isha := sc.sunAngleTime(mwlIshaAngle, 18.0/24, false)

	hours := map[Prayer]float64{Fajr: fajr, Dhuhr: dhuhr, Asr: asr, Maghrib: maghrib, Isha: isha}
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	out := make(Times, len(hours))
	for p, h := range hours {
		if math.IsNaN(h) {
			return nil, fmt.Errorf("%w: %s at %s", ErrNoSolution, p, coords)
		}
		utc := h - coords.Longitude/15
		out[p] = base.Add(time.Duration(utc * float64(time.Hour))).Truncate(time.Minute).In(date.Location())
	}
	return out, nil
}

type solarCalc struct {
	lat   float64
	jDate float64
}

func (s solarCalc) sunPosition(jd float64) (decl, eqt float64) {
	days := jd - 2451545.0
	g := fixAngle(357.529 + 0.98560028*days)
	q := fixAngle(280.459 + 0.98564736*days)
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))
	e := 23.439 - 0.00000036*days

	ra := darctan2(dcos(e)*dsin(l), dcos(l)) / 15
	eqt = q/15 - fixHour(ra)
	decl = darcsin(dsin(e) * dsin(l))
	return decl, eqt
}

func (s solarCalc) midDay(dayPortion float64) float64 {
	_, eqt := s.sunPosition(s.jDate + dayPortion)
	return fixHour(12 - eqt)
}

func (s solarCalc) sunAngleTime(angle, dayPortion float64, beforeNoon bool) float64 {
	decl, _ := s.sunPosition(s.jDate + dayPortion)
	noon := s.midDay(dayPortion)
	cosT := (-dsin(angle) - dsin(decl)*dsin(s.lat)) / (dcos(decl) * dcos(s.lat))
	if cosT < -1 || cosT > 1 {
		return math.NaN()
	}
	t := darccos(cosT) / 15
	if beforeNoon {
		return noon - t
	}
	return noon + t
}

func (s solarCalc) asrTime(factor, dayPortion float64) float64 {
	decl, _ := s.sunPosition(s.jDate + dayPortion)
	angle := -darccot(factor + dtan(math.Abs(s.lat-decl)))
	return s.sunAngleTime(angle, dayPortion, false)
}

func julianDate(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) + float64(day) + b - 1524.5
}

func dtr(d float64) float64 { return d * math.Pi / 180 }

func rtd(r float64) float64 { return r * 180 / math.Pi }

func dsin(d float64) float64 { return math.Sin(dtr(d)) }

func dcos(d float64) float64 { return math.Cos(dtr(d)) }

func dtan(d float64) float64 { return math.Tan(dtr(d)) }

func darcsin(x float64) float64 { return rtd(math.Asin(x)) }

func darccos(x float64) float64 { return rtd(math.Acos(x)) }

func darctan2(y, x float64) float64 { return rtd(math.Atan2(y, x)) }

func darccot(x float64) float64 { return rtd(math.Atan(1 / x)) }

func fixAngle(a float64) float64 { return fixRange(a, 360) }

func fixHour(h float64) float64 { return fixRange(h, 24) }

func fixRange(v, r float64) float64 {
	v = v - r*math.Floor(v/r)
	if v < 0 {
		v += r
	}
	return v
}
