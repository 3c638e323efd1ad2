package sky

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

const (
	// J2000 is the Julian Day of the epoch J2000.0.
	J2000 = 2451545.0
	// B1950 is the Julian Day of the Besselian epoch B1950.0.
	B1950 = 2433282.4235
	// J1984 is 1984 January 1 0h, where the FK4 to FK5 conversion is done.
	J1984 = 2445700.5
	// daysPerCentury is the length of a Julian century.
	daysPerCentury = 36525.0
	// lightTimeDaysPerAU is the inverse speed of light, in days per AU.
	lightTimeDaysPerAU = 0.0057755183
	// AUKm is one astronomical unit in kilometers.
	AUKm = 1.49597870700e8
)

// JD returns the Julian Day of a time.
func JD(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// TimeFromJD returns the UTC time of a Julian Day.
func TimeFromJD(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// CalendarToJD returns the Julian Day of a Gregorian calendar date, the day carrying the fraction.
func CalendarToJD(y, m int, d float64) float64 {
	return julian.CalendarGregorianToJD(y, m, d)
}

// JulianCenturies returns the Julian centuries elapsed since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}

// JulianMillennia returns the Julian millennia elapsed since J2000.
func JulianMillennia(jd float64) float64 {
	return JulianCenturies(jd) / 10
}

// EpochToJD converts an epoch in years to a Julian Day. 1950 is taken as the Besselian
// epoch B1950.0, everything else as a Julian epoch.
func EpochToJD(epoch float64) float64 {
	if epoch == 1950 {
		return B1950
	}
	return J2000 + (epoch-2000)*365.25
}

// JDToEpoch is the inverse of EpochToJD.
func JDToEpoch(jd float64) float64 {
	if jd == B1950 {
		return 1950
	}
	return 2000 + (jd-J2000)/365.25
}

// GreenwichSiderealTime returns the mean sidereal time at Greenwich for a Julian Day (UT).
func GreenwichSiderealTime(jd float64) Angle {
	return Rad(sidereal.Mean(jd).Rad()).Reduce()
}

// LocalSiderealTime returns the mean local sidereal time at an east-positive longitude.
func LocalSiderealTime(jd float64, longitude Angle) Angle {
	return GreenwichSiderealTime(jd).Add(longitude).Reduce()
}

// sameInstant reports whether two Julian Days are closer than a millisecond.
func sameInstant(a, b float64) bool {
	return math.Abs(a-b) < 1e-8
}
