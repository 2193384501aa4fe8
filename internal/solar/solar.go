// Package solar computes the Sun's position-derived quantities needed for
// twilight timelines: declination, the equation of time, the instant the Sun
// crosses a given elevation angle, and the Sun's elevation at an arbitrary
// hour of the day.
//
// The formulas are deliberately first-order, closed-form approximations:
// they are accurate to a few minutes for civil use, which is all a weather
// timeline needs. Anyone after arcsecond ephemerides should reach for a
// Meeus-grade library instead.
package solar

import (
	"errors"
	"math"
	"time"

	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// Elevation angles (degrees, relative to the horizon) at which the Sun
// crossings of interest occur. The horizon value accounts for atmospheric
// refraction plus the Sun's apparent radius.
const (
	HorizonElevation      = -0.833
	CivilElevation        = -6.0
	NauticalElevation     = -12.0
	AstronomicalElevation = -18.0
)

// ErrInvalidCoordinates is returned when a latitude or longitude is outside
// its valid range. It is checked before any trigonometric work so that
// cos(latitude) can never be evaluated at an out-of-range pole.
var ErrInvalidCoordinates = errors.New("latitude or longitude out of range")

// ValidateCoordinates rejects latitudes outside [-90, 90] and longitudes
// outside [-180, 180] (degrees).
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Declination returns the Sun's declination (degrees) for the given 1-based
// day of year, using the classic axial-tilt approximation
//
//	δ = 23.45° · sin(360° · (284 + N) / 365)
//
// Accurate to roughly half a degree, which maps to a few minutes of clock
// time at mid latitudes.
func Declination(dayOfYear int) float64 {
	return 23.45 * timeutil.SinD(360.0/365.0*float64(284+dayOfYear))
}

// EquationOfTime returns the discrepancy between mean and apparent solar
// time (minutes) for the given 1-based day of year, using the usual
// second-order trigonometric fit:
//
//	B = 360° · (N − 81) / 364
//	EoT = 9.87·sin(2B) − 7.53·cos(B) − 1.5·sin(B)
//
// Positive values mean the sundial runs ahead of the clock.
func EquationOfTime(dayOfYear int) float64 {
	b := 360.0 / 364.0 * float64(dayOfYear-81)
	return 9.87*timeutil.SinD(2*b) - 7.53*timeutil.CosD(b) - 1.5*timeutil.SinD(b)
}

// Crossing is the instant the Sun passes through a target elevation,
// expressed relative to the requested calendar date: DayOffset is -1, 0 or
// +1 when the longitude and equation-of-time corrections roll the UTC
// instant into the previous or next day, and Hour is the fractional UTC
// hour of day in [0, 24).
type Crossing struct {
	DayOffset int
	Hour      float64
}

// Time materializes the crossing as a concrete UTC instant on the given
// calendar date.
func (c Crossing) Time(date time.Time) time.Time {
	year, month, day := date.UTC().Date()
	return timeutil.FractionalHoursToTime(year, month, day, float64(c.DayOffset)*24+c.Hour)
}

// CrossingTime computes when the Sun crosses targetElevation (degrees) on
// the given date at (lat, lon), rising or setting. The hour angle H solves
//
//	cos H = (sin h₀ − sin δ · sin φ) / (cos δ · cos φ)
//
// When the right-hand side falls outside [-1, 1] the Sun never reaches the
// target elevation that day (polar day or polar night) and ok is false.
// That is a normal outcome, not an error; callers must branch on ok.
//
// Coordinates are assumed pre-validated via ValidateCoordinates.
func CrossingTime(lat, lon float64, date time.Time, targetElevation float64, rising bool) (Crossing, bool) {
	year, month, day := date.UTC().Date()
	n := timeutil.DayOfYear(year, month, day)
	decl := Declination(n)

	cosH := (timeutil.SinD(targetElevation) - timeutil.SinD(decl)*timeutil.SinD(lat)) /
		(timeutil.CosD(decl) * timeutil.CosD(lat))
	if cosH < -1 || cosH > 1 {
		return Crossing{}, false
	}

	// Hour angle in hours either side of solar noon.
	hourAngle := timeutil.Rad2Deg(math.Acos(cosH)) / 15.0

	// Solar noon in UTC hours: 4 minutes per degree of longitude, plus the
	// equation-of-time correction.
	noon := 12.0 - lon/15.0 - EquationOfTime(n)/60.0

	utc := noon + hourAngle
	if rising {
		utc = noon - hourAngle
	}

	offset := 0
	for utc < 0 {
		utc += 24
		offset--
	}
	for utc >= 24 {
		utc -= 24
		offset++
	}

	return Crossing{DayOffset: offset, Hour: utc}, true
}

// ElevationAt returns the Sun's elevation (degrees) above the horizon at the
// given fractional UTC hour of the date at (lat, lon). Used to classify the
// sky state on days where no crossing exists at all.
func ElevationAt(lat, lon float64, date time.Time, hourUTC float64) float64 {
	year, month, day := date.UTC().Date()
	n := timeutil.DayOfYear(year, month, day)
	decl := Declination(n)

	// Apparent solar time, then hour angle: 15° per hour from solar noon.
	solarTime := hourUTC + lon/15.0 + EquationOfTime(n)/60.0
	hourAngleDeg := (solarTime - 12.0) * 15.0

	sinElev := timeutil.SinD(lat)*timeutil.SinD(decl) +
		timeutil.CosD(lat)*timeutil.CosD(decl)*timeutil.CosD(hourAngleDeg)
	return timeutil.Rad2Deg(math.Asin(sinElev))
}
