// Package moon computes the Moon's illumination state for dashboard
// tooltips: illuminated fraction, elongation from the Sun, waxing/waning and
// a qualitative phase name. Phase is a geocentric property, independent of
// the observer's location, so everything here works in UTC.
//
// The position models are truncated Meeus-style series, good to a fraction
// of a degree. Moon rise/set is not computed here at all; those times come
// from the upstream data feed.
package moon

import (
	"math"
	"time"

	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// equatorial holds geocentric right ascension and declination in degrees.
type equatorial struct {
	ra  float64
	dec float64
}

// Phase describes the Moon's illumination at a given instant.
type Phase struct {
	Time       time.Time // the instant this phase is evaluated at
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true while illumination is increasing
	Name       string    // "New Moon", "Waxing Crescent", "First Quarter", ...
}

// obliquity returns the mean obliquity of the ecliptic in radians, with the
// linear secular term in Julian centuries.
func obliquity(t time.Time) float64 {
	T := timeutil.JulianCenturies(t)
	return timeutil.Deg2Rad(23.4392911 - 0.0130042*T)
}

// sunEquatorial returns an approximate geocentric RA/Dec for the Sun,
// arcminute-level, using the simplified NOAA/Meeus solar model:
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude with equation of center
//	eps = obliquity of the ecliptic
func sunEquatorial(t time.Time) equatorial {
	d := timeutil.DaysSinceJ2000(t)

	g := timeutil.Deg2Rad(357.529 + 0.98560028*d)
	q := timeutil.Deg2Rad(280.459 + 0.98564736*d)

	L := q +
		timeutil.Deg2Rad(1.915)*math.Sin(g) +
		timeutil.Deg2Rad(0.020)*math.Sin(2*g)

	eps := obliquity(t)

	x := math.Cos(L)
	y := math.Cos(eps) * math.Sin(L)
	z := math.Sin(eps) * math.Sin(L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return equatorial{
		ra:  timeutil.Rad2Deg(ra),
		dec: timeutil.Rad2Deg(math.Asin(z)),
	}
}

// moonEquatorial returns an approximate geocentric RA/Dec for the Moon using
// the dominant periodic terms of a truncated Meeus series:
//
//	L'  = mean longitude of the Moon
//	M   = mean anomaly of the Sun
//	Mm  = mean anomaly of the Moon
//	D   = mean elongation of the Moon from the Sun
//	F   = argument of latitude of the Moon
func moonEquatorial(t time.Time) equatorial {
	d := timeutil.DaysSinceJ2000(t)

	Lprime := timeutil.Normalize360(218.3164477 + 13.17639648*d)
	M := timeutil.Normalize360(357.5291092 + 0.98560028*d)
	Mm := timeutil.Normalize360(134.9633964 + 13.06499295*d)
	D := timeutil.Normalize360(297.8501921 + 12.19074912*d)
	F := timeutil.Normalize360(93.2720950 + 13.22935024*d)

	Lr := timeutil.Deg2Rad(Lprime)
	Mr := timeutil.Deg2Rad(M)
	Mmr := timeutil.Deg2Rad(Mm)
	Dr := timeutil.Deg2Rad(D)
	Fr := timeutil.Deg2Rad(F)

	// Ecliptic longitude λ from the main evection/variation terms.
	lon := Lr +
		timeutil.Deg2Rad(6.289)*math.Sin(Mmr) +
		timeutil.Deg2Rad(1.274)*math.Sin(2*Dr-Mmr) +
		timeutil.Deg2Rad(0.658)*math.Sin(2*Dr) +
		timeutil.Deg2Rad(0.214)*math.Sin(2*Mmr) -
		timeutil.Deg2Rad(0.186)*math.Sin(Mr) -
		timeutil.Deg2Rad(0.114)*math.Sin(2*Fr)

	// Ecliptic latitude β, similarly truncated.
	lat := timeutil.Deg2Rad(5.128)*math.Sin(Fr) +
		timeutil.Deg2Rad(0.280)*math.Sin(Mmr+Fr) +
		timeutil.Deg2Rad(0.277)*math.Sin(Mmr-Fr) +
		timeutil.Deg2Rad(0.173)*math.Sin(2*Dr-Fr)

	eps := obliquity(t)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat)*math.Sin(lon)*math.Cos(eps) - math.Sin(lat)*math.Sin(eps)
	z := math.Cos(lat)*math.Sin(lon)*math.Sin(eps) + math.Sin(lat)*math.Cos(eps)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return equatorial{
		ra:  timeutil.Rad2Deg(ra),
		dec: timeutil.Rad2Deg(math.Asin(z)),
	}
}

// PhaseAt evaluates the Moon's illumination at time t.
func PhaseAt(t time.Time) Phase {
	utc := t.UTC()

	sun := sunEquatorial(utc)
	moon := moonEquatorial(utc)

	raSun := timeutil.Deg2Rad(sun.ra)
	decSun := timeutil.Deg2Rad(sun.dec)
	raMoon := timeutil.Deg2Rad(moon.ra)
	decMoon := timeutil.Deg2Rad(moon.dec)

	// Angular separation ψ between Sun and Moon:
	// cos ψ = sin δs sin δm + cos δs cos δm cos(αs − αm)
	cosPsi := math.Sin(decSun)*math.Sin(decMoon) +
		math.Cos(decSun)*math.Cos(decMoon)*math.Cos(raSun-raMoon)

	// Clamp numerical noise.
	if cosPsi > 1 {
		cosPsi = 1
	} else if cosPsi < -1 {
		cosPsi = -1
	}

	psi := math.Acos(cosPsi)

	// Illuminated fraction k = (1 − cos ψ) / 2.
	fraction := 0.5 * (1 - cosPsi)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	// Waxing vs waning: which side of the Sun the Moon is on.
	sep := timeutil.Normalize360(moon.ra - sun.ra)
	waxing := sep < 180.0

	return Phase{
		Time:       t,
		Fraction:   fraction,
		Elongation: timeutil.Rad2Deg(psi),
		Waxing:     waxing,
		Name:       phaseName(fraction, waxing),
	}
}

func phaseName(f float64, waxing bool) string {
	const (
		eps        = 0.01 // near 0 or 1
		quarterTol = 0.05 // fraction window around 0.5
	)

	switch {
	case f < eps:
		return "New Moon"
	case f > 1-eps:
		return "Full Moon"
	case math.Abs(f-0.5) < quarterTol:
		if waxing {
			return "First Quarter"
		}
		return "Last Quarter"
	case f < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
