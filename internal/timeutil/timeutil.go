// Package timeutil collects the small time and angle helpers shared by the
// solar, lunar and timeline packages: degree/radian conversion, J2000-based
// epochs, fractional-hour arithmetic and the HH:MM clock-string format used
// by upstream astronomy data feeds.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayOfYear returns the 1-based day of year for the given date.
func DayOfYear(year int, month time.Month, day int) int {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t.YearDay()
}

// FractionalHoursToTime converts fractional hours into a UTC time on the given
// date. h may be negative or >24; day rollover is handled by time.Add.
func FractionalHoursToTime(year int, month time.Month, day int, h float64) time.Time {
	base := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	// Round to the nearest second to avoid nanosecond noise.
	sec := int64(math.Round(h * 3600))

	return base.Add(time.Duration(sec) * time.Second)
}

// -----------------------------
// Clock strings ("HH:MM" and friends)
// -----------------------------

// NoEventSentinels are the strings upstream data feeds use for "no rise/set
// event on this date".
var NoEventSentinels = []string{"---", "----"}

// Clock is a time of day parsed from an upstream "HH:MM" string. Hours are
// fractional; "24:00" parses to exactly 24, the end-of-day boundary.
// Valid=false means "no event". Raw keeps the literal upstream string, so a
// sentinel no-event ("---") stays distinguishable from an omitted field
// (Raw==""): a feed that omits a field has said nothing, while a sentinel is
// a positive statement that the event does not happen.
type Clock struct {
	Hours float64 // fractional hours in [0, 24]
	Raw   string  // the literal upstream string, kept for tooltips
	Valid bool
}

// ParseClock parses an upstream time-of-day string. Sentinel strings and the
// empty string yield an invalid Clock with no error; a malformed non-sentinel
// string yields an error.
func ParseClock(s string) (Clock, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Clock{}, nil
	}
	for _, sentinel := range NoEventSentinels {
		if trimmed == sentinel {
			return Clock{Raw: trimmed}, nil
		}
	}

	hh, mm, found := strings.Cut(trimmed, ":")
	if !found {
		return Clock{}, fmt.Errorf("malformed clock string %q", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, fmt.Errorf("malformed clock string %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, fmt.Errorf("malformed clock string %q: %w", s, err)
	}

	// "24:00" is a legitimate boundary value; anything past it is not.
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return Clock{}, fmt.Errorf("clock string %q out of range", s)
	}

	return Clock{
		Hours: float64(h) + float64(m)/60.0,
		Raw:   trimmed,
		Valid: true,
	}, nil
}

// FormatClock renders fractional hours as "HH:MM". Hour 24 renders as
// "24:00" rather than rolling over, matching the upstream convention.
func FormatClock(h float64) string {
	totalMinutes := int(math.Round(h * 60))
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if totalMinutes > 24*60 {
		totalMinutes = 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// FormatDuration renders a span of fractional hours for tooltips: "7.4h",
// or "1d 3.5h" once the span reaches a full day.
func FormatDuration(hours float64) string {
	if hours >= 24 {
		days := int(hours / 24)
		rest := hours - float64(days)*24
		return fmt.Sprintf("%dd %.1fh", days, rest)
	}
	return fmt.Sprintf("%.1fh", hours)
}

// -----------------------------
// Time relative to J2000
// -----------------------------

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the number of (UTC) days since the J2000.0 epoch.
// Good enough for the low/medium-precision models in this module; a true
// TT-based Julian day is not needed at civil-use accuracy.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

// JulianDay returns the (UT-based) Julian day number for t, via the standard
// Gregorian-calendar conversion.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := y / 100
	B := 2 - A + A/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hour/24.0

	return jd
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	jd := JulianDay(t)
	return (jd - 2451545.0) / 36525.0
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func SinD(deg float64) float64 {
	return math.Sin(Deg2Rad(deg))
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}
