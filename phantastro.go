// Package phantastro turns a location and a span of calendar dates into the
// labeled time intervals an observing-weather timeline is drawn from.
//
// Two kinds of interval sequences are produced:
//
//   - Twilight segments: a gap-free tiling of the whole window into
//     day / civil / nautical / astronomical / night sky states, computed
//     from closed-form solar-position formulas (or from authoritative
//     sunrise/sunset strings when the upstream data source supplies them).
//   - Visibility segments: the intervals a body (Sun or Moon) is above the
//     horizon, reconstructed from per-day rise/set time strings that may be
//     missing, sentinel-valued, or describe arcs that cross midnight.
//
// Everything is a pure function of its inputs: no I/O, no shared state, no
// side effects. Results may be memoized on (coordinates, window, overrides)
// and all functions are safe for concurrent use.
package phantastro

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thiemogries/phantastro-sub000/internal/moon"
	"github.com/thiemogries/phantastro-sub000/internal/solar"
	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// Body represents a celestial body whose visibility can be charted.
type Body int

const (
	Sun Body = iota
	Moon
)

var (
	// ErrInvalidCoordinates is returned when a latitude or longitude is
	// outside its valid range. It fires before any trigonometric work.
	ErrInvalidCoordinates = solar.ErrInvalidCoordinates

	// ErrInvalidDate is returned when a window date string cannot be parsed.
	ErrInvalidDate = errors.New("unparseable date")

	// ErrEmptyWindow is returned when a window contains no dates at all.
	ErrEmptyWindow = errors.New("window contains no dates")
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Validate rejects latitudes outside [-90, 90] and longitudes outside
// [-180, 180] with ErrInvalidCoordinates.
func (c Coordinates) Validate() error {
	return solar.ValidateCoordinates(c.Lat, c.Lon)
}

// Day is one calendar date of a window. A date string that failed to parse
// keeps its raw form with Valid=false; the builders substitute a safe
// fallback for such days instead of aborting the window.
type Day struct {
	Date  time.Time // midnight UTC of the calendar date
	Raw   string    // the original "YYYY-MM-DD" input
	Valid bool
}

// Window is an ordered, contiguous run of calendar dates, typically seven.
// Construct it once per render and share it; it is never mutated.
type Window struct {
	days []Day
}

// NewWindow builds a window from ISO "YYYY-MM-DD" date strings. A date that
// fails to parse is kept as an invalid day (its timeline degrades to a safe
// fallback) rather than failing the whole window; only an empty input is an
// error.
func NewWindow(dates []string) (Window, error) {
	if len(dates) == 0 {
		return Window{}, ErrEmptyWindow
	}

	days := make([]Day, 0, len(dates))
	for _, raw := range dates {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
		if err != nil {
			days = append(days, Day{Raw: raw})
			continue
		}
		days = append(days, Day{Date: d, Raw: raw, Valid: true})
	}
	return Window{days: days}, nil
}

// Len returns the number of days in the window.
func (w Window) Len() int {
	return len(w.days)
}

// Hours returns the total span of the window in hours.
func (w Window) Hours() float64 {
	return float64(len(w.days)) * 24
}

// DayLabel returns a short label for the given day index, for tooltips.
func (w Window) DayLabel(i int) string {
	if i < 0 || i >= len(w.days) {
		return ""
	}
	d := w.days[i]
	if !d.Valid {
		return d.Raw
	}
	return d.Date.Format("Mon 02 Jan")
}

// DayTimes carries the authoritative per-day rise/set strings from the
// upstream weather/astronomy data source. Fields hold "HH:MM", a sentinel
// ("---", "----", "24:00"), or are empty when the feed had no value.
type DayTimes struct {
	Sunrise  string
	Sunset   string
	Moonrise string
	Moonset  string
}

// TwilightTimeline computes the gap-free sky-state tiling of the window for
// the given location. times may be nil; when present, per-day sunrise/sunset
// strings override the locally computed horizon crossings (twilight-band
// crossings are always computed locally).
//
// The returned segments are sorted by start and exactly tile
// [0, Len()*24] absolute hours.
func TwilightTimeline(c Coordinates, w Window, times []DayTimes) ([]Segment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, ErrEmptyWindow
	}
	return buildTwilight(c, w, times), nil
}

// VisibilityTimeline computes the "above the horizon" intervals of the given
// body across the window from per-day rise/set strings. For the Sun, days
// with no authoritative strings fall back to locally computed rise/set
// times; the Moon has no local fallback and missing data simply yields no
// events for that day.
//
// Unlike TwilightTimeline the result does not tile the window: only visible
// intervals are materialized, "not visible" is the implicit complement.
func VisibilityTimeline(body Body, c Coordinates, w Window, times []DayTimes) ([]Segment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, ErrEmptyWindow
	}

	days := make([]riseSetDay, w.Len())
	for i, d := range w.days {
		var riseStr, setStr string
		if times != nil && i < len(times) {
			switch body {
			case Moon:
				riseStr, setStr = times[i].Moonrise, times[i].Moonset
			default:
				riseStr, setStr = times[i].Sunrise, times[i].Sunset
			}
		}

		// A malformed string is treated the same as an absent one: the
		// affected day just contributes no event, never a crash.
		rise, err := timeutil.ParseClock(riseStr)
		if err != nil {
			rise = timeutil.Clock{}
		}
		set, err := timeutil.ParseClock(setStr)
		if err != nil {
			set = timeutil.Clock{}
		}

		if body == Sun && d.Valid {
			if !rise.Valid && riseStr == "" {
				rise = computedClock(c, d.Date, true)
			}
			if !set.Valid && setStr == "" {
				set = computedClock(c, d.Date, false)
			}
		}

		days[i] = riseSetDay{rise: rise, set: set}
	}

	return buildVisibility(days), nil
}

// computedClock derives a rise or set clock value from the closed-form solar
// model, for days where the upstream feed supplied nothing. A crossing that
// rolls over into a neighboring day is dropped: the neighbor's own
// computation covers it.
func computedClock(c Coordinates, date time.Time, rising bool) timeutil.Clock {
	cr, ok := solar.CrossingTime(c.Lat, c.Lon, date, solar.HorizonElevation, rising)
	if !ok || cr.DayOffset != 0 {
		return timeutil.Clock{}
	}
	return timeutil.Clock{
		Hours: cr.Hour,
		Raw:   timeutil.FormatClock(cr.Hour),
		Valid: true,
	}
}

// MoonPhase describes the illuminated fraction and qualitative phase of the
// Moon at a given instant, for the dashboard's moon tooltip.
type MoonPhase struct {
	Time       time.Time // the instant this phase is evaluated at
	Fraction   float64   // illuminated fraction [0..1], 0=new, 1=full
	Elongation float64   // Sun-Moon angular separation in degrees [0..180]
	Waxing     bool      // true while illumination is increasing
	Name       string    // e.g. "New Moon", "Waxing Crescent", "First Quarter", ...
}

// MoonPhaseAt evaluates the Moon's illumination at the given instant. Phase
// is a global property, independent of the observer's location.
func MoonPhaseAt(t time.Time) MoonPhase {
	p := moon.PhaseAt(t)
	return MoonPhase{
		Time:       p.Time,
		Fraction:   p.Fraction,
		Elongation: p.Elongation,
		Waxing:     p.Waxing,
		Name:       p.Name,
	}
}

// SunCrossing returns the UTC instant the Sun crosses the given elevation
// angle (degrees) on a date, rising or setting. ok is false when the Sun
// never reaches that elevation on that date (polar day or polar night);
// callers must treat that as a first-class outcome, not a failure.
func SunCrossing(c Coordinates, date time.Time, elevation float64, rising bool) (time.Time, bool, error) {
	if err := c.Validate(); err != nil {
		return time.Time{}, false, err
	}
	cr, ok := solar.CrossingTime(c.Lat, c.Lon, date, elevation, rising)
	if !ok {
		return time.Time{}, false, nil
	}
	return cr.Time(date), true, nil
}

// ParseDate parses an ISO "YYYY-MM-DD" date string, wrapping failures in
// ErrInvalidDate.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
