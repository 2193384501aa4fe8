package phantastro

import (
	"sort"
	"time"

	"github.com/thiemogries/phantastro-sub000/internal/solar"
	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// A twilightEvent is one solar crossing placed on the window's absolute-hour
// axis. to is the sky state the crossing transitions into; rank fixes the
// processing order when two events coincide (degenerate high-latitude
// cases): dawns before dusks, innermost angle first.
type twilightEvent struct {
	abs  float64
	to   State
	rank int
}

// crossingSpec describes one of the eight potential crossings of a day.
type crossingSpec struct {
	elevation float64
	rising    bool
	to        State
	rank      int
}

var twilightCrossings = []crossingSpec{
	{solar.AstronomicalElevation, true, StateAstronomical, 0},
	{solar.NauticalElevation, true, StateNautical, 1},
	{solar.CivilElevation, true, StateCivil, 2},
	{solar.HorizonElevation, true, StateDay, 3},
	{solar.AstronomicalElevation, false, StateNight, 4},
	{solar.NauticalElevation, false, StateAstronomical, 5},
	{solar.CivilElevation, false, StateNautical, 6},
	{solar.HorizonElevation, false, StateCivil, 7},
}

// buildTwilight produces the gap-free sky-state tiling of the window.
// Coordinates are already validated.
//
// Per-day failures (an unparseable window date, a malformed override string)
// degrade that day to night instead of aborting: the rest of the week must
// still render.
func buildTwilight(c Coordinates, w Window, times []DayTimes) []Segment {
	total := w.Hours()

	// Days whose computation failed (bad date, malformed override) are
	// forced to night. Crossings rolled over from neighbors are dropped on
	// those days so the fallback really covers the whole date.
	forced := make([]bool, len(w.days))
	overrides := make([]*riseSetDay, len(w.days))
	for i, day := range w.days {
		override, ok := horizonOverride(times, i)
		forced[i] = !day.Valid || !ok
		overrides[i] = override
	}

	var events []twilightEvent
	add := func(abs float64, to State, rank int) {
		if abs < 0 || abs > total {
			return
		}
		if day := int(abs / 24); day < len(forced) && forced[day] && rank >= 0 {
			return
		}
		events = append(events, twilightEvent{abs: abs, to: to, rank: rank})
	}

	for i, day := range w.days {
		if forced[i] {
			events = append(events, twilightEvent{abs: float64(i) * 24, to: StateNight, rank: -1})
			continue
		}
		override := overrides[i]

		for _, spec := range twilightCrossings {
			if spec.elevation == solar.HorizonElevation && override != nil {
				cl := override.rise
				if !spec.rising {
					cl = override.set
				}
				if cl.Valid {
					add(float64(i)*24+cl.Hours, spec.to, spec.rank)
					continue
				}
				if cl.Raw != "" {
					// Sentinel: the feed states this event does not
					// happen today.
					continue
				}
				// Field omitted by the feed: fall through to the
				// computed crossing.
			}

			cr, found := solar.CrossingTime(c.Lat, c.Lon, day.Date, spec.elevation, spec.rising)
			if !found {
				// Polar condition: the crossing simply does not exist today.
				continue
			}
			add(float64(i+cr.DayOffset)*24+cr.Hour, spec.to, spec.rank)
		}
	}

	sort.Slice(events, func(a, b int) bool {
		if events[a].abs != events[b].abs {
			return events[a].abs < events[b].abs
		}
		return events[a].rank < events[b].rank
	})

	state := initialTwilightState(c, w, times)

	segments := make([]Segment, 0, len(events)+1)
	cur := 0.0
	for _, e := range events {
		if e.abs > cur {
			segments = append(segments, newSegment(cur, e.abs, state, Meta{}))
			cur = e.abs
		}
		state = e.to
	}
	if cur < total {
		segments = append(segments, newSegment(cur, total, state, Meta{}))
	}
	return segments
}

// horizonOverride returns the authoritative sunrise/sunset pair for day i,
// or nil when the feed supplied nothing. A partial override is honored per
// field: the omitted field (empty string, Raw=="") falls back to the
// computed crossing, while a sentinel is kept as a genuine no-event. ok is
// false when an override string is present but malformed, which counts as a
// per-day failure.
func horizonOverride(times []DayTimes, i int) (*riseSetDay, bool) {
	if times == nil || i >= len(times) {
		return nil, true
	}
	if times[i].Sunrise == "" && times[i].Sunset == "" {
		return nil, true
	}

	rise, err := timeutil.ParseClock(times[i].Sunrise)
	if err != nil {
		return nil, false
	}
	set, err := timeutil.ParseClock(times[i].Sunset)
	if err != nil {
		return nil, false
	}
	return &riseSetDay{rise: rise, set: set}, true
}

// initialTwilightState infers the sky state at the very start of the window
// from day 0's sunrise/sunset relationship: a sunrise later than sunset
// means the previous evening's sun has not yet set, so the window opens in
// daylight. When neither crossing exists the day is polar, and the Sun's
// elevation at local solar noon decides between polar day and polar night.
//
// A window opening mid-twilight is still classified as day or night; the
// first crossing events correct the state within hours. Known approximation.
func initialTwilightState(c Coordinates, w Window, times []DayTimes) State {
	day := w.days[0]
	override, ok := horizonOverride(times, 0)
	if !day.Valid || !ok {
		return StateNight
	}

	rise, okRise := dayHorizonCrossing(c, day.Date, override, true)
	set, okSet := dayHorizonCrossing(c, day.Date, override, false)

	switch {
	case okRise && okSet:
		// Sunrise after sunset: the previous evening's sun is still up.
		// A sunrise rolled into the previous day with sunset still ahead
		// is the same situation expressed across midnight.
		if rise > set || (rise <= 0 && set > 0) {
			return StateDay
		}
		return StateNight
	case okRise:
		return StateNight
	case okSet:
		return StateDay
	default:
		noon := 12.0 - c.Lon/15.0
		if solar.ElevationAt(c.Lat, c.Lon, day.Date, noon) > solar.HorizonElevation {
			return StateDay
		}
		return StateNight
	}
}

// dayHorizonCrossing returns day 0's sunrise or sunset as an hour on the
// window axis, from the override when its field is present, otherwise
// computed. A sentinel override field means the event does not exist.
func dayHorizonCrossing(c Coordinates, date time.Time, override *riseSetDay, rising bool) (float64, bool) {
	if override != nil {
		cl := override.rise
		if !rising {
			cl = override.set
		}
		if cl.Valid {
			return cl.Hours, true
		}
		if cl.Raw != "" {
			return 0, false
		}
	}

	cr, ok := solar.CrossingTime(c.Lat, c.Lon, date, solar.HorizonElevation, rising)
	if !ok {
		return 0, false
	}
	return float64(cr.DayOffset)*24 + cr.Hour, true
}
