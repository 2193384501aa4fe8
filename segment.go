package phantastro

import (
	"encoding/json"
	"fmt"

	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// State labels what a segment represents: one of the five sky-brightness
// states for twilight segments, or StateVisible for body-visibility
// segments.
type State int

const (
	StateNight State = iota
	StateAstronomical
	StateNautical
	StateCivil
	StateDay
	StateVisible
)

func (s State) String() string {
	switch s {
	case StateNight:
		return "night"
	case StateAstronomical:
		return "astronomical"
	case StateNautical:
		return "nautical"
	case StateCivil:
		return "civil"
	case StateDay:
		return "day"
	case StateVisible:
		return "visible"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalJSON emits the state label rather than the numeric value, which is
// what the dashboard binds its CSS classes on.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Markers used in segment metadata when a boundary does not come from a
// literal rise/set string.
const (
	// MarkerContinues: the body is still above the horizon at the end of
	// the window; the segment was closed at the window boundary.
	MarkerContinues = "continues"

	// MarkerAllDay: the segment covers a whole day inferred from its
	// neighbors, with no rise/set event of its own.
	MarkerAllDay = "all-day"

	// MarkerRoseEarlier: the segment was already in progress at its start
	// boundary; the actual rise happened before the covered range.
	MarkerRoseEarlier = "rose-earlier"

	// MarkerSetsLater: the actual set happens after the covered range.
	MarkerSetsLater = "sets-later"
)

// Meta carries the provenance of a segment's boundaries: the literal
// upstream rise/set strings, or one of the Marker* sentinels when a boundary
// was synthesized. Twilight segments leave it empty.
type Meta struct {
	Rise string `json:"rise,omitempty"`
	Set  string `json:"set,omitempty"`
	Tag  string `json:"tag,omitempty"` // MarkerContinues or MarkerAllDay, "" otherwise
}

// Segment is one labeled time interval of the rendering window. Day indexes
// are 0-based window positions; hours are fractional hours of that day.
// Segments are value objects: built once, never mutated.
type Segment struct {
	StartDay   int     `json:"start_day"`
	StartHour  float64 `json:"start_hour"`
	EndDay     int     `json:"end_day"`
	EndHour    float64 `json:"end_hour"`
	TotalHours float64 `json:"total_hours"`
	State      State   `json:"state"`
	Meta       Meta    `json:"meta"`
}

// newSegment builds a segment from absolute window hours. An end on an exact
// day boundary is expressed as hour 24 of the previous day, matching the
// upstream "24:00" convention, so EndDay always stays inside the window.
func newSegment(startAbs, endAbs float64, state State, meta Meta) Segment {
	startDay := int(startAbs / 24)
	endDay := int(endAbs / 24)
	endHour := endAbs - float64(endDay)*24
	if endHour == 0 && endDay > startDay {
		endDay--
		endHour = 24
	}
	return Segment{
		StartDay:   startDay,
		StartHour:  startAbs - float64(startDay)*24,
		EndDay:     endDay,
		EndHour:    endHour,
		TotalHours: endAbs - startAbs,
		State:      state,
		Meta:       meta,
	}
}

// StartAbs returns the segment start in absolute window hours
// (dayIndex*24 + hourOfDay).
func (s Segment) StartAbs() float64 {
	return float64(s.StartDay)*24 + s.StartHour
}

// EndAbs returns the segment end in absolute window hours.
func (s Segment) EndAbs() float64 {
	return float64(s.EndDay)*24 + s.EndHour
}

// Summary renders the segment for a tooltip: state, clock-time range and
// duration, e.g. "visible 22:15–05:40 (7.4h)".
func (s Segment) Summary() string {
	return fmt.Sprintf("%s %s–%s (%s)",
		s.State,
		timeutil.FormatClock(s.StartHour),
		timeutil.FormatClock(s.EndHour),
		timeutil.FormatDuration(s.TotalHours))
}
