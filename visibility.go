package phantastro

import (
	"sort"

	"github.com/thiemogries/phantastro-sub000/internal/timeutil"
)

// riseSetDay is one day's parsed rise/set pair. Sentinel strings were
// already folded into Clock.Valid at parse time, so the algorithm below
// never compares against "---" style magic values.
type riseSetDay struct {
	rise timeutil.Clock
	set  timeutil.Clock
}

func (d riseSetDay) hasEvent() bool {
	return d.rise.Valid || d.set.Valid
}

// visEvent is a rise or set placed on the window's absolute-hour axis.
type visEvent struct {
	abs   float64
	isSet bool
	raw   string
}

// buildVisibility converts per-day rise/set pairs into the body's
// "above the horizon" intervals across the whole window. Only visible
// intervals are materialized; the complement is implicitly "not visible",
// so the result does not tile the window.
//
// The body and the location never appear here: the same walk serves the Sun
// and the Moon, fed different strings.
func buildVisibility(days []riseSetDay) []Segment {
	total := float64(len(days)) * 24

	events := make([]visEvent, 0, 2*len(days))
	for i, d := range days {
		if d.rise.Valid {
			events = append(events, visEvent{abs: float64(i)*24 + d.rise.Hours, raw: d.rise.Raw})
		}
		if d.set.Valid {
			events = append(events, visEvent{abs: float64(i)*24 + d.set.Hours, isSet: true, raw: d.set.Raw})
		}
	}
	sort.SliceStable(events, func(a, b int) bool {
		if events[a].abs != events[b].abs {
			return events[a].abs < events[b].abs
		}
		// A rise and a set at the same instant: open first, so the pair
		// collapses into a zero-duration (dropped) segment.
		return !events[a].isSet && events[b].isSet
	})

	var segments []Segment

	// If the first thing the body does is set, it must have been up since
	// before the window began.
	visible := len(events) > 0 && events[0].isSet
	start := 0.0
	riseLabel := MarkerRoseEarlier

	for _, e := range events {
		if e.isSet {
			// A set while not visible is malformed input; ignore it.
			if visible {
				if e.abs > start {
					segments = append(segments, newSegment(start, e.abs, StateVisible, Meta{
						Rise: riseLabel,
						Set:  e.raw,
					}))
				}
				visible = false
			}
			continue
		}
		// A rise while already visible is likewise a no-op.
		if !visible {
			visible = true
			start = e.abs
			riseLabel = e.raw
		}
	}

	// Still up at the end of the window: close at the boundary and say so.
	if visible && total > start {
		segments = append(segments, newSegment(start, total, StateVisible, Meta{
			Rise: riseLabel,
			Set:  MarkerContinues,
			Tag:  MarkerContinues,
		}))
	}

	segments = append(segments, inferAllDaySegments(days, segments)...)

	sort.Slice(segments, func(a, b int) bool {
		return segments[a].StartAbs() < segments[b].StartAbs()
	})
	return segments
}

// inferAllDaySegments handles days that list neither a rise nor a set: when
// such a day sits next to a day that does have an event, the body rose on an
// earlier day and sets on a later one, and the eventless day was simply
// skipped by the feed (a long high-latitude arc). The day is then visible
// end to end. An eventless day with eventless neighbors stays unknown and
// gets no segment.
func inferAllDaySegments(days []riseSetDay, existing []Segment) []Segment {
	var inferred []Segment
	for i, d := range days {
		if d.hasEvent() {
			continue
		}

		dayStart := float64(i) * 24
		dayEnd := dayStart + 24
		covered := false
		for _, s := range existing {
			if s.StartAbs() < dayEnd && s.EndAbs() > dayStart {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		prevHas := i > 0 && days[i-1].hasEvent()
		nextHas := i < len(days)-1 && days[i+1].hasEvent()
		if !prevHas && !nextHas {
			continue
		}

		inferred = append(inferred, newSegment(dayStart, dayEnd, StateVisible, Meta{
			Rise: MarkerRoseEarlier,
			Set:  MarkerSetsLater,
			Tag:  MarkerAllDay,
		}))
	}
	return inferred
}
