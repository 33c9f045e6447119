package progress

import "strconv"

// State describes how a single segment is drawn.
type State string

const (
	// StatePending marks pages the user has not reached yet.
	StatePending State = "pending"
	// StateActive marks the page currently displayed.
	StateActive State = "active"
	// StateDone marks pages already completed.
	StateDone State = "done"
)

// Segment is one bubble of the indicator. Index is 0-based; HasConnector is
// false only for the last segment.
type Segment struct {
	Index        int   `json:"index"`
	State        State `json:"state"`
	HasConnector bool  `json:"hasConnector"`
}

// Segments returns total segments for a 1-based current page. Out of range
// pages are not clamped: current < 1 yields all pending and current > total
// yields all done. A non-positive total yields an empty slice.
func Segments(total, current int) []Segment {
	if total <= 0 {
		return []Segment{}
	}

	out := make([]Segment, total)
	for index := range out {
		out[index] = Segment{
			Index:        index,
			State:        classify(index, current),
			HasConnector: index != total-1,
		}
	}
	return out
}

func classify(index, current int) State {
	switch {
	case current > index+1:
		return StateDone
	case current == index+1:
		return StateActive
	default:
		return StatePending
	}
}

// Label returns the 1-based number shown inside the bubble.
func (s Segment) Label() string {
	return strconv.Itoa(s.Index + 1)
}

// Class returns the CSS modifier classes for the bubble. Connector classes
// follow the same rule through ConnectorClass.
func (s Segment) Class() string {
	switch s.State {
	case StateActive:
		return "fl-bubble fl-bubble--active"
	case StateDone:
		return "fl-bubble fl-bubble--done"
	default:
		return "fl-bubble"
	}
}

// ConnectorClass returns the classes for the line drawn after the bubble, or
// an empty string when the segment has no connector.
func (s Segment) ConnectorClass() string {
	if !s.HasConnector {
		return ""
	}
	if s.State == StateDone {
		return "fl-line fl-line--done"
	}
	return "fl-line"
}

// Percent reports the share of completed pages in the [0, 100] range. It is
// used by text renderers that draw a bar instead of bubbles.
func Percent(total, current int) int {
	if total <= 0 {
		return 0
	}
	done := current - 1
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return done * 100 / total
}
