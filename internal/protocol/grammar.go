package protocol

import "fmt"

// State is a position in the unit frame grammar.
type State uint8

const (
	// StateAwaitRegion0 is entered once per frame, right after the header.
	StateAwaitRegion0 State = iota
	StateRegion0Seen
	StateRegion1Seen
	StateRegion2Seen
	StateRegion3Seen
	StateData0Pending
	StateData1Pending
	StateData2Done
	StateIdle
	StateTrailerSeen
)

func (s State) String() string {
	switch s {
	case StateAwaitRegion0:
		return "AwaitRegion0"
	case StateRegion0Seen, StateRegion1Seen, StateRegion2Seen, StateRegion3Seen:
		return fmt.Sprintf("Region%dSeen", s-StateRegion0Seen)
	case StateData0Pending:
		return "Data0Pending"
	case StateData1Pending:
		return "Data1Pending"
	case StateData2Done:
		return "Data2Done"
	case StateIdle:
		return "Idle"
	case StateTrailerSeen:
		return "TrailerSeen"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Grammar is the unit frame state machine: the current state plus the region
// that DATA_0 words are attributed to.
//
// Region headers must appear in strictly increasing order 0, 1, 2, 3, and the
// first non-idle word after the frame header must be REGION_HEADER_0 unless the
// frame is empty. Idle words are accepted anywhere except inside a data triplet.
type Grammar struct {
	State  State
	Region uint8
}

// Next returns the grammar position after consuming w, or false when w is not
// legal in the current state.
func (g Grammar) Next(w Word) (Grammar, bool) {
	switch g.State {
	case StateAwaitRegion0:
		switch {
		case w.Kind == WordIdle:
			return g, true
		case w.Kind == WordRegionHeader && w.ID == 0:
			return Grammar{State: StateRegion0Seen}, true
		case w.Kind == WordUnitFrameTrailer:
			return Grammar{State: StateTrailerSeen}, true
		}

	case StateData0Pending:
		if w.Kind == WordData1 {
			return Grammar{State: StateData1Pending, Region: g.Region}, true
		}

	case StateData1Pending:
		if w.Kind == WordData2 {
			return Grammar{State: StateData2Done, Region: g.Region}, true
		}

	case StateRegion0Seen, StateRegion1Seen, StateRegion2Seen, StateRegion3Seen,
		StateData2Done, StateIdle:
		switch w.Kind {
		case WordData0:
			return Grammar{State: StateData0Pending, Region: g.Region}, true
		case WordIdle:
			return Grammar{State: StateIdle, Region: g.Region}, true
		case WordUnitFrameTrailer:
			return Grammar{State: StateTrailerSeen, Region: g.Region}, true
		case WordRegionHeader:
			if g.Region < MaxRegionID && w.ID == g.Region+1 {
				return Grammar{State: StateRegion0Seen + State(w.ID), Region: w.ID}, true
			}
		}
	}
	return g, false
}

// Expected describes the words Next accepts in the current state.
func (g Grammar) Expected() string {
	switch g.State {
	case StateAwaitRegion0:
		return "REGION_HEADER_0/IDLE/UNIT_FRAME_TRAILER"
	case StateData0Pending:
		return "DATA_1"
	case StateData1Pending:
		return "DATA_2"
	case StateTrailerSeen:
		return "end of frame"
	}
	if g.Region < MaxRegionID {
		return fmt.Sprintf("REGION_HEADER_%d/DATA_0/IDLE/UNIT_FRAME_TRAILER", g.Region+1)
	}
	return "DATA_0/IDLE/UNIT_FRAME_TRAILER"
}

// ExtractHits runs the grammar over frame, which must start at the byte right
// after a unit frame header. It stops at the first trailer and returns the
// assembled hits and the trailer's index in frame. Bytes past the trailer are
// not inspected.
//
// Error indexes are relative to frame, not to the header.
func ExtractHits(frame []byte) ([]Hit, int, error) {
	hits := []Hit{}
	g := Grammar{}
	for i, b := range frame {
		w := Classify(b)
		next, ok := g.Next(w)
		if !ok {
			return nil, i, &ParseError{
				Kind:    KindProtocolError,
				Message: fmt.Sprintf("expected %s, got %s (0x%02X)", g.Expected(), w, b),
				Index:   i,
				Frame:   -1,
			}
		}
		switch w.Kind {
		case WordData0:
			hits = beginHit(hits, next.Region, b)
		case WordData1:
			continueRowCol(hits, b)
		case WordData2:
			finishCol(hits, b)
		}
		if next.State == StateTrailerSeen {
			return hits, i, nil
		}
		g = next
	}
	return nil, len(frame), &ParseError{
		Kind:    KindEndOfBufferNoTrailer,
		Message: fmt.Sprintf("no unit frame trailer after %d bytes, expected %s", len(frame), g.Expected()),
		Index:   len(frame),
		Frame:   -1,
	}
}
