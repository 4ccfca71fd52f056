package movemode

import (
	"github.com/1broseidon/tagwm/internal/platform"
	"github.com/1broseidon/tagwm/internal/registry"
	"github.com/1broseidon/tagwm/internal/tiling"
)

// MotionInterval is the minimum number of milliseconds between two applied
// pointer motions, capping updates at 60 per second.
const MotionInterval = 1000 / 60

// Phase represents the current phase of an interactive operation
type Phase int

const (
	// PhaseIdle means no pointer operation is in progress
	PhaseIdle Phase = iota
	// PhaseMoving drags a client around
	PhaseMoving
	// PhaseResizing drags a client's bottom right corner
	PhaseResizing
	// PhasePicking waits for a click on the window that should be hidden
	PhasePicking
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMoving:
		return "moving"
	case PhaseResizing:
		return "resizing"
	case PhasePicking:
		return "picking"
	default:
		return "unknown"
	}
}

// Session holds the state of one pointer grab. The dispatcher feeds it
// events until the button is released.
type Session struct {
	Phase  Phase
	Client registry.ClientID
	// Origin is the client geometry when the grab started.
	Origin tiling.Rect
	// PointerX and PointerY are the root coordinates at grab time.
	PointerX int
	PointerY int

	last    uint32
	pending []platform.Event
}

// Begin starts a new operation, discarding any previous state.
func (s *Session) Begin(phase Phase, client registry.ClientID, origin tiling.Rect, px, py int) {
	*s = Session{
		Phase:    phase,
		Client:   client,
		Origin:   origin,
		PointerX: px,
		PointerY: py,
	}
}

// Active reports whether a grab is in progress.
func (s *Session) Active() bool {
	return s.Phase != PhaseIdle
}

// Accept applies the motion throttle. A motion is applied only when more
// than MotionInterval milliseconds passed since the last applied one.
func (s *Session) Accept(t uint32) bool {
	if t-s.last <= MotionInterval {
		return false
	}
	s.last = t
	return true
}

// Filter decides what happens to ev while the session is active. It returns
// true for events to handle now. Further button presses are dropped.
// Everything else is held back and returned by End, in arrival order.
func (s *Session) Filter(ev platform.Event) bool {
	switch ev.(type) {
	case platform.MotionNotify, platform.ButtonRelease,
		platform.ConfigureRequest, platform.MapRequest, platform.Expose:
		return true
	case platform.ButtonPress:
		return false
	}
	s.pending = append(s.pending, ev)
	return false
}

// End finishes the session and returns the events that were held back.
func (s *Session) End() []platform.Event {
	pending := s.pending
	*s = Session{}
	return pending
}
