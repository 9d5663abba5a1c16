package overlay

import "github.com/mobile-next/floatdim/types"

// Gesture is how a press has been classified so far.
type Gesture string

const (
	GestureNone    Gesture = "none"
	GesturePending Gesture = "pending"
	GestureTap     Gesture = "tap"
	GestureDrag    Gesture = "drag"
	GestureHold    Gesture = "hold"
)

// Session is the bookkeeping for one pointer-down to up/cancel interaction.
type Session struct {
	Origin    types.Point
	StartIcon types.Point
	DownAt    int64

	// Moved latches once the pointer leaves the slop square and never resets.
	Moved bool

	// CanToggleScreen records whether the press started with neither dim nor
	// the close control active.
	CanToggleScreen bool

	held bool
}

func (s *Session) elapsed(at int64) int64 {
	return at - s.DownAt
}

func (s *Session) gesture() Gesture {
	switch {
	case s.Moved:
		return GestureDrag
	case s.held:
		return GestureHold
	}
	return GesturePending
}
