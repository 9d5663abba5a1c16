package overlay

import (
	"time"

	"github.com/mobile-next/floatdim/types"
	"github.com/mobile-next/floatdim/utils"
)

// Thresholds separate a tap from a drag and a hold.
type Thresholds struct {
	Slop int
	Hold time.Duration

	// CancelToggles lets a cancelled press flip dimming like a release.
	CancelToggles bool
}

// Outcome is the result of feeding one pointer event to the classifier.
type Outcome struct {
	Gesture  Gesture               `json:"gesture"`
	Toggled  bool                  `json:"toggled,omitempty"`
	Commands []types.WindowCommand `json:"commands"`
}

// Classifier turns a single pointer's down/move/up/cancel stream into icon
// drags, close control reveals and dim toggles.
type Classifier struct {
	thresholds Thresholds
	layout     Layout
	toggle     *DimToggle
	icon       types.Point
	session    *Session
}

func NewClassifier(th Thresholds, layout Layout, toggle *DimToggle) *Classifier {
	return &Classifier{
		thresholds: th,
		layout:     layout,
		toggle:     toggle,
	}
}

// Icon returns the icon's current position.
func (c *Classifier) Icon() types.Point {
	return c.icon
}

// Session returns a copy of the active session, or nil.
func (c *Classifier) Session() *Session {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Classifier) setScreenWidth(width int) {
	c.layout.ScreenWidth = width
}

// Down starts a session. Pressing the icon always hides the close control
// and clears dimming. A second down while a session is active is dropped.
func (c *Classifier) Down(x, y int, at int64) Outcome {
	if c.session != nil {
		utils.Warn("pointer down at (%d,%d) ignored, session from (%d,%d) still active",
			x, y, c.session.Origin.X, c.session.Origin.Y)
		return Outcome{Gesture: c.session.gesture()}
	}

	c.session = &Session{
		Origin:          types.Point{X: x, Y: y},
		StartIcon:       c.icon,
		DownAt:          at,
		CanToggleScreen: !c.toggle.Dimmed() && !c.toggle.CloseVisible(),
	}

	var cmds []types.WindowCommand
	cmds = append(cmds, c.toggle.SetCloseVisible(false, types.Point{})...)
	cmds = append(cmds, c.toggle.SetDimmed(false)...)

	utils.Verbose("session started at (%d,%d), icon at (%d,%d), canToggle=%v",
		x, y, c.icon.X, c.icon.Y, c.session.CanToggleScreen)
	return Outcome{Gesture: GesturePending, Commands: cmds}
}

// Move tracks the pointer. Without an active session it does nothing.
func (c *Classifier) Move(x, y int, at int64) Outcome {
	if c.session == nil {
		return Outcome{Gesture: GestureNone}
	}
	cmds := c.track(x, y, at)
	return Outcome{Gesture: c.session.gesture(), Commands: cmds}
}

// Up ends the session, flipping dimming when the press was a tap.
func (c *Classifier) Up(x, y int, at int64) Outcome {
	return c.finish(x, y, at, true)
}

// Cancel ends the session like Up. It only toggles dimming when
// Thresholds.CancelToggles is set.
func (c *Classifier) Cancel(x, y int, at int64) Outcome {
	return c.finish(x, y, at, c.thresholds.CancelToggles)
}

func (c *Classifier) finish(x, y int, at int64, mayToggle bool) Outcome {
	if c.session == nil {
		return Outcome{Gesture: GestureNone}
	}
	s := c.session
	cmds := c.track(x, y, at)

	out := Outcome{Gesture: s.gesture()}
	if !s.Moved && !c.toggle.CloseVisible() {
		out.Gesture = GestureTap
		if s.CanToggleScreen && mayToggle {
			cmds = append(cmds, c.toggle.SetDimmed(!c.toggle.Dimmed())...)
			out.Toggled = true
		}
	}
	out.Commands = cmds

	utils.Verbose("session ended as %s after %dms, toggled=%v", out.Gesture, s.elapsed(at), out.Toggled)
	c.session = nil
	return out
}

// track applies the drag and hold rules for a pointer at (x, y).
func (c *Classifier) track(x, y int, at int64) []types.WindowCommand {
	s := c.session
	dx := x - s.Origin.X
	dy := y - s.Origin.Y

	if !s.Moved && (abs(dx) > c.thresholds.Slop || abs(dy) > c.thresholds.Slop) {
		s.Moved = true
	}

	var cmds []types.WindowCommand
	if s.Moved {
		c.icon = DragTo(s.StartIcon, dx, dy)
		cmds = append(cmds, types.MoveWindow(types.WindowIcon, c.icon))
	}

	hold := !s.Moved && s.elapsed(at) > c.thresholds.Hold.Milliseconds()
	if hold {
		s.held = true
	}
	return append(cmds, c.toggle.SetCloseVisible(hold, c.layout.Place(c.icon))...)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
