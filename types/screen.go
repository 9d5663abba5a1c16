package types

// Point is a window position. Overlay windows are laid out relative to the
// screen midpoint, so (0,0) is the centre of the screen.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PointerAction is the phase of a single-contact pointer event.
type PointerAction string

const (
	PointerDown   PointerAction = "down"
	PointerMove   PointerAction = "move"
	PointerUp     PointerAction = "up"
	PointerCancel PointerAction = "cancel"
)

// Valid reports whether a is one of the known pointer phases.
func (a PointerAction) Valid() bool {
	switch a {
	case PointerDown, PointerMove, PointerUp, PointerCancel:
		return true
	}
	return false
}

// PointerEvent is a raw pointer event delivered by the host for the icon
// window. X and Y are raw screen coordinates; Time is the host's event
// timestamp in milliseconds.
type PointerEvent struct {
	Action PointerAction `json:"action"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Time   int64         `json:"time"`
}
