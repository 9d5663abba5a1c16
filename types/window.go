package types

// WindowKind identifies one of the three overlay layers.
type WindowKind string

const (
	WindowDim   WindowKind = "dim"
	WindowIcon  WindowKind = "icon"
	WindowClose WindowKind = "close"
)

// Brightness is the screen brightness override attached to a window.
type Brightness string

const (
	BrightnessDefault Brightness = "default"
	BrightnessOff     Brightness = "off"
)

// WindowOp is the host operation a WindowCommand asks for.
type WindowOp string

const (
	OpCreate     WindowOp = "create"
	OpPosition   WindowOp = "position"
	OpVisibility WindowOp = "visibility"
	OpBrightness WindowOp = "brightness"
	OpSize       WindowOp = "size"
	OpDestroy    WindowOp = "destroy"
)

// WindowCommand is a single host update produced by an overlay state
// transition. Only the fields relevant to Op are set.
type WindowCommand struct {
	Op         WindowOp   `json:"op"`
	Window     WindowKind `json:"window"`
	Handle     string     `json:"handle,omitempty"`
	Position   *Point     `json:"position,omitempty"`
	Size       *Size      `json:"size,omitempty"`
	Visible    *bool      `json:"visible,omitempty"`
	Brightness Brightness `json:"brightness,omitempty"`
}

// MoveWindow builds a position update for kind.
func MoveWindow(kind WindowKind, p Point) WindowCommand {
	return WindowCommand{Op: OpPosition, Window: kind, Position: &p}
}

// ShowWindow builds a visibility update for kind.
func ShowWindow(kind WindowKind, visible bool) WindowCommand {
	return WindowCommand{Op: OpVisibility, Window: kind, Visible: &visible}
}

// ResizeWindow builds a size update for kind.
func ResizeWindow(kind WindowKind, s Size) WindowCommand {
	return WindowCommand{Op: OpSize, Window: kind, Size: &s}
}

// SetBrightness builds a brightness override update for kind.
func SetBrightness(kind WindowKind, b Brightness) WindowCommand {
	return WindowCommand{Op: OpBrightness, Window: kind, Brightness: b}
}

// OverlayState is a snapshot of an overlay's externally visible state.
type OverlayState struct {
	ID            string `json:"id"`
	Running       bool   `json:"running"`
	Dimmed        bool   `json:"dimmed"`
	CloseVisible  bool   `json:"closeVisible"`
	Icon          Point  `json:"icon"`
	Close         Point  `json:"close"`
	SessionActive bool   `json:"sessionActive"`
}
