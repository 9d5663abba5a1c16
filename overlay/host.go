package overlay

import (
	"fmt"

	"github.com/mobile-next/floatdim/types"
)

// Host is the windowing surface that owns the three overlay layers.
// Handles are opaque strings chosen by the host.
type Host interface {
	CreateWindow(kind types.WindowKind, size types.Size, pos types.Point) (string, error)
	UpdatePosition(handle string, pos types.Point) error
	UpdateVisibility(handle string, visible bool) error
	UpdateBrightness(handle string, brightness types.Brightness) error
	UpdateSize(handle string, size types.Size) error
	DestroyWindow(handle string) error
}

// applyCommand dispatches cmd to host. cmd.Handle must already be set.
func applyCommand(host Host, cmd types.WindowCommand) error {
	switch cmd.Op {
	case types.OpPosition:
		if cmd.Position == nil {
			return fmt.Errorf("position update for %s window has no position", cmd.Window)
		}
		return host.UpdatePosition(cmd.Handle, *cmd.Position)
	case types.OpVisibility:
		if cmd.Visible == nil {
			return fmt.Errorf("visibility update for %s window has no value", cmd.Window)
		}
		return host.UpdateVisibility(cmd.Handle, *cmd.Visible)
	case types.OpBrightness:
		return host.UpdateBrightness(cmd.Handle, cmd.Brightness)
	case types.OpSize:
		if cmd.Size == nil {
			return fmt.Errorf("size update for %s window has no size", cmd.Window)
		}
		return host.UpdateSize(cmd.Handle, *cmd.Size)
	case types.OpDestroy:
		return host.DestroyWindow(cmd.Handle)
	default:
		return fmt.Errorf("unsupported window operation: %s", cmd.Op)
	}
}
