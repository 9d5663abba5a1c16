package overlay

import "github.com/mobile-next/floatdim/types"

// DimToggle holds the dimmed and close-visible flags. Every transition
// returns the host commands that make the windows match the new state;
// setting a flag to its current value returns nothing.
type DimToggle struct {
	dimmed       bool
	closeVisible bool
	closePos     types.Point
}

func (t *DimToggle) Dimmed() bool {
	return t.dimmed
}

func (t *DimToggle) CloseVisible() bool {
	return t.closeVisible
}

// ClosePosition is the position frozen at the last time the close control
// was shown.
func (t *DimToggle) ClosePosition() types.Point {
	return t.closePos
}

// SetDimmed shows or hides the dim layer. While dimmed the icon window turns
// its brightness override off so it stays legible above the dim layer.
func (t *DimToggle) SetDimmed(dimmed bool) []types.WindowCommand {
	if t.dimmed == dimmed {
		return nil
	}
	t.dimmed = dimmed
	return t.dimCommands()
}

// SetCloseVisible shows or hides the close control. at is only used on the
// hidden to visible transition; a visible control keeps its position.
func (t *DimToggle) SetCloseVisible(visible bool, at types.Point) []types.WindowCommand {
	if t.closeVisible == visible {
		return nil
	}
	t.closeVisible = visible

	var cmds []types.WindowCommand
	if visible {
		t.closePos = at
		cmds = append(cmds, types.MoveWindow(types.WindowClose, at))
	}
	return append(cmds, types.ShowWindow(types.WindowClose, visible))
}

// Sync returns the full set of commands for the current state, regardless
// of what the host last saw.
func (t *DimToggle) Sync() []types.WindowCommand {
	cmds := t.dimCommands()
	if t.closeVisible {
		cmds = append(cmds, types.MoveWindow(types.WindowClose, t.closePos))
	}
	return append(cmds, types.ShowWindow(types.WindowClose, t.closeVisible))
}

func (t *DimToggle) dimCommands() []types.WindowCommand {
	brightness := types.BrightnessDefault
	if t.dimmed {
		brightness = types.BrightnessOff
	}
	return []types.WindowCommand{
		types.ShowWindow(types.WindowDim, t.dimmed),
		types.SetBrightness(types.WindowIcon, brightness),
	}
}
