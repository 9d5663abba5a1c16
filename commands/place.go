package commands

import (
	"fmt"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
)

// PlaceRequest asks where the close control would appear for an icon
// position. Zero widths fall back to the configured layout.
type PlaceRequest struct {
	IconX       int `json:"iconX"`
	IconY       int `json:"iconY"`
	ScreenWidth int `json:"screenWidth,omitempty"`
	IconWidth   int `json:"iconWidth,omitempty"`
	CloseWidth  int `json:"closeWidth,omitempty"`
	Padding     int `json:"padding,omitempty"`
}

// PlaceResponse is the computed close control position
type PlaceResponse struct {
	Icon  types.Point `json:"icon"`
	Close types.Point `json:"close"`
	Side  string      `json:"side"`
}

// PlaceCommand computes the close control placement without touching any overlay
func PlaceCommand(req PlaceRequest) *CommandResponse {
	layout := overlay.OptionsFromConfig(activeConfig).Layout
	if req.ScreenWidth != 0 {
		layout.ScreenWidth = req.ScreenWidth
	}
	if req.IconWidth != 0 {
		layout.IconWidth = req.IconWidth
	}
	if req.CloseWidth != 0 {
		layout.CloseWidth = req.CloseWidth
	}
	if req.Padding != 0 {
		layout.Padding = req.Padding
	}

	if layout.ScreenWidth < 0 || layout.IconWidth < 0 || layout.CloseWidth < 0 || layout.Padding < 0 {
		return NewErrorResponse(fmt.Errorf("widths and padding must be non-negative"))
	}

	icon := types.Point{X: req.IconX, Y: req.IconY}
	pos := layout.Place(icon)

	side := "left"
	if pos.X > icon.X {
		side = "right"
	}

	return NewSuccessResponse(PlaceResponse{
		Icon:  icon,
		Close: pos,
		Side:  side,
	})
}
