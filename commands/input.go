package commands

import (
	"fmt"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
)

// PointerRequest represents a raw pointer event on a device's overlay icon
type PointerRequest struct {
	DeviceID string              `json:"deviceId"`
	Action   types.PointerAction `json:"action"`
	X        int                 `json:"x"`
	Y        int                 `json:"y"`
	Time     int64               `json:"time"`
}

// PointerResponse is the classification of a pointer event plus the window
// updates it caused
type PointerResponse struct {
	Gesture  overlay.Gesture       `json:"gesture"`
	Toggled  bool                  `json:"toggled"`
	Commands []types.WindowCommand `json:"commands"`
}

// CloseResponse reports whether activating the close control stopped the overlay
type CloseResponse struct {
	Closed   bool                  `json:"closed"`
	Commands []types.WindowCommand `json:"commands"`
}

// PointerCommand feeds a pointer event to the overlay of the specified device
func PointerCommand(req PointerRequest) *CommandResponse {
	if !req.Action.Valid() {
		return NewErrorResponse(fmt.Errorf("action must be one of down, move, up, cancel, got '%s'", req.Action))
	}

	o, rec, err := findOverlay(req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding overlay: %v", err))
	}

	out, err := o.HandlePointer(types.PointerEvent{
		Action: req.Action,
		X:      req.X,
		Y:      req.Y,
		Time:   req.Time,
	})
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to handle pointer %s on device %s: %v", req.Action, req.DeviceID, err))
	}

	return NewSuccessResponse(PointerResponse{
		Gesture:  out.Gesture,
		Toggled:  out.Toggled,
		Commands: rec.Drain(),
	})
}

// DimTapCommand delivers a tap on the dim layer of the specified device
func DimTapCommand(req DeviceRequest) *CommandResponse {
	o, rec, err := findOverlay(req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding overlay: %v", err))
	}

	if _, err := o.TapDim(); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to tap dim layer on device %s: %v", req.DeviceID, err))
	}

	return NewSuccessResponse(WindowCommandsResponse{
		OverlayID: o.ID(),
		Commands:  rec.Drain(),
	})
}

// CloseActivateCommand delivers a tap on the close control of the specified
// device. A successful activation stops and unregisters the overlay.
func CloseActivateCommand(req DeviceRequest) *CommandResponse {
	o, rec, err := findOverlay(req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding overlay: %v", err))
	}

	closed, err := o.ActivateClose()
	if closed {
		overlayRegistry.Remove(req.DeviceID)
	}
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to activate close control on device %s: %v", req.DeviceID, err))
	}

	return NewSuccessResponse(CloseResponse{
		Closed:   closed,
		Commands: rec.Drain(),
	})
}
