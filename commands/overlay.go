package commands

import (
	"fmt"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
	"github.com/mobile-next/floatdim/utils"
)

// StartRequest represents the parameters for starting an overlay on a device
type StartRequest struct {
	DeviceID     string `json:"deviceId"`
	ScreenWidth  int    `json:"screenWidth,omitempty"`
	ScreenHeight int    `json:"screenHeight,omitempty"`
}

// DeviceRequest identifies the overlay of a single device
type DeviceRequest struct {
	DeviceID string `json:"deviceId"`
}

// WindowCommandsResponse carries the window updates a remote host must apply
type WindowCommandsResponse struct {
	OverlayID string                `json:"overlayId,omitempty"`
	Commands  []types.WindowCommand `json:"commands"`
}

// OverlayInfo describes one registered overlay
type OverlayInfo struct {
	DeviceID string             `json:"deviceId"`
	State    types.OverlayState `json:"state"`
}

// StartOverlayCommand creates the overlay windows for a device
func StartOverlayCommand(req StartRequest) *CommandResponse {
	if req.DeviceID == "" {
		return NewErrorResponse(fmt.Errorf("device ID is required"))
	}
	if req.ScreenWidth < 0 || req.ScreenHeight < 0 {
		return NewErrorResponse(fmt.Errorf("screen size must be non-negative, got %dx%d", req.ScreenWidth, req.ScreenHeight))
	}
	if overlayRegistry == nil {
		return NewErrorResponse(fmt.Errorf("overlay registry is not initialized"))
	}

	cfg := activeConfig
	if req.ScreenWidth > 0 {
		cfg.Layout.ScreenWidth = req.ScreenWidth
	}
	if req.ScreenHeight > 0 {
		cfg.Layout.ScreenHeight = req.ScreenHeight
	}

	rec := overlay.NewRecorder()
	o := overlay.New(rec, overlay.OptionsFromConfig(cfg))
	if err := o.Start(); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to start overlay on device %s: %v", req.DeviceID, err))
	}

	if err := overlayRegistry.Register(req.DeviceID, o); err != nil {
		_ = o.Stop()
		return NewErrorResponse(fmt.Errorf("failed to register overlay: %v", err))
	}

	utils.WithField("device", req.DeviceID).Infof("overlay %s started on a %dx%d screen", o.ID(), cfg.Layout.ScreenWidth, cfg.Layout.ScreenHeight)

	return NewSuccessResponse(WindowCommandsResponse{
		OverlayID: o.ID(),
		Commands:  rec.Drain(),
	})
}

// StopOverlayCommand destroys the overlay of a device
func StopOverlayCommand(req DeviceRequest) *CommandResponse {
	o, rec, err := findOverlay(req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding overlay: %v", err))
	}

	overlayRegistry.Remove(req.DeviceID)
	utils.WithField("device", req.DeviceID).Infof("overlay %s stopped", o.ID())

	return NewSuccessResponse(WindowCommandsResponse{
		OverlayID: o.ID(),
		Commands:  rec.Drain(),
	})
}

// StateCommand reports the state of a device's overlay
func StateCommand(req DeviceRequest) *CommandResponse {
	o, _, err := findOverlay(req.DeviceID)
	if err != nil {
		return NewErrorResponse(fmt.Errorf("error finding overlay: %v", err))
	}
	return NewSuccessResponse(o.State())
}

// ListCommand lists all registered overlays
func ListCommand() *CommandResponse {
	if overlayRegistry == nil {
		return NewErrorResponse(fmt.Errorf("overlay registry is not initialized"))
	}

	infos := []OverlayInfo{}
	for _, id := range overlayRegistry.Devices() {
		o, err := overlayRegistry.Get(id)
		if err != nil {
			continue
		}
		infos = append(infos, OverlayInfo{DeviceID: id, State: o.State()})
	}
	return NewSuccessResponse(infos)
}
