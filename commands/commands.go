package commands

import (
	"fmt"

	"github.com/mobile-next/floatdim/config"
	"github.com/mobile-next/floatdim/overlay"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// overlayRegistry holds the running overlays, one per device.
// It is set once at application startup via SetRegistry.
var overlayRegistry *overlay.Registry

// activeConfig is the configuration new overlays are built from.
var activeConfig = config.Default()

// SetRegistry sets the global overlay registry.
// This should be called once at application startup (main.go or server.go).
func SetRegistry(registry *overlay.Registry) {
	overlayRegistry = registry
}

// GetRegistry returns the current overlay registry.
// Returns nil if SetRegistry has not been called yet.
func GetRegistry() *overlay.Registry {
	return overlayRegistry
}

// SetConfig replaces the configuration used for new overlays.
func SetConfig(cfg config.Config) {
	activeConfig = cfg
}

// GetConfig returns the configuration used for new overlays.
func GetConfig() config.Config {
	return activeConfig
}

// findOverlay looks up the running overlay of a device
func findOverlay(deviceID string) (*overlay.Overlay, *overlay.Recorder, error) {
	if deviceID == "" {
		return nil, nil, fmt.Errorf("device ID is required")
	}
	if overlayRegistry == nil {
		return nil, nil, fmt.Errorf("overlay registry is not initialized")
	}

	o, err := overlayRegistry.Get(deviceID)
	if err != nil {
		return nil, nil, err
	}

	rec, ok := o.Host().(*overlay.Recorder)
	if !ok {
		return nil, nil, fmt.Errorf("overlay %s is not driven by a remote host", o.ID())
	}
	return o, rec, nil
}
