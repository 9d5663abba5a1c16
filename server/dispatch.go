package server

import (
	"encoding/json"
	"fmt"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// GetMethodRegistry returns a map of method names to handler functions
// This is used by both the HTTP and the WebSocket transports
func GetMethodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"overlay_start":   handleOverlayStart,
		"overlay_stop":    handleOverlayStop,
		"overlay_state":   handleOverlayState,
		"overlay_list":    handleOverlayList,
		"io_pointer":      handleIoPointer,
		"dim_tap":         handleDimTap,
		"close_activate":  handleCloseActivate,
		"place_close":     handlePlaceClose,
		"server.shutdown": handleServerShutdown,
	}
}

// Execute dispatches a method call using the registry
// This is the main entry point for embedded clients
func Execute(method string, params json.RawMessage) (interface{}, error) {
	registry := GetMethodRegistry()

	handler, exists := registry[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}
