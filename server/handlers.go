package server

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/floatdim/commands"
)

func handleOverlayStart(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: deviceId")
	}

	var req commands.StartRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: deviceId, screenWidth, screenHeight", err)
	}

	return unwrap(commands.StartOverlayCommand(req))
}

func handleOverlayStop(params json.RawMessage) (interface{}, error) {
	req, err := parseDeviceRequest(params)
	if err != nil {
		return nil, err
	}
	return unwrap(commands.StopOverlayCommand(req))
}

func handleOverlayState(params json.RawMessage) (interface{}, error) {
	req, err := parseDeviceRequest(params)
	if err != nil {
		return nil, err
	}
	return unwrap(commands.StateCommand(req))
}

func handleOverlayList(params json.RawMessage) (interface{}, error) {
	return unwrap(commands.ListCommand())
}

func handleIoPointer(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: deviceId, action, x, y, time")
	}

	var req commands.PointerRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: deviceId, action, x, y, time", err)
	}

	// x, y and time default to zero silently otherwise, which would be misread
	// as a real position and timestamp
	var rawParams map[string]interface{}
	if err := json.Unmarshal(params, &rawParams); err != nil {
		return nil, fmt.Errorf("invalid parameters format")
	}
	for _, field := range []string{"x", "y", "time"} {
		if _, exists := rawParams[field]; !exists {
			return nil, fmt.Errorf("'%s' is required", field)
		}
	}

	return unwrap(commands.PointerCommand(req))
}

func handleDimTap(params json.RawMessage) (interface{}, error) {
	req, err := parseDeviceRequest(params)
	if err != nil {
		return nil, err
	}
	return unwrap(commands.DimTapCommand(req))
}

func handleCloseActivate(params json.RawMessage) (interface{}, error) {
	req, err := parseDeviceRequest(params)
	if err != nil {
		return nil, err
	}
	return unwrap(commands.CloseActivateCommand(req))
}

func handlePlaceClose(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("'params' is required with fields: iconX, iconY")
	}

	var req commands.PlaceRequest
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid parameters: %v. Expected fields: iconX, iconY, screenWidth, iconWidth, closeWidth, padding", err)
	}

	return unwrap(commands.PlaceCommand(req))
}

func handleServerShutdown(params json.RawMessage) (interface{}, error) {
	select {
	case shutdownRequests <- struct{}{}:
	default:
	}
	return okResponse, nil
}

func parseDeviceRequest(params json.RawMessage) (commands.DeviceRequest, error) {
	var req commands.DeviceRequest
	if len(params) == 0 {
		return req, fmt.Errorf("'params' is required with fields: deviceId")
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return req, fmt.Errorf("invalid parameters: %v. Expected fields: deviceId", err)
	}
	if req.DeviceID == "" {
		return req, fmt.Errorf("'deviceId' is required")
	}
	return req, nil
}

func unwrap(response *commands.CommandResponse) (interface{}, error) {
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}
