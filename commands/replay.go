package commands

import (
	"encoding/json"
	"fmt"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
)

const (
	replayDimTap        = "dim_tap"
	replayCloseActivate = "close_activate"
)

// ReplayStep is one recorded input. Event is a pointer action or one of
// dim_tap and close_activate.
type ReplayStep struct {
	Event string `json:"event"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Time  int64  `json:"time"`
}

// ReplayRequest represents the parameters for a replay command
type ReplayRequest struct {
	Steps        []ReplayStep `json:"steps"`
	ScreenWidth  int          `json:"screenWidth,omitempty"`
	ScreenHeight int          `json:"screenHeight,omitempty"`
}

// ReplayResult is what a single step produced
type ReplayResult struct {
	Step     ReplayStep            `json:"step"`
	Gesture  overlay.Gesture       `json:"gesture,omitempty"`
	Toggled  bool                  `json:"toggled,omitempty"`
	Commands []types.WindowCommand `json:"commands"`
	Error    string                `json:"error,omitempty"`
}

// ReplayResponse holds every step result and the final overlay state
type ReplayResponse struct {
	Setup []types.WindowCommand `json:"setup"`
	Steps []ReplayResult        `json:"steps"`
	Final types.OverlayState    `json:"final"`
}

// ParseReplaySteps decodes a JSON array of replay steps
func ParseReplaySteps(data []byte) ([]ReplayStep, error) {
	var steps []ReplayStep
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("failed to parse replay steps: %v", err)
	}
	return steps, nil
}

// ReplayCommand runs recorded input against a fresh overlay that is not
// registered to any device
func ReplayCommand(req ReplayRequest) *CommandResponse {
	if len(req.Steps) == 0 {
		return NewErrorResponse(fmt.Errorf("steps array is required and cannot be empty"))
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
		return NewErrorResponse(fmt.Errorf("failed to start overlay: %v", err))
	}
	defer o.Stop()

	resp := ReplayResponse{Setup: rec.Drain()}
	for i, step := range req.Steps {
		result := ReplayResult{Step: step}

		switch step.Event {
		case replayDimTap:
			_, err := o.TapDim()
			result.Error = errString(err)
		case replayCloseActivate:
			_, err := o.ActivateClose()
			result.Error = errString(err)
		default:
			action := types.PointerAction(step.Event)
			if !action.Valid() {
				return NewErrorResponse(fmt.Errorf("unknown event '%s' at step %d", step.Event, i))
			}
			out, err := o.HandlePointer(types.PointerEvent{Action: action, X: step.X, Y: step.Y, Time: step.Time})
			result.Gesture = out.Gesture
			result.Toggled = out.Toggled
			result.Error = errString(err)
		}

		result.Commands = rec.Drain()
		resp.Steps = append(resp.Steps, result)
	}

	resp.Final = o.State()
	return NewSuccessResponse(resp)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
