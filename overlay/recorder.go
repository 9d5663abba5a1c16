package overlay

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mobile-next/floatdim/types"
)

// Window is the recorder's view of one host window.
type Window struct {
	Handle     string           `json:"handle"`
	Kind       types.WindowKind `json:"kind"`
	Size       types.Size       `json:"size"`
	Position   types.Point      `json:"position"`
	Visible    bool             `json:"visible"`
	Brightness types.Brightness `json:"brightness"`
}

// Recorder is an in-memory Host. It keeps the current window table and a
// log of every command it received, which remote hosts replay on their side.
type Recorder struct {
	mu      sync.Mutex
	windows map[string]*Window
	log     []types.WindowCommand
}

func NewRecorder() *Recorder {
	return &Recorder{
		windows: make(map[string]*Window),
	}
}

func (r *Recorder) CreateWindow(kind types.WindowKind, size types.Size, pos types.Point) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// windows are shown as soon as they are added
	visible := true
	handle := uuid.New().String()
	r.windows[handle] = &Window{
		Handle:     handle,
		Kind:       kind,
		Size:       size,
		Position:   pos,
		Visible:    visible,
		Brightness: types.BrightnessDefault,
	}
	r.log = append(r.log, types.WindowCommand{
		Op:       types.OpCreate,
		Window:   kind,
		Handle:   handle,
		Size:     &size,
		Position: &pos,
		Visible:  &visible,
	})
	return handle, nil
}

func (r *Recorder) UpdatePosition(handle string, pos types.Point) error {
	return r.update(handle, func(w *Window) types.WindowCommand {
		w.Position = pos
		return types.MoveWindow(w.Kind, pos)
	})
}

func (r *Recorder) UpdateVisibility(handle string, visible bool) error {
	return r.update(handle, func(w *Window) types.WindowCommand {
		w.Visible = visible
		return types.ShowWindow(w.Kind, visible)
	})
}

func (r *Recorder) UpdateBrightness(handle string, brightness types.Brightness) error {
	return r.update(handle, func(w *Window) types.WindowCommand {
		w.Brightness = brightness
		return types.SetBrightness(w.Kind, brightness)
	})
}

func (r *Recorder) UpdateSize(handle string, size types.Size) error {
	return r.update(handle, func(w *Window) types.WindowCommand {
		w.Size = size
		return types.ResizeWindow(w.Kind, size)
	})
}

func (r *Recorder) DestroyWindow(handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[handle]
	if !ok {
		return fmt.Errorf("%w: window %s", ErrNotFound, handle)
	}
	delete(r.windows, handle)
	r.log = append(r.log, types.WindowCommand{Op: types.OpDestroy, Window: w.Kind, Handle: handle})
	return nil
}

func (r *Recorder) update(handle string, fn func(w *Window) types.WindowCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[handle]
	if !ok {
		return fmt.Errorf("%w: window %s", ErrNotFound, handle)
	}
	cmd := fn(w)
	cmd.Handle = handle
	r.log = append(r.log, cmd)
	return nil
}

// Window returns a copy of the window of the given kind.
func (r *Recorder) Window(kind types.WindowKind) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.windows {
		if w.Kind == kind {
			return *w, true
		}
	}
	return Window{}, false
}

// Len reports how many windows currently exist.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// Drain returns the commands recorded since the last Drain and clears the log.
func (r *Recorder) Drain() []types.WindowCommand {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmds := r.log
	r.log = nil
	return cmds
}
