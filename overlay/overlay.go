package overlay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mobile-next/floatdim/config"
	"github.com/mobile-next/floatdim/types"
	"github.com/mobile-next/floatdim/utils"
)

var (
	ErrStopped        = errors.New("overlay is not running")
	ErrAlreadyRunning = errors.New("overlay is already running")
	ErrNotFound       = errors.New("not found")
)

// Options describe the thresholds and window geometry of one overlay.
type Options struct {
	Thresholds Thresholds
	Layout     Layout
	Screen     types.Size
	IconSize   types.Size
	CloseSize  types.Size
}

// OptionsFromConfig maps the ini configuration onto overlay options.
func OptionsFromConfig(cfg config.Config) Options {
	l := cfg.Layout
	return Options{
		Thresholds: Thresholds{
			Slop:          cfg.Gesture.TouchSlop,
			Hold:          cfg.Gesture.Hold(),
			CancelToggles: cfg.Gesture.CancelTogglesDim,
		},
		Layout: Layout{
			ScreenWidth: l.ScreenWidth,
			IconWidth:   l.IconWidth,
			CloseWidth:  l.CloseWidth,
			Padding:     l.Padding,
		},
		Screen:    types.Size{Width: l.ScreenWidth, Height: l.ScreenHeight},
		IconSize:  types.Size{Width: l.IconWidth, Height: l.IconHeight},
		CloseSize: types.Size{Width: l.CloseWidth, Height: l.CloseHeight},
	}
}

type lifecycle int

const (
	idle lifecycle = iota
	running
	stopped
)

// Overlay owns the dim, icon and close windows on a Host and routes input
// to the classifier. Calls are serialized; the host must not call back into
// the overlay from its window methods.
type Overlay struct {
	id   string
	opts Options
	host Host

	mu         sync.Mutex
	state      lifecycle
	handles    map[types.WindowKind]string
	toggle     *DimToggle
	classifier *Classifier
	done       chan struct{}
}

func New(host Host, opts Options) *Overlay {
	toggle := &DimToggle{}
	return &Overlay{
		id:         uuid.New().String(),
		opts:       opts,
		host:       host,
		handles:    make(map[types.WindowKind]string),
		toggle:     toggle,
		classifier: NewClassifier(opts.Thresholds, opts.Layout, toggle),
		done:       make(chan struct{}),
	}
}

func (o *Overlay) ID() string {
	return o.id
}

// Host returns the host the overlay draws on.
func (o *Overlay) Host() Host {
	return o.host
}

// Done is closed once the overlay has been stopped.
func (o *Overlay) Done() <-chan struct{} {
	return o.done
}

// Start creates the dim, icon and close windows, in that stacking order, and
// pushes the initial state: not dimmed, close control hidden.
func (o *Overlay) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case running:
		return ErrAlreadyRunning
	case stopped:
		return ErrStopped
	}

	origin := types.Point{}
	windows := []struct {
		kind types.WindowKind
		size types.Size
	}{
		{types.WindowDim, o.opts.Screen},
		{types.WindowIcon, o.opts.IconSize},
		{types.WindowClose, o.opts.CloseSize},
	}

	for _, w := range windows {
		handle, err := o.host.CreateWindow(w.kind, w.size, origin)
		if err != nil {
			o.destroyLocked()
			return fmt.Errorf("failed to create %s window: %w", w.kind, err)
		}
		o.handles[w.kind] = handle
	}

	o.state = running
	if _, err := o.applyLocked(o.toggle.Sync()); err != nil {
		o.destroyLocked()
		o.state = idle
		return err
	}

	utils.Verbose("overlay %s started with %d windows", o.id, len(o.handles))
	return nil
}

// HandlePointer feeds one icon pointer event through the classifier and
// applies the resulting window updates.
func (o *Overlay) HandlePointer(ev types.PointerEvent) (Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != running {
		return Outcome{}, ErrStopped
	}

	var out Outcome
	switch ev.Action {
	case types.PointerDown:
		out = o.classifier.Down(ev.X, ev.Y, ev.Time)
	case types.PointerMove:
		out = o.classifier.Move(ev.X, ev.Y, ev.Time)
	case types.PointerUp:
		out = o.classifier.Up(ev.X, ev.Y, ev.Time)
	case types.PointerCancel:
		out = o.classifier.Cancel(ev.X, ev.Y, ev.Time)
	default:
		return Outcome{}, fmt.Errorf("unknown pointer action: %q", ev.Action)
	}

	cmds, err := o.applyLocked(out.Commands)
	out.Commands = cmds
	return out, err
}

// TapDim handles a tap on the dim layer, which always clears dimming.
func (o *Overlay) TapDim() ([]types.WindowCommand, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != running {
		return nil, ErrStopped
	}
	return o.applyLocked(o.toggle.SetDimmed(false))
}

// ActivateClose handles a tap on the close control and stops the overlay.
// It reports false without stopping when the close control is hidden.
func (o *Overlay) ActivateClose() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != running {
		return false, ErrStopped
	}
	if !o.toggle.CloseVisible() {
		utils.Verbose("close activation on overlay %s ignored, control is hidden", o.id)
		return false, nil
	}
	return true, o.stopLocked()
}

// Resize records a new screen size, stretches the dim layer over it and
// moves the close placement bounds.
func (o *Overlay) Resize(screen types.Size) ([]types.WindowCommand, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.opts.Screen = screen
	o.classifier.setScreenWidth(screen.Width)

	if o.state != running {
		return nil, nil
	}
	return o.applyLocked([]types.WindowCommand{types.ResizeWindow(types.WindowDim, screen)})
}

func (o *Overlay) State() types.OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()

	return types.OverlayState{
		ID:            o.id,
		Running:       o.state == running,
		Dimmed:        o.toggle.Dimmed(),
		CloseVisible:  o.toggle.CloseVisible(),
		Icon:          o.classifier.Icon(),
		Close:         o.toggle.ClosePosition(),
		SessionActive: o.classifier.Session() != nil,
	}
}

// Stop destroys the windows. Stopping twice is a no-op.
func (o *Overlay) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stopLocked()
}

func (o *Overlay) stopLocked() error {
	if o.state == stopped {
		return nil
	}
	err := o.destroyLocked()
	o.state = stopped
	close(o.done)

	utils.Verbose("overlay %s stopped", o.id)
	return err
}

func (o *Overlay) applyLocked(cmds []types.WindowCommand) ([]types.WindowCommand, error) {
	for i := range cmds {
		handle, ok := o.handles[cmds[i].Window]
		if !ok {
			return cmds, fmt.Errorf("%w: %s window", ErrNotFound, cmds[i].Window)
		}
		cmds[i].Handle = handle
		if err := applyCommand(o.host, cmds[i]); err != nil {
			return cmds, fmt.Errorf("failed to update %s window: %w", cmds[i].Window, err)
		}
	}
	return cmds, nil
}

func (o *Overlay) destroyLocked() error {
	var errs []error
	for _, kind := range []types.WindowKind{types.WindowClose, types.WindowIcon, types.WindowDim} {
		handle, ok := o.handles[kind]
		if !ok {
			continue
		}
		if err := o.host.DestroyWindow(handle); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kind, err))
		}
		delete(o.handles, kind)
	}
	return errors.Join(errs...)
}
