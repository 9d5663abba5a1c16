package termhost

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
	"github.com/mobile-next/floatdim/utils"
)

const statusHint = " drag the icon | click it to dim | hold it to reveal close | esc quits"

// Sim runs one overlay inside a terminal. Button 1 presses that land on the
// icon become pointer events; presses on the dim layer or the close control
// become a dim tap or a close activation.
type Sim struct {
	driver  ScreenDriver
	host    *Host
	opts    overlay.Options
	overlay *overlay.Overlay

	// tracking is set while a press that started on the icon is in progress
	tracking bool
	pressed  bool

	// clock stamps mouse events in milliseconds
	clock func(ev *tcell.EventMouse) int64
}

func NewSim(driver ScreenDriver, cell types.Size, opts overlay.Options) *Sim {
	return &Sim{
		driver: driver,
		host:   NewHost(driver, cell),
		opts:   opts,
		clock:  eventMillis,
	}
}

func eventMillis(ev *tcell.EventMouse) int64 {
	return ev.When().UnixMilli()
}

// Run owns the terminal until the user quits or the close control is activated.
func (s *Sim) Run() error {
	if err := s.driver.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer s.driver.Fini()

	s.driver.HideCursor()
	s.driver.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents)

	cols, rows := s.driver.Size()
	s.host.SetCells(cols, rows)

	opts := s.opts
	opts.Screen = s.host.Screen()
	opts.Layout.ScreenWidth = opts.Screen.Width

	s.overlay = overlay.New(s.host, opts)
	if err := s.overlay.Start(); err != nil {
		return fmt.Errorf("failed to start overlay: %w", err)
	}
	defer s.overlay.Stop()

	utils.Verbose("simulating a %dx%d screen on %dx%d cells", opts.Screen.Width, opts.Screen.Height, cols, rows)

	for {
		select {
		case <-s.overlay.Done():
			return nil
		default:
		}

		s.host.Draw(statusHint)

		ev := s.driver.PollEvent()
		if ev == nil {
			return nil
		}

		quit, err := s.handle(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Sim) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		s.host.SetCells(cols, rows)
		_, err := s.overlay.Resize(s.host.Screen())
		return false, err
	case *tcell.EventMouse:
		return false, s.handleMouse(ev)
	}
	return false, nil
}

func (s *Sim) handleMouse(ev *tcell.EventMouse) error {
	col, row := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	pressed := down && !s.pressed
	s.pressed = down

	if s.tracking {
		action := types.PointerMove
		if !down {
			action = types.PointerUp
			s.tracking = false
		}
		return s.pointer(action, col, row, ev)
	}

	if !pressed {
		return nil
	}

	kind, ok := s.host.WindowAt(col, row)
	if !ok {
		return nil
	}

	switch kind {
	case types.WindowIcon:
		s.tracking = true
		return s.pointer(types.PointerDown, col, row, ev)
	case types.WindowClose:
		_, err := s.overlay.ActivateClose()
		return err
	case types.WindowDim:
		_, err := s.overlay.TapDim()
		return err
	}
	return nil
}

func (s *Sim) pointer(action types.PointerAction, col, row int, ev *tcell.EventMouse) error {
	p := s.host.ToPoint(col, row)
	out, err := s.overlay.HandlePointer(types.PointerEvent{
		Action: action,
		X:      p.X,
		Y:      p.Y,
		Time:   s.clock(ev),
	})
	if err != nil {
		return err
	}
	utils.Verbose("%s at (%d,%d): %s", action, p.X, p.Y, out.Gesture)
	return nil
}
