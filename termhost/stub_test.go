package termhost

import "github.com/gdamore/tcell/v2"

type stubCell struct {
	ch    rune
	style tcell.Style
}

type stubScreenDriver struct {
	width, height int
	initErr       error
	initCalled    bool
	finiCalled    bool
	mouseEnabled  bool
	showCount     int
	content       map[[2]int]stubCell
	lastFrame     map[[2]int]stubCell
	events        []tcell.Event
}

func (s *stubScreenDriver) Init() error {
	s.initCalled = true
	return s.initErr
}

func (s *stubScreenDriver) Fini() {
	s.finiCalled = true
}

func (s *stubScreenDriver) Size() (int, int) {
	if s.width == 0 {
		s.width = 80
	}
	if s.height == 0 {
		s.height = 24
	}
	return s.width, s.height
}

func (s *stubScreenDriver) Clear() {
	s.content = make(map[[2]int]stubCell)
}

func (s *stubScreenDriver) HideCursor() {}

func (s *stubScreenDriver) EnableMouse(flags ...tcell.MouseFlags) {
	s.mouseEnabled = true
}

func (s *stubScreenDriver) Show() {
	s.showCount++
	s.lastFrame = make(map[[2]int]stubCell, len(s.content))
	for k, v := range s.content {
		s.lastFrame[k] = v
	}
}

func (s *stubScreenDriver) PollEvent() tcell.Event {
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func (s *stubScreenDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	if s.content == nil {
		s.content = make(map[[2]int]stubCell)
	}
	s.content[[2]int{x, y}] = stubCell{ch: mainc, style: style}
}

func (s *stubScreenDriver) cell(x, y int) rune {
	if c, ok := s.lastFrame[[2]int{x, y}]; ok {
		return c.ch
	}
	return 0
}

// mouseTimes holds the timestamp each synthetic mouse event is delivered
// with, since tcell stamps events with the wall clock on creation
var mouseTimes = map[*tcell.EventMouse]int64{}

func mouseAt(col, row int, buttons tcell.ButtonMask, ms int64) *tcell.EventMouse {
	ev := tcell.NewEventMouse(col, row, buttons, tcell.ModNone)
	mouseTimes[ev] = ms
	return ev
}

func stubClock(ev *tcell.EventMouse) int64 {
	return mouseTimes[ev]
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}
