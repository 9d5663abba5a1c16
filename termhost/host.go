package termhost

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
)

// DefaultCell is how many overlay pixels one terminal cell stands for.
var DefaultCell = types.Size{Width: 12, Height: 28}

var (
	dimStyle       = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
	iconStyle      = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorWhite)
	iconDarkStyle  = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	closeStyle     = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	statusBarStyle = tcell.StyleDefault.Reverse(true)
)

type window struct {
	kind       types.WindowKind
	size       types.Size
	pos        types.Point
	visible    bool
	brightness types.Brightness
}

// Host renders overlay windows as blocks of terminal cells. Window positions
// are in overlay pixels centered on the screen midpoint; each cell covers a
// fixed pixel rectangle.
type Host struct {
	mu      sync.Mutex
	driver  ScreenDriver
	cell    types.Size
	cols    int
	rows    int
	windows map[string]*window
	order   []string
}

func NewHost(driver ScreenDriver, cell types.Size) *Host {
	if cell.Width <= 0 || cell.Height <= 0 {
		cell = DefaultCell
	}
	return &Host{
		driver:  driver,
		cell:    cell,
		windows: make(map[string]*window),
	}
}

// SetCells records the terminal size in cells.
func (h *Host) SetCells(cols, rows int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cols, h.rows = cols, rows
}

// Screen is the terminal size in overlay pixels.
func (h *Host) Screen() types.Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screenLocked()
}

func (h *Host) screenLocked() types.Size {
	return types.Size{Width: h.cols * h.cell.Width, Height: h.rows * h.cell.Height}
}

// ToPoint maps a cell to the overlay pixel at its center.
func (h *Host) ToPoint(col, row int) types.Point {
	h.mu.Lock()
	defer h.mu.Unlock()

	screen := h.screenLocked()
	return types.Point{
		X: col*h.cell.Width + h.cell.Width/2 - screen.Width/2,
		Y: row*h.cell.Height + h.cell.Height/2 - screen.Height/2,
	}
}

func (h *Host) CreateWindow(kind types.WindowKind, size types.Size, pos types.Point) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := uuid.New().String()
	h.windows[handle] = &window{
		kind:       kind,
		size:       size,
		pos:        pos,
		visible:    true,
		brightness: types.BrightnessDefault,
	}
	h.order = append(h.order, handle)
	return handle, nil
}

func (h *Host) UpdatePosition(handle string, pos types.Point) error {
	return h.update(handle, func(w *window) { w.pos = pos })
}

func (h *Host) UpdateVisibility(handle string, visible bool) error {
	return h.update(handle, func(w *window) { w.visible = visible })
}

func (h *Host) UpdateBrightness(handle string, brightness types.Brightness) error {
	return h.update(handle, func(w *window) { w.brightness = brightness })
}

func (h *Host) UpdateSize(handle string, size types.Size) error {
	return h.update(handle, func(w *window) { w.size = size })
}

func (h *Host) DestroyWindow(handle string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.windows[handle]; !ok {
		return fmt.Errorf("%w: window %s", overlay.ErrNotFound, handle)
	}
	delete(h.windows, handle)
	for i, id := range h.order {
		if id == handle {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return nil
}

func (h *Host) update(handle string, fn func(w *window)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.windows[handle]
	if !ok {
		return fmt.Errorf("%w: window %s", overlay.ErrNotFound, handle)
	}
	fn(w)
	return nil
}

// WindowAt returns the topmost visible window covering a cell.
func (h *Host) WindowAt(col, row int) (types.WindowKind, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.order) - 1; i >= 0; i-- {
		w := h.windows[h.order[i]]
		if !w.visible {
			continue
		}
		c0, r0, c1, r1 := h.cellsLocked(w)
		if col >= c0 && col < c1 && row >= r0 && row < r1 {
			return w.kind, true
		}
	}
	return "", false
}

// cellsLocked returns the half-open cell rectangle a window covers.
func (h *Host) cellsLocked(w *window) (c0, r0, c1, r1 int) {
	screen := h.screenLocked()
	left := w.pos.X - w.size.Width/2 + screen.Width/2
	top := w.pos.Y - w.size.Height/2 + screen.Height/2

	c0 = floorDiv(left, h.cell.Width)
	r0 = floorDiv(top, h.cell.Height)
	c1 = max(ceilDiv(left+w.size.Width, h.cell.Width), c0+1)
	r1 = max(ceilDiv(top+w.size.Height, h.cell.Height), r0+1)
	return c0, r0, c1, r1
}

// Draw repaints every visible window in stacking order, then the status line.
func (h *Host) Draw(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.driver.Clear()
	for _, handle := range h.order {
		w := h.windows[handle]
		if !w.visible {
			continue
		}
		h.drawLocked(w)
	}

	if status != "" && h.rows > 0 {
		row := h.rows - 1
		runes := []rune(status)
		for col := 0; col < h.cols; col++ {
			ch := ' '
			if col < len(runes) {
				ch = runes[col]
			}
			h.driver.SetContent(col, row, ch, nil, statusBarStyle)
		}
	}
	h.driver.Show()
}

func (h *Host) drawLocked(w *window) {
	var (
		fill  = ' '
		label rune
		style tcell.Style
	)
	switch w.kind {
	case types.WindowDim:
		fill, style = '░', dimStyle
	case types.WindowIcon:
		label, style = '◉', iconStyle
		if w.brightness == types.BrightnessOff {
			style = iconDarkStyle
		}
	case types.WindowClose:
		label, style = '✕', closeStyle
	}

	c0, r0, c1, r1 := h.cellsLocked(w)
	for row := max(r0, 0); row < min(r1, h.rows); row++ {
		for col := max(c0, 0); col < min(c1, h.cols); col++ {
			h.driver.SetContent(col, row, fill, nil, style)
		}
	}

	if label != 0 {
		col, row := (c0+c1)/2, (r0+r1)/2
		if col >= 0 && col < h.cols && row >= 0 && row < h.rows {
			h.driver.SetContent(col, row, label, nil, style)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

var _ overlay.Host = (*Host)(nil)
