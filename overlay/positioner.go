package overlay

import "github.com/mobile-next/floatdim/types"

// Layout is the geometry the positioner needs. Widths are in pixels.
type Layout struct {
	ScreenWidth int
	IconWidth   int
	CloseWidth  int
	Padding     int
}

// DragTo translates the icon's press-time position by the pointer delta.
// The result is not clamped, the icon may leave the screen.
func DragTo(start types.Point, dx, dy int) types.Point {
	return start.Add(dx, dy)
}

// PlaceCloseControl puts the close control beside the icon, on the left when
// it fits inside [-screenWidth/2, screenWidth/2], otherwise on the right.
// The right-hand placement is not checked against the right edge.
func PlaceCloseControl(screenWidth int, icon types.Point, iconWidth, closeWidth, padding int) types.Point {
	dx := padding + (iconWidth+closeWidth)/2
	left := icon.X - dx
	right := icon.X + dx

	x := right
	if left-closeWidth/2 > -screenWidth/2 {
		x = left
	}
	return types.Point{X: x, Y: icon.Y}
}

// Place is PlaceCloseControl with the widths taken from l.
func (l Layout) Place(icon types.Point) types.Point {
	return PlaceCloseControl(l.ScreenWidth, icon, l.IconWidth, l.CloseWidth, l.Padding)
}
