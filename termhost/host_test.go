package termhost

import (
	"testing"

	"github.com/mobile-next/floatdim/overlay"
	"github.com/mobile-next/floatdim/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHost() (*Host, *stubScreenDriver) {
	driver := &stubScreenDriver{width: 80, height: 24}
	host := NewHost(driver, DefaultCell)
	host.SetCells(driver.Size())
	return host, driver
}

func TestHost_ScreenAndPoints(t *testing.T) {
	host, _ := newTestHost()

	assert.Equal(t, types.Size{Width: 960, Height: 672}, host.Screen())
	assert.Equal(t, types.Point{X: 6, Y: 14}, host.ToPoint(40, 12))
	assert.Equal(t, types.Point{X: -474, Y: -322}, host.ToPoint(0, 0))
}

func TestHost_WindowAtUsesStackingOrder(t *testing.T) {
	host, _ := newTestHost()

	dim, err := host.CreateWindow(types.WindowDim, host.Screen(), types.Point{})
	require.NoError(t, err)
	_, err = host.CreateWindow(types.WindowIcon, types.Size{Width: 170, Height: 121}, types.Point{})
	require.NoError(t, err)

	kind, ok := host.WindowAt(40, 12)
	require.True(t, ok)
	assert.Equal(t, types.WindowIcon, kind)

	kind, ok = host.WindowAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, types.WindowDim, kind)

	require.NoError(t, host.UpdateVisibility(dim, false))
	_, ok = host.WindowAt(1, 1)
	assert.False(t, ok)
}

func TestHost_PositionMovesCells(t *testing.T) {
	host, _ := newTestHost()

	icon, err := host.CreateWindow(types.WindowIcon, types.Size{Width: 170, Height: 121}, types.Point{})
	require.NoError(t, err)

	require.NoError(t, host.UpdatePosition(icon, types.Point{X: -300, Y: 0}))
	_, ok := host.WindowAt(40, 12)
	assert.False(t, ok)

	kind, ok := host.WindowAt(15, 12)
	require.True(t, ok)
	assert.Equal(t, types.WindowIcon, kind)
}

func TestHost_DrawClipsAndLabels(t *testing.T) {
	host, driver := newTestHost()

	_, err := host.CreateWindow(types.WindowClose, types.Size{Width: 108, Height: 108}, types.Point{X: -470, Y: 0})
	require.NoError(t, err)

	host.Draw("status")
	assert.Equal(t, 1, driver.showCount)
	assert.Equal(t, 's', driver.cell(0, 23))
	assert.Equal(t, ' ', driver.cell(0, 12), "close window is clipped at the left edge")
	_, offscreen := driver.lastFrame[[2]int{-1, 12}]
	assert.False(t, offscreen)
}

func TestHost_UnknownHandle(t *testing.T) {
	host, _ := newTestHost()

	assert.ErrorIs(t, host.UpdatePosition("missing", types.Point{}), overlay.ErrNotFound)
	assert.ErrorIs(t, host.UpdateVisibility("missing", true), overlay.ErrNotFound)
	assert.ErrorIs(t, host.UpdateBrightness("missing", types.BrightnessOff), overlay.ErrNotFound)
	assert.ErrorIs(t, host.UpdateSize("missing", types.Size{}), overlay.ErrNotFound)
	assert.ErrorIs(t, host.DestroyWindow("missing"), overlay.ErrNotFound)
}

func TestHost_DestroyRemovesFromOrder(t *testing.T) {
	host, _ := newTestHost()

	icon, err := host.CreateWindow(types.WindowIcon, types.Size{Width: 170, Height: 121}, types.Point{})
	require.NoError(t, err)
	require.NoError(t, host.DestroyWindow(icon))

	_, ok := host.WindowAt(40, 12)
	assert.False(t, ok)
	assert.Empty(t, host.order)
}

func TestDivHelpers(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-1, 12))
	assert.Equal(t, 0, floorDiv(11, 12))
	assert.Equal(t, 1, ceilDiv(1, 12))
	assert.Equal(t, 0, ceilDiv(-11, 12))
}
