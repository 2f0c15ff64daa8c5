package termsurface_test

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/render/termsurface"
	"github.com/plus3/vortex/ui"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func cell(screen tcell.Screen, col, row int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(col, row)
	return r, style
}

func rowText(screen tcell.Screen, row int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for col := 0; col < cols; col++ {
		r, _ := cell(screen, col, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestFillCircle(t *testing.T) {
	screen := newScreen(t, 80, 24)
	// one cell is 10×25 arena units
	surface := termsurface.New(screen, game.Arena{Width: 800, Height: 600})

	surface.Clear()
	surface.DrawBackground()
	surface.FillCircle(400, 300, 30, color.RGBA{R: 255, A: 255})

	r, style := cell(screen, 40, 12)
	assert.Equal(t, '█', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)

	r, _ = cell(screen, 42, 12)
	assert.Equal(t, '█', r)
	r, _ = cell(screen, 37, 12)
	assert.Equal(t, '█', r)

	r, _ = cell(screen, 43, 12)
	assert.Equal(t, ' ', r)
	r, _ = cell(screen, 40, 15)
	assert.Equal(t, ' ', r)
}

func TestFillCircleSmallDisc(t *testing.T) {
	screen := newScreen(t, 80, 24)
	surface := termsurface.New(screen, game.Arena{Width: 800, Height: 600})

	surface.DrawBackground()
	surface.FillCircle(101, 101, 2, color.White)

	r, _ := cell(screen, 10, 4)
	assert.Equal(t, '█', r)
}

func TestFillCircleClipped(t *testing.T) {
	screen := newScreen(t, 80, 24)
	surface := termsurface.New(screen, game.Arena{Width: 800, Height: 600})

	assert.NotPanics(t, func() {
		surface.FillCircle(-50, -50, 20, color.White)
		surface.FillCircle(820, 610, 30, color.White)
	})
}

func TestToArena(t *testing.T) {
	screen := newScreen(t, 80, 24)
	surface := termsurface.New(screen, game.Arena{Width: 800, Height: 600})

	x, y := surface.ToArena(40, 12)
	assert.InDelta(t, 405.0, x, 1e-9)
	assert.InDelta(t, 312.5, y, 1e-9)
}

func TestDrawOverlay(t *testing.T) {
	screen := newScreen(t, 40, 12)
	screen.Clear()

	overlay := ui.NewOverlay()
	overlay.SetScore(1200)
	overlay.ShowFinalScore(1200)
	overlay.SetButtonLabel("Restart")
	overlay.EnsureHeading("Game Over")
	termsurface.DrawOverlay(screen, overlay.Snapshot())

	assert.True(t, strings.HasPrefix(rowText(screen, 0), " Score: 1200"))

	var all strings.Builder
	for row := 0; row < 12; row++ {
		all.WriteString(rowText(screen, row))
		all.WriteByte('\n')
	}
	assert.Contains(t, all.String(), "Game Over")
	assert.Contains(t, all.String(), "[Restart]")

	overlay.HideDialog()
	screen.Clear()
	termsurface.DrawOverlay(screen, overlay.Snapshot())
	assert.NotContains(t, rowText(screen, 7), "Restart")
}
