// Package termsurface draws the arena as coloured cells on a tcell screen.
package termsurface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/ui"
)

const discRune = '█'

// Background is the style of empty cells.
var Background = tcell.StyleDefault.Background(tcell.NewRGBColor(0x0b, 0x0b, 0x1e))

// Surface implements game.Surface by scaling arena coordinates onto the
// screen's cell grid. The caller owns the screen and calls Show.
type Surface struct {
	screen tcell.Screen
	arena  game.Arena
}

// New maps arena onto screen.
func New(screen tcell.Screen, arena game.Arena) *Surface {
	return &Surface{screen: screen, arena: arena}
}

func (s *Surface) scale() (sx, sy float64) {
	cols, rows := s.screen.Size()
	return float64(cols) / s.arena.Width, float64(rows) / s.arena.Height
}

// ToArena converts a cell to the arena coordinates of its centre.
func (s *Surface) ToArena(col, row int) (x, y float64) {
	sx, sy := s.scale()
	return (float64(col) + 0.5) / sx, (float64(row) + 0.5) / sy
}

func (s *Surface) Clear() {
	s.screen.Clear()
}

func (s *Surface) DrawBackground() {
	s.screen.Fill(' ', Background)
}

// FillCircle paints every cell whose centre lies inside the disc. A disc smaller
// than a cell still paints the cell under its centre.
func (s *Surface) FillCircle(x, y, radius float64, c color.Color) {
	sx, sy := s.scale()
	cols, rows := s.screen.Size()
	style := Background.Foreground(toColor(c))

	minCol := max(0, int(math.Floor((x-radius)*sx)))
	maxCol := min(cols-1, int(math.Floor((x+radius)*sx)))
	minRow := max(0, int(math.Floor((y-radius)*sy)))
	maxRow := min(rows-1, int(math.Floor((y+radius)*sy)))

	painted := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx, cy := (float64(col)+0.5)/sx, (float64(row)+0.5)/sy
			if math.Hypot(cx-x, cy-y) <= radius {
				s.screen.SetContent(col, row, discRune, nil, style)
				painted = true
			}
		}
	}

	if !painted {
		col, row := int(math.Floor(x*sx)), int(math.Floor(y*sy))
		if col >= 0 && col < cols && row >= 0 && row < rows {
			s.screen.SetContent(col, row, discRune, nil, style)
		}
	}
}

func toColor(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// DrawOverlay writes the score on the top row and, when visible, the dialog
// centred on screen.
func DrawOverlay(screen tcell.Screen, snap ui.Snapshot) {
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	drawText(screen, 1, 0, "Score: "+snap.Score, text)
	if !snap.DialogVisible {
		return
	}

	lines := snap.DialogLines()
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	width += 4

	cols, rows := screen.Size()
	left := (cols - width) / 2
	top := (rows - len(lines) - 2) / 2
	for row := top; row < top+len(lines)+2; row++ {
		for col := left; col < left+width; col++ {
			screen.SetContent(col, row, ' ', nil, text)
		}
	}
	for i, line := range lines {
		drawText(screen, left+(width-len(line))/2, top+1+i, line, text)
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
