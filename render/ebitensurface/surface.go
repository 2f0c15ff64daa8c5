// Package ebitensurface draws the arena onto an offscreen ebiten image.
package ebitensurface

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/vortex/ui"
)

// Fallback is the background fill used when no background image is available.
var Fallback = color.RGBA{R: 0x0b, G: 0x0b, B: 0x1e, A: 0xff}

// Surface implements game.Surface. The render system draws into Image during
// the frame tick, and the host's Draw blits it to the screen, so frames are
// only produced at the loop's pace.
type Surface struct {
	Image      *ebiten.Image
	background *ebiten.Image
}

// New creates a width×height surface. background may be nil.
func New(width, height int, background *ebiten.Image) *Surface {
	return &Surface{
		Image:      ebiten.NewImage(width, height),
		background: background,
	}
}

// LoadBackground reads a png or jpeg for use as the background.
func LoadBackground(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load background %s: %w", path, err)
	}
	return img, nil
}

func (s *Surface) Clear() {
	s.Image.Clear()
}

func (s *Surface) DrawBackground() {
	if s.background == nil {
		s.Image.Fill(Fallback)
		return
	}

	src := s.background.Bounds()
	dst := s.Image.Bounds()
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	opts.Filter = ebiten.FilterLinear
	s.Image.DrawImage(s.background, opts)
}

func (s *Surface) FillCircle(x, y, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.Image, float32(x), float32(y), float32(radius), c, true)
}

// Present copies the last rendered frame to screen.
func (s *Surface) Present(screen *ebiten.Image) {
	screen.DrawImage(s.Image, nil)
}

// DrawOverlay prints the score in the corner and, when visible, the dialog
// centred on screen.
func DrawOverlay(screen *ebiten.Image, snap ui.Snapshot) {
	ebitenutil.DebugPrintAt(screen, "Score: "+snap.Score, 12, 8)
	if !snap.DialogVisible {
		return
	}

	lines := snap.DialogLines()
	const lineHeight = 16
	const boxWidth = 220
	boxHeight := float32(len(lines)*lineHeight + 24)

	bounds := screen.Bounds()
	left := float32(bounds.Dx()-boxWidth) / 2
	top := (float32(bounds.Dy()) - boxHeight) / 2
	vector.DrawFilledRect(screen, left, top, boxWidth, boxHeight, color.RGBA{A: 0xc0}, false)
	vector.StrokeRect(screen, left, top, boxWidth, boxHeight, 1, color.White, false)

	for i, line := range lines {
		x := int(left) + (boxWidth-len(line)*6)/2
		y := int(top) + 12 + i*lineHeight
		ebitenutil.DebugPrintAt(screen, line, x, y)
	}
}
