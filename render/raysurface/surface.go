// Package raysurface records the arena as a display list and replays it with
// raylib inside the host's BeginDrawing/EndDrawing pair.
package raysurface

import (
	"image/color"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/vortex/ui"
)

// Fallback fills the frame when there is no background texture.
var Fallback = rl.NewColor(0x0b, 0x0b, 0x1e, 0xff)

type OpKind uint8

const (
	OpBackground OpKind = iota
	OpCircle
)

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	X, Y   float32
	Radius float32
	Color  color.RGBA
}

// Surface implements game.Surface. The render system records into it while
// the loop pumps; Draw replays the last complete frame.
type Surface struct {
	width, height int32
	background    *rl.Texture2D

	recording []Op
	frame     []Op
}

func New(width, height int32) *Surface {
	return &Surface{width: width, height: height}
}

// SetBackground uses tex, scaled to the surface, as the background.
func (s *Surface) SetBackground(tex rl.Texture2D) {
	s.background = &tex
}

// Clear starts a new frame. The previous one is kept for Draw until the next
// Clear.
func (s *Surface) Clear() {
	if len(s.recording) > 0 {
		s.frame = append(s.frame[:0], s.recording...)
	}
	s.recording = s.recording[:0]
}

func (s *Surface) DrawBackground() {
	s.recording = append(s.recording, Op{Kind: OpBackground})
}

func (s *Surface) FillCircle(x, y, radius float64, c color.Color) {
	s.recording = append(s.recording, Op{
		Kind:   OpCircle,
		X:      float32(x),
		Y:      float32(y),
		Radius: float32(radius),
		Color:  color.RGBAModel.Convert(c).(color.RGBA),
	})
}

// Ops returns the frame Draw would replay: the frame being recorded, or the
// last finished one when nothing has been recorded since Clear.
func (s *Surface) Ops() []Op {
	if len(s.recording) > 0 {
		return slices.Clone(s.recording)
	}
	return slices.Clone(s.frame)
}

// Draw replays Ops. Call it between rl.BeginDrawing and rl.EndDrawing.
func (s *Surface) Draw() {
	for _, op := range s.Ops() {
		switch op.Kind {
		case OpBackground:
			if s.background == nil {
				rl.ClearBackground(Fallback)
				continue
			}
			src := rl.NewRectangle(0, 0, float32(s.background.Width), float32(s.background.Height))
			dst := rl.NewRectangle(0, 0, float32(s.width), float32(s.height))
			rl.DrawTexturePro(*s.background, src, dst, rl.NewVector2(0, 0), 0, rl.White)
		case OpCircle:
			rl.DrawCircleV(rl.NewVector2(op.X, op.Y), op.Radius, op.Color)
		}
	}
}

// DrawOverlay draws the score and, when visible, the dialog centred in a
// width×height window.
func DrawOverlay(snap ui.Snapshot, width, height int32) {
	rl.DrawText("Score: "+snap.Score, 12, 8, 20, rl.White)
	if !snap.DialogVisible {
		return
	}

	lines := snap.DialogLines()
	const lineHeight, fontSize, boxWidth = 28, 20, 260
	boxHeight := int32(len(lines)*lineHeight + 24)
	left := (width - boxWidth) / 2
	top := (height - boxHeight) / 2

	rl.DrawRectangle(left, top, boxWidth, boxHeight, rl.NewColor(0, 0, 0, 0xc0))
	rl.DrawRectangleLines(left, top, boxWidth, boxHeight, rl.White)
	for i, line := range lines {
		w := rl.MeasureText(line, fontSize)
		rl.DrawText(line, left+(boxWidth-w)/2, top+12+int32(i*lineHeight), fontSize, rl.White)
	}
}
