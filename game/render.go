package game

import (
	"image/color"

	"github.com/plus3/vortex/ecs"
)

// Surface is where a frame is drawn.
type Surface interface {
	Clear()
	// DrawBackground fills the whole surface with the background, stretched to fit.
	DrawBackground()
	FillCircle(x, y, radius float64, c color.Color)
}

// RenderSystem redraws the surface from the current store: background first,
// then every entity as a filled disc in insertion order.
type RenderSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Body
	}]

	Surface Surface
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Surface == nil {
		return
	}

	s.Surface.Clear()
	s.Surface.DrawBackground()
	for item := range s.Entities.Values() {
		s.Surface.FillCircle(item.Position.X, item.Position.Y, item.Body.Radius, item.Body.Color)
	}
}
