package raysurface_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/plus3/vortex/render/raysurface"
)

func TestRecordsFrame(t *testing.T) {
	s := raysurface.New(800, 600)
	s.Clear()
	s.DrawBackground()
	s.FillCircle(400, 300, 16, colornames.Bisque)
	s.FillCircle(10.5, 20.25, 5, color.Gray{Y: 0x80})

	ops := s.Ops()
	require.Len(t, ops, 3)
	assert.Equal(t, raysurface.OpBackground, ops[0].Kind)
	assert.Equal(t, raysurface.Op{Kind: raysurface.OpCircle, X: 400, Y: 300, Radius: 16, Color: colornames.Bisque}, ops[1])
	assert.Equal(t, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, ops[2].Color)
	assert.Equal(t, float32(20.25), ops[2].Y)
}

func TestKeepsLastFrameAfterClear(t *testing.T) {
	s := raysurface.New(800, 600)
	s.Clear()
	s.DrawBackground()
	s.FillCircle(1, 1, 1, colornames.Green)

	s.Clear()
	assert.Len(t, s.Ops(), 2, "an empty recording shows the previous frame")

	s.DrawBackground()
	assert.Len(t, s.Ops(), 1)

	s.Clear()
	s.Clear()
	require.Len(t, s.Ops(), 1)
	assert.Equal(t, raysurface.OpBackground, s.Ops()[0].Kind)
}

func TestEmptySurface(t *testing.T) {
	assert.Empty(t, raysurface.New(10, 10).Ops())
}
