package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/vortex/debugui/ebitenui"
	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/render/ebitensurface"
	"github.com/plus3/vortex/ui"
)

// App adapts a session to ebiten.Game. Update pumps the host loop once per
// ebiten tick; the session draws into the offscreen surface while ticking and
// Draw only blits it.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	loop    *host.Loop
	session *game.Session
	surface *ebitensurface.Surface
	overlay *ui.Overlay
	debug   *ebitenui.Overlay

	primed  bool
	touches []ebiten.TouchID
}

// start hides the dialog and begins a new game.
func (a *App) start() {
	a.overlay.HideDialog()
	a.session.Start()
}

func (a *App) Update() error {
	if !a.primed {
		a.surface.Clear()
		a.surface.DrawBackground()
		a.primed = true
	}

	if a.debug != nil {
		a.debug.Update(1.0 / float64(a.cfg.Window.TPS))
	}
	if a.debug == nil || !a.debug.WantsKeyboard() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return ebiten.Termination
		}
	}

	for _, p := range a.presses() {
		if a.overlay.DialogVisible() {
			a.log.Debug("dialog button pressed")
			a.start()
			break
		}
		a.session.Fire(float64(p[0]), float64(p[1]))
	}
	if a.overlay.DialogVisible() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.start()
	}

	a.loop.Pump()
	return nil
}

// presses returns the screen positions clicked or touched this tick, skipping
// clicks the debug windows consumed.
func (a *App) presses() [][2]int {
	var out [][2]int
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && (a.debug == nil || !a.debug.WantsMouse()) {
		x, y := ebiten.CursorPosition()
		out = append(out, [2]int{x, y})
	}
	a.touches = inpututil.AppendJustPressedTouchIDs(a.touches[:0])
	for _, id := range a.touches {
		x, y := ebiten.TouchPosition(id)
		out = append(out, [2]int{x, y})
	}
	return out
}

func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Present(screen)
	ebitensurface.DrawOverlay(screen, a.overlay.Snapshot())
	if a.debug != nil {
		a.debug.Draw(screen)
	}
}

// Layout pins the logical screen to the arena so cursor positions are arena
// coordinates.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.debug != nil {
		a.debug.Layout(outsideWidth, outsideHeight)
	}
	return a.cfg.Window.Width, a.cfg.Window.Height
}
