package main

import (
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/vortex/game"
	"github.com/plus3/vortex/host"
	"github.com/plus3/vortex/internal/config"
	"github.com/plus3/vortex/render/termsurface"
	"github.com/plus3/vortex/ui"
)

// term drives a session from tcell events. Everything runs on the caller's
// goroutine.
type term struct {
	screen  tcell.Screen
	surface *termsurface.Surface
	overlay *ui.Overlay
	session *game.Session
	log     *zap.Logger

	buttons tcell.ButtonMask
}

func newTerm(screen tcell.Screen, loop *host.Loop, cfg *config.Config, sounds game.Sounds, rng *rand.Rand, log *zap.Logger) *term {
	surface := termsurface.New(screen, cfg.Arena())
	overlay := ui.NewOverlay()
	session := game.NewSession(game.SessionConfig{
		Loop:      loop,
		Arena:     cfg.Arena(),
		Tuning:    cfg.Tuning(),
		Surface:   surface,
		Presenter: overlay,
		Sounds:    sounds,
		Rand:      rng,
		Logger:    log,
	})
	return &term{
		screen:  screen,
		surface: surface,
		overlay: overlay,
		session: session,
		log:     log,
	}
}

func (t *term) start() {
	t.overlay.HideDialog()
	t.session.Start()
}

// handle applies one event and reports whether the game should keep running.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if t.overlay.DialogVisible() && (ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')) {
			t.start()
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = buttons
		if !pressed {
			break
		}
		if t.overlay.DialogVisible() {
			t.start()
			break
		}
		col, row := ev.Position()
		x, y := t.surface.ToArena(col, row)
		t.session.Fire(x, y)

	case *tcell.EventResize:
		t.screen.Sync()
		t.log.Debug("terminal resized")
	}
	return true
}

// draw puts the overlay over the last rendered frame and shows it.
func (t *term) draw() {
	termsurface.DrawOverlay(t.screen, t.overlay.Snapshot())
	t.screen.Show()
}
