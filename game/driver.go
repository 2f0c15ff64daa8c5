package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/plus3/vortex/ecs"
	"github.com/plus3/vortex/host"
)

// Frames is the host's frame-scheduling primitive.
type Frames interface {
	RequestFrame(fn host.FrameFunc) host.Handle
	Cancel(h host.Handle)
}

// DriverState is the loop driver's state.
type DriverState int

const (
	Stopped DriverState = iota
	Running
)

func (s DriverState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Driver runs the scheduler once per host frame until the game is over.
type Driver struct {
	frames    Frames
	scheduler *ecs.Scheduler
	state     *ecs.Singleton[State]
	log       *zap.Logger

	status  DriverState
	pending host.Handle
	last    time.Time
	ticks   int
}

// NewDriver creates a stopped driver for scheduler.
func NewDriver(frames Frames, scheduler *ecs.Scheduler, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		frames:    frames,
		scheduler: scheduler,
		state:     ecs.NewSingleton[State](scheduler.Storage()),
		log:       log,
	}
}

// Start enters Running and requests the first frame. Starting a running driver
// does nothing.
func (d *Driver) Start() {
	if d.status == Running {
		return
	}
	d.status = Running
	d.last = time.Time{}
	d.ticks = 0
	d.pending = d.frames.RequestFrame(d.tick)
}

// Stop cancels the pending frame.
func (d *Driver) Stop() {
	d.frames.Cancel(d.pending)
	d.pending = 0
	d.status = Stopped
}

// State returns the driver state.
func (d *Driver) State() DriverState {
	return d.status
}

// Ticks is the number of ticks run since the last Start.
func (d *Driver) Ticks() int {
	return d.ticks
}

func (d *Driver) tick(now time.Time) {
	d.pending = 0
	if d.status != Running {
		return
	}

	var dt float64
	if !d.last.IsZero() {
		dt = now.Sub(d.last).Seconds()
	}
	d.last = now

	d.scheduler.Step(now, dt)
	d.ticks++

	if state := d.state.Get(); state != nil && state.GameOver {
		d.status = Stopped
		d.log.Debug("driver stopped", zap.Int("ticks", d.ticks))
		return
	}
	d.pending = d.frames.RequestFrame(d.tick)
}
