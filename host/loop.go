package host

import (
	"container/heap"
	"context"
	"time"

	"go.uber.org/zap"
)

// Handle identifies a pending frame request or timer.
type Handle uint64

// FrameFunc receives the loop clock's time at the start of the pump.
type FrameFunc func(now time.Time)

type frameRequest struct {
	handle Handle
	fn     FrameFunc
}

type timer struct {
	handle   Handle
	deadline time.Time
	interval time.Duration
	seq      uint64
	fn       func()
	index    int
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline.Equal(q[j].deadline) {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline.Before(q[j].deadline)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the loop's logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) {
		l.log = log
	}
}

// Loop is a single-threaded cooperative event loop. Frame callbacks and timers
// only ever run from Pump, one at a time, on the goroutine that pumps.
//
// Loop is not safe for concurrent use; hosts forward input to the pumping
// goroutine instead of calling in from elsewhere.
type Loop struct {
	clock Clock
	log   *zap.Logger

	nextHandle Handle
	seq        uint64

	frames        []frameRequest
	pendingFrames map[Handle]struct{}
	timers        timerQueue
	timerByHandle map[Handle]*timer
}

// NewLoop creates a loop driven by clock.
func NewLoop(clock Clock, opts ...Option) *Loop {
	l := &Loop{
		clock:         clock,
		log:           zap.NewNop(),
		pendingFrames: make(map[Handle]struct{}),
		timerByHandle: make(map[Handle]*timer),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the loop's time source.
func (l *Loop) Clock() Clock {
	return l.clock
}

// Now is shorthand for l.Clock().Now().
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

func (l *Loop) handle() Handle {
	l.nextHandle++
	return l.nextHandle
}

// RequestFrame schedules fn to run on the next Pump. A frame requested from
// inside a frame callback runs on the pump after.
func (l *Loop) RequestFrame(fn FrameFunc) Handle {
	h := l.handle()
	l.frames = append(l.frames, frameRequest{handle: h, fn: fn})
	l.pendingFrames[h] = struct{}{}
	return h
}

// After schedules fn to run once, on the first Pump at or after now+delay.
func (l *Loop) After(delay time.Duration, fn func()) Handle {
	return l.addTimer(delay, 0, fn)
}

// Every schedules fn to run each interval until cancelled. It fires at most once
// per Pump; missed periods are skipped, not replayed.
func (l *Loop) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic("host: Every requires a positive interval")
	}
	return l.addTimer(interval, interval, fn)
}

func (l *Loop) addTimer(delay, interval time.Duration, fn func()) Handle {
	l.seq++
	t := &timer{
		handle:   l.handle(),
		deadline: l.clock.Now().Add(delay),
		interval: interval,
		seq:      l.seq,
		fn:       fn,
	}
	heap.Push(&l.timers, t)
	l.timerByHandle[t.handle] = t
	return t.handle
}

// Cancel drops a pending frame or timer. Unknown and already-fired handles are ignored.
func (l *Loop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	if _, ok := l.pendingFrames[h]; ok {
		delete(l.pendingFrames, h)
		return
	}
	if t, ok := l.timerByHandle[h]; ok {
		delete(l.timerByHandle, h)
		if t.index >= 0 {
			heap.Remove(&l.timers, t.index)
		}
	}
}

// Pending reports the number of outstanding frame requests and timers.
func (l *Loop) Pending() int {
	return len(l.pendingFrames) + len(l.timerByHandle)
}

// Pump runs every due timer in deadline order, then every frame requested
// before this call.
func (l *Loop) Pump() {
	now := l.clock.Now()

	var due []*timer
	for l.timers.Len() > 0 && !l.timers[0].deadline.After(now) {
		due = append(due, heap.Pop(&l.timers).(*timer))
	}
	for _, t := range due {
		if _, live := l.timerByHandle[t.handle]; !live {
			continue
		}
		if t.interval == 0 {
			delete(l.timerByHandle, t.handle)
		}

		t.fn()

		if t.interval > 0 {
			if _, live := l.timerByHandle[t.handle]; !live {
				continue
			}
			t.deadline = t.deadline.Add(t.interval)
			if !t.deadline.After(now) {
				t.deadline = now.Add(t.interval)
			}
			l.seq++
			t.seq = l.seq
			heap.Push(&l.timers, t)
		}
	}

	if len(l.frames) == 0 {
		return
	}
	frames := l.frames
	l.frames = nil
	for _, f := range frames {
		if _, live := l.pendingFrames[f.handle]; !live {
			continue
		}
		delete(l.pendingFrames, f.handle)
		f.fn(now)
	}
}

// Run pumps on a ticker until ctx is cancelled.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Debug("loop running", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("loop stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-ticker.C:
			l.Pump()
		}
	}
}
