package space

import (
	"context"
	"time"
)

// Host is the environment's per-frame callback facility. RequestFrame asks for
// fn to be called once on the next frame with that frame's time; Now reports
// the current time in the same time base.
type Host interface {
	Now() time.Duration
	RequestFrame(fn func(now time.Duration))
}

// Clock provides wall time to LoopHost. Tests inject a fake to make frame
// timing deterministic.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// frameQueue holds the callbacks requested for the next frame.
type frameQueue struct {
	pending []func(time.Duration)
	running []func(time.Duration)
}

func (q *frameQueue) push(fn func(time.Duration)) {
	q.pending = append(q.pending, fn)
}

// flush runs the callbacks requested before the call. Callbacks requested while
// flushing wait for the next flush.
func (q *frameQueue) flush(now time.Duration) int {
	q.running, q.pending = q.pending, q.running[:0]
	n := len(q.running)
	for i, fn := range q.running {
		q.running[i] = nil
		fn(now)
	}
	q.running = q.running[:0]
	return n
}

// ManualHost is a Host whose time only moves when Step is called. It drives
// tests and offline rendering.
type ManualHost struct {
	now   time.Duration
	queue frameQueue
}

// NewManualHost returns a host at time zero.
func NewManualHost() *ManualHost {
	return &ManualHost{}
}

// Now implements Host.
func (h *ManualHost) Now() time.Duration { return h.now }

// RequestFrame implements Host.
func (h *ManualHost) RequestFrame(fn func(time.Duration)) {
	h.queue.push(fn)
}

// Pending reports how many frame callbacks are waiting.
func (h *ManualHost) Pending() int {
	return len(h.queue.pending)
}

// Step advances time by dt and runs one frame. It returns the number of frame
// callbacks that ran.
func (h *ManualHost) Step(dt time.Duration) int {
	h.now += dt
	return h.queue.flush(h.now)
}

// Advance steps in increments of step until total has elapsed. The last step is
// shortened so time ends exactly at now+total.
func (h *ManualHost) Advance(total, step time.Duration) {
	if step <= 0 {
		panic("space: Advance step must be positive")
	}
	for total > 0 {
		dt := min(step, total)
		h.Step(dt)
		total -= dt
	}
}

// LoopHost drives frames from a time.Ticker at a fixed rate. Run blocks and
// every engine call must happen on the goroutine running it; other goroutines
// hand work over with Post.
type LoopHost struct {
	fps   int
	clock Clock
	start time.Time
	queue frameQueue
	posts chan func()
}

// NewLoopHost returns a host that produces fps frames per second.
func NewLoopHost(fps int) *LoopHost {
	return NewLoopHostWithClock(fps, realClock{})
}

// NewLoopHostWithClock is NewLoopHost with an explicit time source.
func NewLoopHostWithClock(fps int, clock Clock) *LoopHost {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &LoopHost{
		fps:   fps,
		clock: clock,
		start: clock.Now(),
		posts: make(chan func(), 64),
	}
}

// FrameDuration is the interval between frames.
func (h *LoopHost) FrameDuration() time.Duration {
	return time.Second / time.Duration(h.fps)
}

// Now implements Host.
func (h *LoopHost) Now() time.Duration {
	return h.clock.Now().Sub(h.start)
}

// RequestFrame implements Host.
func (h *LoopHost) RequestFrame(fn func(time.Duration)) {
	h.queue.push(fn)
}

// Post queues fn to run on the loop goroutine before the next frame. It is the
// only LoopHost method that is safe to call from other goroutines.
func (h *LoopHost) Post(ctx context.Context, fn func()) error {
	select {
	case h.posts <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frame runs posted work and one frame at the current time.
func (h *LoopHost) Frame() {
drain:
	for {
		select {
		case fn := <-h.posts:
			fn()
		default:
			break drain
		}
	}
	h.queue.flush(h.Now())
}

// Run produces frames until ctx is done and returns ctx.Err().
func (h *LoopHost) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.FrameDuration())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-h.posts:
			fn()
		case <-ticker.C:
			h.Frame()
		}
	}
}
