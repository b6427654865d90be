package space

import (
	"context"
	"errors"
	"time"
)

// ErrCancelled is returned by Deferred.Wait when the deferred was cancelled
// before it resolved.
var ErrCancelled = errors.New("space: deferred cancelled")

// DelayedCall runs fn after d. It is a tween with no properties whose target is
// the returned record itself, so the record cancels it through ClearTween or
// Record.Cancel exactly like an animation. A d <= 0 runs fn on the next tick.
func (s *Scheduler) DelayedCall(d time.Duration, fn func()) *Record {
	r := &Record{duration: d, easing: Linear, onComplete: fn, timer: true}
	r.target = r
	s.schedule(r)
	return r
}

// Defer returns a Deferred that resolves on the next tick boundary, after the
// synchronous work of the current frame has settled.
func (s *Scheduler) Defer() *Deferred {
	return s.Wait(0)
}

// Wait returns a Deferred that resolves after d.
func (s *Scheduler) Wait(d time.Duration) *Deferred {
	df := &Deferred{done: make(chan struct{}), cancelled: make(chan struct{})}
	df.record = s.DelayedCall(d, df.resolve)
	df.record.onCancel = df.cancel
	return df
}

// Deferred is a result that becomes available at a future tick. Then callbacks
// run on the tick goroutine; other goroutines observe resolution through Done
// or Wait.
type Deferred struct {
	record    *Record
	done      chan struct{}
	cancelled chan struct{}
	thens     []func()
	resolved  bool
	dropped   bool
}

// Record returns the timer record backing the deferred.
func (d *Deferred) Record() *Record {
	return d.record
}

// Done returns a channel closed when the deferred resolves.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Resolved reports whether the deferred has resolved. Only call it from the
// tick goroutine.
func (d *Deferred) Resolved() bool {
	return d.resolved
}

// Then runs fn when the deferred resolves, or immediately if it already has.
// Callbacks run in registration order. fn never runs if the deferred is
// cancelled first.
func (d *Deferred) Then(fn func()) {
	if d.dropped {
		return
	}
	if d.resolved {
		fn()
		return
	}
	d.thens = append(d.thens, fn)
}

// Cancel drops the deferred. Pending Then callbacks are discarded and Wait
// returns ErrCancelled. Cancelling a resolved deferred does nothing.
func (d *Deferred) Cancel() {
	d.record.Cancel()
}

// Wait blocks until the deferred resolves, is cancelled, or ctx is done. It must
// not be called on the tick goroutine, which is the goroutine that resolves it.
func (d *Deferred) Wait(ctx context.Context) error {
	select {
	case <-d.done:
		return nil
	case <-d.cancelled:
		return ErrCancelled
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Deferred) resolve() {
	d.resolved = true
	close(d.done)
	thens := d.thens
	d.thens = nil
	for _, fn := range thens {
		fn()
	}
}

func (d *Deferred) cancel() {
	if d.resolved || d.dropped {
		return
	}
	d.dropped = true
	d.thens = nil
	close(d.cancelled)
}
