package space

import "time"

// Observer receives one call per tick with the ticker time, the time since the
// previous tick and the frame count.
type Observer interface {
	Tick(now, delta time.Duration, frame int)
}

// TickFunc is the function form of Observer.
type TickFunc func(now, delta time.Duration, frame int)

// funcObserver gives a TickFunc pointer identity so it can be removed.
type funcObserver struct {
	fn TickFunc
}

func (o *funcObserver) Tick(now, delta time.Duration, frame int) { o.fn(now, delta, frame) }

// Ticker owns the single per-frame callback registration point of an engine.
// It asks its Host for frames while running and fans each frame out to the
// registered observers in registration order.
//
// A Ticker is not safe for concurrent use; all calls happen on the host's
// frame goroutine.
type Ticker struct {
	host      Host
	observers []Observer
	scratch   []Observer

	running   bool
	requested bool
	ticking   bool
	hasLast   bool
	last      time.Duration
	now       time.Duration
	delta     time.Duration
	frame     int

	// MaxDelta caps the delta reported for a single tick. Zero means no cap.
	MaxDelta time.Duration
}

// NewTicker creates a stopped ticker that will request frames from host.
// A nil host is allowed; such a ticker only advances through OnTick.
func NewTicker(host Host) *Ticker {
	return &Ticker{host: host}
}

// Add registers an observer. Adding the same observer twice makes it run twice.
func (t *Ticker) Add(o Observer) {
	if o == nil {
		panic("space: cannot add nil observer")
	}
	t.observers = append(t.observers, o)
}

// AddFunc registers fn and returns the Observer to pass to Remove.
func (t *Ticker) AddFunc(fn TickFunc) Observer {
	o := &funcObserver{fn: fn}
	t.Add(o)
	return o
}

// Remove unregisters the first registration of o. Removing an observer that is
// not registered is a no-op.
func (t *Ticker) Remove(o Observer) {
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len reports the number of registered observers.
func (t *Ticker) Len() int {
	return len(t.observers)
}

// Start begins requesting frames from the host. Calling Start on a running
// ticker does nothing.
func (t *Ticker) Start() {
	if t.running {
		return
	}
	t.running = true
	if t.host != nil {
		t.last = t.host.Now()
		t.hasLast = true
	}
	t.request()
}

// Stop stops requesting frames. A frame already requested from the host is
// ignored when it arrives.
func (t *Ticker) Stop() {
	t.running = false
}

// IsAnimating reports whether the continuous loop is requested.
func (t *Ticker) IsAnimating() bool {
	return t.running
}

// Frame returns the number of ticks run so far.
func (t *Ticker) Frame() int {
	return t.frame
}

// Time returns the time passed to the most recent tick.
func (t *Ticker) Time() time.Duration {
	return t.now
}

// Delta returns the delta of the most recent tick.
func (t *Ticker) Delta() time.Duration {
	return t.delta
}

func (t *Ticker) request() {
	if t.requested || !t.running || t.host == nil {
		return
	}
	t.requested = true
	t.host.RequestFrame(t.onFrame)
}

func (t *Ticker) onFrame(now time.Duration) {
	t.requested = false
	if !t.running {
		return
	}
	// Request the next frame first so a panicking observer does not end the loop.
	t.request()
	t.OnTick(now)
}

// OnTick forces one synchronous tick at the given time. Hosts call it once per
// frame; widgets that must advance while the loop is stopped call it directly
// with their own elapsed time.
//
// Observer panics are not recovered.
func (t *Ticker) OnTick(now time.Duration) {
	if !t.hasLast {
		t.last = now
		t.hasLast = true
	}
	delta := now - t.last
	if delta < 0 {
		delta = 0
	}
	if t.MaxDelta > 0 && delta > t.MaxDelta {
		delta = t.MaxDelta
	}
	t.last = now
	t.now = now
	t.delta = delta
	t.frame++

	// Observers may add or remove observers while running. A nested OnTick gets
	// its own copy so it does not clobber the outer iteration.
	var list []Observer
	if t.ticking {
		list = append([]Observer(nil), t.observers...)
	} else {
		t.scratch = append(t.scratch[:0], t.observers...)
		list = t.scratch
		t.ticking = true
		defer func() { t.ticking = false }()
	}
	frame := t.frame
	for _, o := range list {
		o.Tick(now, delta, frame)
	}
}
