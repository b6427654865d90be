package space

import (
	"fmt"
	"reflect"
	"time"
)

// Record is one scheduled interpolation: a set of property bindings on a target
// advanced from start values to destinations over a duration. The record
// returned by Tween is also a cancellation handle for ClearTween.
type Record struct {
	sched    *Scheduler
	target   any
	props    []Prop
	duration time.Duration
	delay    time.Duration
	easing   Easing

	onUpdate   func()
	onComplete func()
	onCancel   func()

	elapsed   time.Duration
	state     State
	cancelled bool
	timer     bool
	id        uint64
}

// Target returns the record's target.
func (r *Record) Target() any { return r.target }

// State returns the lifecycle stage.
func (r *Record) State() State { return r.state }

// Elapsed returns the time advanced so far, delay included.
func (r *Record) Elapsed() time.Duration { return r.elapsed }

// Duration returns the interpolation duration, delay excluded.
func (r *Record) Duration() time.Duration { return r.duration }

// Delay returns the delay before interpolation starts.
func (r *Record) Delay() time.Duration { return r.delay }

// Cancelled reports whether the record was removed by ClearTween.
func (r *Record) Cancelled() bool { return r.cancelled }

// Progress returns the normalized, uneased progress in [0, 1].
func (r *Record) Progress() float64 {
	if r.state == StatePending {
		return 0
	}
	if r.duration <= 0 {
		if r.state == StateDone && !r.cancelled {
			return 1
		}
		return 0
	}
	return clamp01(float64(r.elapsed-r.delay) / float64(r.duration))
}

// Cancel is ClearTween for this record alone.
func (r *Record) Cancel() {
	if r.sched != nil {
		r.sched.cancel(r)
	}
}

func (r *Record) String() string {
	return fmt.Sprintf("tween#%d(%T, %d props, %v+%v, %v)", r.id, r.target, len(r.props), r.delay, r.duration, r.state)
}

// TweenOption configures optional parts of a schedule request.
type TweenOption func(*Record)

// Delay postpones the start of interpolation. Start values are captured when
// the delay elapses, not at schedule time.
func Delay(d time.Duration) TweenOption {
	return func(r *Record) {
		r.delay = max(d, 0)
	}
}

// OnComplete runs fn once after the final write. It never runs for a cancelled
// record.
func OnComplete(fn func()) TweenOption {
	return func(r *Record) { r.onComplete = fn }
}

// OnUpdate runs fn every tick the record is active, after values are written.
func OnUpdate(fn func()) TweenOption {
	return func(r *Record) { r.onUpdate = fn }
}

// WithProps adds typed property bindings (Float, Vector2, Vector3, Tint) to the
// request, alongside or instead of named Props.
func WithProps(props ...Prop) TweenOption {
	return func(r *Record) { r.props = append(r.props, props...) }
}

const defaultLiveCap = 64

// Scheduler owns the live set of records and advances them once per tick of its
// Ticker. Like the Ticker it is single-threaded: every call happens on the
// host's frame goroutine.
type Scheduler struct {
	ticker  *Ticker
	live    []*Record
	nextID  uint64
	sink    EventSink
	debug   bool
	stats   tickStats
	ticking bool

	defaultEase   Easing
	timeScale     float64
	reducedMotion bool
}

// NewScheduler creates a scheduler and registers it as an observer of ticker.
func NewScheduler(ticker *Ticker) *Scheduler {
	s := &Scheduler{
		ticker:      ticker,
		live:        make([]*Record, 0, defaultLiveCap),
		defaultEase: Ease(DefaultEaseName),
		timeScale:   1,
	}
	ticker.Add(s)
	return s
}

// Ticker returns the ticker driving the scheduler.
func (s *Scheduler) Ticker() *Ticker {
	return s.ticker
}

// SetDefaultEasing sets the curve used for requests with a nil Easing.
func (s *Scheduler) SetDefaultEasing(e Easing) {
	if e == nil {
		e = Ease(DefaultEaseName)
	}
	s.defaultEase = e
}

// SetTimeScale multiplies every delta the scheduler applies. 1 is real time;
// values <= 0 are ignored.
func (s *Scheduler) SetTimeScale(scale float64) {
	if scale > 0 && finite(scale) {
		s.timeScale = scale
	}
}

// TimeScale returns the current delta multiplier.
func (s *Scheduler) TimeScale() float64 {
	return s.timeScale
}

// SetReducedMotion makes property tweens scheduled afterwards snap to their
// destinations, as a zero-duration request does. Timers keep their duration.
func (s *Scheduler) SetReducedMotion(enabled bool) {
	s.reducedMotion = enabled
}

// Tween schedules an interpolation of props on target over duration.
//
// Target must be a non-nil comparable value, normally a pointer; it is the key
// ClearTween cancels by. Named props are resolved through target's Fielder
// implementation (or a *Values); typed bindings are added with WithProps. A
// nil easing selects the scheduler default.
//
// A duration <= 0 applies the destinations immediately and completes on the
// next tick. Tween does not cancel other records on the same target: when two
// records drive the same property, the one scheduled later wins each tick.
// Call ClearTween first when a new motion must replace an old one.
//
// Invalid requests return an error and schedule nothing.
func (s *Scheduler) Tween(target any, props Props, duration time.Duration, easing Easing, opts ...TweenOption) (*Record, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	bound, err := bindProps(target, props)
	if err != nil {
		return nil, err
	}
	r := &Record{target: target, props: bound, duration: duration, easing: easing}
	for _, opt := range opts {
		opt(r)
	}
	for _, p := range r.props {
		if p == nil {
			return nil, fmt.Errorf("space: nil property binding: %w", ErrUnknownProperty)
		}
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	if r.easing == nil {
		r.easing = s.defaultEase
	}
	if s.reducedMotion && len(r.props) > 0 {
		r.duration = 0
	}
	s.schedule(r)
	return r, nil
}

// MustTween is Tween for requests known to be valid. It panics on error.
func (s *Scheduler) MustTween(target any, props Props, duration time.Duration, easing Easing, opts ...TweenOption) *Record {
	r, err := s.Tween(target, props, duration, easing, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func validateTarget(target any) error {
	if target == nil {
		return fmt.Errorf("space: nil target: %w", ErrInvalidTarget)
	}
	t := reflect.TypeOf(target)
	if !t.Comparable() {
		return fmt.Errorf("space: target of type %v: %w", t, ErrInvalidTarget)
	}
	if v := reflect.ValueOf(target); t.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("space: nil %v target: %w", t, ErrInvalidTarget)
	}
	return nil
}

func (s *Scheduler) schedule(r *Record) {
	s.nextID++
	r.id = s.nextID
	r.sched = s
	r.state = StatePending
	if r.delay == 0 {
		s.activate(r)
		if r.duration <= 0 {
			for _, p := range r.props {
				p.finish()
			}
		}
	}
	s.live = append(s.live, r)
	if s.debug {
		debugCheckLiveSet(s)
	}
	if !s.ticker.IsAnimating() {
		s.ticker.Start()
	}
}

func (s *Scheduler) activate(r *Record) {
	for _, p := range r.props {
		p.capture()
	}
	r.state = StateActive
	s.emit(EventStarted, r)
}

// ClearTween cancels live records. Given a *Record it cancels that record;
// given anything else it cancels every live record whose target is ==. No
// OnComplete runs for a cancelled record, and values already written stay as
// they are. Clearing a target with no live records does nothing.
func (s *Scheduler) ClearTween(targetOrHandle any) {
	if targetOrHandle == nil {
		return
	}
	if r, ok := targetOrHandle.(*Record); ok {
		s.cancel(r)
		return
	}
	if !reflect.TypeOf(targetOrHandle).Comparable() {
		return
	}
	for _, r := range s.live {
		if r.state != StateDone && r.target == targetOrHandle {
			s.cancel(r)
		}
	}
}

func (s *Scheduler) cancel(r *Record) {
	if r.state == StateDone {
		return
	}
	r.state = StateDone
	r.cancelled = true
	s.stats.cancelled++
	s.emit(EventCancelled, r)
	if r.onCancel != nil {
		r.onCancel()
	}
}

// Len reports the number of live records that are not done.
func (s *Scheduler) Len() int {
	n := 0
	for _, r := range s.live {
		if r.state != StateDone {
			n++
		}
	}
	return n
}

// Records returns the live records for target in schedule order.
func (s *Scheduler) Records(target any) []*Record {
	var out []*Record
	for _, r := range s.live {
		if r.state != StateDone && r.target == target {
			out = append(out, r)
		}
	}
	return out
}

// IsTweening reports whether target has any live record.
func (s *Scheduler) IsTweening(target any) bool {
	for _, r := range s.live {
		if r.state != StateDone && r.target == target {
			return true
		}
	}
	return false
}

// Tick implements Observer. It advances every record that was live when the
// tick began, in schedule order. Records scheduled by callbacks during the tick
// start advancing on the next one. A tick forced from inside a callback (a
// nested Ticker.OnTick) does not advance records again.
func (s *Scheduler) Tick(_, delta time.Duration, _ int) {
	if s.ticking {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.purge()
	if s.timeScale != 1 {
		delta = time.Duration(float64(delta) * s.timeScale)
	}
	s.ticking = true
	defer func() { s.ticking = false }()
	n := len(s.live)
	for i := 0; i < n; i++ {
		r := s.live[i]
		if r.state == StateDone {
			continue
		}
		s.advance(r, delta)
	}
	s.purge()

	if s.debug {
		s.stats.live = len(s.live)
		s.stats.tickTime = time.Since(t0)
		s.debugLog(s.stats)
	}
	s.stats = tickStats{}
}

func (s *Scheduler) advance(r *Record, delta time.Duration) {
	r.elapsed += delta
	if r.state == StatePending {
		if r.elapsed < r.delay {
			return
		}
		s.activate(r)
	}
	s.stats.advanced++

	raw := 1.0
	if r.duration > 0 {
		raw = clamp01(float64(r.elapsed-r.delay) / float64(r.duration))
	}
	if raw < 1 {
		eased := r.easing.Ease(raw, r.duration)
		for _, p := range r.props {
			p.apply(eased)
		}
		if r.onUpdate != nil {
			r.onUpdate()
		}
		return
	}

	for _, p := range r.props {
		p.finish()
	}
	if r.onUpdate != nil {
		r.onUpdate()
		if r.state == StateDone {
			// cancelled from its own update callback
			return
		}
	}
	r.state = StateDone
	s.stats.completed++
	s.emit(EventCompleted, r)
	if r.onComplete != nil {
		r.onComplete()
	}
}

// purge drops done records, keeping schedule order.
func (s *Scheduler) purge() {
	j := 0
	for _, r := range s.live {
		if r.state != StateDone {
			s.live[j] = r
			j++
		}
	}
	for k := j; k < len(s.live); k++ {
		s.live[k] = nil
	}
	s.live = s.live[:j]
}
