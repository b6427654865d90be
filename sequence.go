package space

import (
	"errors"
	"log"
	"time"
)

// Stage is one step of a Sequence.
type Stage struct {
	Props    Props
	Bindings []Prop
	Duration time.Duration
	Easing   Easing
	Delay    time.Duration
}

// Sequence plays stages on one target back to back, optionally looping. It is
// the structured form of re-issuing a tween from OnComplete: the stage index and
// loop flag live here, so Stop is well-defined at any point, including between
// stages.
type Sequence struct {
	sched  *Scheduler
	target any
	stages []Stage

	// Loop restarts from the first stage after the last one completes.
	Loop bool
	// OnStage runs when a stage starts, with its index.
	OnStage func(index int)
	// OnComplete runs when the last stage completes and Loop is false.
	OnComplete func()

	index   int
	loops   int
	playing bool
	current *Record
}

// NewSequence returns a stopped sequence.
func NewSequence(s *Scheduler, target any, stages ...Stage) *Sequence {
	return &Sequence{sched: s, target: target, stages: stages}
}

// Play starts the sequence from its first stage, stopping a run in progress.
// Every stage is validated up front, so a bad stage fails here rather than
// midway through the motion.
func (q *Sequence) Play() error {
	if len(q.stages) == 0 {
		return errors.New("space: sequence has no stages")
	}
	if err := validateTarget(q.target); err != nil {
		return err
	}
	for _, st := range q.stages {
		if _, err := bindProps(q.target, st.Props); err != nil {
			return err
		}
		for _, p := range st.Bindings {
			if p == nil {
				return errors.New("space: sequence stage has a nil binding")
			}
			if err := p.validate(); err != nil {
				return err
			}
		}
	}
	q.Stop()
	q.index = 0
	q.loops = 0
	q.playing = true
	return q.start()
}

// Stop cancels the running stage. No further stages start and OnComplete does
// not run.
func (q *Sequence) Stop() {
	q.playing = false
	if q.current != nil {
		r := q.current
		q.current = nil
		r.Cancel()
	}
}

// Playing reports whether a stage is running or pending.
func (q *Sequence) Playing() bool { return q.playing }

// Stage returns the index of the current stage.
func (q *Sequence) Stage() int { return q.index }

// Loops returns how many times the sequence has wrapped around.
func (q *Sequence) Loops() int { return q.loops }

func (q *Sequence) start() error {
	st := q.stages[q.index]
	r, err := q.sched.Tween(q.target, st.Props, st.Duration, st.Easing,
		Delay(st.Delay), WithProps(st.Bindings...), OnComplete(q.advance))
	if err != nil {
		q.playing = false
		return err
	}
	r.onCancel = q.interrupted(r)
	q.current = r
	if q.OnStage != nil {
		q.OnStage(q.index)
	}
	return nil
}

// interrupted handles the stage record being cancelled from outside, such as a
// ClearTween on the target.
func (q *Sequence) interrupted(r *Record) func() {
	return func() {
		if q.current == r {
			q.current = nil
			q.playing = false
		}
	}
}

func (q *Sequence) advance() {
	q.current = nil
	if !q.playing {
		return
	}
	q.index++
	if q.index >= len(q.stages) {
		q.loops++
		if !q.Loop {
			q.index = len(q.stages) - 1
			q.playing = false
			if q.OnComplete != nil {
				q.OnComplete()
			}
			return
		}
		q.index = 0
	}
	if err := q.start(); err != nil {
		log.Printf("space: sequence stage %d: %v", q.index, err)
	}
}
