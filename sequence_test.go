package space

import (
	"testing"
	"time"
)

func newSquare(s *Scheduler, b *box) *Sequence {
	return NewSequence(s, b,
		Stage{Props: Props{"x": 10}, Duration: 100 * time.Millisecond, Easing: Linear},
		Stage{Props: Props{"y": 10}, Duration: 100 * time.Millisecond, Easing: Linear},
		Stage{Props: Props{"x": 0}, Duration: 100 * time.Millisecond, Easing: Linear, Delay: 50 * time.Millisecond},
	)
}

func TestSequencePlaysStagesInOrder(t *testing.T) {
	e, host := newTestEngine(t)
	b := &box{}
	q := newSquare(e.Scheduler(), b)
	var stages []int
	q.OnStage = func(i int) { stages = append(stages, i) }
	completed := 0
	q.OnComplete = func() { completed++ }
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}

	host.Advance(100*time.Millisecond, 10*time.Millisecond)
	if b.X != 10 || b.Y != 0 {
		t.Errorf("after stage 0: (%v, %v)", b.X, b.Y)
	}
	host.Advance(100*time.Millisecond, 10*time.Millisecond)
	if b.Y != 10 {
		t.Errorf("after stage 1: Y = %v", b.Y)
	}
	host.Advance(50*time.Millisecond, 10*time.Millisecond)
	if b.X != 10 {
		t.Errorf("stage 2 moved during its delay: X = %v", b.X)
	}
	host.Advance(100*time.Millisecond, 10*time.Millisecond)
	if b.X != 0 {
		t.Errorf("after stage 2: X = %v", b.X)
	}
	if completed != 1 || q.Playing() {
		t.Errorf("completed = %d, playing = %v", completed, q.Playing())
	}
	if len(stages) != 3 || stages[0] != 0 || stages[1] != 1 || stages[2] != 2 {
		t.Errorf("stages = %v", stages)
	}
}

func TestSequenceLoop(t *testing.T) {
	e, host := newTestEngine(t)
	b := &box{}
	q := newSquare(e.Scheduler(), b)
	q.Loop = true
	completed := false
	q.OnComplete = func() { completed = true }
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}
	host.Advance(700*time.Millisecond, 10*time.Millisecond)
	if q.Loops() != 2 {
		t.Errorf("Loops = %d, want 2", q.Loops())
	}
	if !q.Playing() || completed {
		t.Errorf("playing = %v, completed = %v", q.Playing(), completed)
	}
}

func TestSequenceStop(t *testing.T) {
	e, host := newTestEngine(t)
	b := &box{}
	q := newSquare(e.Scheduler(), b)
	completed := false
	q.OnComplete = func() { completed = true }
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}
	host.Advance(150*time.Millisecond, 10*time.Millisecond)
	q.Stop()
	y := b.Y
	host.Advance(time.Second, 10*time.Millisecond)
	if b.Y != y || b.X != 10 {
		t.Errorf("sequence kept moving after Stop: (%v, %v)", b.X, b.Y)
	}
	if completed || q.Playing() || q.Stage() != 1 {
		t.Errorf("completed = %v, playing = %v, stage = %d", completed, q.Playing(), q.Stage())
	}
}

func TestSequenceStopAtStageBoundary(t *testing.T) {
	e, host := newTestEngine(t)
	b := &box{}
	q := newSquare(e.Scheduler(), b)
	// Stop from the completion of stage 0, before stage 1 has started.
	q.OnStage = func(i int) {
		if i == 1 {
			q.Stop()
		}
	}
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}
	host.Advance(time.Second, 10*time.Millisecond)
	if b.Y != 0 {
		t.Errorf("stage 1 ran after Stop: Y = %v", b.Y)
	}
	if e.Scheduler().IsTweening(b) {
		t.Error("records left after Stop")
	}
}

func TestSequenceInterruptedByClearTween(t *testing.T) {
	e, host := newTestEngine(t)
	b := &box{}
	q := newSquare(e.Scheduler(), b)
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}
	host.Step(50 * time.Millisecond)
	e.ClearTween(b)
	if q.Playing() {
		t.Error("sequence still playing after its target was cleared")
	}
	host.Advance(time.Second, 10*time.Millisecond)
	if b.Y != 0 {
		t.Errorf("later stage ran: Y = %v", b.Y)
	}
}

func TestSequenceValidatesUpFront(t *testing.T) {
	e, _ := newTestEngine(t)
	b := &box{}
	q := NewSequence(e.Scheduler(), b,
		Stage{Props: Props{"x": 1}, Duration: time.Second},
		Stage{Props: Props{"depth": 1}, Duration: time.Second},
	)
	if err := q.Play(); err == nil {
		t.Fatal("expected error for unknown property in stage 1")
	}
	if q.Playing() || e.Scheduler().Len() != 0 {
		t.Error("invalid sequence started")
	}
	if err := NewSequence(e.Scheduler(), b).Play(); err == nil {
		t.Error("expected error for empty sequence")
	}
}

func TestSequenceTypedBindings(t *testing.T) {
	e, host := newTestEngine(t)
	c := &Color{A: 1}
	q := NewSequence(e.Scheduler(), c,
		Stage{Bindings: []Prop{Tint("c", c, Color{R: 1, A: 1})}, Duration: 50 * time.Millisecond},
		Stage{Bindings: []Prop{Tint("c", c, Color{G: 1, A: 1})}, Duration: 50 * time.Millisecond},
	)
	if err := q.Play(); err != nil {
		t.Fatal(err)
	}
	host.Advance(200*time.Millisecond, 10*time.Millisecond)
	if *c != (Color{G: 1, A: 1}) {
		t.Errorf("color = %+v", *c)
	}
}
