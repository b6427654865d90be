// Package space is a frame-driven tween engine for [Ebitengine] games and other
// hosts with a per-frame callback.
//
// An [Engine] owns one [Ticker] and one [Scheduler]. The ticker registers a
// single callback with its [Host] and fans every frame out to its observers;
// the scheduler is one of them and advances every live tween record once per
// tick.
//
// # Quick start
//
// Inside an Ebitengine game, [NewGame] wires the engine to the update loop:
//
//	g, err := space.NewGame(scene, 640, 480, nil)
//	// ...
//	node := space.NewNode("panel", g.Engine)
//	space.TweenPosition(node, 200, 120, 400*time.Millisecond, space.Ease("easeOutBack"))
//	space.RunGame("Demo", g)
//
// Headless programs and tests use [ManualHost] or [LoopHost]:
//
//	host := space.NewManualHost()
//	engine := space.MustEngine(host, nil)
//	v := &space.Values{"opacity": 0}
//	engine.MustTween(v, space.Props{"opacity": 1}, time.Second, nil)
//	host.Advance(time.Second, 16*time.Millisecond)
//
// # Tweens
//
// [Scheduler.Tween] interpolates properties of a target from the values they
// hold when the tween starts (after its delay) to fixed destinations. Named
// properties resolve through [Fielder] or a [*Values]; typed bindings ([Float],
// [Vector2], [Vector3], [Tint]) are passed with [WithProps]. The final tick
// writes the destinations exactly.
//
// Scheduling does not replace earlier tweens on the same target. When two
// records drive one property the later one wins each tick; call
// [Scheduler.ClearTween] first to replace a motion. Cancelled records run no
// more callbacks and keep the values already written.
//
// # Easing
//
// Curves implement [Easing]. Named curves come from [Ease] and [LookupEase],
// [Bezier] builds CSS-style cubic-bezier timing functions and [Spring] a damped
// oscillator that settles on 1.
//
// # Timers
//
// [Scheduler.DelayedCall] is a tween with no properties, so it pauses, scales
// and cancels like one. [Scheduler.Wait] and [Scheduler.Defer] return a
// [Deferred] for callers that want to chain work or block another goroutine.
//
// # Threading
//
// Everything runs on the host's frame goroutine. Only [LoopHost.Post] and
// [Deferred.Wait] may be used from other goroutines.
//
// [Ebitengine]: https://ebitengine.org
package space
