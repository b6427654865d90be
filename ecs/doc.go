// Package ecs provides ECS adapters for space's tween lifecycle events.
//
// The adapter is [NewDonburiSink], which bridges scheduler events (started,
// completed, cancelled) into a [Donburi] world as typed events. Subscribe to
// [TweenEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.Scheduler().SetEventSink(sink)
//
// Events are queued by Donburi and delivered when the world's systems call
// TweenEventType.ProcessEvents, so handlers run outside the tween tick.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
