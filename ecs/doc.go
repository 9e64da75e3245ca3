// Package ecs provides ECS adapters for the overlay's interaction events.
//
// The primary adapter is [NewDonburiSink], which bridges overlay interaction
// events (drag start, scale start, release) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them, for example to snap a dragged entity to a grid or to record an
// editor undo step.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ov.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
