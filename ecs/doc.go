// Package ecs provides ECS adapters for motion's animator events.
//
// The primary adapter is [NewDonburiSink], which bridges transition start and
// complete events from a [motion.Stage] into a [Donburi] world as typed
// events. Subscribe to [AnimatorEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
