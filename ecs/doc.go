// Package ecs provides ECS adapters for choreo's settle events and ticking.
//
// [NewDonburiSink] bridges scheduler settle events into a [Donburi] world as
// typed events. Subscribe to [SettleEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sched.SetEventSink(sink)
//
// Entities can also carry their own tween or animation through the
// [Animated] component; call [Tick] once per frame to advance them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
