// Package ecs provides ECS adapters for choreo.
package ecs

import (
	"github.com/phanxgames/choreo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SettleEventType is the Donburi event type for choreo settle events.
// Subscribe to this in your ECS systems to react when a scheduled tween or
// animation reaches its begin or end state.
var SettleEventType = events.NewEventType[choreo.SettleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Settle events are published to SettleEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) choreo.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event choreo.SettleEvent) {
	SettleEventType.Publish(s.world, event)
}
