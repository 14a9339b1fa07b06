package ecs

import (
	"github.com/phanxgames/motion"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimatorEventType is the Donburi event type for motion transition events.
// Subscribe to this in your ECS systems to react to group and text transitions.
var AnimatorEventType = events.NewEventType[motion.AnimatorEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to AnimatorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) motion.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event motion.AnimatorEvent) {
	AnimatorEventType.Publish(s.world, event)
}
