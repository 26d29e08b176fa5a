package ecs

import (
	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChapterEventType is the Donburi event type for lumen chapter changes.
var ChapterEventType = events.NewEventType[lumen.ChapterEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Chapter events are published to ChapterEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) lumen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitChapter(event lumen.ChapterEvent) {
	ChapterEventType.Publish(s.world, event)
}
