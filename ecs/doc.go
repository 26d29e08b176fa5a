// Package ecs provides ECS adapters for lumen's chapter events.
//
// The primary adapter is [NewDonburiSink], which bridges lumen chapter
// changes into a [Donburi] world as typed events. Subscribe to
// [ChapterEventType] in your ECS systems to react when the narrative moves
// on (for example to retint sprites or swap audio beds).
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
