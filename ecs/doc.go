// Package ecs provides ECS adapters for threatscope's scenario and panel
// events.
//
// The primary adapter is [NewDonburiSink], which bridges engine phase changes
// and card toggles into a [Donburi] world as typed events. Subscribe to
// [ScenarioEventType] or [PanelEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.SetEventSink(sink)
//	panels.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
