package ecs

import (
	"github.com/phanxgames/threatscope"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ScenarioEventType is the Donburi event type for engine phase changes.
var ScenarioEventType = events.NewEventType[threatscope.ScenarioEvent]()

// PanelEventType is the Donburi event type for card toggles.
var PanelEventType = events.NewEventType[threatscope.PanelEvent]()

var _ threatscope.EventSink = (*donburiSink)(nil)

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued and delivered by ProcessEvents / events.ProcessAllEvents.
func NewDonburiSink(world donburi.World) threatscope.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitScenario(event threatscope.ScenarioEvent) {
	ScenarioEventType.Publish(s.world, event)
}

func (s *donburiSink) EmitPanel(event threatscope.PanelEvent) {
	PanelEventType.Publish(s.world, event)
}
