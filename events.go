package motion

// EventSink is the interface for optional ECS integration.
// When set on a Stage, transition lifecycle events are forwarded to it.
type EventSink interface {
	EmitEvent(event AnimatorEvent)
}

// AnimatorEventType identifies a transition lifecycle event.
type AnimatorEventType uint8

const (
	EventTransitionStart AnimatorEventType = iota
	EventTransitionComplete
)

func (t AnimatorEventType) String() string {
	switch t {
	case EventTransitionStart:
		return "start"
	case EventTransitionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// AnimatorEvent carries one transition event for the ECS bridge.
type AnimatorEvent struct {
	Type      AnimatorEventType
	Kind      string // BlockGroup or BlockText
	Name      string
	ElementID uint32
	Variant   VariantKey
}

// SetEventSink sets the optional ECS bridge. Animators created before the
// call forward their events too.
func (s *Stage) SetEventSink(sink EventSink) {
	s.sink = sink
}

// forward wraps the user callbacks so every transition is also published to
// the stage sink.
func (s *Stage) forward(kind, name string, el *Element, onStart, onComplete *func(VariantKey)) {
	start, complete := *onStart, *onComplete
	*onStart = func(key VariantKey) {
		if start != nil {
			start(key)
		}
		s.emit(AnimatorEvent{Type: EventTransitionStart, Kind: kind, Name: name, ElementID: el.ID, Variant: key})
	}
	*onComplete = func(key VariantKey) {
		if complete != nil {
			complete(key)
		}
		s.emit(AnimatorEvent{Type: EventTransitionComplete, Kind: kind, Name: name, ElementID: el.ID, Variant: key})
	}
}

func (s *Stage) emit(e AnimatorEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(e)
	}
}
