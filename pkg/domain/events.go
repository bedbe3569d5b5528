package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventLayerBuilt          EventType = "layer_built"
	EventControlInserted     EventType = "control_inserted"
	EventDuplicateSuppressed EventType = "duplicate_suppressed"
	EventPageAllocated       EventType = "page_allocated"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// LayerEvent reports a finished layer build, including partial ones.
type LayerEvent struct {
	EventBase
	Layer       string `json:"layer"`
	Variant     string `json:"variant"` // "bool", "int" or "overlay"
	States      int    `json:"states"`
	Transitions int    `json:"transitions"`
	Err         error  `json:"-"`
}

// MenuEvent reports a change to a menu container.
type MenuEvent struct {
	EventBase
	MenuID  string `json:"menu_id"`
	Control string `json:"control"`
	Page    int    `json:"page,omitempty"`
}

// LifecycleHooks defines callbacks for build observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnLayerBuilt          func(*LayerEvent)
	OnControlInserted     func(*MenuEvent)
	OnDuplicateSuppressed func(*MenuEvent)
	OnPageAllocated       func(*MenuEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLayerBuilt:          chain(h.OnLayerBuilt, other.OnLayerBuilt),
		OnControlInserted:     chain(h.OnControlInserted, other.OnControlInserted),
		OnDuplicateSuppressed: chain(h.OnDuplicateSuppressed, other.OnDuplicateSuppressed),
		OnPageAllocated:       chain(h.OnPageAllocated, other.OnPageAllocated),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
