package mutation

import "github.com/catalog-dash-poc-v1/client/internal/catalog"

// EventKind discriminates cache-update events.
type EventKind int

const (
	EventCreated EventKind = iota + 1
	EventUpdated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// Event is the cache-update message published after a successful write. The
// backing service does not durably persist writes for subsequent reads, so
// consumers patch their cached collections from this event to fake
// persistence for the session.
type Event struct {
	Kind    EventKind
	Product catalog.Product
}

// Patcher consumes cache-update events. Apply must be all-or-nothing: either
// every cached collection reflects the event or none does.
type Patcher interface {
	Apply(Event)
}
