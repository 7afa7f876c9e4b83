package store

// EventKind identifies what changed in a store
type EventKind int

const (
	EventLeadsLoaded EventKind = iota
	EventLoadFailed
	EventLeadCommitted
	EventOpportunityAdded
)

func (k EventKind) String() string {
	switch k {
	case EventLeadsLoaded:
		return "leads-loaded"
	case EventLoadFailed:
		return "load-failed"
	case EventLeadCommitted:
		return "lead-committed"
	case EventOpportunityAdded:
		return "opportunity-added"
	}
	return "unknown"
}

// Event describes a single state change
type Event struct {
	Kind          EventKind
	LeadID        int   // set for EventLeadCommitted
	OpportunityID int64 // set for EventOpportunityAdded
	Count         int   // collection size after the change
}

// Listener receives change notifications synchronously
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// notifier keeps listeners in subscription order
type notifier struct {
	nextID    int
	listeners []subscription
}

func (n *notifier) subscribe(fn Listener) func() {
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range n.listeners {
			if s.id == id {
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier) emit(e Event) {
	// Copy so a listener may unsubscribe while being notified
	listeners := make([]subscription, len(n.listeners))
	copy(listeners, n.listeners)
	for _, s := range listeners {
		s.fn(e)
	}
}
