package store

import (
	"time"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// IDGenerator issues strictly increasing ids seeded from a clock.
// The zero value uses time.Now.
type IDGenerator struct {
	Now  func() time.Time
	last int64
}

// Next returns the next id and the clock reading it was derived from
func (g *IDGenerator) Next() (int64, time.Time) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	at := now()
	id := at.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id, at
}

// OpportunityStore is the append-only list of converted opportunities
type OpportunityStore struct {
	opps []models.Opportunity
	ids  *IDGenerator
	notifier
}

// NewOpportunityStore returns an empty store. A nil ids uses the wall clock.
func NewOpportunityStore(ids *IDGenerator) *OpportunityStore {
	if ids == nil {
		ids = &IDGenerator{}
	}
	return &OpportunityStore{ids: ids}
}

// NextID returns an id not used by any stored opportunity, together with
// the creation time it was taken from
func (s *OpportunityStore) NextID() (int64, time.Time) {
	for {
		id, at := s.ids.Next()
		if !s.has(id) {
			return id, at
		}
	}
}

func (s *OpportunityStore) has(id int64) bool {
	for _, o := range s.opps {
		if o.ID == id {
			return true
		}
	}
	return false
}

// Append adds opp to the end of the list
func (s *OpportunityStore) Append(opp models.Opportunity) {
	s.opps = append(s.opps, opp)
	s.emit(Event{Kind: EventOpportunityAdded, OpportunityID: opp.ID, Count: len(s.opps)})
}

// All returns a copy of the opportunities in creation order
func (s *OpportunityStore) All() []models.Opportunity {
	out := make([]models.Opportunity, len(s.opps))
	copy(out, s.opps)
	return out
}

func (s *OpportunityStore) Len() int {
	return len(s.opps)
}

// Subscribe registers fn for change events and returns a cancel function
func (s *OpportunityStore) Subscribe(fn Listener) func() {
	return s.subscribe(fn)
}
