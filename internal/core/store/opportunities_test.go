package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIDGenerator_StrictlyIncreasing(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	g := &IDGenerator{Now: frozenClock(at)}

	first, firstAt := g.Next()
	second, _ := g.Next()
	third, _ := g.Next()

	assert.Equal(t, at.UnixMilli(), first)
	assert.Equal(t, at, firstAt)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestIDGenerator_FollowsClock(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	current := at
	g := &IDGenerator{Now: func() time.Time { return current }}

	first, _ := g.Next()
	current = at.Add(time.Second)
	second, _ := g.Next()

	assert.Equal(t, first+1000, second)
}

func TestOpportunityStore_NextIDSkipsExisting(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	s := NewOpportunityStore(&IDGenerator{Now: frozenClock(at)})

	// An id the generator would otherwise hand out next
	s.Append(models.Opportunity{ID: at.UnixMilli(), Name: "Imported"})

	id, _ := s.NextID()
	assert.NotEqual(t, at.UnixMilli(), id)
	assert.Equal(t, at.UnixMilli()+1, id)
}

func TestOpportunityStore_AppendAndNotify(t *testing.T) {
	s := NewOpportunityStore(nil)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	s.Append(models.Opportunity{ID: 10, Name: "Ana", Stage: models.StageInitial, AccountName: "Acme"})
	s.Append(models.Opportunity{ID: 11, Name: "Bruno", Stage: models.StageInitial, AccountName: "Initech"})

	all := s.All()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, int64(10), all[0].ID)
	assert.Equal(t, int64(11), all[1].ID)

	assert.Len(t, events, 2)
	assert.Equal(t, EventOpportunityAdded, events[1].Kind)
	assert.Equal(t, int64(11), events[1].OpportunityID)
	assert.Equal(t, 2, events[1].Count)
}
