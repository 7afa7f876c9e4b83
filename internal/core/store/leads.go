// Package store holds the in-memory lead and opportunity collections for one
// console session. Stores are not safe for concurrent use; callers serialize
// access (the TUI does so through bubbletea's Update loop).
package store

import (
	"errors"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// LoadState is the lifecycle of the initial lead read
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// LeadStore holds the ordered lead collection
type LeadStore struct {
	leads []models.Lead
	state LoadState
	err   error
	notifier
}

// NewLeadStore returns an empty store in the loading state
func NewLeadStore() *LeadStore {
	return &LeadStore{state: StateLoading}
}

// Load replaces the collection with initial, keeping the given order.
// Records that break an invariant put the store in the failed state.
func (s *LeadStore) Load(initial []models.Lead) error {
	if err := models.ValidateLeads(initial); err != nil {
		loadErr := &models.LoadError{Err: err}
		s.Fail(loadErr)
		return loadErr
	}

	s.leads = make([]models.Lead, len(initial))
	copy(s.leads, initial)
	s.state = StateReady
	s.err = nil
	s.emit(Event{Kind: EventLeadsLoaded, Count: len(s.leads)})
	return nil
}

// Fail records a failed read. No leads are available afterwards.
func (s *LeadStore) Fail(err error) {
	var loadErr *models.LoadError
	if !errors.As(err, &loadErr) {
		err = &models.LoadError{Err: err}
	}
	s.leads = nil
	s.state = StateFailed
	s.err = err
	s.emit(Event{Kind: EventLoadFailed})
}

func (s *LeadStore) State() LoadState {
	return s.state
}

// Err returns the load error when State is StateFailed
func (s *LeadStore) Err() error {
	return s.err
}

// All returns a copy of the leads in the order they were loaded
func (s *LeadStore) All() []models.Lead {
	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

func (s *LeadStore) Len() int {
	return len(s.leads)
}

// Get looks up a lead by id
func (s *LeadStore) Get(id int) (models.Lead, bool) {
	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lead{}, false
}

// Commit replaces the lead whose id matches updated.ID.
// Returns false, leaving the collection untouched, if no lead matches.
func (s *LeadStore) Commit(updated models.Lead) bool {
	for i := range s.leads {
		if s.leads[i].ID == updated.ID {
			s.leads[i] = updated
			s.emit(Event{Kind: EventLeadCommitted, LeadID: updated.ID, Count: len(s.leads)})
			return true
		}
	}
	return false
}

// Subscribe registers fn for change events and returns a cancel function
func (s *LeadStore) Subscribe(fn Listener) func() {
	return s.subscribe(fn)
}
