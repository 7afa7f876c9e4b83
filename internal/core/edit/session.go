// Package edit implements the single-slot draft used to change a lead's
// email and status before committing it back to the lead store.
package edit

import (
	"errors"

	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

// ErrNoSession is returned when an operation needs an active draft
var ErrNoSession = errors.New("no lead selected for editing")

// Field names a lead attribute that can be edited
type Field string

const (
	FieldEmail  Field = "email"
	FieldStatus Field = "status"
)

// Session holds at most one draft at a time
type Session struct {
	leads *store.LeadStore
	draft *models.Lead
}

// NewSession returns a session that commits into leads
func NewSession(leads *store.LeadStore) *Session {
	return &Session{leads: leads}
}

// Begin starts a draft from a copy of lead, discarding any previous draft
func (s *Session) Begin(lead models.Lead) {
	draft := lead
	s.draft = &draft
}

func (s *Session) Active() bool {
	return s.draft != nil
}

// Draft returns a copy of the in-progress record
func (s *Session) Draft() (models.Lead, bool) {
	if s.draft == nil {
		return models.Lead{}, false
	}
	return *s.draft, true
}

// UpdateField changes the draft only. The status must be one of the
// enumerated values; the email is not checked until Save.
func (s *Session) UpdateField(field Field, value string) error {
	if s.draft == nil {
		return ErrNoSession
	}

	switch field {
	case FieldEmail:
		s.draft.Email = value
	case FieldStatus:
		status := models.Status(value)
		if !status.Valid() {
			return &models.ValidationError{Field: string(field), Value: value, Reason: "unknown status"}
		}
		s.draft.Status = status
	default:
		return &models.ValidationError{Field: string(field), Value: value, Reason: "field is not editable"}
	}
	return nil
}

// Save validates the draft email and commits the whole draft. On a
// validation error the draft stays open and nothing is committed.
func (s *Session) Save() error {
	if s.draft == nil {
		return ErrNoSession
	}
	if err := models.ValidateEmail(s.draft.Email); err != nil {
		return err
	}

	s.leads.Commit(*s.draft)
	s.draft = nil
	return nil
}

// Cancel drops the draft without committing
func (s *Session) Cancel() {
	s.draft = nil
}
