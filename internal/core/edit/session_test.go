package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

var (
	ana   = models.Lead{ID: 1, Name: "Ana", Company: "Acme", Email: "a@a.com", Source: "Web", Score: 80, Status: models.StatusNew}
	bruno = models.Lead{ID: 2, Name: "Bruno", Company: "Initech", Email: "bruno@initech.io", Source: "Evento", Score: 65, Status: models.StatusInContact}
)

func newStore(t *testing.T) *store.LeadStore {
	t.Helper()
	s := store.NewLeadStore()
	require.NoError(t, s.Load([]models.Lead{ana, bruno}))
	return s
}

func TestSession_BeginCopiesLead(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	assert.False(t, s.Active())
	s.Begin(ana)
	require.True(t, s.Active())

	require.NoError(t, s.UpdateField(FieldEmail, "ana@acme.com"))

	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, "ana@acme.com", draft.Email)

	stored, _ := leads.Get(1)
	assert.Equal(t, "a@a.com", stored.Email, "draft edits must not reach the store")
}

func TestSession_BeginDiscardsPreviousDraft(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	s.Begin(ana)
	require.NoError(t, s.UpdateField(FieldEmail, "changed@acme.com"))
	s.Begin(bruno)

	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, bruno, draft)

	stored, _ := leads.Get(1)
	assert.Equal(t, ana, stored)
}

func TestSession_SaveCommitsFullDraft(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	s.Begin(ana)
	require.NoError(t, s.UpdateField(FieldEmail, "a@b.c"))
	require.NoError(t, s.UpdateField(FieldStatus, string(models.StatusQualified)))
	require.NoError(t, s.Save())

	assert.False(t, s.Active())

	want := ana
	want.Email = "a@b.c"
	want.Status = models.StatusQualified
	stored, _ := leads.Get(1)
	assert.Equal(t, want, stored)

	other, _ := leads.Get(2)
	assert.Equal(t, bruno, other)
}

func TestSession_SaveRejectsBadEmail(t *testing.T) {
	for _, email := range []string{"abc", "bad", "a@b", "a@@b.c"} {
		t.Run(email, func(t *testing.T) {
			leads := newStore(t)
			s := NewSession(leads)

			s.Begin(ana)
			require.NoError(t, s.UpdateField(FieldEmail, email))

			err := s.Save()
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, "email", verr.Field)

			// Session stays open with the draft untouched
			draft, ok := s.Draft()
			require.True(t, ok)
			assert.Equal(t, email, draft.Email)

			stored, _ := leads.Get(1)
			assert.Equal(t, "a@a.com", stored.Email)
		})
	}
}

func TestSession_RetryAfterValidationError(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	s.Begin(ana)
	require.NoError(t, s.UpdateField(FieldEmail, "bad"))
	require.Error(t, s.Save())

	require.NoError(t, s.UpdateField(FieldEmail, "ana@acme.com"))
	require.NoError(t, s.Save())

	stored, _ := leads.Get(1)
	assert.Equal(t, "ana@acme.com", stored.Email)
}

func TestSession_Cancel(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	s.Begin(ana)
	require.NoError(t, s.UpdateField(FieldStatus, string(models.StatusQualified)))
	s.Cancel()

	assert.False(t, s.Active())
	_, ok := s.Draft()
	assert.False(t, ok)

	stored, _ := leads.Get(1)
	assert.Equal(t, ana, stored)
}

func TestSession_UpdateFieldRejections(t *testing.T) {
	leads := newStore(t)
	s := NewSession(leads)

	assert.ErrorIs(t, s.UpdateField(FieldEmail, "x@y.z"), ErrNoSession)
	assert.ErrorIs(t, s.Save(), ErrNoSession)

	s.Begin(ana)

	var verr *models.ValidationError
	require.True(t, errors.As(s.UpdateField(FieldStatus, "Perdido"), &verr))
	assert.Equal(t, "status", verr.Field)

	require.True(t, errors.As(s.UpdateField("nome", "Outra"), &verr))
	assert.Equal(t, "nome", verr.Field)

	draft, _ := s.Draft()
	assert.Equal(t, ana, draft)
}
