package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

func sampleLeads() []models.Lead {
	return []models.Lead{
		{ID: 1, Name: "Ana Souza", Company: "Acme", Email: "a@a.com", Source: "Web", Score: 80, Status: models.StatusNew},
		{ID: 2, Name: "Bruno Lima", Company: "Initech", Email: "bruno@initech.io", Source: "Evento", Score: 65, Status: models.StatusInContact},
		{ID: 3, Name: "Carla Dias", Company: "ACME Brasil", Email: "carla@acme.com.br", Source: "Indicação", Score: 92, Status: models.StatusQualified},
		{ID: 4, Name: "Diego Acmeson", Company: "Globex", Email: "diego@globex.com", Source: "Web", Score: 40, Status: models.StatusNew},
	}
}

func ids(leads []models.Lead) []int {
	out := make([]int, len(leads))
	for i, l := range leads {
		out[i] = l.ID
	}
	return out
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status models.Status
		want   []int
	}{
		{"no filters", "", "", []int{1, 2, 3, 4}},
		{"company match is case-insensitive", "acme", "", []int{1, 3, 4}},
		{"name match", "bruno", "", []int{2}},
		{"upper-case query", "INITECH", "", []int{2}},
		{"status only", "", models.StatusNew, []int{1, 4}},
		{"text and status", "acme", models.StatusQualified, []int{3}},
		{"no match", "zzz", "", []int{}},
		{"status with no members", "", "Inexistente", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(sampleLeads(), tt.query, tt.status)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestVisible_EmptyFiltersReturnInputUnchanged(t *testing.T) {
	leads := sampleLeads()
	assert.Equal(t, leads, Visible(leads, "", ""))
}

func TestVisible_SubsetPreservingOrder(t *testing.T) {
	leads := sampleLeads()
	position := make(map[int]int, len(leads))
	for i, l := range leads {
		position[l.ID] = i
	}

	queries := []string{"", "a", "ac", "li", "o", "ACME", "x"}
	statuses := []models.Status{"", models.StatusNew, models.StatusInContact, models.StatusQualified}

	for _, q := range queries {
		for _, s := range statuses {
			got := Visible(leads, q, s)
			last := -1
			for _, l := range got {
				pos, ok := position[l.ID]
				require.True(t, ok, "lead %d not in input", l.ID)
				assert.Greater(t, pos, last, "order broken for q=%q s=%q", q, s)
				assert.Equal(t, leads[pos], l)
				last = pos
			}
		}
	}
}

func TestVisible_DoesNotMutateInput(t *testing.T) {
	leads := sampleLeads()
	_ = Visible(leads, "acme", models.StatusNew)
	assert.Equal(t, sampleLeads(), leads)
}

func TestVisible_QualifiedFilterOnSingleNewLead(t *testing.T) {
	leads := []models.Lead{
		{ID: 1, Name: "Ana", Company: "Acme", Email: "a@a.com", Source: "Web", Score: 80, Status: models.StatusNew},
	}
	assert.Empty(t, Visible(leads, "", models.StatusQualified))
}

func TestParseSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  SearchFilters
	}{
		{
			name:  "plain text",
			query: "acme brasil",
			want:  SearchFilters{Query: "acme brasil"},
		},
		{
			name:  "status token",
			query: "acme status:qualificado",
			want:  SearchFilters{Query: "acme", Status: models.StatusQualified, HasStatus: true},
		},
		{
			name:  "hyphenated status",
			query: "Status:em-contato",
			want:  SearchFilters{Status: models.StatusInContact, HasStatus: true},
		},
		{
			name:  "english alias",
			query: "status:new ana",
			want:  SearchFilters{Query: "ana", Status: models.StatusNew, HasStatus: true},
		},
		{
			name:  "unknown status",
			query: "status:perdido ana",
			want:  SearchFilters{Query: "ana", BadStatus: "perdido"},
		},
		{
			name:  "empty",
			query: "   ",
			want:  SearchFilters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSearchQuery(tt.query))
		})
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	got, ok := ParseTime("2025-03-01", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = ParseTime("2025-03-08T10:00:00Z", now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), got)

	got, ok = ParseTime("yesterday", now)
	require.True(t, ok)
	assert.True(t, got.Before(now))

	_, ok = ParseTime("zzqx", now)
	assert.False(t, ok)
}

func TestOpportunitiesSince(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	opps := []models.Opportunity{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
	}

	got := OpportunitiesSince(opps, base.Add(time.Hour))
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Len(t, OpportunitiesSince(opps, time.Time{}), 3)
}
