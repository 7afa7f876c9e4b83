package console

import "github.com/neilberkman/leaddesk/internal/core/models"

// Stats summarises the lead collection
type Stats struct {
	Total         int
	ByStatus      map[models.Status]int
	AverageScore  float64
	TopLead       *models.Lead
	Opportunities int
}

// Stats computes totals over every loaded lead, ignoring the current filters
func (c *Console) Stats() Stats {
	return Summarize(c.Leads.All(), c.Opportunities.Len())
}

// Summarize computes Stats for leads
func Summarize(leads []models.Lead, opportunities int) Stats {
	st := Stats{
		Total:         len(leads),
		ByStatus:      make(map[models.Status]int, len(models.Statuses)),
		Opportunities: opportunities,
	}
	for _, s := range models.Statuses {
		st.ByStatus[s] = 0
	}

	sum := 0
	for i, l := range leads {
		st.ByStatus[l.Status]++
		sum += l.Score
		if st.TopLead == nil || l.Score > st.TopLead.Score {
			st.TopLead = &leads[i]
		}
	}
	if len(leads) > 0 {
		st.AverageScore = float64(sum) / float64(len(leads))
	}
	return st
}
