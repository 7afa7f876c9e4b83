// Package convert turns leads into sales opportunities
package convert

import (
	"time"

	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

// FromLead maps a lead onto a new opportunity in the initial stage.
// Only name and company are copied; the value starts out absent.
func FromLead(lead models.Lead, id int64, at time.Time) models.Opportunity {
	return models.Opportunity{
		ID:          id,
		Name:        lead.Name,
		Stage:       models.StageInitial,
		AccountName: lead.Company,
		CreatedAt:   at,
	}
}

// Converter appends converted leads to an opportunity store
type Converter struct {
	opps *store.OpportunityStore
}

func NewConverter(opps *store.OpportunityStore) *Converter {
	return &Converter{opps: opps}
}

// Convert creates and records a new opportunity for lead. Converting the
// same lead again creates another, independent opportunity.
func (c *Converter) Convert(lead models.Lead) models.Opportunity {
	id, at := c.opps.NextID()
	opp := FromLead(lead, id, at)
	c.opps.Append(opp)
	return opp
}
