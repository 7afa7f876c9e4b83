// Package console is the intent surface every presentation adapter drives:
// it owns the lead and opportunity stores, the edit session and the current
// search/status filter, and derives the visible rows from them.
package console

import (
	"errors"
	"fmt"

	"github.com/neilberkman/leaddesk/internal/core/convert"
	"github.com/neilberkman/leaddesk/internal/core/edit"
	"github.com/neilberkman/leaddesk/internal/core/filter"
	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

// ErrLeadNotFound is returned when an intent names an id the store does not hold
var ErrLeadNotFound = errors.New("lead not found")

// Console is not safe for concurrent use
type Console struct {
	Leads         *store.LeadStore
	Opportunities *store.OpportunityStore

	edit      *edit.Session
	converter *convert.Converter

	query        string
	statusFilter models.Status
}

// Option configures a Console
type Option func(*consoleOptions)

type consoleOptions struct {
	ids *store.IDGenerator
}

// WithIDGenerator sets the opportunity id source, mainly for tests
func WithIDGenerator(g *store.IDGenerator) Option {
	return func(o *consoleOptions) {
		o.ids = g
	}
}

// New returns a console whose lead store is still loading
func New(opts ...Option) *Console {
	var o consoleOptions
	for _, opt := range opts {
		opt(&o)
	}

	leads := store.NewLeadStore()
	opps := store.NewOpportunityStore(o.ids)
	return &Console{
		Leads:         leads,
		Opportunities: opps,
		edit:          edit.NewSession(leads),
		converter:     convert.NewConverter(opps),
	}
}

func (c *Console) State() store.LoadState {
	return c.Leads.State()
}

func (c *Console) SetQuery(q string) {
	c.query = q
}

func (c *Console) Query() string {
	return c.query
}

// SetStatusFilter narrows the visible rows; an empty status shows all
func (c *Console) SetStatusFilter(s models.Status) {
	c.statusFilter = s
}

func (c *Console) StatusFilter() models.Status {
	return c.statusFilter
}

// ApplySearch sets both filters from a search box string such as
// "acme status:qualificado". A missing status: token clears the status filter.
func (c *Console) ApplySearch(raw string) filter.SearchFilters {
	f := filter.ParseSearchQuery(raw)
	c.query = f.Query
	c.statusFilter = f.Status
	return f
}

// Visible returns the leads passing the current filters
func (c *Console) Visible() []models.Lead {
	return filter.Visible(c.Leads.All(), c.query, c.statusFilter)
}

// Select opens an edit session on the stored lead with the given id,
// discarding any draft in progress
func (c *Console) Select(id int) error {
	lead, ok := c.Leads.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}
	c.edit.Begin(lead)
	return nil
}

func (c *Console) Draft() (models.Lead, bool) {
	return c.edit.Draft()
}

func (c *Console) Editing() bool {
	return c.edit.Active()
}

func (c *Console) UpdateField(field edit.Field, value string) error {
	return c.edit.UpdateField(field, value)
}

// Save commits the draft; see edit.Session.Save
func (c *Console) Save() error {
	return c.edit.Save()
}

func (c *Console) Cancel() {
	c.edit.Cancel()
}

// Convert records a new opportunity from the stored lead with the given id
func (c *Console) Convert(id int) (models.Opportunity, error) {
	lead, ok := c.Leads.Get(id)
	if !ok {
		return models.Opportunity{}, fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}
	return c.converter.Convert(lead), nil
}

func (c *Console) OpportunityList() []models.Opportunity {
	return c.Opportunities.All()
}

// Subscribe listens to both stores. The returned function cancels both.
func (c *Console) Subscribe(fn store.Listener) func() {
	cancelLeads := c.Leads.Subscribe(fn)
	cancelOpps := c.Opportunities.Subscribe(fn)
	return func() {
		cancelLeads()
		cancelOpps()
	}
}
