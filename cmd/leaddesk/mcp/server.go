package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/neilberkman/leaddesk/internal/core/config"
	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/contact"
	"github.com/neilberkman/leaddesk/internal/core/edit"
	"github.com/neilberkman/leaddesk/internal/core/filter"
	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/source"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

// ListLeadsArgs defines arguments for the list_leads tool
type ListLeadsArgs struct {
	Query  string `json:"query,omitempty" jsonschema:"description=Case-insensitive text matched against name or company; may contain a status:<value> token"`
	Status string `json:"status,omitempty" jsonschema:"description=Only leads with this status"`
	Limit  int    `json:"limit,omitempty" jsonschema:"description=Max number of leads to return (default: all)"`
}

// LeadArgs identifies one lead
type LeadArgs struct {
	ID int `json:"id" jsonschema:"description=Lead id,required"`
}

// UpdateLeadArgs defines arguments for the update_lead tool
type UpdateLeadArgs struct {
	ID     int     `json:"id" jsonschema:"description=Lead id,required"`
	Email  *string `json:"email,omitempty" jsonschema:"description=New email address"`
	Status string  `json:"status,omitempty" jsonschema:"description=New status"`
}

// ListOpportunitiesArgs defines arguments for the list_opportunities tool
type ListOpportunitiesArgs struct {
	Since string `json:"since,omitempty" jsonschema:"description=Only opportunities created at or after this time, e.g. '2025-03-10' or 'yesterday'"`
}

// LeadDetail is a lead plus its rendered contact card
type LeadDetail struct {
	models.Lead
	ContactCard string `json:"contact_card"`
}

// StatsResult is the lead_stats payload
type StatsResult struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	AverageScore  float64        `json:"average_score"`
	TopLead       *models.Lead   `json:"top_lead,omitempty"`
	Opportunities int            `json:"opportunities"`
}

// leadState guards the console; the core is not safe for concurrent use
// and the server may run tool calls in parallel
type leadState struct {
	mu       sync.Mutex
	console  *console.Console
	template string
	now      func() time.Time
}

func newLeadState(c *console.Console, cfg *config.Config) *leadState {
	return &leadState{
		console:  c,
		template: cfg.ContactTemplate,
		now:      time.Now,
	}
}

// ready reports why tools cannot run yet, if they cannot
func (s *leadState) ready() error {
	switch s.console.State() {
	case store.StateReady:
		return nil
	case store.StateFailed:
		return s.console.Leads.Err()
	}
	return errors.New("leads are still loading")
}

// StartServer loads the leads from src and serves the console over stdio
func StartServer(ctx context.Context, cfg *config.Config, src source.Source) error {
	c := console.New()
	c.Subscribe(logEvent)

	// A failed read is reported by every tool instead of stopping the server
	if err := source.LoadInto(ctx, src, 0, c.Leads); err != nil {
		log.Printf("Failed to load leads from %s: %v", src, err)
	}

	s := newServer(newLeadState(c, cfg))
	return server.ServeStdio(s)
}

// newServer registers the lead tools on a new MCP server
func newServer(st *leadState) *server.MCPServer {
	s := server.NewMCPServer(
		"LeadDesk",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_leads",
		mcp.WithDescription("List leads in source order, filtered by name/company text and status"),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against lead name or company. May include a status:<value> token.")),
		mcp.WithString("status",
			mcp.Description("Only leads with this status: Novo, Em Contato or Qualificado (English aliases accepted)")),
		mcp.WithNumber("limit",
			mcp.Description("Max leads to return (default: all)")),
	)
	s.AddTool(listTool, makeListLeadsHandler(st))

	getTool := mcp.NewTool("get_lead",
		mcp.WithDescription("Retrieve one lead with its contact card"),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Lead id")),
	)
	s.AddTool(getTool, makeGetLeadHandler(st))

	updateTool := mcp.NewTool("update_lead",
		mcp.WithDescription("Change a lead's email and/or status. The email must look like name@domain.tld. Changes last until the server exits."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Lead id")),
		mcp.WithString("email",
			mcp.Description("New email address")),
		mcp.WithString("status",
			mcp.Description("New status: Novo, Em Contato or Qualificado")),
	)
	s.AddTool(updateTool, makeUpdateLeadHandler(st))

	convertTool := mcp.NewTool("convert_lead",
		mcp.WithDescription("Create an opportunity from a lead. The lead itself is not changed; converting twice creates two opportunities."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Lead id")),
	)
	s.AddTool(convertTool, makeConvertLeadHandler(st))

	oppsTool := mcp.NewTool("list_opportunities",
		mcp.WithDescription("List opportunities created since the server started"),
		mcp.WithString("since",
			mcp.Description("Only opportunities created at or after this time (ISO 8601 or natural language such as 'yesterday' or '2 hours ago')")),
	)
	s.AddTool(oppsTool, makeListOpportunitiesHandler(st))

	statsTool := mcp.NewTool("lead_stats",
		mcp.WithDescription("Counts per status, average score and top lead"),
	)
	s.AddTool(statsTool, makeLeadStatsHandler(st))

	return s
}

func logEvent(e store.Event) {
	switch e.Kind {
	case store.EventLeadsLoaded:
		log.Printf("Loaded %d leads", e.Count)
	case store.EventLoadFailed:
		log.Printf("Lead load failed")
	case store.EventLeadCommitted:
		log.Printf("Lead %d updated", e.LeadID)
	case store.EventOpportunityAdded:
		log.Printf("Opportunity %d created (%d total)", e.OpportunityID, e.Count)
	}
}

func decodeArgs(request mcp.CallToolRequest, v interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, v)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func makeListLeadsHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListLeadsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		f := filter.ParseSearchQuery(args.Query)
		if f.BadStatus != "" {
			return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", f.BadStatus)), nil
		}
		status := f.Status
		if args.Status != "" {
			s, ok := models.ParseStatus(args.Status)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", args.Status)), nil
			}
			status = s
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		if err := st.ready(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Filter without touching the console's own query so calls stay independent
		leads := filter.Visible(st.console.Leads.All(), f.Query, status)
		if args.Limit > 0 && len(leads) > args.Limit {
			leads = leads[:args.Limit]
		}
		return jsonResult(leads)
	}
}

func makeGetLeadHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args LeadArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		if err := st.ready(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		lead, ok := st.console.Leads.Get(args.ID)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%v: %d", console.ErrLeadNotFound, args.ID)), nil
		}
		card, err := contact.Render(st.template, lead)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(LeadDetail{Lead: lead, ContactCard: card})
	}
}

func makeUpdateLeadHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateLeadArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Email == nil && args.Status == "" {
			return mcp.NewToolResultError("nothing to update: pass email and/or status"), nil
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		if err := st.ready(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		c := st.console
		if err := c.Select(args.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// The draft never outlives the call
		defer c.Cancel()

		if args.Email != nil {
			if err := c.UpdateField(edit.FieldEmail, strings.TrimSpace(*args.Email)); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		if args.Status != "" {
			status, ok := models.ParseStatus(args.Status)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", args.Status)), nil
			}
			if err := c.UpdateField(edit.FieldStatus, string(status)); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		if err := c.Save(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		lead, _ := c.Leads.Get(args.ID)
		return jsonResult(lead)
	}
}

func makeConvertLeadHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args LeadArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		st.mu.Lock()
		defer st.mu.Unlock()
		if err := st.ready(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opp, err := st.console.Convert(args.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(opp)
	}
}

func makeListOpportunitiesHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListOpportunitiesArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		st.mu.Lock()
		defer st.mu.Unlock()

		opps := st.console.OpportunityList()
		if args.Since != "" {
			since, ok := filter.ParseTime(args.Since, st.now())
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("could not understand since %q", args.Since)), nil
			}
			opps = filter.OpportunitiesSince(opps, since)
		}
		return jsonResult(opps)
	}
}

func makeLeadStatsHandler(st *leadState) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st.mu.Lock()
		defer st.mu.Unlock()
		if err := st.ready(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		stats := st.console.Stats()
		byStatus := make(map[string]int, len(stats.ByStatus))
		for s, n := range stats.ByStatus {
			byStatus[string(s)] = n
		}
		return jsonResult(StatsResult{
			Total:         stats.Total,
			ByStatus:      byStatus,
			AverageScore:  stats.AverageScore,
			TopLead:       stats.TopLead,
			Opportunities: stats.Opportunities,
		})
	}
}
