package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/leaddesk/internal/core/config"
	"github.com/neilberkman/leaddesk/internal/core/console"
	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/source"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

type viewMode int

const (
	listView viewMode = iota
	editView
	opportunitiesView
	helpView
)

// Model is the bubbletea front end over a console. All console intents run
// inside Update, so the console never sees concurrent access.
type Model struct {
	console *console.Console
	src     source.Source
	cfg     *config.Config

	mode     viewMode
	list     list.Model
	viewport viewport.Model
	width    int
	height   int

	// Search box above the list
	searchInput textinput.Model
	searching   bool
	// Status filter was set by a status: token in the search box
	statusFromSearch bool

	// Edit panel
	emailInput textinput.Model
	editErr    error

	// One-line feedback shown under the list, cleared on the next key
	flash string

	changes chan store.Event
	now     func() time.Time
}

// New builds a model that reads its leads from src once Init runs
func New(c *console.Console, src source.Source, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Defaults()
	}

	si := textinput.New()
	si.Placeholder = "name or company, status:qualificado"
	si.CharLimit = 200
	si.Width = 50

	ei := textinput.New()
	ei.Placeholder = "email"
	ei.CharLimit = 254
	ei.Width = 40

	m := Model{
		console:     c,
		src:         src,
		cfg:         cfg,
		mode:        listView,
		list:        createLeadList(nil, 0, 0),
		viewport:    viewport.New(0, 0),
		searchInput: si,
		emailInput:  ei,
		changes:     make(chan store.Event, 16),
		now:         time.Now,
	}

	// Listeners run synchronously inside console intents; hand the events
	// to the program loop without blocking the store
	changes := m.changes
	c.Subscribe(func(e store.Event) {
		select {
		case changes <- e:
		default:
		}
	})

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadLeads(m.src, m.cfg.LoadDelay),
		waitForChange(m.changes),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, m.listHeight())
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-4)
		if m.mode == opportunitiesView {
			m.viewport.SetContent(m.renderOpportunities())
		}
		return m, nil

	case leadsLoadedMsg:
		// Load validates; a rejected collection leaves the store failed
		_ = m.console.Leads.Load(msg.leads)
		m.refreshList()
		return m, nil

	case loadFailedMsg:
		m.console.Leads.Fail(msg.err)
		return m, nil

	case storeChangedMsg:
		m.onStoreChange(msg.event)
		return m, waitForChange(m.changes)

	case copiedMsg:
		if msg.err != nil {
			m.flash = "Copy failed: " + msg.err.Error()
		} else {
			m.flash = "Copied contact card"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Until the leads are in, the only thing to do is leave
		if m.console.State() != store.StateReady {
			if msg.String() == "q" || msg.String() == "esc" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.mode {
		case listView:
			if m.searching {
				return m.updateSearch(msg)
			}
			return m.updateList(msg)
		case editView:
			return m.updateEdit(msg)
		case opportunitiesView:
			return m.updateOpportunities(msg)
		case helpView:
			return m.updateHelp(msg)
		}
	}

	return m, nil
}

func (m Model) View() string {
	switch m.console.State() {
	case store.StateLoading:
		return m.viewLoading()
	case store.StateFailed:
		return m.viewFailed()
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case editView:
		return m.viewEdit()
	case opportunitiesView:
		return m.viewOpportunities()
	case helpView:
		return m.viewHelp()
	}

	return ""
}

// Opportunities returns what was converted during the session, for the
// summary printed after the program exits
func (m Model) Opportunities() []models.Opportunity {
	return m.console.OpportunityList()
}

// refreshList rebuilds the rows from the console's filters, keeping the
// cursor on the same lead when it is still visible
func (m *Model) refreshList() {
	selectedID := 0
	if item, ok := m.list.SelectedItem().(leadItem); ok {
		selectedID = item.lead.ID
	}

	visible := m.console.Visible()
	items := make([]list.Item, len(visible))
	cursor := 0
	for i, l := range visible {
		items[i] = leadItem{lead: l}
		if l.ID == selectedID {
			cursor = i
		}
	}
	m.list.SetItems(items)
	m.list.Select(cursor)
}

func (m *Model) onStoreChange(e store.Event) {
	switch e.Kind {
	case store.EventLeadCommitted:
		m.refreshList()
	case store.EventOpportunityAdded:
		if opps := m.console.OpportunityList(); len(opps) > 0 {
			last := opps[len(opps)-1]
			m.flash = "Opportunity created: " + last.Name
		}
		if m.mode == opportunitiesView {
			m.viewport.SetContent(m.renderOpportunities())
		}
	}
}

func (m Model) listHeight() int {
	// search line, column header, footer and flash line
	return max(1, m.height-5)
}
