package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/leaddesk/internal/core/filter"
)

// updateSearch feeds keys to the search box and re-filters on every
// keystroke. A status: token in the box also sets the status filter.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.applySearch("")
		return m, nil

	case "enter":
		// Keep the query, hand the keys back to the list
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case "up", "down":
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.searchInput, cmd = m.searchInput.Update(msg)
	m.applySearch(m.searchInput.Value())
	return m, cmd
}

func (m *Model) applySearch(raw string) {
	f := filter.ParseSearchQuery(raw)
	m.console.SetQuery(f.Query)
	switch {
	case f.HasStatus:
		m.console.SetStatusFilter(f.Status)
		m.statusFromSearch = true
	case m.statusFromSearch:
		// The token was removed from the box
		m.console.SetStatusFilter("")
		m.statusFromSearch = false
	}
	m.refreshList()
}

func (m Model) viewSearchBar() string {
	var b strings.Builder

	b.WriteString(searchHeaderStyle.Render("Search: "))
	if m.searching {
		b.WriteString(m.searchInput.View())
	} else if q := m.console.Query(); q != "" {
		b.WriteString(q)
	} else {
		b.WriteString(helpStyle.Render("press / to search"))
	}

	status := "Todos"
	if s := m.console.StatusFilter(); s != "" {
		status = string(s)
	}
	b.WriteString("   ")
	b.WriteString(searchHeaderStyle.Render("Status: "))
	b.WriteString(status)

	return b.String()
}
