package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

type leadItem struct {
	lead models.Lead
}

func (i leadItem) FilterValue() string {
	return i.lead.Name + " " + i.lead.Company
}

func (i leadItem) Title() string {
	return i.lead.Name
}

func (i leadItem) Description() string {
	return i.lead.Company
}

type column struct {
	title string
	width int
}

var leadColumns = []column{
	{"Nome", 22},
	{"Empresa", 20},
	{"Email", 28},
	{"Fonte", 12},
	{"Pontuação", 9},
	{"Status", 12},
}

// formatRow lays cells out in the fixed lead columns, cutting anything too
// wide with an ellipsis
func formatRow(cells []string) string {
	parts := make([]string, len(leadColumns))
	for i, c := range leadColumns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = truncate.StringWithTail(cell, uint(c.width), "…")
		parts[i] = cell + strings.Repeat(" ", max(0, c.width-lipgloss.Width(cell)))
	}
	return strings.Join(parts, " ")
}

func leadCells(l models.Lead) []string {
	return []string{
		l.Name,
		l.Company,
		l.Email,
		l.Source,
		fmt.Sprintf("%d", l.Score),
		string(l.Status),
	}
}

// One line per lead, no description
type leadDelegate struct {
	list.DefaultDelegate
}

func (d leadDelegate) Height() int  { return 1 }
func (d leadDelegate) Spacing() int { return 0 }

func (d leadDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(leadItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	row := formatRow(leadCells(li.lead))
	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+row))
		return
	}
	fmt.Fprint(w, itemStyle.Render(row))
}

func createLeadList(leads []models.Lead, width, height int) list.Model {
	items := make([]list.Item, len(leads))
	for i, l := range leads {
		items[i] = leadItem{lead: l}
	}

	delegate := leadDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false) // filtering is the console's job
	l.SetShowPagination(false)

	return l
}

func (m Model) selectedLead() (models.Lead, bool) {
	item, ok := m.list.SelectedItem().(leadItem)
	if !ok {
		return models.Lead{}, false
	}
	return item.lead, true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "?":
		m.mode = helpView
		return m, nil

	case "/":
		m.searching = true
		cmd := m.searchInput.Focus()
		return m, cmd

	case "f":
		m.console.SetStatusFilter(nextStatusFilter(m.console.StatusFilter()))
		m.statusFromSearch = false
		m.refreshList()
		return m, nil

	case "enter":
		lead, ok := m.selectedLead()
		if !ok {
			return m, nil
		}
		return m.beginEdit(lead.ID)

	case "c":
		lead, ok := m.selectedLead()
		if !ok {
			return m, nil
		}
		// The flash comes from the store notification
		if _, err := m.console.Convert(lead.ID); err != nil {
			m.flash = "Convert failed: " + err.Error()
		}
		return m, nil

	case "o":
		m.mode = opportunitiesView
		m.viewport.SetContent(m.renderOpportunities())
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// nextStatusFilter cycles all -> Novo -> Em Contato -> Qualificado -> all
func nextStatusFilter(current models.Status) models.Status {
	if current == "" {
		return models.Statuses[0]
	}
	for i, s := range models.Statuses {
		if s == current && i+1 < len(models.Statuses) {
			return models.Statuses[i+1]
		}
	}
	return ""
}

func (m Model) viewLoading() string {
	return titleStyle.Render("Leads") + "\n\n" +
		helpStyle.Render(fmt.Sprintf("Loading leads from %s...", m.src)) + "\n"
}

func (m Model) viewFailed() string {
	err := m.console.Leads.Err()
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return titleStyle.Render("Leads") + "\n\n" +
		errorStyle.Render("Error loading leads: "+msg) + "\n\n" +
		helpStyle.Render("Press q to quit") + "\n"
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.viewSearchBar())
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("  " + formatRow(columnTitles())))
	b.WriteString("\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(helpStyle.Render("  No leads match the current filters"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	shown := len(m.list.Items())
	total := m.console.Leads.Len()
	opps := m.console.Opportunities.Len()
	footer := fmt.Sprintf("%s of %s leads · %s opportunities · enter: edit · c: convert · f: status · /: search · o: opportunities · ?: help · q: quit",
		humanize.Comma(int64(shown)), humanize.Comma(int64(total)), humanize.Comma(int64(opps)))
	b.WriteString(helpStyle.Render(footer))

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(m.flash))
	}

	return b.String()
}

func columnTitles() []string {
	titles := make([]string, len(leadColumns))
	for i, c := range leadColumns {
		titles[i] = c.title
	}
	return titles
}
