package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

func (m Model) updateOpportunities(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "o", "q":
		m.mode = listView
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) renderOpportunities() string {
	opps := m.console.OpportunityList()
	if len(opps) == 0 {
		return helpStyle.Render("No opportunities yet. Press c on a lead to convert it.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-16s %-24s %-20s %-9s %s", "ID", "Nome", "Conta", "Etapa", "Criada")))
	b.WriteString("\n")

	now := m.now()
	for _, o := range opps {
		b.WriteString(fmt.Sprintf("%-16d %-24s %-20s %-9s %s\n",
			o.ID,
			truncate.StringWithTail(o.Name, 24, "…"),
			truncate.StringWithTail(o.AccountName, 20, "…"),
			o.Stage,
			humanize.RelTime(o.CreatedAt, now, "ago", "from now"),
		))
	}
	return b.String()
}

func (m Model) viewOpportunities() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Opportunities (%d)", m.console.Opportunities.Len())))
	b.WriteString("\n\n")
	if m.viewport.Height > 0 {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.renderOpportunities())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: scroll · g/G: top/bottom · esc: back"))
	return b.String()
}
