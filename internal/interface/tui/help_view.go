package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = listView
		return m, nil
	}

	return m, nil
}

func (m Model) viewHelp() string {
	help := `
Lead Console - Help
═══════════════════

LEAD LIST
─────────
  ↑/↓, j/k     Navigate leads
  Enter        Edit selected lead
  /            Search by name or company (status:<name> also filters)
  f            Cycle status filter: all, Novo, Em Contato, Qualificado
  c            Convert selected lead into an opportunity
  o            Show opportunities created this session
  ?            Show this help
  q            Quit

EDIT PANEL
──────────
  Type         Change the email
  Tab          Next status (shift+tab for previous)
  Enter/Ctrl+S Save the draft (rejected if the email is invalid)
  Esc          Discard the draft
  Ctrl+Y       Copy contact card to clipboard

OPPORTUNITIES
─────────────
  j/k          Scroll
  g/G          Jump to top/bottom
  esc          Back to lead list

Edits and opportunities live only for this session.
Press ? or esc to return to the lead list
`

	if m.width > 0 {
		help = wordwrap.String(help, m.width)
	}
	return helpStyle.Render(help)
}
