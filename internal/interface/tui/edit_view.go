package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/neilberkman/leaddesk/internal/core/contact"
	"github.com/neilberkman/leaddesk/internal/core/edit"
	"github.com/neilberkman/leaddesk/internal/core/models"
)

// beginEdit opens the edit panel on a fresh draft of the lead
func (m Model) beginEdit(id int) (tea.Model, tea.Cmd) {
	if err := m.console.Select(id); err != nil {
		m.flash = err.Error()
		return m, nil
	}
	draft, _ := m.console.Draft()

	m.editErr = nil
	m.emailInput.SetValue(draft.Email)
	m.emailInput.CursorEnd()
	m.mode = editView
	cmd := m.emailInput.Focus()
	return m, cmd
}

func (m Model) closeEdit() Model {
	m.emailInput.Blur()
	m.editErr = nil
	m.mode = listView
	return m
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.console.Cancel()
		return m.closeEdit(), nil

	case "enter", "ctrl+s":
		if err := m.console.Save(); err != nil {
			// Draft stays open so the email can be fixed
			m.editErr = err
			return m, nil
		}
		m = m.closeEdit()
		m.flash = "Lead saved"
		return m, nil

	case "tab", "shift+tab":
		draft, ok := m.console.Draft()
		if !ok {
			return m, nil
		}
		next := draft.Status.Next()
		if msg.String() == "shift+tab" {
			next = previousStatus(draft.Status)
		}
		if err := m.console.UpdateField(edit.FieldStatus, string(next)); err != nil {
			m.editErr = err
		}
		return m, nil

	case "ctrl+y":
		draft, ok := m.console.Draft()
		if !ok {
			return m, nil
		}
		return m, copyContactCard(m.cfg.ContactTemplate, draft)
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	m.setEmail(m.emailInput.Value())
	return m, cmd
}

// setEmail pushes the input's text into the draft
func (m *Model) setEmail(value string) {
	if m.emailInput.Value() != value {
		m.emailInput.SetValue(value)
	}
	if err := m.console.UpdateField(edit.FieldEmail, value); err != nil {
		m.editErr = err
		return
	}
	m.editErr = nil
}

func previousStatus(s models.Status) models.Status {
	for i, st := range models.Statuses {
		if st == s {
			return models.Statuses[(i+len(models.Statuses)-1)%len(models.Statuses)]
		}
	}
	return models.Statuses[0]
}

func copyContactCard(tmpl string, lead models.Lead) tea.Cmd {
	return func() tea.Msg {
		card, err := contact.Render(tmpl, lead)
		if err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{err: clipboard.WriteAll(card)}
	}
}

func (m Model) viewEdit() string {
	draft, ok := m.console.Draft()
	if !ok {
		return helpStyle.Render("No lead selected")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Edit lead #%d", draft.ID)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-11s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Nome", draft.Name)
	field("Empresa", draft.Company)
	field("Fonte", draft.Source)
	field("Pontuação", fmt.Sprintf("%d", draft.Score))
	b.WriteString("\n")
	field("Email", m.emailInput.View())

	var statuses []string
	for _, s := range models.Statuses {
		if s == draft.Status {
			statuses = append(statuses, selectedItemStyle.Render("["+string(s)+"]"))
		} else {
			statuses = append(statuses, helpStyle.Render(" "+string(s)+" "))
		}
	}
	field("Status", strings.Join(statuses, " "))

	if m.editErr != nil {
		b.WriteString("\n")
		width := m.width
		if width <= 0 {
			width = 80
		}
		b.WriteString(errorStyle.Render(wordwrap.String(m.editErr.Error(), width)))
		b.WriteString("\n")
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter/ctrl+s: save · esc: cancel · tab: status · ctrl+y: copy contact card"))
	return b.String()
}
