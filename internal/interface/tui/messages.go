package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/source"
	"github.com/neilberkman/leaddesk/internal/core/store"
)

type leadsLoadedMsg struct {
	leads []models.Lead
}

type loadFailedMsg struct {
	err error
}

type storeChangedMsg struct {
	event store.Event
}

type copiedMsg struct {
	err error
}

// loadLeads runs the one read of the session off the program loop
func loadLeads(src source.Source, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		leads, err := source.Fetch(context.Background(), src, delay)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return leadsLoadedMsg{leads: leads}
	}
}

// waitForChange blocks until a store emits; Update re-arms it after each event
func waitForChange(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{event: <-ch}
	}
}
