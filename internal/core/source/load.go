package source

import (
	"context"
	"time"

	"github.com/neilberkman/leaddesk/internal/core/store"
)

// LoadInto fetches src and moves leads to ready or failed. It is the
// synchronous path used by one-shot commands; the TUI fetches in a tea.Cmd
// and applies the result in its update loop instead.
func LoadInto(ctx context.Context, src Source, delay time.Duration, leads *store.LeadStore) error {
	records, err := Fetch(ctx, src, delay)
	if err != nil {
		leads.Fail(err)
		return err
	}
	return leads.Load(records)
}
