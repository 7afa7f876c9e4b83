// Package contact renders a lead as a one-line contact card
package contact

import (
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// Render fills tmpl with the lead's fields, keyed by their wire names.
// The card is plain text, so {{var}} is never HTML-escaped.
func Render(tmpl string, lead models.Lead) (string, error) {
	data := map[string]interface{}{
		"id":        lead.ID,
		"nome":      lead.Name,
		"empresa":   lead.Company,
		"email":     lead.Email,
		"fonte":     lead.Source,
		"pontuacao": lead.Score,
		"status":    string(lead.Status),
	}

	card, err := mustache.RenderRaw(tmpl, true, data)
	if err != nil {
		return "", fmt.Errorf("failed to render contact card: %w", err)
	}
	return strings.TrimSpace(card), nil
}
