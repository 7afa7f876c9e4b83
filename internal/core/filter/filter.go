// Package filter derives the visible subset of leads from the search box and
// status filter. Everything here is pure and cheap enough to run on every render.
package filter

import (
	"strings"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// Visible returns the leads whose name or company contains query
// (case-insensitive) and whose status equals status. An empty query or an
// empty status matches everything. Input order is preserved.
func Visible(leads []models.Lead, query string, status models.Status) []models.Lead {
	needle := strings.ToLower(query)
	out := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if !matchesText(l, needle) {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesText(l models.Lead, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), needle) ||
		strings.Contains(strings.ToLower(l.Company), needle)
}
