package filter

import (
	"strings"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// SearchFilters represents parsed filters from a search query
type SearchFilters struct {
	Query     string        // Free text matched against name and company
	Status    models.Status // Empty means all statuses
	HasStatus bool          // Whether a status: token was given
	BadStatus string        // Raw value of an unrecognised status: token
}

// ParseSearchQuery extracts filters from a search box string
// Supports:
//   - status:<value> - novo, em-contato, qualificado (or new, in-contact, qualified)
//
// Everything else is kept, in order, as the free-text query.
func ParseSearchQuery(query string) SearchFilters {
	filters := SearchFilters{}

	tokens := strings.Fields(query)
	var queryParts []string

	for _, token := range tokens {
		lower := strings.ToLower(token)
		if strings.HasPrefix(lower, "status:") {
			value := token[len("status:"):]
			if status, ok := models.ParseStatus(value); ok {
				filters.Status = status
				filters.HasStatus = true
			} else {
				filters.BadStatus = value
			}
			continue
		}

		queryParts = append(queryParts, token)
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}
