package models

import (
	"fmt"
	"strings"
)

// Status is the qualification stage of a lead. Values match the wire format.
type Status string

const (
	StatusNew       Status = "Novo"
	StatusInContact Status = "Em Contato"
	StatusQualified Status = "Qualificado"
)

// Statuses lists every status in pipeline order
var Statuses = []Status{StatusNew, StatusInContact, StatusQualified}

var statusAliases = map[string]Status{
	"novo":        StatusNew,
	"new":         StatusNew,
	"em contato":  StatusInContact,
	"in contact":  StatusInContact,
	"contato":     StatusInContact,
	"contact":     StatusInContact,
	"qualificado": StatusQualified,
	"qualified":   StatusQualified,
}

// ParseStatus resolves a status from its wire value or an English alias.
// Matching ignores case, and '-' or '_' may stand in for spaces.
func ParseStatus(s string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	status, ok := statusAliases[key]
	return status, ok
}

// Valid reports whether s is one of the enumerated statuses
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status after s, wrapping around
func (s Status) Next() Status {
	for i, known := range Statuses {
		if s == known {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusNew
}

// Lead is a prospective customer as delivered by the data source
type Lead struct {
	ID      int    `json:"id"`
	Name    string `json:"nome"`
	Company string `json:"empresa"`
	Email   string `json:"email"`
	Source  string `json:"fonte"`
	Score   int    `json:"pontuacao"`
	Status  Status `json:"status" validate:"oneof=Novo 'Em Contato' Qualificado"`
}

// Validate checks the invariants a stored lead must hold. Email shape is only
// enforced when an edit is saved, see ValidateEmail.
func (l *Lead) Validate() error {
	if err := validate.Struct(l); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidateLeads checks every record plus id uniqueness across the set
func ValidateLeads(leads []Lead) error {
	seen := make(map[int]bool, len(leads))
	for i := range leads {
		if err := leads[i].Validate(); err != nil {
			return fmt.Errorf("lead %d: %w", i, err)
		}
		if seen[leads[i].ID] {
			return &ValidationError{
				Field:  "id",
				Value:  fmt.Sprint(leads[i].ID),
				Reason: "duplicate lead id",
			}
		}
		seen[leads[i].ID] = true
	}
	return nil
}
