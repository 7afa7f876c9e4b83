package models

import "time"

// Stage is the pipeline phase of an opportunity
type Stage string

// StageInitial is the stage every converted opportunity starts in
const StageInitial Stage = "Initial"

// Opportunity is a sales pipeline entry created by converting a lead.
// It keeps copies of the lead's fields, not a reference to the lead.
type Opportunity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Stage       Stage     `json:"etapa"`
	Value       *float64  `json:"valor,omitempty"`
	AccountName string    `json:"accountName"`
	CreatedAt   time.Time `json:"createdAt"`
}
