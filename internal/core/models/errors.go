package models

import "fmt"

// LoadError reports that the initial lead read failed or returned bad data
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to load leads: %v", e.Err)
	}
	return fmt.Sprintf("failed to load leads from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError reports a field value that cannot be accepted
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
