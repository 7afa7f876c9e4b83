// Package source reads the initial lead collection. A read happens once per
// console session; its result is either the full ordered list or a
// *models.LoadError.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// DefaultDelay is the pause before the read starts, matching the loading
// indicator the console has always shown
const DefaultDelay = 500 * time.Millisecond

// Source provides the initial ordered lead records
type Source interface {
	Fetch(ctx context.Context) ([]models.Lead, error)
	String() string
}

// Open picks a Source for location: http(s) URLs are fetched with GET,
// "sqlite:" prefixes and .db/.sqlite files read the catalog, anything
// else is a JSON file on disk
func Open(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("no lead source configured")
	}

	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return &HTTPSource{URL: location}, nil
	case strings.HasPrefix(lower, "sqlite:"):
		return &DBSource{Path: location[len("sqlite:"):]}, nil
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return &DBSource{Path: location}, nil
	}
	return &FileSource{Path: location}, nil
}

// Fetch waits for delay, then reads src. Every failure comes back as a
// *models.LoadError; nothing is retried.
func Fetch(ctx context.Context, src Source, delay time.Duration) ([]models.Lead, error) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &models.LoadError{Source: src.String(), Err: ctx.Err()}
		case <-timer.C:
		}
	}

	leads, err := src.Fetch(ctx)
	if err != nil {
		var loadErr *models.LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &models.LoadError{Source: src.String(), Err: err}
	}
	return leads, nil
}

// DecodeLeads parses a JSON array of lead records
func DecodeLeads(r io.Reader) ([]models.Lead, error) {
	var leads []models.Lead
	if err := json.NewDecoder(r).Decode(&leads); err != nil {
		return nil, fmt.Errorf("malformed lead data: %w", err)
	}
	if leads == nil {
		// A literal null is not a lead list
		return nil, errors.New("malformed lead data: expected a JSON array")
	}
	return leads, nil
}
