package source

import (
	"context"
	"fmt"
	"os"

	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/models"
)

// DBSource reads the lead catalog written by the import command
type DBSource struct {
	Path string
}

func (s *DBSource) Fetch(ctx context.Context) ([]models.Lead, error) {
	// db.New would create an empty catalog; a missing file is a load error
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("catalog not found (run 'leaddesk import' first): %w", err)
	}

	database, err := db.New(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = database.Close()
	}()

	return database.ListLeads()
}

func (s *DBSource) String() string {
	return "sqlite:" + s.Path
}
