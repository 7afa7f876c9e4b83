package source

import (
	"context"
	"os"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// FileSource reads a JSON array from disk
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]models.Lead, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeLeads(f)
}

func (s *FileSource) String() string {
	return s.Path
}
