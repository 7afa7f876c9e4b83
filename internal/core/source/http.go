package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// HTTPSource GETs a fixed URL returning a JSON array
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Lead, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return DecodeLeads(resp.Body)
}

func (s *HTTPSource) String() string {
	return s.URL
}
