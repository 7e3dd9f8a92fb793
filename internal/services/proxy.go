// Proxy implementation of [Service] for making requests to a running
// yearshelf proxy (or the original gallery backend it replicates).
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hollowlog/yearshelf/internal/models"
	"github.com/hollowlog/yearshelf/internal/shared"
)

// ProxyService fetches completed categories from /api/complete/<category>/<year>.
type ProxyService struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyService creates a proxy client. An empty baseURL defaults to the
// local development proxy; a nil client uses [http.DefaultClient].
func NewProxyService(baseURL string, client *http.Client) *ProxyService {
	if baseURL == "" {
		baseURL = "http://localhost:9527"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ProxyService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *ProxyService) Name() string {
	return "Proxy"
}

// FetchCategory retrieves one category's records for the year.
func (p *ProxyService) FetchCategory(ctx context.Context, category models.Category, year int) ([]models.CategoryRecord, error) {
	fullURL := fmt.Sprintf("%s/api/complete/%s/%d", p.baseURL, category, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused; the body is not surfaced.
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: proxy status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var payload categoryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Data, nil
}
