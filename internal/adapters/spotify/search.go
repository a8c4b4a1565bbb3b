package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/domain"
	"github.com/musedata/tracklab/internal/core/ports"
)

// Lookup searches the catalog for the best-ranked match of title+artist and
// extracts its release date and popularity.
//
// Outcomes:
//   - (result, nil): first search hit, fields extracted;
//   - (nil, nil): no match, non-200 response, or malformed payload;
//   - (nil, ports.ErrTokenExpired): the service rejected the credential;
//   - (nil, err): transport failure, retryable by the caller.
func (c *Client) Lookup(ctx context.Context, token, title, artist string) (*domain.LookupResult, error) {
	searchURL, err := url.Parse(fmt.Sprintf("%s/search", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", title, artist))
	query.Set("type", "track")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ports.ErrTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("search returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.String("title", title),
			zap.String("artist", artist))
		return nil, nil
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("malformed search response",
			zap.String("title", title),
			zap.String("artist", artist),
			zap.Error(err))
		return nil, nil
	}

	if len(body.Tracks.Items) == 0 {
		return nil, nil
	}

	// First item is the best-ranked match.
	return body.Tracks.Items[0].toResult(), nil
}
