// Package spotify is the catalog adapter: token exchange and track search
// against the Spotify Web API.
package spotify

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/ports"
)

// DefaultBaseURL is the production Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Client is an HTTP client for the catalog search endpoint. It holds no token
// state: the bearer credential is passed into every Lookup so the refresh
// transition stays explicit in the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

// compile-time interface assertion
var _ ports.TrackResolver = (*Client)(nil)

// NewClient constructs a catalog client. The http.Client should carry the
// per-request timeout; pass nil to use http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}
