package spotify

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/musedata/tracklab/internal/core/ports"
)

// DefaultTokenURL is the production token exchange endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// TokenProvider exchanges client credentials for a bearer token. Every Acquire
// performs a fresh exchange; expiry is discovered reactively through a 401
// from the search endpoint, never tracked locally.
type TokenProvider struct {
	conf       clientcredentials.Config
	httpClient *http.Client
	log        *zap.Logger
}

var _ ports.TokenSource = (*TokenProvider)(nil)

// NewTokenProvider constructs a token provider. httpClient may be nil.
func NewTokenProvider(clientID, clientSecret, tokenURL string, httpClient *http.Client, log *zap.Logger) *TokenProvider {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenProvider{
		conf: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		httpClient: httpClient,
		log:        log,
	}
}

// Acquire performs one client-credentials exchange and returns the access
// token string.
func (p *TokenProvider) Acquire(ctx context.Context) (string, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	tok, err := p.conf.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: token exchange failed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("spotify adapter: token exchange returned an empty token")
	}

	p.log.Debug("acquired catalog token")
	return tok.AccessToken, nil
}
