package ports

import (
	"context"
	"errors"

	"github.com/musedata/tracklab/internal/core/domain"
)

// ErrTokenExpired indicates the catalog rejected the bearer credential.
// Distinct from a "no match" result: the caller should re-acquire a token and
// retry the same lookup once.
var ErrTokenExpired = errors.New("catalog token expired")

// TrackResolver looks up a track in the external catalog by title and artist
// name. A (nil, nil) return means the catalog was reachable but had no usable
// match; transport failures are returned as errors so the retry layer can
// distinguish them.
type TrackResolver interface {
	Lookup(ctx context.Context, token, title, artist string) (*domain.LookupResult, error)
}

// TokenSource obtains a fresh bearer credential from the catalog. Expiry is
// not tracked locally; callers re-acquire reactively on ErrTokenExpired.
type TokenSource interface {
	Acquire(ctx context.Context) (string, error)
}
