// Package auth provides concrete token sources for the API client. In
// the browser deployment the identity provider hands the application a
// getToken callback; the CLI builds an equivalent from one of these
// adapters. The API client itself keeps treating tokens as opaque.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apetrov/notewise/internal/client/api"
)

// ErrNoTokenFile is returned when the configured token file is absent.
var ErrNoTokenFile = errors.New("token file not found")

// expirySkew is how long before the exp claim a cached token is
// considered stale, to absorb clock drift and request latency.
const expirySkew = 30 * time.Second

// Static returns a source that always yields the same token.
func Static(token string) api.TokenSource {
	return func(ctx context.Context) (string, error) {
		return token, nil
	}
}

// FromFile returns a source that reads the token from path on every
// call, so replacing the file contents is all it takes to rotate the
// session externally. Surrounding whitespace is trimmed.
func FromFile(path string) api.TokenSource {
	return func(ctx context.Context) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrNoTokenFile, path)
			}
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

// Cached wraps src with expiry-aware caching. While the last token's
// exp claim is comfortably in the future the cached value is returned
// without touching src. Tokens that do not parse as JWTs, or carry no
// exp claim, are never cached.
//
// The claim is decoded without signature verification: the client is
// not the token's audience, it only needs the timestamp.
func Cached(src api.TokenSource) api.TokenSource {
	var (
		mu     sync.Mutex
		token  string
		expiry time.Time
	)

	return func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if token != "" && time.Now().Before(expiry.Add(-expirySkew)) {
			return token, nil
		}

		fresh, err := src(ctx)
		if err != nil {
			return "", err
		}

		token = ""
		expiry = time.Time{}
		if exp, ok := tokenExpiry(fresh); ok {
			token = fresh
			expiry = exp
		}
		return fresh, nil
	}
}

// tokenExpiry extracts the exp claim of a JWT without verifying it.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
