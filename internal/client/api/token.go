package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// TokenSource produces a bearer token on demand. It is supplied by the
// identity provider integration and is treated as opaque: the client
// never looks inside the token it returns.
type TokenSource func(ctx context.Context) (string, error)

const tokenFlightKey = "token"

// tokenResolver coalesces concurrent token demand into a single
// in-flight call to the source. For N concurrent callers within the same
// refresh window, the source is invoked once and all N observe the same
// token or the same failure. Once a flight completes, the next call
// starts fresh.
type tokenResolver struct {
	group   singleflight.Group
	session *SessionManager
}

func newTokenResolver(session *SessionManager) *tokenResolver {
	return &tokenResolver{session: session}
}

// Resolve returns a usable bearer token from ts, recording user
// activity as a side effect. Empty tokens and source failures both map
// to ErrAuthResolution.
func (r *tokenResolver) Resolve(ctx context.Context, ts TokenSource) (string, error) {
	r.session.TrackActivity()

	v, err, _ := r.group.Do(tokenFlightKey, func() (any, error) {
		token, err := ts(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuthResolution, err)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: %v", ErrAuthResolution, ErrEmptyToken)
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Forget drops any in-flight resolution so the next Resolve starts a
// brand-new call to the source. Used by the 401 recovery path, which
// must not reuse the token that just failed verification.
func (r *tokenResolver) Forget() {
	r.group.Forget(tokenFlightKey)
}
