package api

import (
	"context"
	"net/http"
	"net/url"
)

// UserAPI is the typed facade over the /user resource.
type UserAPI struct {
	client *Client
}

func NewUserAPI(c *Client) *UserAPI {
	return &UserAPI{client: c}
}

// CreateProfile creates (or syncs) the profile for the authenticated
// identity.
func (u *UserAPI) CreateProfile(ctx context.Context, ts TokenSource) (*UserProfile, error) {
	var profile UserProfile
	if err := u.client.do(ctx, http.MethodPost, "/user/profile", nil, ts, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile fetches the current profile.
func (u *UserAPI) GetProfile(ctx context.Context, ts TokenSource) (*UserProfile, error) {
	var profile UserProfile
	if err := u.client.do(ctx, http.MethodGet, "/user/profile", nil, ts, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateAPIKeys stores provider keys. Empty fields are omitted from the
// payload (see APIKeysUpdate), so either key can be updated alone.
func (u *UserAPI) UpdateAPIKeys(ctx context.Context, keys APIKeysUpdate, ts TokenSource) (*UserProfile, error) {
	var profile UserProfile
	if err := u.client.do(ctx, http.MethodPut, "/user/api-keys", keys, ts, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteAPIKey removes a stored provider key. keyType is "openai" or
// "gemini"; anything else is rejected by the server.
func (u *UserAPI) DeleteAPIKey(ctx context.Context, keyType string, ts TokenSource) error {
	return u.client.do(ctx, http.MethodDelete, "/user/api-keys/"+url.PathEscape(keyType), nil, ts, nil)
}
