package decorapi

import (
	"context"
	"net/http"
)

// Login authenticates an admin account against POST /api/admin/login.
//
// On failure the returned error carries the server's message unchanged; no
// client-side state is touched by this call, success or not.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", req)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// RefreshToken exchanges the current bearer token for a fresh one via
// POST /api/admin/refresh-token. The current token is attached through the
// injected TokenSource like any other authenticated request.
func (c *Client) RefreshToken(ctx context.Context) (*RefreshResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/admin/refresh-token", nil)
	if err != nil {
		return nil, err
	}

	var refreshResp RefreshResponse
	if err := decodeJSON(resp, &refreshResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &refreshResp, nil
}

// Profile fetches the authenticated account via GET /api/admin/profile.
// The session layer uses this as its "who am I" verification during hydration.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/admin/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	return &profile, nil
}
