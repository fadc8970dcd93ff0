package decorapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// UserListParams filters and paginates GET /api/users.
type UserListParams struct {
	Search string
	Role   string
	Status string
	Page   int
	Limit  int
}

func (p UserListParams) values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Role != "" {
		v.Set("role", p.Role)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// CacheKey returns a stable key identifying this parameter combination.
// url.Values.Encode sorts by key, so equal params always produce equal keys.
func (p UserListParams) CacheKey() string {
	return "users?" + p.values().Encode()
}

// ListUsers returns users matching the given parameters.
func (c *Client) ListUsers(ctx context.Context, p UserListParams) ([]User, error) {
	path := "/api/users"
	if query := p.values().Encode(); query != "" {
		path += "?" + query
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[User](resp, "users")
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateUser creates a new user account.
func (c *Client) CreateUser(ctx context.Context, req UserCreate) (*User, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, fmt.Errorf("email is required")
	}

	resp, err := c.doJSON(ctx, http.MethodPost, "/api/users", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser updates an existing user account.
func (c *Client) UpdateUser(ctx context.Context, id string, req UserUpdate) (*User, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// SetUserStatus activates or deactivates a user via
// PATCH /api/users/{id}/status.
func (c *Client) SetUserStatus(ctx context.Context, id, status string) (*User, error) {
	payload := map[string]string{"status": status}

	resp, err := c.doJSON(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id)+"/status", payload)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	return &user, nil
}
