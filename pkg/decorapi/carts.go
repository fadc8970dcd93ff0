package decorapi

import (
	"context"
	"net/http"
	"net/url"
)

// GetUserCart fetches a customer's cart via GET /api/carts/user/{userId}.
// A customer with no cart yet yields a 404 from the backend, surfaced as an
// *APIError.
func (c *Client) GetUserCart(ctx context.Context, userID string) (*Cart, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/carts/user/"+url.PathEscape(userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var cart Cart
	if err := decodeJSON(resp, &cart, http.StatusOK); err != nil {
		return nil, err
	}

	return &cart, nil
}
