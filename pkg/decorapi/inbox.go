package decorapi

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Contact Messages
// ============================================================================

// ListContactMessages returns storefront contact-form submissions.
func (c *Client) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/contact-messages", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[ContactMessage](resp, "messages")
}

// DeleteContactMessage removes a contact-form submission.
func (c *Client) DeleteContactMessage(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/contact-messages/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusOK)
}

// ============================================================================
// Quote Requests
// ============================================================================

// ListQuoteRequests returns pending and handled price-quote requests.
func (c *Client) ListQuoteRequests(ctx context.Context) ([]QuoteRequest, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/quote-requests", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[QuoteRequest](resp, "quoteRequests")
}

// SetQuoteRequestStatus marks a quote request as handled, rejected, etc.
func (c *Client) SetQuoteRequestStatus(ctx context.Context, id, status string) (*QuoteRequest, error) {
	payload := map[string]string{"status": status}

	resp, err := c.doJSON(ctx, http.MethodPatch, "/api/quote-requests/"+url.PathEscape(id)+"/status", payload)
	if err != nil {
		return nil, err
	}

	var quote QuoteRequest
	if err := decodeJSON(resp, &quote, http.StatusOK); err != nil {
		return nil, err
	}

	return &quote, nil
}

// ============================================================================
// Settings
// ============================================================================

// GetSettings fetches the site-wide settings record.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/settings", nil, nil)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := decodeJSON(resp, &settings, http.StatusOK); err != nil {
		return nil, err
	}

	return &settings, nil
}

// UpdateSettings replaces the site-wide settings record.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) (*Settings, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/settings", settings)
	if err != nil {
		return nil, err
	}

	var updated Settings
	if err := decodeJSON(resp, &updated, http.StatusOK); err != nil {
		return nil, err
	}

	return &updated, nil
}
