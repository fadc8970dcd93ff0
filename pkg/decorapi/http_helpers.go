package decorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/Shunadesu/simple-decor-sub001/pkg/idx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs an HTTP request against the backend.
//
// It attaches the bearer token from the injected TokenSource when one is
// available, tags the request with a ULID request ID for log correlation, and
// adds a per-request idempotency key to mutating methods. Any 401 response
// fires the OnUnauthorized hook before the response is handed back.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	reqID := idx.New().String()
	req.Header.Set("X-Request-ID", reqID)

	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	c.logger(ctx).Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"req_id", reqID,
	)

	if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}

	return resp, nil
}

// doJSON marshals body as JSON and performs the request with the appropriate
// Content-Type header.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	return c.do(ctx, method, path, reader, headers)
}

// decodeJSON decodes a JSON response into target, returning a typed *APIError
// when the response status does not match expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// checkStatus drains the body and returns a typed *APIError unless the
// response carries the expected status. Used for endpoints with no response
// payload worth decoding.
func checkStatus(resp *http.Response, expectedStatus int) error {
	defer resp.Body.Close()

	if resp.StatusCode != expectedStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, bodyBytes)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// decodeList decodes a list response, tolerating both a bare JSON array and a
// wrapped {"<entityKey>": [...]} envelope. A {"data": [...]} envelope is also
// accepted as the backend uses it for a few newer endpoints.
func decodeList[T any](resp *http.Response, entityKey string) ([]T, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, bodyBytes)
	}

	// Bare array form first.
	var items []T
	if err := json.Unmarshal(bodyBytes, &items); err == nil {
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	for _, key := range []string{entityKey, "data"} {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("failed to decode %q envelope: %w", key, err)
		}
		return items, nil
	}

	return nil, fmt.Errorf("response has neither a bare array nor a %q envelope", entityKey)
}
