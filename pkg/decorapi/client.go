package decorapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/slogx"
)

// DefaultTimeout is applied to the underlying http.Client when the caller does
// not replace it. The backend is expected to answer well within this window.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the current bearer token for outgoing requests.
// An empty string means "no token"; the request proceeds unauthenticated.
//
// The session layer owns credential storage and implements this interface, so
// the HTTP client never reads durable storage directly.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to the TokenSource interface.
type TokenSourceFunc func() string

// Token implements TokenSource.
func (f TokenSourceFunc) Token() string { return f() }

// Client is a client for the simple-decor CMS REST backend.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens supplies the bearer token attached to outgoing requests.
	// When nil, or when it returns an empty string, requests are sent
	// without an Authorization header.
	Tokens TokenSource

	// OnUnauthorized is invoked once per response that carries HTTP 401,
	// for every endpoint alike. Optional.
	OnUnauthorized func()

	// Logger receives request/response debug lines. A logger carried in
	// the request context via slogx.WithContext takes precedence; when
	// both are absent, slog.Default() is used.
	Logger *slog.Logger
}

// NewClient creates a new CMS backend client with the default request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// logger prefers a logger carried in ctx over the client's own.
func (c *Client) logger(ctx context.Context) *slog.Logger {
	return slogx.FromContextOr(ctx, c.Logger)
}
