/*
Package decorapi provides a client SDK for the simple-decor CMS REST backend.

# Overview

The package is organised around a single Client type. A Client knows the backend
base URL, carries an http.Client with a fixed request timeout, and attaches a
bearer token to outgoing requests by reading through an injected TokenSource.
The Client itself never stores or persists credentials; credential ownership
lives with the session layer, which implements TokenSource.

	api := decorapi.NewClient("https://api.example.com")
	api.Tokens = sessionManager // anything implementing TokenSource

	users, err := api.ListUsers(ctx, decorapi.UserListParams{Search: "anna"})

When no token is available the request is sent unauthenticated and the backend
decides whether to accept it.

# Unauthorized handling

Every response with status 401 invokes the Client's OnUnauthorized hook (when
set) exactly once, regardless of which endpoint produced it, and the call
returns an *APIError whose Unauthorized method reports true. The SDK does not
distinguish an expired token from a missing one; that policy matches the
backend, which uses 401 exclusively for authentication failures.

	api.OnUnauthorized = func() {
		// clear local credentials, prompt for login
	}

# Response envelopes

List endpoints on the backend are inconsistent about their response shape: some
return a bare JSON array, others wrap it in an envelope keyed by the entity
name, e.g. {"users": [...]}. All list methods in this package tolerate both
shapes and return the same slice either way.

# Errors

Failed requests return *APIError carrying the HTTP status, a machine-readable
code when the backend supplies one, and the server's message verbatim. Network
failures are wrapped transport errors, not APIErrors. There is no retry,
backoff, or request queueing in this layer.
*/
package decorapi
