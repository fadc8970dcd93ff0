package domain

import "errors"

var (
	// ErrNotAuthenticated is returned by operations that need a live
	// session when there is none.
	ErrNotAuthenticated = errors.New("not_authenticated")

	// ErrSessionExpired is returned when the inactivity window has lapsed
	// and the session was cleared as a result.
	ErrSessionExpired = errors.New("session_expired")
)
