package domain

import (
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

// DefaultInactivityWindow is how long a session survives without any tracked
// operator activity before it is considered expired client-side. The backend
// token usually outlives this; the window is a local policy, not a server one.
const DefaultInactivityWindow = 72 * time.Hour

// Session is the client-held record of the current authenticated operator.
//
// Authenticated is never persisted; it is recomputed from the presence of
// User and Token plus the inactivity window after every restore.
type Session struct {
	User           *decorapi.Profile
	Token          string
	LastActivityAt time.Time
	Authenticated  bool
}

// Expired reports whether a session whose last activity was at lastActivity
// has exceeded the inactivity window at the instant now.
//
// A zero lastActivity reports not expired: a session that never tracked
// activity has nothing to expire. Elapsed time exactly equal to the window is
// still inside it; only strictly more than the window expires the session.
func Expired(lastActivity, now time.Time, window time.Duration) bool {
	if lastActivity.IsZero() {
		return false
	}
	return now.Sub(lastActivity) > window
}
