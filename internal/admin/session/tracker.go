package session

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultCheckInterval is how often the tracker proactively checks for
	// inactivity expiry, independent of new activity.
	DefaultCheckInterval = time.Minute

	// activityThrottle caps how often raw activity events reach the
	// manager. The dashboard this replaces forwarded every DOM event
	// unthrottled; one write per 100ms loses nothing against a 3-day
	// window.
	activityThrottle = 100 * time.Millisecond
)

// Tracker bridges program activity to the session manager. The embedding
// program calls Touch for every user interaction; the tracker throttles those
// into UpdateActivity calls and runs a periodic expiry check so an idle
// session is cleared even without new interaction.
type Tracker struct {
	manager  *Manager
	limiter  *rate.Limiter
	interval time.Duration

	events chan struct{}
	done   chan struct{}
}

// NewTracker creates a tracker for the given manager. A non-positive
// checkInterval selects DefaultCheckInterval.
func NewTracker(m *Manager, checkInterval time.Duration) *Tracker {
	if checkInterval <= 0 {
		checkInterval = DefaultCheckInterval
	}

	return &Tracker{
		manager:  m,
		limiter:  rate.NewLimiter(rate.Every(activityThrottle), 1),
		interval: checkInterval,
		events:   make(chan struct{}, 64),
		done:     make(chan struct{}),
	}
}

// Touch records one user interaction. Never blocks; excess events during a
// burst are dropped, which is fine because a single event already resets the
// inactivity window.
func (t *Tracker) Touch() {
	select {
	case t.events <- struct{}{}:
	default:
	}
}

// Run consumes activity events and performs periodic expiry checks until ctx
// is done or Close is called. It updates activity once eagerly on entry when
// a session is live.
func (t *Tracker) Run(ctx context.Context) {
	if t.manager.Authenticated() {
		t.manager.UpdateActivity()
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.events:
			if !t.manager.Authenticated() {
				continue
			}
			if t.limiter.Allow() {
				t.manager.UpdateActivity()
			}
		case <-ticker.C:
			if !t.manager.Authenticated() {
				continue
			}
			if t.manager.CheckSessionExpiry() {
				t.manager.logger.Info("inactivity check cleared the session")
			}
		case <-ctx.Done():
			return
		case <-t.done:
			return
		}
	}
}

// Close stops a running tracker. Safe to call once.
func (t *Tracker) Close() {
	close(t.done)
}
