package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minRefreshDelay keeps a nearly-expired token from scheduling a refresh
// storm at startup.
const minRefreshDelay = time.Minute

// refreshDelay computes how long to wait before refreshing the given token.
//
// Backend tokens are JWTs, so the real expiry is usually readable client-side
// without verifying the signature. When it is, the refresh fires skew before
// it. When the token is opaque or carries no exp claim, the fixed fallback
// applies.
func refreshDelay(token string, now time.Time, fallback, skew time.Duration) time.Duration {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	delay := exp.Time.Sub(now) - skew
	if delay < minRefreshDelay {
		return minRefreshDelay
	}
	return delay
}

// armRefresh cancels any previously scheduled refresh and schedules exactly
// one new refresh for the given token. Called whenever the token identity
// changes; Logout and Close cancel without rescheduling.
func (m *Manager) armRefresh(token string) {
	m.mu.Lock()

	if m.refreshTimer != nil {
		m.refreshTimer.Stop()
		m.refreshTimer = nil
	}

	if token == "" || m.closed {
		m.mu.Unlock()
		return
	}

	delay := refreshDelay(token, m.now(), m.refreshFallback, m.refreshSkew)
	m.refreshTimer = time.AfterFunc(delay, func() {
		// A failed refresh already logged out, which disarms the cycle;
		// nothing more to do here.
		if err := m.RefreshToken(context.Background()); err != nil {
			m.logger.Warn("scheduled refresh did not complete", "error", err)
		}
	})

	m.mu.Unlock()

	m.logger.Debug("token refresh scheduled", "delay", delay)
}
