// Package session owns the authentication lifecycle of the admin client:
// login, logout, hydration from durable storage, inactivity expiry, and
// scheduled token refresh.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/domain"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/store"
	"github.com/Shunadesu/simple-decor-sub001/pkg/cryptox"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

const (
	// DefaultRefreshFallback is how long after acquiring a token a refresh
	// is scheduled when the token's own expiry cannot be read. Chosen to
	// precede the backend's 24-hour token lifetime.
	DefaultRefreshFallback = 23 * time.Hour

	// DefaultRefreshSkew is how long before a readable token expiry the
	// refresh fires.
	DefaultRefreshSkew = time.Hour
)

// Config carries the tunables for a Manager. Zero values select defaults.
type Config struct {
	InactivityWindow time.Duration
	RefreshFallback  time.Duration
	RefreshSkew      time.Duration

	// Now supplies the clock; tests pin it around expiry boundaries.
	Now func() time.Time

	Logger *slog.Logger
}

// Manager is the single source of truth for authentication state. It persists
// {user, token, lastActivityAt} through the state store, implements
// decorapi.TokenSource for the HTTP client, and owns the one pending
// auto-refresh timer.
//
// All methods are safe for concurrent use.
type Manager struct {
	// OnUnauthorized is invoked after the session has been cleared in
	// response to any 401 from the backend. The embedding program decides
	// what "go to login" means. Optional; set before issuing requests.
	OnUnauthorized func()

	api    *decorapi.Client
	store  *store.Store
	logger *slog.Logger

	window          time.Duration
	refreshFallback time.Duration
	refreshSkew     time.Duration
	now             func() time.Time

	mu             sync.RWMutex
	user           *decorapi.Profile
	token          string
	lastActivityAt time.Time
	authenticated  bool
	refreshTimer   *time.Timer
	closed         bool

	hydrateOnce sync.Once
	hydratedCh  chan struct{}
}

// NewManager creates a session manager bound to the given API client and
// state store. The manager installs itself as the client's TokenSource and
// unauthorized hook.
func NewManager(api *decorapi.Client, st *store.Store, cfg Config) *Manager {
	m := &Manager{
		api:             api,
		store:           st,
		logger:          cfg.Logger,
		window:          cfg.InactivityWindow,
		refreshFallback: cfg.RefreshFallback,
		refreshSkew:     cfg.RefreshSkew,
		now:             cfg.Now,
		hydratedCh:      make(chan struct{}),
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.window <= 0 {
		m.window = domain.DefaultInactivityWindow
	}
	if m.refreshFallback <= 0 {
		m.refreshFallback = DefaultRefreshFallback
	}
	if m.refreshSkew <= 0 {
		m.refreshSkew = DefaultRefreshSkew
	}
	if m.now == nil {
		m.now = time.Now
	}

	api.Tokens = m
	api.OnUnauthorized = m.handleUnauthorized

	return m
}

// Token implements decorapi.TokenSource. It returns the in-memory token; the
// HTTP client never reads durable storage itself.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the current profile, or nil when unauthenticated.
func (m *Manager) User() *decorapi.Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Authenticated reports whether a verified session is live.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// LastActivity returns the last tracked activity timestamp.
func (m *Manager) LastActivity() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastActivityAt
}

// Login authenticates against the backend. On success the session becomes
// authenticated, credentials are persisted (both storage keys), and a token
// refresh is scheduled. On failure nothing is mutated and the server's
// message is returned unchanged.
func (m *Manager) Login(ctx context.Context, email, password, otpCode string) error {
	resp, err := m.api.Login(ctx, decorapi.LoginRequest{
		Email:    email,
		Password: password,
		OTPCode:  otpCode,
	})
	if err != nil {
		return err
	}

	now := m.now()
	user := resp.User

	m.mu.Lock()
	m.user = &user
	m.token = resp.Token
	m.lastActivityAt = now
	m.authenticated = true
	m.mu.Unlock()

	if err := m.store.SaveSession(ctx, store.Snapshot{
		User:           &user,
		Token:          resp.Token,
		LastActivityAt: now,
	}); err != nil {
		// The live session works either way; it just won't survive restart.
		m.logger.Warn("failed to persist session", "error", err)
	}

	m.armRefresh(resp.Token)

	m.logger.Info("logged in",
		"email", user.Email,
		"token_fp", cryptox.FingerprintToken(resp.Token),
	)

	return nil
}

// Logout clears the session and both persisted credential keys, and cancels
// any pending refresh. It performs no network call and always succeeds.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.lastActivityAt = time.Time{}
	m.authenticated = false
	timer := m.refreshTimer
	m.refreshTimer = nil
	m.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}

	if err := m.store.ClearSession(context.Background()); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}

	m.logger.Info("logged out")
}

// UpdateActivity records operator activity at the current instant. Called by
// the activity tracker on every (throttled) interaction and once eagerly at
// startup.
func (m *Manager) UpdateActivity() {
	now := m.now()

	m.mu.Lock()
	m.lastActivityAt = now
	m.mu.Unlock()

	if err := m.store.TouchActivity(context.Background(), now); err != nil {
		m.logger.Warn("failed to persist activity timestamp", "error", err)
	}
}

// CheckSessionExpiry reports whether the inactivity window has lapsed.
// When it has, the session is logged out as a side effect before returning
// true; callers observing a true result already hold a cleared session.
func (m *Manager) CheckSessionExpiry() bool {
	m.mu.RLock()
	last := m.lastActivityAt
	m.mu.RUnlock()

	if !domain.Expired(last, m.now(), m.window) {
		return false
	}

	m.logger.Info("session expired after inactivity",
		"last_activity", last,
		"window", m.window,
	)
	m.Logout()
	return true
}

// InitializeAuth restores persisted credentials and verifies them against the
// backend's profile endpoint. Any verification failure, network trouble and
// rejected tokens alike, clears the session. The hydration flag is set
// exactly once in every path; WaitForHydration gates consumers on it.
//
// With no stored credentials this makes no network call at all.
func (m *Manager) InitializeAuth(ctx context.Context) error {
	defer m.markHydrated()

	snap, err := m.store.LoadSession(ctx)
	if errors.Is(err, store.ErrNotFound) {
		m.logger.Debug("no persisted session to restore")
		return nil
	}
	if err != nil {
		return err
	}
	if snap.Token == "" || snap.User == nil {
		m.logger.Debug("persisted session incomplete, ignoring")
		return nil
	}

	// Stage the restored credentials so the verification request carries
	// the token. Not authenticated yet; the server decides that.
	m.mu.Lock()
	m.user = snap.User
	m.token = snap.Token
	m.lastActivityAt = snap.LastActivityAt
	m.mu.Unlock()

	profile, err := m.api.Profile(ctx)
	if err != nil {
		m.logger.Info("persisted session failed verification", "error", err)
		m.Logout()
		return nil
	}

	now := m.now()

	m.mu.Lock()
	m.user = profile
	m.authenticated = true
	m.lastActivityAt = now
	token := m.token
	m.mu.Unlock()

	// Rewrites both storage keys, which also repairs a missing raw-token
	// key left behind by older builds.
	if err := m.store.SaveSession(ctx, store.Snapshot{
		User:           profile,
		Token:          token,
		LastActivityAt: now,
	}); err != nil {
		m.logger.Warn("failed to persist refreshed session", "error", err)
	}

	m.armRefresh(token)

	m.logger.Info("session restored", "email", profile.Email)
	return nil
}

// RefreshToken exchanges the current token for a fresh one. On success the
// new token replaces the old everywhere and the next refresh is scheduled.
// Any failure logs the session out; there is no retry.
func (m *Manager) RefreshToken(ctx context.Context) error {
	m.mu.RLock()
	token := m.token
	m.mu.RUnlock()

	if token == "" {
		return domain.ErrNotAuthenticated
	}

	resp, err := m.api.RefreshToken(ctx)
	if err != nil {
		m.logger.Warn("token refresh failed", "error", err)
		m.Logout()
		return err
	}

	m.mu.Lock()
	m.token = resp.Token
	m.mu.Unlock()

	if err := m.store.SaveToken(ctx, resp.Token); err != nil {
		m.logger.Warn("failed to persist refreshed token", "error", err)
	}

	m.armRefresh(resp.Token)

	m.logger.Info("token refreshed", "token_fp", cryptox.FingerprintToken(resp.Token))
	return nil
}

// Hydrated reports whether InitializeAuth has completed.
func (m *Manager) Hydrated() bool {
	select {
	case <-m.hydratedCh:
		return true
	default:
		return false
	}
}

// WaitForHydration blocks until InitializeAuth has completed or ctx is done.
func (m *Manager) WaitForHydration(ctx context.Context) error {
	select {
	case <-m.hydratedCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the pending refresh timer. The manager must not be used
// afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	timer := m.refreshTimer
	m.refreshTimer = nil
	m.mu.Unlock()

	if timer != nil {
		timer.Stop()
	}
}

func (m *Manager) markHydrated() {
	m.hydrateOnce.Do(func() { close(m.hydratedCh) })
}

// handleUnauthorized reacts to any 401 from the backend: the session is
// cleared unconditionally and the embedding program is notified. This is the
// moral equivalent of the dashboard's hard redirect to the login page.
func (m *Manager) handleUnauthorized() {
	m.mu.RLock()
	hadSession := m.token != "" || m.authenticated
	m.mu.RUnlock()

	if hadSession {
		m.logger.Info("backend rejected credentials, clearing session")
		m.Logout()
	}

	if m.OnUnauthorized != nil {
		m.OnUnauthorized()
	}
}
