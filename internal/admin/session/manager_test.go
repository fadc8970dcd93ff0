package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/domain"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/store"
	"github.com/Shunadesu/simple-decor-sub001/pkg/cryptox"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

// fakeClock is a manually advanced clock shared with the manager under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeBackend is a minimal stand-in for the CMS REST backend.
type fakeBackend struct {
	mu sync.Mutex

	token         string // token issued by login and refresh
	profileStatus int    // status for GET /api/admin/profile
	loginStatus   int    // status for POST /api/admin/login
	refreshStatus int    // status for POST /api/admin/refresh-token

	requests atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		token:         "issued-token",
		profileStatus: http.StatusOK,
		loginStatus:   http.StatusOK,
		refreshStatus: http.StatusOK,
	}
}

func (b *fakeBackend) setLoginStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loginStatus = status
}

func (b *fakeBackend) setProfileStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profileStatus = status
}

func (b *fakeBackend) setRefreshStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshStatus = status
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		b.mu.Lock()
		status, token := b.loginStatus, b.token
		b.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}

		_ = json.NewEncoder(w).Encode(decorapi.LoginResponse{
			Token: token,
			User:  decorapi.Profile{ID: "u-1", Email: "admin@example.com", Name: "Admin", Role: "admin"},
		})
	})

	mux.HandleFunc("GET /api/admin/profile", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		b.mu.Lock()
		status := b.profileStatus
		b.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
			return
		}

		_ = json.NewEncoder(w).Encode(decorapi.Profile{
			ID: "u-1", Email: "admin@example.com", Name: "Fresh Name", Role: "admin",
		})
	})

	mux.HandleFunc("POST /api/admin/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		b.mu.Lock()
		status := b.refreshStatus
		b.mu.Unlock()

		if status != http.StatusOK {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "refresh rejected"})
			return
		}

		_ = json.NewEncoder(w).Encode(decorapi.RefreshResponse{Token: "refreshed-token"})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		b.requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
	})

	return mux
}

type testEnv struct {
	manager *Manager
	store   *store.Store
	api     *decorapi.Client
	backend *fakeBackend
	clock   *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sealer, err := cryptox.NewSealer([]byte("test-secret"))
	require.NoError(t, err)

	st, err := store.NewStore(filepath.Join(t.TempDir(), "state.db"), sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	clock := newFakeClock()
	api := decorapi.NewClient(server.URL)

	manager := NewManager(api, st, Config{Now: clock.Now})
	t.Cleanup(manager.Close)

	return &testEnv{
		manager: manager,
		store:   st,
		api:     api,
		backend: backend,
		clock:   clock,
	}
}

func TestManager_LoginSuccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))

	require.True(t, env.manager.Authenticated())
	require.Equal(t, "issued-token", env.manager.Token())
	require.Equal(t, "admin@example.com", env.manager.User().Email)
	require.True(t, env.clock.Now().Equal(env.manager.LastActivity()))

	// Both storage keys hold the same token after login.
	stored, err := env.store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "issued-token", stored)

	snap, err := env.store.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, stored, snap.Token)
}

func TestManager_LoginFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.backend.setLoginStatus(http.StatusBadRequest)

	err := env.manager.Login(context.Background(), "admin@example.com", "wrong", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid credentials")

	// Nothing mutated on failure.
	require.False(t, env.manager.Authenticated())
	require.Empty(t, env.manager.Token())
	require.Nil(t, env.manager.User())

	_, err = env.store.LoadSession(context.Background())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))
	env.manager.Logout()

	require.False(t, env.manager.Authenticated())
	require.Empty(t, env.manager.Token())
	require.Nil(t, env.manager.User())
	require.True(t, env.manager.LastActivity().IsZero())

	has, err := env.store.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)

	_, err = env.store.LoadSession(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestManager_InitializeAuth_NoCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	require.False(t, env.manager.Hydrated())
	require.NoError(t, env.manager.InitializeAuth(context.Background()))

	require.True(t, env.manager.Hydrated())
	require.False(t, env.manager.Authenticated())
	require.Zero(t, env.backend.requests.Load(), "no network call without stored credentials")
}

func TestManager_InitializeAuth_ValidCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	staleActivity := env.clock.Now().Add(-24 * time.Hour)
	require.NoError(t, env.store.SaveSession(ctx, store.Snapshot{
		User:           &decorapi.Profile{ID: "u-1", Email: "admin@example.com", Name: "Stale Name"},
		Token:          "stored-token",
		LastActivityAt: staleActivity,
	}))

	require.NoError(t, env.manager.InitializeAuth(ctx))

	require.True(t, env.manager.Hydrated())
	require.True(t, env.manager.Authenticated())
	require.Equal(t, "Fresh Name", env.manager.User().Name, "profile replaced by server response")
	require.True(t, env.clock.Now().Equal(env.manager.LastActivity()), "activity reset to now")
}

func TestManager_InitializeAuth_RejectedCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	env.backend.setProfileStatus(http.StatusUnauthorized)

	var unauthorized atomic.Bool
	env.manager.OnUnauthorized = func() { unauthorized.Store(true) }

	require.NoError(t, env.store.SaveSession(ctx, store.Snapshot{
		User:           &decorapi.Profile{ID: "u-1", Email: "admin@example.com"},
		Token:          "stored-token",
		LastActivityAt: env.clock.Now(),
	}))

	require.NoError(t, env.manager.InitializeAuth(ctx))

	require.True(t, env.manager.Hydrated())
	require.False(t, env.manager.Authenticated())
	require.Empty(t, env.manager.Token())
	require.True(t, unauthorized.Load())

	has, err := env.store.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)
}

func TestManager_InitializeAuth_RepairsRawTokenKey(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.store.SaveSession(ctx, store.Snapshot{
		User:           &decorapi.Profile{ID: "u-1", Email: "admin@example.com"},
		Token:          "stored-token",
		LastActivityAt: env.clock.Now(),
	}))

	require.NoError(t, env.manager.InitializeAuth(ctx))

	has, err := env.store.HasToken(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func TestManager_HydrationHappensOnce(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.InitializeAuth(ctx))
	require.True(t, env.manager.Hydrated())

	// A second call must not panic or reset the flag.
	require.NoError(t, env.manager.InitializeAuth(ctx))
	require.True(t, env.manager.Hydrated())

	require.NoError(t, env.manager.WaitForHydration(ctx))
}

func TestManager_CheckSessionExpiry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))

	t.Run("fresh session not expired", func(t *testing.T) {
		require.False(t, env.manager.CheckSessionExpiry())
		require.True(t, env.manager.Authenticated())
	})

	t.Run("exactly at the window", func(t *testing.T) {
		env.clock.Advance(domain.DefaultInactivityWindow)
		require.False(t, env.manager.CheckSessionExpiry())
		require.True(t, env.manager.Authenticated())
	})

	t.Run("past the window clears the session", func(t *testing.T) {
		env.clock.Advance(time.Hour)
		require.True(t, env.manager.CheckSessionExpiry())
		require.False(t, env.manager.Authenticated())
		require.Empty(t, env.manager.Token())

		has, err := env.store.HasToken(ctx)
		require.NoError(t, err)
		require.False(t, has)
	})

	t.Run("no activity recorded reports not expired", func(t *testing.T) {
		require.False(t, env.manager.CheckSessionExpiry())
	})
}

func TestManager_RefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("success replaces the token everywhere", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))
		require.NoError(t, env.manager.RefreshToken(ctx))

		require.Equal(t, "refreshed-token", env.manager.Token())

		stored, err := env.store.Token(ctx)
		require.NoError(t, err)
		require.Equal(t, "refreshed-token", stored)
	})

	t.Run("failure logs the session out", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))
		env.backend.setRefreshStatus(http.StatusInternalServerError)

		require.Error(t, env.manager.RefreshToken(ctx))
		require.False(t, env.manager.Authenticated())
		require.Empty(t, env.manager.Token())
	})

	t.Run("without a session", func(t *testing.T) {
		env := newTestEnv(t)
		require.ErrorIs(t, env.manager.RefreshToken(context.Background()), domain.ErrNotAuthenticated)
	})
}

func TestManager_AnyUnauthorizedResponseClearsSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))

	var unauthorized atomic.Bool
	env.manager.OnUnauthorized = func() { unauthorized.Store(true) }

	// An arbitrary non-auth endpoint returning 401 triggers the same
	// global reaction as an auth endpoint.
	_, err := env.api.ListUsers(ctx, decorapi.UserListParams{})
	require.Error(t, err)
	require.True(t, decorapi.IsUnauthorized(err))

	require.True(t, unauthorized.Load())
	require.False(t, env.manager.Authenticated())
	require.Empty(t, env.manager.Token())

	has, err := env.store.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)
}

func TestRefreshDelay(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fallback := 23 * time.Hour
	skew := time.Hour

	t.Run("opaque token uses the fallback", func(t *testing.T) {
		require.Equal(t, fallback, refreshDelay("not-a-jwt", now, fallback, skew))
	})

	t.Run("jwt exp schedules skew before expiry", func(t *testing.T) {
		exp := now.Add(10 * time.Hour)
		token := signedTestJWT(t, exp)
		require.Equal(t, 9*time.Hour, refreshDelay(token, now, fallback, skew))
	})

	t.Run("nearly expired jwt clamps to the minimum", func(t *testing.T) {
		exp := now.Add(30 * time.Second)
		token := signedTestJWT(t, exp)
		require.Equal(t, minRefreshDelay, refreshDelay(token, now, fallback, skew))
	})

	t.Run("jwt without exp uses the fallback", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "u-1",
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)
		require.Equal(t, fallback, refreshDelay(token, now, fallback, skew))
	})
}

func signedTestJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}
