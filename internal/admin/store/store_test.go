package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shunadesu/simple-decor-sub001/pkg/cryptox"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("test-machine-secret"))
	require.NoError(t, err)

	s, err := NewStore(filepath.Join(t.TempDir(), "state.db"), sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testSnapshot() Snapshot {
	return Snapshot{
		User: &decorapi.Profile{
			ID:    "u-1",
			Email: "admin@example.com",
			Name:  "Admin",
			Role:  "admin",
		},
		Token:          "token-abc",
		LastActivityAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_SaveLoadSession(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	snap := testSnapshot()
	require.NoError(t, s.SaveSession(ctx, snap))

	loaded, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, snap.Token, loaded.Token)
	require.Equal(t, snap.User.Email, loaded.User.Email)
	require.True(t, snap.LastActivityAt.Equal(loaded.LastActivityAt))
}

func TestStore_DualKeyConsistency(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))

	// Raw-token key and the snapshot agree after a save.
	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-abc", token)

	loaded, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, token, loaded.Token)
}

func TestStore_TokenSelfHeal(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))

	// Simulate legacy state where only the snapshot key survived.
	require.NoError(t, s.deleteValue(ctx, rawTokenKey))

	has, err := s.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)

	// Resolution falls back to the snapshot and repairs the raw key.
	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-abc", token)

	has, err = s.HasToken(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func TestStore_SaveToken(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))
	require.NoError(t, s.SaveToken(ctx, "token-next"))

	token, err := s.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-next", token)

	// Snapshot token was rewritten too, not just the raw key.
	loaded, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "token-next", loaded.Token)
}

func TestStore_TouchActivity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// No snapshot yet: touching is a no-op, not an error.
	require.NoError(t, s.TouchActivity(ctx, time.Now()))

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))

	at := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.TouchActivity(ctx, at))

	loaded, err := s.LoadSession(ctx)
	require.NoError(t, err)
	require.True(t, at.Equal(loaded.LastActivityAt))
	require.Equal(t, "token-abc", loaded.Token, "touching activity must not disturb the token")
}

func TestStore_ClearSession(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))
	require.NoError(t, s.ClearSession(ctx))

	_, err := s.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	has, err := s.HasToken(ctx)
	require.NoError(t, err)
	require.False(t, has)

	// Clearing twice is fine.
	require.NoError(t, s.ClearSession(ctx))
}

func TestStore_ValuesSealedAtRest(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSession(ctx, testSnapshot()))

	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_state WHERE key = ?`, rawTokenKey,
	).Scan(&sealed)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "token-abc")
}
