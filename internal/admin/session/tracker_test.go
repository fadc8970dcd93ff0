package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/domain"
)

func TestTracker_TouchUpdatesActivity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))
	loginActivity := env.manager.LastActivity()

	tracker := NewTracker(env.manager, time.Hour) // expiry check effectively off
	go tracker.Run(ctx)
	defer tracker.Close()

	env.clock.Advance(2 * time.Hour)
	tracker.Touch()

	require.Eventually(t, func() bool {
		return env.manager.LastActivity().After(loginActivity)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTracker_PeriodicCheckClearsExpiredSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, env.manager.Login(ctx, "admin@example.com", "pw", ""))

	// Three days and an hour with no interaction; the next periodic check
	// must clear the session without any new event arriving.
	env.clock.Advance(domain.DefaultInactivityWindow + time.Hour)

	tracker := NewTracker(env.manager, 10*time.Millisecond)
	go tracker.Run(ctx)
	defer tracker.Close()

	require.Eventually(t, func() bool {
		return !env.manager.Authenticated()
	}, 2*time.Second, 10*time.Millisecond)

	require.Empty(t, env.manager.Token())
}

func TestTracker_TouchWithoutSessionIsIgnored(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracker := NewTracker(env.manager, time.Hour)
	go tracker.Run(ctx)
	defer tracker.Close()

	tracker.Touch()

	// Give the loop a moment; activity must stay zero while logged out.
	time.Sleep(50 * time.Millisecond)
	require.True(t, env.manager.LastActivity().IsZero())
}

func TestTracker_TouchNeverBlocks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tracker := NewTracker(env.manager, time.Hour)

	// No Run loop draining events; a burst larger than the buffer must
	// still return promptly.
	for range 1000 {
		tracker.Touch()
	}
}
