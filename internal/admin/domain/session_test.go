package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpired(t *testing.T) {
	t.Parallel()

	window := DefaultInactivityWindow
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("zero last activity never expires", func(t *testing.T) {
		require.False(t, Expired(time.Time{}, now, window))
	})

	t.Run("recent activity not expired", func(t *testing.T) {
		require.False(t, Expired(now.Add(-time.Hour), now, window))
	})

	t.Run("one millisecond inside the window", func(t *testing.T) {
		last := now.Add(-window).Add(time.Millisecond)
		require.False(t, Expired(last, now, window))
	})

	t.Run("exactly the window", func(t *testing.T) {
		last := now.Add(-window)
		require.False(t, Expired(last, now, window))
	})

	t.Run("one millisecond past the window", func(t *testing.T) {
		last := now.Add(-window).Add(-time.Millisecond)
		require.True(t, Expired(last, now, window))
	})

	t.Run("long past the window", func(t *testing.T) {
		last := now.Add(-window).Add(-time.Hour)
		require.True(t, Expired(last, now, window))
	})
}
