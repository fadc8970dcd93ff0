package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
)

// Storage keys carried over from the browser dashboard this client replaces:
// the old frontend kept a dedicated raw-token key alongside a serialized
// session snapshot, and other tooling still reads the raw key. Both keys are
// written by this store only.
const (
	rawTokenKey        = "auth_token"
	sessionSnapshotKey = "auth-storage"
)

// Snapshot is the subset of session state that survives restarts. The
// authenticated flag deliberately does not: it is recomputed after server
// verification on the next start.
type Snapshot struct {
	User           *decorapi.Profile `json:"user"`
	Token          string            `json:"token"`
	LastActivityAt time.Time         `json:"lastActivityAt"`
}

// SaveSession persists the snapshot, writing both the session snapshot key
// and the dedicated raw-token key so they always agree after a login.
func (s *Store) SaveSession(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: failed to marshal session snapshot: %w", err)
	}

	if err := s.setValue(ctx, sessionSnapshotKey, raw); err != nil {
		return fmt.Errorf("store: failed to save session snapshot: %w", err)
	}
	if err := s.setValue(ctx, rawTokenKey, []byte(snap.Token)); err != nil {
		return fmt.Errorf("store: failed to save token: %w", err)
	}

	return nil
}

// LoadSession restores the persisted snapshot. The token is resolved through
// Token, so the raw-token key wins when the two keys disagree and a missing
// raw key is repaired from the snapshot.
func (s *Store) LoadSession(ctx context.Context) (Snapshot, error) {
	raw, err := s.getValue(ctx, sessionSnapshotKey)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("store: failed to decode session snapshot: %w", err)
	}

	token, err := s.Token(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Snapshot{}, err
	}
	if token != "" {
		snap.Token = token
	}

	return snap, nil
}

// Token resolves the current persisted bearer token:
//
//  1. the dedicated raw-token key, when present;
//  2. otherwise the token inside the session snapshot, which is also copied
//     back into the raw-token key (self-healing sync);
//  3. otherwise ErrNotFound.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.getValue(ctx, rawTokenKey)
	if err == nil && len(raw) > 0 {
		return string(raw), nil
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	snapRaw, err := s.getValue(ctx, sessionSnapshotKey)
	if err != nil {
		return "", err
	}

	var snap Snapshot
	if err := json.Unmarshal(snapRaw, &snap); err != nil {
		return "", fmt.Errorf("store: failed to decode session snapshot: %w", err)
	}
	if snap.Token == "" {
		return "", ErrNotFound
	}

	if err := s.setValue(ctx, rawTokenKey, []byte(snap.Token)); err != nil {
		return "", fmt.Errorf("store: failed to repair token key: %w", err)
	}

	return snap.Token, nil
}

// SaveToken replaces the persisted token in both keys, leaving the rest of
// the snapshot untouched. Used after a token refresh.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	if err := s.setValue(ctx, rawTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store: failed to save token: %w", err)
	}

	snapRaw, err := s.getValue(ctx, sessionSnapshotKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(snapRaw, &snap); err != nil {
		return fmt.Errorf("store: failed to decode session snapshot: %w", err)
	}

	snap.Token = token
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: failed to marshal session snapshot: %w", err)
	}

	return s.setValue(ctx, sessionSnapshotKey, raw)
}

// TouchActivity updates the persisted last-activity timestamp. A missing
// snapshot makes this a no-op; activity without a session is not worth
// recording.
func (s *Store) TouchActivity(ctx context.Context, at time.Time) error {
	snapRaw, err := s.getValue(ctx, sessionSnapshotKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(snapRaw, &snap); err != nil {
		return fmt.Errorf("store: failed to decode session snapshot: %w", err)
	}

	snap.LastActivityAt = at
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: failed to marshal session snapshot: %w", err)
	}

	return s.setValue(ctx, sessionSnapshotKey, raw)
}

// ClearSession removes both credential keys. Always succeeds when the keys
// are already absent.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.deleteValue(ctx, sessionSnapshotKey); err != nil {
		return fmt.Errorf("store: failed to clear session snapshot: %w", err)
	}
	if err := s.deleteValue(ctx, rawTokenKey); err != nil {
		return fmt.Errorf("store: failed to clear token: %w", err)
	}
	return nil
}

// HasToken reports whether the dedicated raw-token key currently holds a
// value, without triggering the self-healing fallback.
func (s *Store) HasToken(ctx context.Context) (bool, error) {
	_, err := s.getValue(ctx, rawTokenKey)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
