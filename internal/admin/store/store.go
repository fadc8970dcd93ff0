// Package store persists client state between runs. It is the single owner of
// credential storage: the session manager writes through it and the HTTP
// client reads tokens only via the session manager, never from storage
// directly.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Shunadesu/simple-decor-sub001/pkg/cryptox"
)

// ErrNotFound reports that no value is stored under the requested key.
var ErrNotFound = errors.New("store: not found")

// Store is a SQLite-backed key/value state store. Credential values are
// sealed before they touch the database file.
type Store struct {
	db     *sql.DB
	sealer *cryptox.Sealer
	dsn    string
}

// NewStore opens (creating if necessary) the state database at dsn.
func NewStore(dsn string, sealer *cryptox.Sealer) (*Store, error) {
	if sealer == nil {
		return nil, errors.New("store: sealer is required")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Single-writer local state file; serialise access at the driver level.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		sealer: sealer,
		dsn:    dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) getValue(ctx context.Context, key string) ([]byte, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_state WHERE key = ?`, key,
	).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.sealer.Open(sealed)
}

func (s *Store) setValue(ctx context.Context, key string, value []byte) error {
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, sealed, time.Now().UTC(),
	)
	return err
}

func (s *Store) deleteValue(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_state WHERE key = ?`, key)
	return err
}
