// Package store backs the item catalog with a plain key-value table. The
// store offers no transactions across keys; writes to the same key are
// serialized here with a per-key mutex so read-modify-write callers cannot
// lose updates (concurrent writes to different keys proceed independently).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound means the key is absent. Most callers treat this as
	// "empty value", not a failure.
	ErrNotFound = errors.New("store: key not found")
	// ErrUnavailable wraps driver-level failures so callers can
	// distinguish "missing" from "store down".
	ErrUnavailable = errors.New("store: unavailable")
)

// Well-known keys.
const (
	KeyItems     = "items"
	KeySettings  = "settings"
	KeyFavorites = "favorites"
	KeyPromising = "promising"
)

// SearchKey is the index key for a scraped search term.
func SearchKey(term string) string { return "search:" + term }

type KV struct {
	db *sqlx.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func Open(dsn string) (*KV, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}
	return &KV{db: db, locks: map[string]*sync.Mutex{}}, nil
}

func (s *KV) DB() *sqlx.DB { return s.db }

func (s *KV) Close() error { return s.db.Close() }

// keyLock returns the mutex guarding writes to one key.
func (s *KV) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// Get returns the raw value for key, or ErrNotFound.
func (s *KV) Get(key string) ([]byte, error) {
	var val []byte
	err := s.db.Get(&val, `SELECT value FROM kv WHERE key=?`, key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return val, nil
}

// Put overwrites the value for key.
func (s *KV) Put(key string, value []byte) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()
	return s.put(key, value)
}

func (s *KV) put(key string, value []byte) error {
	_, err := s.db.Exec(`
	  INSERT INTO kv(key,value,updated_at) VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(key) DO UPDATE SET value=excluded.value,updated_at=CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}
	return nil
}

// Update applies fn to the current value of key and writes the result back,
// holding the key's lock for the whole read-modify-write. fn receives nil
// when the key is absent.
func (s *KV) Update(key string, fn func(cur []byte) ([]byte, error)) error {
	l := s.keyLock(key)
	l.Lock()
	defer l.Unlock()

	cur, err := s.Get(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return s.put(key, next)
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS kv(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}
