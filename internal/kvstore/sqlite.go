package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteDriver     = "sqlite3"
	sqliteMemoryPath = ":memory:"
	sqliteDirPerm    = 0o700

	createKVTable = `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY NOT NULL,
			value BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`

	errFailedCreateDirFmt   = "failed to create sqlite directory: %w"
	errFailedOpenSQLiteFmt  = "error opening database: %w"
	errFailedCreateTableFmt = "error creating kv table: %w"
	errFailedGetKeyFmt      = "failed to get key %q: %w"
	errFailedSetKeyFmt      = "failed to set key %q: %w"
	errFailedDeleteKeyFmt   = "failed to delete key %q: %w"
	errFailedListPrefixFmt  = "failed to list prefix %q: %w"
	errFailedScanEntryFmt   = "failed to scan entry: %w"
)

// SQLiteStore persists entries in a single kv table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != sqliteMemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), sqliteDirPerm); err != nil {
			return nil, fmt.Errorf(errFailedCreateDirFmt, err)
		}
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf(errFailedOpenSQLiteFmt, err)
	}
	// one writer at a time; also keeps :memory: on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf(errFailedCreateTableFmt, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf(errFailedGetKeyFmt, key, err)
	}

	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf(errFailedSetKeyFmt, key, err)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf(errFailedDeleteKeyFmt, key, err)
	}

	return nil
}

func (s *SQLiteStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`,
		escapeLikePattern(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf(errFailedListPrefixFmt, prefix, err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf(errFailedScanEntryFmt, err)
		}
		// LIKE is case-insensitive for ASCII in sqlite
		if strings.HasPrefix(e.Key, prefix) {
			entries = append(entries, e)
		}
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// escapeLikePattern escapes LIKE wildcard characters (% and _)
// so they are treated as literal characters in LIKE patterns.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
