// Package history records sent requests in a local SQLite database so past
// invocations can be reviewed with the history command.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	sent_at  TIMESTAMP NOT NULL,
	name     TEXT NOT NULL,
	method   TEXT NOT NULL,
	uri      TEXT NOT NULL,
	status   INTEGER NOT NULL,
	duration INTEGER NOT NULL
)`

// Entry is one recorded request.
type Entry struct {
	ID       int64
	SentAt   time.Time
	Name     string
	Method   string
	URI      string
	Status   int
	Duration time.Duration
}

// Store is a request history backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends one entry.
func (s *Store) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (sent_at, name, method, uri, status, duration) VALUES (?, ?, ?, ?, ?, ?)`,
		e.SentAt.UTC(), e.Name, e.Method, e.URI, e.Status, int64(e.Duration))
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sent_at, name, method, uri, status, duration FROM history ORDER BY id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var duration int64
		if err := rows.Scan(&e.ID, &e.SentAt, &e.Name, &e.Method, &e.URI, &e.Status, &duration); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.Duration = time.Duration(duration)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
