// Package storage provides SQLite-based persistence for the pet.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-pet/internal/pet"
)

const (
	// petID is the primary key of the single pet_state row.
	petID = 1

	// DefaultHappiness is inserted when no record exists yet, unless
	// WithDefaultHappiness overrides it.
	DefaultHappiness = 100

	// busyTimeoutMs makes concurrent readers wait instead of failing.
	busyTimeoutMs = 5000
)

// Store manages the SQLite database connection for pet persistence.
type Store struct {
	db               *sql.DB
	defaultHappiness int
}

// Option configures a Store.
type Option func(*Store)

// WithDefaultHappiness sets the happiness inserted on the first read of an
// empty database.
func WithDefaultHappiness(happiness int) Option {
	return func(s *Store) {
		s.defaultHappiness = happiness
	}
}

// Record is the persisted pet state.
type Record struct {
	Happiness int
	UpdatedAt time.Time
}

// ActionEntry is one row of the action journal.
type ActionEntry struct {
	ID        int64
	Action    pet.Action
	Delta     int
	Happiness int
	Treats    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed. Call Initialize before use.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One connection serializes writes from the session's write queue with
	// reads from the UI.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot set busy timeout: %w", err)
	}

	s := &Store{db: db, defaultHappiness: DefaultHappiness}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize creates the database schema if it doesn't exist.
// It is idempotent and safe to call on every session start.
func (s *Store) Initialize(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS pet_state (
			id INTEGER PRIMARY KEY NOT NULL,
			happiness INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS pet_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			delta INTEGER NOT NULL,
			happiness INTEGER NOT NULL,
			treats INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pet_events_created ON pet_events(created_at DESC);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("storage: cannot initialize schema: %w", err)
	}
	return nil
}

// DefaultHappiness returns the value a fresh record starts with.
func (s *Store) DefaultHappiness() int {
	return s.defaultHappiness
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read returns the stored happiness. If no record exists, the default record
// is inserted in the same transaction and the default happiness is returned.
func (s *Store) Read(ctx context.Context) (int, error) {
	rec, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return rec.Happiness, nil
}

// Snapshot returns the stored record, creating the default one if absent.
func (s *Store) Snapshot(ctx context.Context) (Record, error) {
	var rec Record

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO pet_state (id, happiness) VALUES (?, ?)",
		petID, s.defaultHappiness,
	); err != nil {
		return rec, fmt.Errorf("storage: cannot insert default record: %w", err)
	}

	var updatedAt any
	if err := tx.QueryRowContext(ctx,
		"SELECT happiness, updated_at FROM pet_state WHERE id = ?",
		petID,
	).Scan(&rec.Happiness, &updatedAt); err != nil {
		return rec, fmt.Errorf("storage: cannot read happiness: %w", err)
	}
	rec.UpdatedAt = parseTime(updatedAt)

	if err := tx.Commit(); err != nil {
		return rec, fmt.Errorf("storage: cannot commit read: %w", err)
	}
	return rec, nil
}

// Write upserts the happiness value into the single pet record.
// No range check is applied; bounds belong to the session rules.
func (s *Store) Write(ctx context.Context, happiness int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pet_state (id, happiness, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   happiness = excluded.happiness,
		   updated_at = excluded.updated_at`,
		petID, happiness,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write happiness: %w", err)
	}
	return nil
}

// RecordAction implements pet.Journal.
func (s *Store) RecordAction(rec pet.ActionRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO pet_events (action, delta, happiness, treats, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.Action.String(), rec.Delta, rec.Happiness, rec.Treats,
		rec.At.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record action: %w", err)
	}
	return nil
}

// Ensure Store implements the pet persistence interfaces
var (
	_ pet.Store   = (*Store)(nil)
	_ pet.Journal = (*Store)(nil)
)

// RecentActions returns the newest journal entries first.
func (s *Store) RecentActions(ctx context.Context, limit int) ([]ActionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, delta, happiness, treats, created_at
		 FROM pet_events
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query actions: %w", err)
	}
	defer rows.Close()

	var entries []ActionEntry
	for rows.Next() {
		var e ActionEntry
		var action string
		var createdAt any
		if err := rows.Scan(&e.ID, &action, &e.Delta, &e.Happiness, &e.Treats, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Action = pet.ParseAction(action)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearActions deletes the whole action journal.
func (s *Store) ClearActions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pet_events"); err != nil {
		return fmt.Errorf("storage: cannot clear actions: %w", err)
	}
	return nil
}

// timeLayout matches SQLite's CURRENT_TIMESTAMP format.
const timeLayout = "2006-01-02 15:04:05"

// parseTime handles both time.Time and string values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
