// Package events records tool invocations in a local SQLite database.
//
// The protocol core only consumes the Sink interface; the Store here
// is the concrete collaborator. Recording is best-effort by contract:
// a failed insert is logged to stderr and never surfaces to the
// response path.
package events

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Sink observes successful tool calls.
type Sink interface {
	RecordToolCall(tool string)
}

// Log is the read side of the invocation log.
type Log interface {
	Recent(limit int) ([]Event, error)
}

// Event is one recorded tool invocation.
type Event struct {
	ID        string `json:"id"`
	Tool      string `json:"tool"`
	CreatedAt string `json:"created_at"`
}

// Config holds event store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig roots the database under ~/.super-prompt.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".super-prompt")}
}

// Store is the SQLite-backed invocation log.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Open creates the data directory if needed, opens the database with
// WAL mode, and runs migrations.
func Open(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("events: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "events.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("events: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("events: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, logger: log.New(os.Stderr, "[super-prompt] ", log.LstdFlags)}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("events: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tool_events (
			id         TEXT PRIMARY KEY,
			tool       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_events_created ON tool_events(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_events_tool    ON tool_events(tool);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordToolCall inserts one invocation event. Errors are logged, not
// returned — the response path must never fail on bookkeeping.
func (s *Store) RecordToolCall(tool string) {
	_, err := s.db.Exec(
		"INSERT INTO tool_events (id, tool) VALUES (?, ?)",
		uuid.NewString(), tool,
	)
	if err != nil {
		s.logger.Printf("WARNING: recording tool call %s: %v", tool, err)
	}
}

// Recent returns the most recent events, newest first.
func (s *Store) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		"SELECT id, tool, created_at FROM tool_events ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("events: query recent: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Tool, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("events: scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
