// internal/store/store.go
// Package store handles SQLite persistence of practice-session statistics.
// Only session metadata is recorded; the decoded text never leaves memory.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Session is the recorded summary of one practice run.
type Session struct {
	ID         int64
	StartedAt  time.Time
	DurationMs int64
	WPM        int
	Characters int // characters committed by the decoder
	Words      int // word spaces committed
	Plays      int // replays started
}

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			characters INTEGER NOT NULL,
			words INTEGER NOT NULL,
			plays INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and returns its id.
func (s *Store) InsertSession(ctx context.Context, sess Session) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, duration_ms, wpm, characters, words, plays)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.StartedAt.Format(time.RFC3339Nano),
		sess.DurationMs,
		sess.WPM,
		sess.Characters,
		sess.Words,
		sess.Plays,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// ListSessions returns the most recent sessions, newest first.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, wpm, characters, words, plays
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sessions []Session
	for rows.Next() {
		var (
			sess    Session
			started string
		)
		if err := rows.Scan(&sess.ID, &started, &sess.DurationMs, &sess.WPM, &sess.Characters, &sess.Words, &sess.Plays); err != nil {
			return nil, err
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
