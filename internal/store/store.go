// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ttbye/pageflick/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for reading positions and session data.
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
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
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
		`CREATE TABLE IF NOT EXISTS books (
			path TEXT PRIMARY KEY,
			last_page INTEGER NOT NULL,
			total_pages INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			book_path TEXT NOT NULL,
			pages_forward INTEGER NOT NULL,
			pages_backward INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_gesture_stats (
			session_id INTEGER NOT NULL,
			gesture TEXT NOT NULL,
			count INTEGER NOT NULL,
			blocked INTEGER NOT NULL,
			PRIMARY KEY (session_id, gesture)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_gesture_stats_gesture ON session_gesture_stats(gesture);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// UpsertPosition records the last visited page for a book.
func (s *Store) UpsertPosition(ctx context.Context, path string, lastPage, totalPages int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books (path, last_page, total_pages, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			last_page = excluded.last_page,
			total_pages = excluded.total_pages,
			updated_at = excluded.updated_at`,
		path, lastPage, totalPages, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// GetPosition returns the last visited page for a book, or 0 when the
// book has not been opened before.
func (s *Store) GetPosition(ctx context.Context, path string) (int, error) {
	var page int
	err := s.db.QueryRowContext(ctx,
		`SELECT last_page FROM books WHERE path = ?`, path).Scan(&page)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return page, nil
}

// InsertSession stores a completed session and its per-gesture stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, gestures []model.GestureStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, book_path, pages_forward, pages_backward, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.BookPath,
		stats.PagesForward,
		stats.PagesBackward,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(gestures) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_gesture_stats (session_id, gesture, count, blocked)
			 VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, gs := range gestures {
			if _, err = stmt.ExecContext(ctx, id, gs.Gesture, gs.Count, gs.Blocked); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Book != "" {
		clauses = append(clauses, "book_path = ?")
		args = append(args, cfg.Book)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, book_path, pages_forward, pages_backward, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.BookPath, &agg.PagesForward, &agg.PagesBackward, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListGestureAggregates aggregates gesture counts across sessions.
func (s *Store) ListGestureAggregates(ctx context.Context, sessionIDs []int64) ([]model.GestureAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT gesture, SUM(count) AS count, SUM(blocked) AS blocked
		FROM session_gesture_stats
		WHERE session_id IN (%s)
		GROUP BY gesture
		ORDER BY count DESC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.GestureAggregate
	for rows.Next() {
		var agg model.GestureAggregate
		if err := rows.Scan(&agg.Gesture, &agg.Count, &agg.Blocked); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
