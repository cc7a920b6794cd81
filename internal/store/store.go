// Package store handles SQLite persistence of metric snapshots.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/readstat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for snapshot history.
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
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			path TEXT NOT NULL,
			mode TEXT NOT NULL,
			words INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			characters INTEGER NOT NULL,
			sentences INTEGER NOT NULL,
			paragraphs INTEGER NOT NULL,
			pages INTEGER NOT NULL,
			complex_words INTEGER NOT NULL,
			reading_minutes INTEGER NOT NULL,
			lix INTEGER NOT NULL,
			readability INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_recorded_at ON snapshots(recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_path ON snapshots(path);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSnapshot stores a snapshot and returns its id.
func (s *Store) InsertSnapshot(ctx context.Context, snap model.Snapshot) (int64, error) {
	m := snap.Metrics
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (recorded_at, path, mode, words, total_words, characters, sentences, paragraphs, pages, complex_words, reading_minutes, lix, readability)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.RecordedAt.UTC().Format(time.RFC3339Nano),
		snap.Path,
		snap.Mode,
		m.Words,
		m.TotalWords,
		m.Characters,
		m.Sentences,
		m.Paragraphs,
		m.Pages,
		m.ComplexWords,
		m.ReadingMinutes,
		m.LIX,
		m.Readability,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSnapshots returns snapshots matching filter, oldest first.
func (s *Store) ListSnapshots(ctx context.Context, filter model.HistoryFilter) ([]model.Snapshot, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Path != "" {
		clauses = append(clauses, "path = ?")
		args = append(args, filter.Path)
	}
	if filter.Since != nil {
		clauses = append(clauses, "recorded_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, recorded_at, path, mode, words, total_words, characters, sentences,
		paragraphs, pages, complex_words, reading_minutes, lix, readability
		FROM snapshots
		WHERE %s
		ORDER BY recorded_at ASC, id ASC`, strings.Join(clauses, " AND "))
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

	var snapshots []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var recordedAt string
		m := &snap.Metrics
		if err := rows.Scan(&snap.ID, &recordedAt, &snap.Path, &snap.Mode,
			&m.Words, &m.TotalWords, &m.Characters, &m.Sentences, &m.Paragraphs,
			&m.Pages, &m.ComplexWords, &m.ReadingMinutes, &m.LIX, &m.Readability); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, err
		}
		snap.RecordedAt = parsed
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ListPaths returns every recorded path with its snapshot count.
func (s *Store) ListPaths(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, COUNT(*) FROM snapshots GROUP BY path ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[string]int{}
	for rows.Next() {
		var path string
		var count int
		if err := rows.Scan(&path, &count); err != nil {
			return nil, err
		}
		result[path] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
