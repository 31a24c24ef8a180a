// Package querylog records the searches the proxy forwards so operators can
// inspect traffic with "newsapp stats". Results are never stored.
package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one proxied request. Status is the provider's HTTP status for
// relayed responses and 500 when the provider could not be reached.
type Entry struct {
	Term       string
	Status     int
	Duration   time.Duration
	ServedAt   time.Time
	ErrMessage string
}

type TermCount struct {
	Term  string
	Count int
}

type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating query log dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS queries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			term        TEXT NOT NULL,
			status      INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			served_at   DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_queries_served ON queries(served_at DESC);
		CREATE INDEX IF NOT EXISTS idx_queries_term ON queries(term);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record stores one proxied request.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ServedAt.IsZero() {
		e.ServedAt = time.Now()
	}
	_, err := s.writeDB.ExecContext(ctx, `
		INSERT INTO queries (term, status, duration_ms, error, served_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Term, e.Status, e.Duration.Milliseconds(), e.ErrMessage, e.ServedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording query %q: %w", e.Term, err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.readDB.Query(`
		SELECT term, status, duration_ms, error, served_at FROM queries
		ORDER BY served_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.Term, &e.Status, &ms, &e.ErrMessage, &e.ServedAt); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		e.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

// TopTerms returns the most searched terms since the given time.
func (s *Store) TopTerms(since time.Time, limit int) ([]TermCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.readDB.Query(`
		SELECT term, COUNT(*) AS n FROM queries
		WHERE served_at >= ?
		GROUP BY term
		ORDER BY n DESC, term ASC
		LIMIT ?
	`, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying top terms: %w", err)
	}
	defer rows.Close()

	var out []TermCount
	for rows.Next() {
		var tc TermCount
		if err := rows.Scan(&tc.Term, &tc.Count); err != nil {
			return nil, fmt.Errorf("scanning term count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// Prune deletes entries older than retention and returns how many went.
func (s *Store) Prune(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC()
	res, err := s.writeDB.Exec("DELETE FROM queries WHERE served_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning queries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := s.writeDB.Exec("VACUUM"); err != nil {
			return n, fmt.Errorf("vacuum: %w", err)
		}
	}
	return n, nil
}

// Stats returns the number of logged queries, the failure count, and the
// database file size.
func (s *Store) Stats(dbPath string) (count, failures int, size int64, err error) {
	err = s.readDB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END), 0) FROM queries
	`).Scan(&count, &failures)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counting queries: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, failures, 0, fmt.Errorf("stat %s: %w", dbPath, err)
	}
	return count, failures, info.Size(), nil
}
