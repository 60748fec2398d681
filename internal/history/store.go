package history

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	ts INTEGER NOT NULL,
	level TEXT NOT NULL,
	operation TEXT NOT NULL DEFAULT '',
	target TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_seq ON entries(seq);
`

// Store persists operation history in a SQLite database.
type Store struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// Open creates or opens the history database at path.
// The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &OpenError{Path: path, Cause: err}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, &OpenError{Path: path, Cause: err}
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY between our own goroutines.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &OpenError{Path: path, Cause: fmt.Errorf("failed to initialize schema: %w", err)}
	}

	return &Store{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Record appends a new entry stamped with the current time.
func (s *Store) Record(ctx context.Context, level, operation, target, message string) (Entry, error) {
	return s.insert(ctx, Entry{
		Time:      s.now(),
		Level:     level,
		Operation: operation,
		Target:    target,
		Message:   message,
	})
}

// Append stores an entry produced elsewhere, keeping its timestamp.
func (s *Store) Append(e Entry) error {
	_, err := s.insert(context.Background(), e)
	return err
}

func (s *Store) insert(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, ErrClosed
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Time.IsZero() {
		e.Time = s.now()
	}

	// seq is assigned inside the statement so processes sharing the file never collide.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (id, seq, ts, level, operation, target, message)
		 SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ? FROM entries`,
		e.ID, e.Time.UnixNano(), e.Level, e.Operation, e.Target, e.Message)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record history entry: %w", err)
	}
	return e, nil
}

// List returns up to limit entries, newest first. A limit below 1 returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, ts, level, operation, target, message FROM entries ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// Export writes every entry, oldest first, one "LEVEL [time]: message" line each.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	entries, err := s.query(ctx, `SELECT id, ts, level, operation, target, message FROM entries ORDER BY seq ASC`)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, e.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveLogs writes the exported history to path, replacing any existing file.
func (s *Store) SaveLogs(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	if err := s.Export(ctx, f); err != nil {
		f.Close()
		return &SaveError{Path: path, Cause: err}
	}
	if err := f.Close(); err != nil {
		return &SaveError{Path: path, Cause: err}
	}
	return nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Level, &e.Operation, &e.Target, &e.Message); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.Time = time.Unix(0, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
