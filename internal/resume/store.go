package resume

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"sublift/internal/logging"
)

const schema = `CREATE TABLE IF NOT EXISTS completed_files (
    source_path TEXT PRIMARY KEY,
    run_id TEXT NOT NULL,
    completed_at TEXT NOT NULL
)`

// Store is a sqlite-backed journal of completed source files.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	path   string
	logger *slog.Logger
}

// Open connects to the journal at path, creating it when absent. A corrupt
// journal is discarded and recreated empty. The journal holds an exclusive
// file lock for its lifetime so concurrent runs cannot interleave writes.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithComponent(logger, "resume")

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire journal lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("journal %s is locked by another run", path)
	}

	db, err := openDB(path)
	if err != nil {
		logger.Warn("journal unreadable, starting empty", logging.Error(err), logging.String("path", path))
		os.Remove(path)
		db, err = openDB(path)
		if err != nil {
			lock.Unlock()
			return nil, fmt.Errorf("recreate journal: %w", err)
		}
	}

	return &Store{db: db, lock: lock, path: path, logger: logger}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// Close releases the database handle and the journal lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Load returns the set of source paths already marked done. Read failures
// degrade to an empty set.
func (s *Store) Load(ctx context.Context) map[string]struct{} {
	done := make(map[string]struct{})
	rows, err := s.db.QueryContext(ctx, `SELECT source_path FROM completed_files`)
	if err != nil {
		s.logger.Warn("load journal failed, resuming nothing", logging.Error(err))
		return done
	}
	defer rows.Close()
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			s.logger.Warn("scan journal row failed", logging.Error(err))
			return make(map[string]struct{})
		}
		done[path] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("read journal failed, resuming nothing", logging.Error(err))
		return make(map[string]struct{})
	}
	return done
}

// MarkDone records a finished source file. Re-marking an already recorded
// path updates its run and timestamp.
func (s *Store) MarkDone(ctx context.Context, sourcePath, runID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completed_files (source_path, run_id, completed_at) VALUES (?, ?, ?)
         ON CONFLICT(source_path) DO UPDATE SET run_id = excluded.run_id, completed_at = excluded.completed_at`,
		sourcePath, runID, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

// Clear drops every journal entry.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM completed_files`)
	if err != nil {
		return 0, fmt.Errorf("clear journal: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Count returns the number of recorded completions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM completed_files`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count journal: %w", err)
	}
	return count, nil
}
