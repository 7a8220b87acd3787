// Package file is the host engine backend: SQLite (modernc.org/sqlite)
// backed directly by a database file in WAL mode. The file is its own
// durable state; Persist only checkpoints the WAL into it.
package file

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

const driverName = "sqlite"

const pragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

func openEngine(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path+pragmas)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func removeSidecars(path string) error {
	var errs []error
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkpoint(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}

type Backend struct {
	path string
	log  logging.Logger
}

var _ engine.Backend = (*Backend)(nil)

func New(path string, log logging.Logger) *Backend {
	if log == nil {
		log = logging.Nop{}
	}
	return &Backend{path: path, log: log.With("module", "engine.file")}
}

func (b *Backend) Name() string { return "file" }

// Path returns the live database file.
func (b *Backend) Path() string { return b.path }

func (b *Backend) Open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := openEngine(ctx, b.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b.path, err)
	}
	b.log.Info(ctx, "database file opened", "path", b.path)
	return db, nil
}

// Serialize writes a consistent copy of db with VACUUM INTO and returns its
// bytes. The copy is marked as a rollback journal database so it can be
// opened by engines that do not support WAL.
func (b *Backend) Serialize(ctx context.Context, db *sql.DB) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tripkeeper-export-*")
	if err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "export.db")
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, target); err != nil {
		return nil, fmt.Errorf("vacuum into: %w", err)
	}

	image, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return engine.RollbackJournal(image), nil
}

func (b *Backend) Persist(ctx context.Context, db *sql.DB) error {
	return checkpoint(ctx, db)
}

func (b *Backend) stagingPath() string { return b.path + ".staging" }

// Stage writes image next to the live file and opens it there.
func (b *Backend) Stage(ctx context.Context, image []byte) (engine.Staged, error) {
	path := b.stagingPath()
	if err := removeStaging(path); err != nil {
		return nil, fmt.Errorf("remove stale staging file: %w", err)
	}

	if err := os.WriteFile(path, image, 0o600); err != nil {
		return nil, fmt.Errorf("write staging file: %w", err)
	}

	db, err := openEngine(ctx, path)
	if err != nil {
		_ = removeStaging(path)
		return nil, fmt.Errorf("open staging file: %w", err)
	}
	return &staged{backend: b, path: path, db: db}, nil
}

func removeStaging(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return removeSidecars(path)
}

func (b *Backend) Close() error { return nil }

type staged struct {
	backend *Backend
	path    string
	db      *sql.DB
}

func (s *staged) DB() *sql.DB { return s.db }

// Commit folds the staged WAL into the staging file, closes both engines,
// renames the staging file over the live one and reopens it.
func (s *staged) Commit(ctx context.Context, live *sql.DB) (*sql.DB, error) {
	b := s.backend

	cerr := checkpoint(ctx, s.db)
	if err := errors.Join(cerr, s.db.Close()); err != nil {
		if live != nil {
			_ = live.Close()
		}
		_ = removeStaging(s.path)
		return nil, fmt.Errorf("close staged engine: %w", err)
	}

	if live != nil {
		if err := checkpoint(ctx, live); err != nil {
			b.log.Warn(ctx, "checkpoint before replace failed", "error", err)
		}
		if err := live.Close(); err != nil {
			b.log.Warn(ctx, "close live engine failed", "error", err)
		}
	}

	if err := removeSidecars(b.path); err != nil {
		return nil, fmt.Errorf("remove wal files: %w", err)
	}
	if err := removeSidecars(s.path); err != nil {
		return nil, fmt.Errorf("remove staging wal files: %w", err)
	}
	if err := os.Rename(s.path, b.path); err != nil {
		return nil, fmt.Errorf("rename staging file: %w", err)
	}

	db, err := openEngine(ctx, b.path)
	if err != nil {
		return nil, fmt.Errorf("reopen %s: %w", b.path, err)
	}
	return db, nil
}

func (s *staged) Discard() error {
	return errors.Join(s.db.Close(), removeStaging(s.path))
}
