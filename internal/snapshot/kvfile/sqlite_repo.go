package kvfile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot"

	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the snapshot directory.
const FileName = "snapshots.db"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
  id        TEXT PRIMARY KEY,
  data      BLOB NOT NULL,
  timestamp TEXT NOT NULL
);`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Migrate creates the snapshots table if it is missing.
func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*snapshot.Record, error) {
	var (
		data []byte
		ts   string
	)
	err := r.db.QueryRowContext(ctx, `SELECT data, timestamp FROM snapshots WHERE id = ?`, id).Scan(&data, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot[%s]: %w", id, err)
	}

	t, err := time.Parse(common.TimestampLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot[%s] timestamp: %w", id, err)
	}
	return &snapshot.Record{ID: id, Data: data, Timestamp: t}, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rec snapshot.Record) error {
	if rec.Data == nil {
		rec.Data = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, data, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, timestamp = excluded.timestamp
	`, rec.ID, rec.Data, rec.Timestamp.UTC().Format(common.TimestampLayout))
	if err != nil {
		return fmt.Errorf("failed to put snapshot[%s]: %w", rec.ID, err)
	}
	return nil
}

// Store is the file-backed snapshot.Store returned by Open.
type Store struct {
	*SQLiteRepository
	db *sql.DB
}

// Open creates dir if needed and opens (or creates) dir/snapshots.db.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure snapshot db: %w", err)
	}

	repo := NewSQLiteRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{SQLiteRepository: repo, db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }
