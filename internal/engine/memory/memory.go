// Package memory is the embedded engine backend: SQLite compiled to WASM
// (ncruces/go-sqlite3 under wazero) running entirely in memory. Its whole
// state is a byte image restored from and persisted to a snapshot.Bridge.
package memory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/ext/serdes"

	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot"
)

const (
	driverName = "sqlite3"
	schemaName = "main"
)

// Every :memory: connection is its own database, so the pool is pinned to
// one connection that never expires.
func openEngine(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverName, ":memory:")
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

type rawConn interface {
	Raw() *sqlite3.Conn
}

func withConn(ctx context.Context, db *sql.DB, fn func(c *sqlite3.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Raw(func(dc any) error {
		rc, ok := dc.(rawConn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", dc)
		}
		return fn(rc.Raw())
	})
}

func deserialize(ctx context.Context, db *sql.DB, image []byte) error {
	return withConn(ctx, db, func(c *sqlite3.Conn) error {
		return serdes.Deserialize(c, schemaName, engine.RollbackJournal(image))
	})
}

type Backend struct {
	bridge *snapshot.Bridge
	log    logging.Logger
}

var _ engine.Backend = (*Backend)(nil)

func New(bridge *snapshot.Bridge, log logging.Logger) *Backend {
	if log == nil {
		log = logging.Nop{}
	}
	return &Backend{bridge: bridge, log: log.With("module", "engine.memory")}
}

func (b *Backend) Name() string { return "memory" }

// Open restores the last snapshot into a fresh engine. With no snapshot the
// engine starts empty.
func (b *Backend) Open(ctx context.Context) (*sql.DB, error) {
	image, err := b.bridge.Restore(ctx)
	if err != nil {
		return nil, err
	}

	db, err := openEngine(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if image == nil {
		b.log.Info(ctx, "no snapshot, starting empty")
		return db, nil
	}

	if err := deserialize(ctx, db, image); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("deserialize snapshot: %w", err)
	}
	b.log.Info(ctx, "engine restored from snapshot", "bytes", len(image))
	return db, nil
}

func (b *Backend) Serialize(ctx context.Context, db *sql.DB) ([]byte, error) {
	var image []byte
	err := withConn(ctx, db, func(c *sqlite3.Conn) error {
		var err error
		image, err = serdes.Serialize(c, schemaName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

// Persist serializes db and writes the image through the bridge.
func (b *Backend) Persist(ctx context.Context, db *sql.DB) error {
	image, err := b.Serialize(ctx, db)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	return b.bridge.Persist(ctx, image)
}

func (b *Backend) Stage(ctx context.Context, image []byte) (engine.Staged, error) {
	db, err := openEngine(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := deserialize(ctx, db, image); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("deserialize image: %w", err)
	}
	return &staged{db: db}, nil
}

func (b *Backend) Close() error { return b.bridge.Close() }

type staged struct {
	db *sql.DB
}

func (s *staged) DB() *sql.DB { return s.db }

func (s *staged) Commit(_ context.Context, live *sql.DB) (*sql.DB, error) {
	if live != nil {
		_ = live.Close()
	}
	return s.db, nil
}

func (s *staged) Discard() error { return s.db.Close() }
