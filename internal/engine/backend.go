package engine

import (
	"context"
	"database/sql"
)

// Backend opens, serializes and persists one kind of engine.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Open returns a ready engine, hydrated from durable state when there
	// is any.
	Open(ctx context.Context) (*sql.DB, error)

	// Stage builds a new engine from a serialized image without touching
	// the live one.
	Stage(ctx context.Context, image []byte) (Staged, error)

	// Serialize returns the full byte image of db.
	Serialize(ctx context.Context, db *sql.DB) ([]byte, error)

	// Persist makes the current state of db durable.
	Persist(ctx context.Context, db *sql.DB) error

	// Close releases backend resources. Engines returned by Open are closed
	// by their owner.
	Close() error
}

// Staged is an engine built by Backend.Stage that has not been swapped in.
type Staged interface {
	DB() *sql.DB

	// Commit makes the staged engine the live one and returns its handle.
	// live (possibly nil) is closed whether or not Commit succeeds.
	Commit(ctx context.Context, live *sql.DB) (*sql.DB, error)

	// Discard releases the staged engine.
	Discard() error
}
