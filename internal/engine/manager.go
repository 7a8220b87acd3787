package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

var ensureSchema = EnsureSchema

type Manager struct {
	backend Backend
	log     logging.Logger

	mu    sync.RWMutex
	db    *sql.DB
	group singleflight.Group
}

func NewManager(backend Backend, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop{}
	}
	return &Manager{
		backend: backend,
		log:     log.With("module", "engine", "backend", backend.Name()),
	}
}

// Backend returns the backend name.
func (m *Manager) Backend() string { return m.backend.Name() }

// Ready reports whether a live engine is held.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db != nil
}

// Stats returns connection pool statistics of the live engine, or zero
// values when none is held.
func (m *Manager) Stats() sql.DBStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.db == nil {
		return sql.DBStats{}
	}
	return m.db.Stats()
}

// Initialize returns the live engine, opening it on first use. Failures wrap
// common.ErrEngineUnavailable and leave nothing cached.
func (m *Manager) Initialize(ctx context.Context) (*sql.DB, error) {
	m.mu.RLock()
	db := m.db
	m.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := m.group.Do("init", func() (any, error) {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.db != nil {
			return m.db, nil
		}

		db, err := m.backend.Open(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: open: %w", common.ErrEngineUnavailable, err)
		}

		if err := ensureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: schema: %w", common.ErrEngineUnavailable, err)
		}

		m.db = db
		m.log.Info(ctx, "engine ready")
		return db, nil
	})
	if err != nil {
		m.log.Error(ctx, "engine initialization failed", "error", err)
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close drops the live engine. The next Initialize opens a new one.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeLocked()
}

func (m *Manager) closeLocked() error {
	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	if err != nil {
		return fmt.Errorf("close engine: %w", err)
	}
	return nil
}

// Reload closes the live engine and opens it again from durable state.
func (m *Manager) Reload(ctx context.Context) error {
	if err := m.Close(); err != nil {
		m.log.Warn(ctx, "close before reload failed", "error", err)
	}
	_, err := m.Initialize(ctx)
	return err
}

// Shutdown closes the live engine and the backend.
func (m *Manager) Shutdown() error {
	return errors.Join(m.Close(), m.backend.Close())
}

// Replace swaps the live engine for one built from image. The image is
// staged and migrated first; if either step fails the live engine is left
// as it was and the error wraps common.ErrInvalidImage.
func (m *Manager) Replace(ctx context.Context, image []byte) error {
	staged, err := m.backend.Stage(ctx, image)
	if err != nil {
		return fmt.Errorf("%w: stage: %w", common.ErrInvalidImage, err)
	}

	if err := ensureSchema(ctx, staged.DB()); err != nil {
		if derr := staged.Discard(); derr != nil {
			m.log.Warn(ctx, "discard staged engine failed", "error", derr)
		}
		return fmt.Errorf("%w: schema: %w", common.ErrInvalidImage, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	db, err := staged.Commit(ctx, m.db)
	if err != nil {
		m.db = nil
		return fmt.Errorf("commit staged engine: %w", err)
	}
	m.db = db
	m.log.Info(ctx, "engine replaced", "bytes", len(image))
	return nil
}

// Export returns the serialized image of the live engine.
func (m *Manager) Export(ctx context.Context) ([]byte, error) {
	db, err := m.live(ctx)
	if err != nil {
		return nil, err
	}
	defer m.mu.RUnlock()

	data, err := m.backend.Serialize(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("serialize engine: %w", err)
	}
	return data, nil
}

// Persist hands the live engine to the backend's durability step.
func (m *Manager) Persist(ctx context.Context) error {
	db, err := m.live(ctx)
	if err != nil {
		return err
	}
	defer m.mu.RUnlock()

	if err := m.backend.Persist(ctx, db); err != nil {
		return fmt.Errorf("persist engine: %w", err)
	}
	return nil
}

// live initializes the engine and returns it with m.mu read-locked.
func (m *Manager) live(ctx context.Context) (*sql.DB, error) {
	if _, err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	if m.db == nil {
		m.mu.RUnlock()
		return nil, fmt.Errorf("%w: engine closed", common.ErrEngineUnavailable)
	}
	return m.db, nil
}
