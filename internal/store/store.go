package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/dmitrijs2005/tripkeeper/internal/metrics"
)

// Engine is the lifecycle surface the store needs. *engine.Manager
// implements it.
type Engine interface {
	Initialize(ctx context.Context) (*sql.DB, error)
	Reload(ctx context.Context) error
	Close() error
	Replace(ctx context.Context, image []byte) error
	Export(ctx context.Context) ([]byte, error)
	Persist(ctx context.Context) error
}

type Options struct {
	AutoSave bool
	Logger   logging.Logger
	Metrics  *metrics.Metrics
	// Now overrides the clock used for created_at/updated_at.
	Now func() time.Time
}

type Store struct {
	engine   Engine
	autoSave bool
	log      logging.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu sync.RWMutex
}

func New(e Engine, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logging.Nop{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		engine:   e,
		autoSave: opts.AutoSave,
		log:      log.With("module", "store"),
		metrics:  opts.Metrics,
		now:      now,
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(common.TimestampLayout)
}

func (s *Store) ensureReady(ctx context.Context) (*sql.DB, error) {
	return s.engine.Initialize(ctx)
}

// autosave persists after a committed mutation when AutoSave is on.
func (s *Store) autosave(ctx context.Context) error {
	if !s.autoSave {
		return nil
	}
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	if err := s.engine.Persist(ctx); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// track records metrics and logs the outcome of one operation. errp is read
// when the deferred call runs.
func (s *Store) track(ctx context.Context, op string, start time.Time, errp *error) {
	err := *errp
	s.metrics.Observe(op, start, err)

	switch {
	case err == nil:
		s.log.Debug(ctx, "operation done", "op", op, "elapsed", time.Since(start))
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrInvalidImage):
		s.log.Info(ctx, "operation rejected", "op", op, "error", err)
	default:
		s.log.Error(ctx, "operation failed", "op", op, "error", err)
	}
}

// Save persists the engine regardless of AutoSave.
func (s *Store) Save(ctx context.Context) (err error) {
	defer s.track(ctx, "save", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist(ctx)
}

// Reload drops the live engine and opens it again from durable state.
// Unsaved changes are lost.
func (s *Store) Reload(ctx context.Context) (err error) {
	defer s.track(ctx, "reload", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Reload(ctx)
}

// Close releases the engine. The next operation re-initializes it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Close()
}
