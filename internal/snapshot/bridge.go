package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Opener opens the underlying durable store.
type Opener func(ctx context.Context) (Store, error)

// Bridge reads and writes the engine image under a single fixed key.
type Bridge struct {
	key  string
	open Opener
	log  logging.Logger
	now  func() time.Time

	mu    sync.Mutex
	store Store
	group singleflight.Group
}

func NewBridge(key string, open Opener, log logging.Logger) *Bridge {
	if log == nil {
		log = logging.Nop{}
	}
	return &Bridge{
		key:  key,
		open: open,
		log:  log.With("module", "snapshot"),
		now:  time.Now,
	}
}

// Key returns the record id the bridge writes under.
func (b *Bridge) Key() string { return b.key }

// getStore returns the cached store, opening it on first use. A failed open
// is not cached.
func (b *Bridge) getStore(ctx context.Context) (Store, error) {
	b.mu.Lock()
	st := b.store
	b.mu.Unlock()
	if st != nil {
		return st, nil
	}

	v, err, _ := b.group.Do("open", func() (any, error) {
		b.mu.Lock()
		if b.store != nil {
			st := b.store
			b.mu.Unlock()
			return st, nil
		}
		b.mu.Unlock()

		st, err := b.open(ctx)
		if err != nil {
			return nil, err
		}

		b.mu.Lock()
		b.store = st
		b.mu.Unlock()
		b.log.Debug(ctx, "snapshot store opened")
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return v.(Store), nil
}

// Persist writes data as the current snapshot.
func (b *Bridge) Persist(ctx context.Context, data []byte) error {
	st, err := b.getStore(ctx)
	if err != nil {
		return err
	}

	rec := Record{ID: b.key, Data: data, Timestamp: b.now().UTC()}
	if err := st.Put(ctx, rec); err != nil {
		return fmt.Errorf("persist snapshot %q: %w", b.key, err)
	}

	b.log.Debug(ctx, "snapshot persisted", "key", b.key, "bytes", len(data))
	return nil
}

// Restore returns the current snapshot bytes, or (nil, nil) when none was
// ever written.
func (b *Bridge) Restore(ctx context.Context) ([]byte, error) {
	st, err := b.getStore(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := st.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot %q: %w", b.key, err)
	}
	if rec == nil {
		b.log.Debug(ctx, "no snapshot found", "key", b.key)
		return nil, nil
	}

	b.log.Debug(ctx, "snapshot restored", "key", b.key, "bytes", len(rec.Data), "timestamp", rec.Timestamp)
	return rec.Data, nil
}

// Close releases the store if it was opened.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.store == nil {
		return nil
	}
	err := b.store.Close()
	b.store = nil
	return err
}
