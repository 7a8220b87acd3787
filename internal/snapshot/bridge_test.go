package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
	putErr error
	getErr error
	closed bool
}

func (f *failingStore) Get(ctx context.Context, id string) (*Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, id)
}

func (f *failingStore) Put(ctx context.Context, rec Record) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryStore.Put(ctx, rec)
}

func (f *failingStore) Close() error {
	f.closed = true
	return nil
}

func openerFor(s Store) Opener {
	return func(context.Context) (Store, error) { return s, nil }
}

func TestBridge_RestoreWithoutSnapshot_ReturnsNilNil(t *testing.T) {
	b := NewBridge("travel_db", openerFor(NewMemoryStore()), logging.Nop{})

	data, err := b.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestBridge_PersistThenRestore(t *testing.T) {
	st := NewMemoryStore()
	b := NewBridge("travel_db", openerFor(st), nil)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, b.Persist(ctx, []byte("image-1")))
	require.NoError(t, b.Persist(ctx, []byte("image-2")))

	data, err := b.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-2"), data)

	rec, err := st.Get(ctx, "travel_db")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "travel_db", rec.ID)
	assert.Equal(t, fixed, rec.Timestamp)
}

func TestBridge_PutErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	b := NewBridge("k", openerFor(&failingStore{MemoryStore: NewMemoryStore(), putErr: boom}), nil)

	err := b.Persist(context.Background(), []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `persist snapshot "k"`)
}

func TestBridge_GetErrorPropagates(t *testing.T) {
	boom := errors.New("io")
	b := NewBridge("k", openerFor(&failingStore{MemoryStore: NewMemoryStore(), getErr: boom}), nil)

	_, err := b.Restore(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestBridge_OpenIsSharedByConcurrentCallers(t *testing.T) {
	var calls atomic.Int32
	st := NewMemoryStore()
	b := NewBridge("k", func(context.Context) (Store, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return st, nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := b.Restore(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestBridge_FailedOpenIsNotCached(t *testing.T) {
	var calls int
	boom := errors.New("unavailable")
	st := NewMemoryStore()
	b := NewBridge("k", func(context.Context) (Store, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return st, nil
	}, nil)
	ctx := context.Background()

	err := b.Persist(ctx, []byte("x"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "open snapshot store")

	require.NoError(t, b.Persist(ctx, []byte("x")))
	assert.Equal(t, 2, calls)
}

func TestBridge_CloseReleasesStore(t *testing.T) {
	fs := &failingStore{MemoryStore: NewMemoryStore()}
	b := NewBridge("k", openerFor(fs), nil)

	require.NoError(t, b.Close(), "close before open is a no-op")

	_, err := b.Restore(context.Background())
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.True(t, fs.closed)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	data := []byte("abc")

	require.NoError(t, st.Put(ctx, Record{ID: "a", Data: data}))
	data[0] = 'z'

	rec, err := st.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), rec.Data)
}
