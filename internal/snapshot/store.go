package snapshot

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// Record is one durable snapshot.
type Record struct {
	ID        string
	Data      []byte
	Timestamp time.Time
}

// Store is a durable key/value record store.
//
// Get returns (nil, nil) when no record with the id exists.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, rec Record) error
	Close() error
}

// MemoryStore keeps records in process memory. Nothing survives a restart;
// it backs tests and the CLI's throwaway mode.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	rec.Data = bytes.Clone(rec.Data)
	return &rec, nil
}

func (m *MemoryStore) Put(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec.Data = bytes.Clone(rec.Data)
	m.records[rec.ID] = rec
	return nil
}

func (m *MemoryStore) Close() error { return nil }
