package snapshot

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripkeeper/internal/cryptox"
)

type sealedStore struct {
	inner      Store
	passphrase []byte
}

// Sealed wraps s so that record data is encrypted with a key derived from
// passphrase before it reaches the store.
func Sealed(s Store, passphrase []byte) Store {
	return &sealedStore{inner: s, passphrase: passphrase}
}

func (s *sealedStore) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.inner.Get(ctx, id)
	if err != nil || rec == nil {
		return rec, err
	}

	plain, err := cryptox.Open(s.passphrase, rec.Data)
	if err != nil {
		return nil, fmt.Errorf("unseal record %q: %w", id, err)
	}
	rec.Data = plain
	return rec, nil
}

func (s *sealedStore) Put(ctx context.Context, rec Record) error {
	sealed, err := cryptox.Seal(s.passphrase, rec.Data)
	if err != nil {
		return fmt.Errorf("seal record %q: %w", rec.ID, err)
	}
	rec.Data = sealed
	return s.inner.Put(ctx, rec)
}

func (s *sealedStore) Close() error { return s.inner.Close() }
