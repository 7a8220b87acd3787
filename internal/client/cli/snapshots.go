package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripkeeper/internal/client/config"
	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot/kvfile"
	"github.com/dmitrijs2005/tripkeeper/internal/snapshot/s3store"
)

// snapshotOpener returns the opener for the store kind named in c. A
// non-empty passphrase seals every record.
func snapshotOpener(c *config.Config, passphrase []byte) (snapshot.Opener, error) {
	var open snapshot.Opener

	switch c.SnapshotStore {
	case config.StoreMemory:
		ms := snapshot.NewMemoryStore()
		open = func(context.Context) (snapshot.Store, error) { return ms, nil }

	case config.StoreFile:
		dir := c.SnapshotDir
		open = func(ctx context.Context) (snapshot.Store, error) {
			s, err := kvfile.Open(ctx, dir)
			if err != nil {
				return nil, err
			}
			return s, nil
		}

	case config.StoreS3:
		cfg := s3store.Config{
			Region:    c.S3.Region,
			AccessKey: c.S3.AccessKey,
			SecretKey: c.S3.SecretKey,
			Bucket:    c.S3.Bucket,
			Endpoint:  c.S3.Endpoint,
			Prefix:    c.S3.Prefix,
		}
		open = func(ctx context.Context) (snapshot.Store, error) {
			s, err := s3store.New(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return s, nil
		}

	default:
		return nil, fmt.Errorf("%w: unknown snapshot store %q", common.ErrInvalidInput, c.SnapshotStore)
	}

	if len(passphrase) == 0 {
		return open, nil
	}

	inner := open
	return func(ctx context.Context) (snapshot.Store, error) {
		s, err := inner(ctx)
		if err != nil {
			return nil, err
		}
		return snapshot.Sealed(s, passphrase), nil
	}, nil
}
