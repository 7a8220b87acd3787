package engine

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
)

// The header bytes at offsets 18 and 19 are 2 for WAL databases and 1 for
// rollback journal databases.
const (
	headerWriteVersion = 18
	headerReadVersion  = 19
)

// RollbackJournal returns image with its header marked as a rollback journal
// database, so engines without WAL support can open it. image itself is not
// modified; it is returned as is when no change is needed.
func RollbackJournal(image []byte) []byte {
	if len(image) <= headerReadVersion {
		return image
	}
	if image[headerWriteVersion] == 1 && image[headerReadVersion] == 1 {
		return image
	}
	out := make([]byte, len(image))
	copy(out, image)
	out[headerWriteVersion] = 1
	out[headerReadVersion] = 1
	return out
}

// ImageSize reports the size in bytes of the database behind db from its
// page count and page size, without serializing it.
func ImageSize(ctx context.Context, db dbx.DBTX) (int, error) {
	var pages, pageSize int
	if err := db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pages); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	if err := db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&pageSize); err != nil {
		return 0, fmt.Errorf("page size: %w", err)
	}
	return pages * pageSize, nil
}
