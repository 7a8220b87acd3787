package photos

import (
	"context"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

// Repository describes the operations on the photos table.
type Repository interface {
	// Insert stores a new photo stamped with createdAt.
	Insert(ctx context.Context, in models.PhotoInput, createdAt string) (*models.Photo, error)

	// List returns every photo row, newest first. The result is never nil.
	List(ctx context.Context) ([]Row, error)

	// GetByID returns (nil, nil) when no row has the id.
	GetByID(ctx context.Context, id int64) (*Row, error)

	// Update overwrites title, location, date, tags and updated_at and
	// reports whether a row matched.
	Update(ctx context.Context, id int64, u models.PhotoUpdate, updatedAt string) (bool, error)

	DeleteByID(ctx context.Context, id int64) (bool, error)

	// DeleteByIDs removes every listed id and returns how many rows went.
	DeleteByIDs(ctx context.Context, ids []int64) (int, error)

	Count(ctx context.Context) (int, error)

	DeleteAll(ctx context.Context) error
}
