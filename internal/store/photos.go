package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/dmitrijs2005/tripkeeper/internal/repositories/photos"
)

func (s *Store) InsertPhoto(ctx context.Context, in models.PhotoInput) (p *models.Photo, err error) {
	defer s.track(ctx, "insert_photo", time.Now(), &err)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	p, err = photos.NewSQLiteRepository(db).Insert(ctx, in, s.timestamp())
	if err != nil {
		return nil, err
	}

	if err := s.autosave(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// InsertPhotosBatch inserts all inputs in one transaction. A failing row,
// including one that does not validate, rolls back the whole batch.
func (s *Store) InsertPhotosBatch(ctx context.Context, in []models.PhotoInput) (out []models.Photo, err error) {
	defer s.track(ctx, "insert_photos_batch", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	out = make([]models.Photo, 0, len(in))
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := photos.NewSQLiteRepository(tx)
		for i, row := range in {
			if err := row.Validate(); err != nil {
				return fmt.Errorf("photo %d: %w", i, err)
			}
			p, err := repo.Insert(ctx, row, s.timestamp())
			if err != nil {
				return fmt.Errorf("photo %d: %w", i, err)
			}
			out = append(out, *p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(out) > 0 {
		if err := s.autosave(ctx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ListPhotos returns every photo, newest first. A tags or exif column that
// does not decode is replaced by [] or nil and logged.
func (s *Store) ListPhotos(ctx context.Context) (out []models.Photo, err error) {
	defer s.track(ctx, "list_photos", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := photos.NewSQLiteRepository(db).List(ctx)
	if err != nil {
		return nil, err
	}

	out = make([]models.Photo, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.decode(ctx, row))
	}
	return out, nil
}

func (s *Store) decode(ctx context.Context, row photos.Row) models.Photo {
	p, err := row.Photo()
	if err != nil {
		s.log.Warn(ctx, "photo column decode failed, using fallback", "id", row.ID, "error", err)
	}
	return p
}

// GetPhoto returns (nil, nil) when no photo has the id.
func (s *Store) GetPhoto(ctx context.Context, id int64) (p *models.Photo, err error) {
	defer s.track(ctx, "get_photo", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	row, err := photos.NewSQLiteRepository(db).GetByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	photo := s.decode(ctx, *row)
	return &photo, nil
}

// UpdatePhoto overwrites title, location, date and tags. Img and exif are
// fixed at insert. The result is filled in even when no row matched; check
// Matched.
func (s *Store) UpdatePhoto(ctx context.Context, id int64, u models.PhotoUpdate) (res *models.PhotoUpdateResult, err error) {
	defer s.track(ctx, "update_photo", time.Now(), &err)

	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	updatedAt := s.timestamp()
	matched, err := photos.NewSQLiteRepository(db).Update(ctx, id, u, updatedAt)
	if err != nil {
		return nil, err
	}

	if matched {
		if err := s.autosave(ctx); err != nil {
			return nil, err
		}
	}

	tags := u.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.PhotoUpdateResult{
		ID:        id,
		Title:     u.Title,
		Location:  u.Location,
		Date:      u.Date,
		Tags:      tags,
		UpdatedAt: updatedAt,
		Matched:   matched,
	}, nil
}

// DeletePhoto removes one photo and reports whether it existed.
func (s *Store) DeletePhoto(ctx context.Context, id int64) (deleted bool, err error) {
	defer s.track(ctx, "delete_photo", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return false, err
	}

	deleted, err = photos.NewSQLiteRepository(db).DeleteByID(ctx, id)
	if err != nil || !deleted {
		return false, err
	}

	if err := s.autosave(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// DeletePhotosBatch removes all ids in one transaction and returns how many
// rows were deleted. Absent ids are skipped.
func (s *Store) DeletePhotosBatch(ctx context.Context, ids []int64) (n int, err error) {
	defer s.track(ctx, "delete_photos_batch", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return 0, err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = photos.NewSQLiteRepository(tx).DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	if n > 0 {
		if err := s.autosave(ctx); err != nil {
			return 0, err
		}
	}
	return n, nil
}
