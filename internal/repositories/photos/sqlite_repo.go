package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

const columns = `id, title, location, photo_date, img_url, tags, exif_data, created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (Row, error) {
	var r Row
	err := s.Scan(&r.ID, &r.Title, &r.Location, &r.Date, &r.Img, &r.Tags, &r.Exif, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *SQLiteRepository) Insert(ctx context.Context, in models.PhotoInput, createdAt string) (*models.Photo, error) {
	tags, err := models.EncodeTags(in.Tags)
	if err != nil {
		return nil, err
	}
	exif, err := models.EncodeExif(in.Exif)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO photos (title, location, photo_date, img_url, tags, exif_data, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, in.Title, in.Location, in.Date, in.Img, tags, exif, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert photo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get photo id: %w", err)
	}

	outTags := in.Tags
	if outTags == nil {
		outTags = []string{}
	}
	outExif, err := models.DecodeExif(&exif)
	if err != nil {
		return nil, err
	}

	return &models.Photo{
		ID:        id,
		Title:     in.Title,
		Location:  in.Location,
		Date:      in.Date,
		Img:       in.Img,
		Tags:      outTags,
		Exif:      outExif,
		CreatedAt: createdAt,
		IsCustom:  true,
	}, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM photos ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photo rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Row, error) {
	row, err := scanRow(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM photos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %d: %w", id, err)
	}
	return &row, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, u models.PhotoUpdate, updatedAt string) (bool, error) {
	tags, err := models.EncodeTags(u.Tags)
	if err != nil {
		return false, err
	}

	query := `UPDATE photos SET title = ?, location = ?, photo_date = ?, tags = ?, updated_at = ?
			WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, u.Title, u.Location, u.Date, tags, updatedAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to update photo %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete photo %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// deleteChunk bounds the number of bound parameters per statement.
const deleteChunk = 500

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []int64) (int, error) {
	total := 0
	for start := 0; start < len(ids); start += deleteChunk {
		end := min(start+deleteChunk, len(ids))
		n, err := r.deleteIn(ctx, ids[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (r *SQLiteRepository) deleteIn(ctx context.Context, ids []int64) (int, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete photos: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos`); err != nil {
		return fmt.Errorf("failed to clear photos: %w", err)
	}
	return nil
}
