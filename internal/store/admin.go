package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/dmitrijs2005/tripkeeper/internal/repositories/photos"
	"github.com/dmitrijs2005/tripkeeper/internal/repositories/plans"
)

// DatabaseFile is a serialized engine image ready to be saved.
type DatabaseFile struct {
	Filename string
	Data     []byte
}

// GetStats counts plans and photos and reports the database size.
func (s *Store) GetStats(ctx context.Context) (st models.Stats, err error) {
	defer s.track(ctx, "get_stats", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	nPlans, err := plans.NewSQLiteRepository(db).Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	nPhotos, err := photos.NewSQLiteRepository(db).Count(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	size, err := engine.ImageSize(ctx, db)
	if err != nil {
		return models.Stats{}, err
	}
	return models.NewStats(nPlans, nPhotos, size), nil
}

// ClearAll deletes every photo, plan and plan detail in one transaction and
// persists the empty state.
func (s *Store) ClearAll(ctx context.Context) (err error) {
	defer s.track(ctx, "clear_all", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := photos.NewSQLiteRepository(tx).DeleteAll(ctx); err != nil {
			return err
		}
		return plans.NewSQLiteRepository(tx).DeleteAll(ctx)
	})
	if err != nil {
		return err
	}
	return s.persist(ctx)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteNullable(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

// ExportSQLText renders every plan as an INSERT statement under a header
// comment carrying the generation time.
func (s *Store) ExportSQLText(ctx context.Context) (out string, err error) {
	defer s.track(ctx, "export_sql", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return "", err
	}

	all, err := plans.NewSQLiteRepository(db).List(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("-- Travel plans export\n")
	fmt.Fprintf(&b, "-- Generated: %s\n\n", s.timestamp())
	for _, p := range all {
		fmt.Fprintf(&b,
			"INSERT INTO travel_plans (id, destination, start_date, days, budget, created_at, updated_at) VALUES (%d, %s, %s, %s, %s, %s, %s);\n",
			p.ID, quote(p.Destination), quote(p.StartDate), strconv.Itoa(p.Days), quote(p.Budget), quote(p.CreatedAt), quoteNullable(p.UpdatedAt),
		)
	}
	return b.String(), nil
}

// ExportDatabaseFile returns the engine image named travel-data-YYYY-MM-DD.db.
func (s *Store) ExportDatabaseFile(ctx context.Context) (f *DatabaseFile, err error) {
	defer s.track(ctx, "export_db", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.ensureReady(ctx); err != nil {
		return nil, err
	}

	data, err := s.engine.Export(ctx)
	if err != nil {
		return nil, err
	}
	return &DatabaseFile{
		Filename: "travel-data-" + s.now().UTC().Format(time.DateOnly) + ".db",
		Data:     data,
	}, nil
}

// ImportDatabaseFile replaces ALL state with the image read from r and
// persists it. Input without the SQLite header is rejected with
// common.ErrInvalidImage before the engine is touched.
func (s *Store) ImportDatabaseFile(ctx context.Context, r io.Reader) (err error) {
	defer s.track(ctx, "import_db", time.Now(), &err)

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	if !bytes.HasPrefix(data, []byte(common.SQLiteHeader)) {
		return fmt.Errorf("%w: file does not start with the SQLite header", common.ErrInvalidImage)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Replace(ctx, data); err != nil {
		return err
	}
	return s.persist(ctx)
}
