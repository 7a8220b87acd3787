package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/dmitrijs2005/tripkeeper/internal/repositories/plans"
)

func (s *Store) InsertPlan(ctx context.Context, in models.PlanInput) (p *models.TravelPlan, err error) {
	defer s.track(ctx, "insert_plan", time.Now(), &err)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}

	p, err = plans.NewSQLiteRepository(db).Insert(ctx, in, s.timestamp())
	if err != nil {
		return nil, err
	}

	if err := s.autosave(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns every plan, newest first.
func (s *Store) ListPlans(ctx context.Context) (out []models.TravelPlan, err error) {
	defer s.track(ctx, "list_plans", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return nil, err
	}
	return plans.NewSQLiteRepository(db).List(ctx)
}

// DeletePlan removes a plan. Deleting an absent id is not an error; the
// result reports whether a row went away.
func (s *Store) DeletePlan(ctx context.Context, id int64) (deleted bool, err error) {
	defer s.track(ctx, "delete_plan", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ensureReady(ctx)
	if err != nil {
		return false, err
	}

	deleted, err = plans.NewSQLiteRepository(db).DeleteByID(ctx, id)
	if err != nil || !deleted {
		return false, err
	}

	if err := s.autosave(ctx); err != nil {
		return false, err
	}
	return true, nil
}
