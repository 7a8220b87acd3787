package plans

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripkeeper/internal/dbx"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, in models.PlanInput, createdAt string) (*models.TravelPlan, error) {
	query := `INSERT INTO travel_plans (destination, start_date, days, budget, created_at)
			VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, in.Destination, in.StartDate, in.Days, in.Budget, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get plan id: %w", err)
	}

	return &models.TravelPlan{
		ID:          id,
		Destination: in.Destination,
		StartDate:   in.StartDate,
		Days:        in.Days,
		Budget:      in.Budget,
		CreatedAt:   createdAt,
	}, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.TravelPlan, error) {
	query := `SELECT id, destination, start_date, days, budget, created_at, updated_at
			FROM travel_plans ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select plans: %w", err)
	}
	defer rows.Close()

	result := []models.TravelPlan{}
	for rows.Next() {
		var p models.TravelPlan
		if err := rows.Scan(&p.ID, &p.Destination, &p.StartDate, &p.Days, &p.Budget, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM travel_plans WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM travel_plans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count plans: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plan_details`); err != nil {
		return fmt.Errorf("failed to clear plan details: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM travel_plans`); err != nil {
		return fmt.Errorf("failed to clear plans: %w", err)
	}
	return nil
}
