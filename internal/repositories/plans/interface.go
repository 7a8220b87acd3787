package plans

import (
	"context"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

// Repository describes the operations on travel_plans.
type Repository interface {
	// Insert stores a new plan stamped with createdAt and returns it with
	// its assigned id.
	Insert(ctx context.Context, in models.PlanInput, createdAt string) (*models.TravelPlan, error)

	// List returns every plan, newest first. The result is never nil.
	List(ctx context.Context) ([]models.TravelPlan, error)

	// DeleteByID removes a plan and reports whether a row existed.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	Count(ctx context.Context) (int, error)

	// DeleteAll removes every plan and plan detail row.
	DeleteAll(ctx context.Context) error
}
