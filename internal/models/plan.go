// Package models defines the travel plan and photo records stored by
// tripkeeper, their input shapes, and the JSON codec for photo columns.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
)

// TravelPlan is a stored itinerary header.
type TravelPlan struct {
	ID          int64   `json:"id"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"startDate"`
	Days        int     `json:"days"`
	Budget      string  `json:"budget"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

// PlanInput carries the caller-supplied fields of a new plan.
type PlanInput struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	Days        int    `json:"days"`
	Budget      string `json:"budget"`
}

// Validate reports a common.ErrInvalidInput for missing required fields.
func (in PlanInput) Validate() error {
	switch {
	case strings.TrimSpace(in.Destination) == "":
		return fmt.Errorf("%w: destination is required", common.ErrInvalidInput)
	case strings.TrimSpace(in.StartDate) == "":
		return fmt.Errorf("%w: startDate is required", common.ErrInvalidInput)
	case in.Days <= 0:
		return fmt.Errorf("%w: days must be positive", common.ErrInvalidInput)
	case strings.TrimSpace(in.Budget) == "":
		return fmt.Errorf("%w: budget is required", common.ErrInvalidInput)
	}
	return nil
}
