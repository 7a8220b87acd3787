package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tripkeeper/internal/models"
)

// idArg returns args[0] as an id, prompting when no argument was given.
func (a *App) idArg(args []string, prompt string) (int64, error) {
	if len(args) == 0 {
		return GetInt(a.reader, prompt, a.out)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return id, nil
}

func (a *App) Plans(ctx context.Context, _ []string) error {
	all, err := a.store.ListPlans(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		a.printf("No plans yet\n")
		return nil
	}
	for _, p := range all {
		a.printf("#%d  %s  from %s, %d days, budget %s\n", p.ID, p.Destination, p.StartDate, p.Days, p.Budget)
	}
	return nil
}

func (a *App) AddPlan(ctx context.Context, _ []string) error {
	var in models.PlanInput
	var err error

	if in.Destination, err = a.ask("Destination"); err != nil {
		return err
	}
	if in.StartDate, err = a.ask("Start date (YYYY-MM-DD)"); err != nil {
		return err
	}
	days, err := GetInt(a.reader, "Days", a.out)
	if err != nil {
		return err
	}
	in.Days = int(days)
	if in.Budget, err = a.ask("Budget"); err != nil {
		return err
	}

	p, err := a.store.InsertPlan(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Plan #%d added\n", p.ID)
	return nil
}

func (a *App) DeletePlan(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Plan id to delete")
	if err != nil {
		return err
	}
	deleted, err := a.store.DeletePlan(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		a.printf("Plan #%d not found\n", id)
		return nil
	}
	a.printf("Plan #%d deleted\n", id)
	return nil
}
