package repository

import (
	"context"

	"mortgage-planner/domain"
)

// PlanRepository keeps a history of computed refinance plans.
type PlanRepository interface {
	Save(ctx context.Context, input domain.RefinancePlanInput, result domain.RefinancePlanResult) error
}
