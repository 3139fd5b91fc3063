package repository

import (
	"context"
	"sync"

	"mortgage-planner/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.RefinancePlanResult
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data: []domain.RefinancePlanResult{},
	}
}

// Save stores the plan result in memory.
func (r *PlanRepositoryMemory) Save(
	_ context.Context,
	input domain.RefinancePlanInput,
	result domain.RefinancePlanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, result)
	return nil
}
