package usecase

import (
	"context"

	"github.com/google/uuid"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// PlanUseCase manages the subscription plan catalog.
type PlanUseCase struct {
	repo repository.PlanRepository
}

// NewPlanUseCase constructs a PlanUseCase.
func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// Create saves a new plan, assigning an ID when absent.
func (uc *PlanUseCase) Create(ctx context.Context, plan *model.Plan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	return uc.repo.Save(ctx, repository.NoTX, plan)
}

// Update saves changes to an existing plan. Subscriptions keep their
// snapshotted price either way.
func (uc *PlanUseCase) Update(ctx context.Context, plan *model.Plan) error {
	if _, err := uc.repo.FindByID(ctx, repository.NoTX, plan.ID); err != nil {
		return err
	}
	return uc.repo.Save(ctx, repository.NoTX, plan)
}

// Get retrieves a plan by ID.
func (uc *PlanUseCase) Get(ctx context.Context, id string) (*model.Plan, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

// List returns all plans.
func (uc *PlanUseCase) List(ctx context.Context) ([]*model.Plan, error) {
	return uc.repo.ListAll(ctx, repository.NoTX)
}

// Delete removes a plan.
func (uc *PlanUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, repository.NoTX, id)
}
