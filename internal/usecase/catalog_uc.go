package usecase

import (
	"context"

	"github.com/google/uuid"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// CatalogUseCase manages the service/product catalog.
type CatalogUseCase struct {
	repo repository.ProductRepository
}

func NewCatalogUseCase(repo repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

func (uc *CatalogUseCase) Create(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return uc.repo.Save(ctx, repository.NoTX, p)
}

func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

func (uc *CatalogUseCase) List(ctx context.Context) ([]*model.Product, error) {
	return uc.repo.ListAll(ctx, repository.NoTX)
}

func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, repository.NoTX, id)
}
