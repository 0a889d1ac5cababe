package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// ProductRepository is the port for the service/product catalog.
type ProductRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Product) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, tx Tx, ids []string) ([]*model.Product, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Product, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
