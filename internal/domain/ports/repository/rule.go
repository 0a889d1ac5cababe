package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// DiscountRuleRepository is the port for discount rule lookup and admin CRUD.
// The pricing engine only reads active rules; missing rule sets are not an
// error there.
type DiscountRuleRepository interface {
	Save(ctx context.Context, tx Tx, r *model.DiscountRule) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.DiscountRule, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.DiscountRule, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.DiscountRule, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

// TaxRuleRepository is the port for tax rules.
type TaxRuleRepository interface {
	Save(ctx context.Context, tx Tx, r *model.TaxRule) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.TaxRule, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.TaxRule, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.TaxRule, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
