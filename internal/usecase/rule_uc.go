package usecase

import (
	"context"

	"github.com/google/uuid"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// RuleUseCase is the admin CRUD surface over discount and tax rules. The
// pricing engine reads the same repositories but never writes.
type RuleUseCase struct {
	discounts repository.DiscountRuleRepository
	taxes     repository.TaxRuleRepository
}

func NewRuleUseCase(discounts repository.DiscountRuleRepository, taxes repository.TaxRuleRepository) *RuleUseCase {
	return &RuleUseCase{discounts: discounts, taxes: taxes}
}

func (uc *RuleUseCase) CreateDiscount(ctx context.Context, r *model.DiscountRule) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return uc.discounts.Save(ctx, repository.NoTX, r)
}

func (uc *RuleUseCase) ListDiscounts(ctx context.Context) ([]*model.DiscountRule, error) {
	return uc.discounts.ListAll(ctx, repository.NoTX)
}

func (uc *RuleUseCase) DeleteDiscount(ctx context.Context, id string) error {
	return uc.discounts.Delete(ctx, repository.NoTX, id)
}

func (uc *RuleUseCase) CreateTax(ctx context.Context, r *model.TaxRule) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return uc.taxes.Save(ctx, repository.NoTX, r)
}

func (uc *RuleUseCase) ListTaxes(ctx context.Context) ([]*model.TaxRule, error) {
	return uc.taxes.ListAll(ctx, repository.NoTX)
}

func (uc *RuleUseCase) DeleteTax(ctx context.Context, id string) error {
	return uc.taxes.Delete(ctx, repository.NoTX, id)
}
