package usecase

import (
	"context"
	"math"
	"time"

	"salon-suite/internal/config"
	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// PricingUseCase computes a billing breakdown for a plan plus selected
// add-on services. The computation itself is pure; repositories are only
// touched to load the inputs.
type PricingUseCase interface {
	ComputeBilling(ctx context.Context, planID string, serviceIDs []string, customerID string, startDate time.Time) (*model.BillingBreakdown, error)
}

var _ PricingUseCase = (*pricingUC)(nil)

type pricingUC struct {
	plans     repository.PlanRepository
	products  repository.ProductRepository
	discounts repository.DiscountRuleRepository
	taxes     repository.TaxRuleRepository
	defaults  config.PricingConfig
	log       *zerolog.Logger
}

func NewPricingUseCase(
	plans repository.PlanRepository,
	products repository.ProductRepository,
	discounts repository.DiscountRuleRepository,
	taxes repository.TaxRuleRepository,
	defaults config.PricingConfig,
	logger *zerolog.Logger,
) PricingUseCase {
	return &pricingUC{
		plans:     plans,
		products:  products,
		discounts: discounts,
		taxes:     taxes,
		defaults:  defaults,
		log:       logger,
	}
}

func (p *pricingUC) ComputeBilling(ctx context.Context, planID string, serviceIDs []string, customerID string, startDate time.Time) (*model.BillingBreakdown, error) {
	plan, err := p.plans.FindByID(ctx, repository.NoTX, planID)
	if err != nil || plan.IsZero() {
		return nil, domain.ErrInvalidPlan
	}

	var selected []*model.Product
	if len(serviceIDs) > 0 {
		selected, err = p.products.FindByIDs(ctx, repository.NoTX, serviceIDs)
		if err != nil {
			return nil, err
		}
		if len(selected) != len(serviceIDs) {
			return nil, domain.ErrValidation
		}
	}

	// Missing rule sets mean "no discount / default tax", never an error.
	rules, err := p.discounts.ListActive(ctx, repository.NoTX)
	if err != nil {
		rules = nil
	}
	taxRules, err := p.taxes.ListActive(ctx, repository.NoTX)
	if err != nil {
		taxRules = nil
	}

	bb := computeBreakdown(plan, selected, customerID, startDate, rules, taxRules, p.defaults)
	if p.log != nil {
		p.log.Debug().
			Str("plan_id", plan.ID).
			Str("customer_id", customerID).
			Int64("total", bb.TotalAmount).
			Int64("remaining", bb.RemainingBalance).
			Msg("billing computed")
	}
	return bb, nil
}

// discountTier is one step of the rule-resolution order. Tiers run most
// specific first and exactly one matched rule applies; rules never stack
// across tiers.
type discountTier struct {
	name  string
	match func(r *model.DiscountRule, plan *model.Plan, customerID string) bool
}

var discountTiers = []discountTier{
	{
		name: "customer+plan",
		match: func(r *model.DiscountRule, plan *model.Plan, customerID string) bool {
			return customerID != "" && r.CustomerID == customerID && r.PlanID == plan.ID
		},
	},
	{
		name: "customer+interval",
		match: func(r *model.DiscountRule, plan *model.Plan, customerID string) bool {
			return customerID != "" && r.CustomerID == customerID && r.PlanID == "" &&
				r.MatchesInterval(plan.BillingInterval)
		},
	},
	{
		name: "plan",
		match: func(r *model.DiscountRule, plan *model.Plan, customerID string) bool {
			return r.CustomerID == "" && r.PlanID == plan.ID
		},
	},
	{
		name: "interval",
		match: func(r *model.DiscountRule, plan *model.Plan, customerID string) bool {
			return r.CustomerID == "" && r.PlanID == "" && r.MatchesInterval(plan.BillingInterval)
		},
	},
}

func resolveDiscountRule(rules []*model.DiscountRule, plan *model.Plan, customerID string, at time.Time) *model.DiscountRule {
	for _, tier := range discountTiers {
		for _, r := range rules {
			if r.InEffect(at) && tier.match(r, plan, customerID) {
				return r
			}
		}
	}
	return nil
}

func resolveTaxRule(rules []*model.TaxRule, interval model.BillingInterval) *model.TaxRule {
	for _, r := range rules {
		if r.IsActive && r.MatchesInterval(interval) {
			return r
		}
	}
	return nil
}

// computeBreakdown is the pure pricing pipeline. Calling it twice with the
// same inputs yields the same output.
func computeBreakdown(
	plan *model.Plan,
	selected []*model.Product,
	customerID string,
	startDate time.Time,
	rules []*model.DiscountRule,
	taxRules []*model.TaxRule,
	defaults config.PricingConfig,
) *model.BillingBreakdown {
	items := make([]model.SubscriptionItem, 0, len(selected))
	var serviceCost int64
	for _, prod := range selected {
		items = append(items, model.SubscriptionItem{
			ProductID: prod.ID,
			Name:      prod.Name,
			Quantity:  1,
			UnitPrice: prod.SalesPrice,
			Amount:    prod.SalesPrice,
		})
		serviceCost += prod.SalesPrice
	}

	var discountTotal int64
	var discountRuleID string
	if serviceCost > 0 {
		if rule := resolveDiscountRule(rules, plan, customerID, startDate); rule != nil {
			discountRuleID = rule.ID
			if len(rule.ApplicableProducts) > 0 {
				for _, it := range items {
					if rule.AppliesToProduct(it.ProductID) {
						discountTotal += rule.Deduction(it.Amount)
					}
				}
			} else {
				discountTotal = rule.Deduction(serviceCost)
			}
		} else {
			discountTotal = defaults.FallbackDiscounts[string(plan.BillingInterval)]
		}
	}

	taxableBase := serviceCost - discountTotal
	if taxableBase < 0 {
		taxableBase = 0
	}

	rate := defaults.DefaultTaxPercent
	var taxRuleID string
	if rule := resolveTaxRule(taxRules, plan.BillingInterval); rule != nil {
		rate = rule.Percentage
		taxRuleID = rule.ID
	}
	taxTotal := int64(math.Round(float64(taxableBase) * float64(rate) / 100))

	return &model.BillingBreakdown{
		PlanAmount:       plan.Price,
		ServiceCost:      serviceCost,
		DiscountTotal:    discountTotal,
		DiscountRuleID:   discountRuleID,
		TaxTotal:         taxTotal,
		TaxRuleID:        taxRuleID,
		TotalAmount:      taxableBase + taxTotal,
		RemainingBalance: plan.Price - taxableBase,
		StartDate:        startDate,
		EndDate:          plan.BillingInterval.AddTo(startDate),
		Items:            items,
	}
}
