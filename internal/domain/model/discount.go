package model

import (
	"time"

	"salon-suite/internal/domain"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "Fixed"
	DiscountPercentage DiscountType = "Percentage"
)

// DiscountRule is a conditional price reduction. Scope fields are optional:
// an empty CustomerID/PlanID means "any", and Interval may be the All
// wildcard. ApplicableProducts narrows the rule to specific line items.
type DiscountRule struct {
	ID                 string
	Name               string
	Type               DiscountType
	Value              int64 // fixed amount, or percent when Type=Percentage
	CustomerID         string
	PlanID             string
	Interval           BillingInterval
	ApplicableProducts []string
	StartDate          *time.Time
	EndDate            *time.Time
	IsActive           bool
	CreatedAt          time.Time
}

func (r *DiscountRule) IsZero() bool { return r == nil || r.ID == "" }

// InEffect reports whether the rule is active and inside its validity
// window at the given instant. A nil boundary is open-ended.
func (r *DiscountRule) InEffect(at time.Time) bool {
	if r == nil || !r.IsActive {
		return false
	}
	if r.StartDate != nil && at.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && at.After(*r.EndDate) {
		return false
	}
	return true
}

// MatchesInterval reports whether the rule's interval scope covers the
// plan's billing interval. All is a wildcard.
func (r *DiscountRule) MatchesInterval(interval BillingInterval) bool {
	return r.Interval == IntervalAll || r.Interval == interval
}

// AppliesToProduct reports whether the rule targets the given product.
// A rule with no product scope applies to the whole service cost instead.
func (r *DiscountRule) AppliesToProduct(productID string) bool {
	for _, id := range r.ApplicableProducts {
		if id == productID {
			return true
		}
	}
	return false
}

// Deduction returns the monetary reduction the rule yields on base.
func (r *DiscountRule) Deduction(base int64) int64 {
	switch r.Type {
	case DiscountPercentage:
		return base * r.Value / 100
	default:
		return r.Value
	}
}

func NewDiscountRule(id, name string, typ DiscountType, value int64) (*DiscountRule, error) {
	if id == "" || name == "" || value < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if typ != DiscountFixed && typ != DiscountPercentage {
		return nil, domain.ErrInvalidArgument
	}
	return &DiscountRule{
		ID:        id,
		Name:      name,
		Type:      typ,
		Value:     value,
		Interval:  IntervalAll,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}
