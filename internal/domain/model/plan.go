package model

import (
	"time"

	"salon-suite/internal/domain"
)

// BillingInterval is the cadence a plan bills on.
type BillingInterval string

const (
	IntervalMonthly    BillingInterval = "Monthly"
	IntervalQuarterly  BillingInterval = "Quarterly"
	IntervalHalfYearly BillingInterval = "Half-Yearly"
	IntervalYearly     BillingInterval = "Yearly"

	// IntervalAll is a wildcard used only in discount/tax rule scopes.
	IntervalAll BillingInterval = "All"
)

// Valid reports whether the interval is one a plan may carry.
func (i BillingInterval) Valid() bool {
	switch i {
	case IntervalMonthly, IntervalQuarterly, IntervalHalfYearly, IntervalYearly:
		return true
	}
	return false
}

// AddTo advances t by one billing period.
func (i BillingInterval) AddTo(t time.Time) time.Time {
	switch i {
	case IntervalMonthly:
		return t.AddDate(0, 1, 0)
	case IntervalQuarterly:
		return t.AddDate(0, 3, 0)
	case IntervalHalfYearly:
		return t.AddDate(0, 6, 0)
	case IntervalYearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// PlanOptions mirrors the toggles an admin can set per plan.
type PlanOptions struct {
	AutoClose bool
	Closable  bool
	Pausable  bool
	Renewable bool
}

// Plan is a subscription tier with a price and billing interval.
// A subscription snapshots the plan price at creation; later plan edits
// never change existing subscriptions.
type Plan struct {
	ID               string
	Name             string
	Price            int64 // whole currency units
	BillingInterval  BillingInterval
	ServicesIncluded []string // product IDs bundled with the plan
	Options          PlanOptions
	Active           bool
	CreatedAt        time.Time
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// NewPlan validates and constructs a plan.
func NewPlan(id, name string, price int64, interval BillingInterval) (*Plan, error) {
	if id == "" || name == "" || price <= 0 || !interval.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	return &Plan{
		ID:              id,
		Name:            name,
		Price:           price,
		BillingInterval: interval,
		Options:         PlanOptions{Closable: true, Pausable: true, Renewable: true},
		Active:          true,
		CreatedAt:       time.Now(),
	}, nil
}
