package model

import (
	"time"

	"salon-suite/internal/domain"
)

// TaxRule is a percentage surcharge scoped by billing interval.
type TaxRule struct {
	ID         string
	Name       string
	Percentage int64
	Interval   BillingInterval
	IsActive   bool
	CreatedAt  time.Time
}

func (r *TaxRule) IsZero() bool { return r == nil || r.ID == "" }

func (r *TaxRule) MatchesInterval(interval BillingInterval) bool {
	return r.Interval == IntervalAll || r.Interval == interval
}

func NewTaxRule(id, name string, percentage int64) (*TaxRule, error) {
	if id == "" || name == "" || percentage < 0 || percentage > 100 {
		return nil, domain.ErrInvalidArgument
	}
	return &TaxRule{
		ID:         id,
		Name:       name,
		Percentage: percentage,
		Interval:   IntervalAll,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}, nil
}
