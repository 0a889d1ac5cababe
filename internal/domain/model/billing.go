package model

import "time"

// BillingBreakdown is the output of the pricing computation. All monetary
// fields are non-negative except RemainingBalance, which goes negative when
// service usage exceeds the plan's prepaid value (an overage).
type BillingBreakdown struct {
	PlanAmount       int64
	ServiceCost      int64
	DiscountTotal    int64
	DiscountRuleID   string // empty when the interval fallback applied
	TaxTotal         int64
	TaxRuleID        string // empty when the default rate applied
	TotalAmount      int64
	RemainingBalance int64
	StartDate        time.Time
	EndDate          time.Time
	Items            []SubscriptionItem
}
