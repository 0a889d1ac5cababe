package model

import (
	"time"

	"salon-suite/internal/domain"
)

type SubscriptionStatus string

const (
	SubscriptionStatusDraft     SubscriptionStatus = "Draft"
	SubscriptionStatusQuotation SubscriptionStatus = "Quotation"
	SubscriptionStatusActive    SubscriptionStatus = "Active"
	SubscriptionStatusClosed    SubscriptionStatus = "Closed"
)

// SubscriptionItem is a product snapshot taken at subscription creation.
// Name and UnitPrice are copied so later catalog edits cannot change history.
type SubscriptionItem struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice int64
	Amount    int64
}

// Subscription is a customer's purchase of a plan plus optional add-on
// services. Money fields are frozen by the pricing engine at creation.
type Subscription struct {
	ID                 string
	SubscriptionNumber string
	CustomerID         string
	PlanID             string
	StartDate          time.Time
	EndDate            time.Time
	Status             SubscriptionStatus
	Items              []SubscriptionItem

	PlanAmount       int64
	ServiceCost      int64
	DiscountTotal    int64
	TaxTotal         int64
	MembershipFee    int64 // one-time first-customer fee, zero otherwise
	TotalAmount      int64
	RemainingBalance int64

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Subscription) IsZero() bool { return s == nil || s.ID == "" }

// Confirmable reports whether the subscription may transition to Active.
func (s *Subscription) Confirmable() bool {
	return s.Status == SubscriptionStatusDraft || s.Status == SubscriptionStatusQuotation
}

// Close marks the subscription terminal. Closing twice is rejected.
func (s *Subscription) Close() error {
	if s.Status == SubscriptionStatusClosed {
		return domain.ErrSubscriptionClosed
	}
	s.Status = SubscriptionStatusClosed
	s.UpdatedAt = time.Now()
	return nil
}

// NewSubscription builds a Draft subscription from a billing breakdown.
func NewSubscription(id, number, customerID, planID string, bb *BillingBreakdown) (*Subscription, error) {
	if id == "" || customerID == "" || planID == "" || bb == nil {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Subscription{
		ID:                 id,
		SubscriptionNumber: number,
		CustomerID:         customerID,
		PlanID:             planID,
		StartDate:          bb.StartDate,
		EndDate:            bb.EndDate,
		Status:             SubscriptionStatusDraft,
		Items:              bb.Items,
		PlanAmount:         bb.PlanAmount,
		ServiceCost:        bb.ServiceCost,
		DiscountTotal:      bb.DiscountTotal,
		TaxTotal:           bb.TaxTotal,
		TotalAmount:        bb.TotalAmount,
		RemainingBalance:   bb.RemainingBalance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}
