package model

import (
	"time"

	"salon-suite/internal/domain"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusConfirmed InvoiceStatus = "Confirmed"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

type InvoiceItem struct {
	Description string
	Quantity    int
	UnitPrice   int64
	Amount      int64
}

// Invoice is a billing document derived from a confirmed subscription, or
// raised standalone by staff. Totals are a snapshot, never live-linked back
// to the subscription.
type Invoice struct {
	ID             string
	InvoiceNumber  string
	SubscriptionID string // empty for standalone invoices
	CustomerID     string
	Items          []InvoiceItem
	Subtotal       int64
	TaxTotal       int64
	DiscountTotal  int64
	Total          int64
	Status         InvoiceStatus
	DueDate        time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i *Invoice) IsZero() bool { return i == nil || i.ID == "" }

func NewInvoice(id, number, customerID string) (*Invoice, error) {
	if id == "" || customerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Invoice{
		ID:            id,
		InvoiceNumber: number,
		CustomerID:    customerID,
		Status:        InvoiceStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
