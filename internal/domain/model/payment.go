package model

import (
	"time"

	"salon-suite/internal/domain"
)

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "Cash"
	PaymentMethodCard       PaymentMethod = "Card"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodNetBanking PaymentMethod = "NetBanking"
)

// Payment is an append-only record of money received against an invoice.
// It is never mutated after creation.
type Payment struct {
	ID         string
	InvoiceID  string
	CustomerID string
	Amount     int64
	Method     PaymentMethod
	Date       time.Time
	CreatedAt  time.Time
}

func NewPayment(id, invoiceID, customerID string, amount int64, method PaymentMethod) (*Payment, error) {
	if id == "" || invoiceID == "" || amount <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if method == "" {
		method = PaymentMethodCash
	}
	now := time.Now()
	return &Payment{
		ID:         id,
		InvoiceID:  invoiceID,
		CustomerID: customerID,
		Amount:     amount,
		Method:     method,
		Date:       now,
		CreatedAt:  now,
	}, nil
}
