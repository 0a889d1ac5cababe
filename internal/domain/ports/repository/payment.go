package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// PaymentRepository is the port for payments. Payments are append-only:
// there is deliberately no update or delete.
type PaymentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Payment) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.Payment, error)
	ListByInvoice(ctx context.Context, tx Tx, invoiceID string) ([]*model.Payment, error)
	SumAmounts(ctx context.Context, tx Tx, customerID string) (int64, error)
}
