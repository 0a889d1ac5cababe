package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// InvoiceRepository is the port for invoices.
type InvoiceRepository interface {
	Save(ctx context.Context, tx Tx, inv *model.Invoice) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Invoice, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.Invoice, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Invoice, error)
}
