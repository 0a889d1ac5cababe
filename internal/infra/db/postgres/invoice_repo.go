package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

const invoiceCols = `id, invoice_number, subscription_id, customer_id, items,
subtotal, tax_total, discount_total, total, status, due_date, notes, created_at, updated_at`

type invoiceRepo struct{ pool *pgxpool.Pool }

func NewInvoiceRepo(pool *pgxpool.Pool) *invoiceRepo {
	return &invoiceRepo{pool: pool}
}

func (r *invoiceRepo) Save(ctx context.Context, tx repository.Tx, inv *model.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	// subscription_id is nullable; standalone invoices store NULL.
	var subID sql.NullString
	if inv.SubscriptionID != "" {
		subID = sql.NullString{String: inv.SubscriptionID, Valid: true}
	}
	const q = `
INSERT INTO invoices (` + invoiceCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
  items=$5, subtotal=$6, tax_total=$7, discount_total=$8, total=$9,
  status=$10, due_date=$11, notes=$12, updated_at=$14;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		inv.ID, inv.InvoiceNumber, subID, inv.CustomerID, items,
		inv.Subtotal, inv.TaxTotal, inv.DiscountTotal, inv.Total,
		inv.Status, inv.DueDate, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	); err != nil {
		return fmt.Errorf("save invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Invoice, error) {
	const q = `SELECT ` + invoiceCols + ` FROM invoices WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanInvoice(row)
}

func (r *invoiceRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Invoice, error) {
	const q = `
SELECT ` + invoiceCols + `
  FROM invoices
 WHERE customer_id = $1
 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, customerID)
}

func (r *invoiceRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Invoice, error) {
	const q = `SELECT ` + invoiceCols + ` FROM invoices ORDER BY created_at DESC;`
	return r.list(ctx, tx, q)
}

func (r *invoiceRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Invoice, error) {
	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var out []*model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var (
		inv   model.Invoice
		subID sql.NullString
		items []byte
	)
	if err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &subID, &inv.CustomerID, &items,
		&inv.Subtotal, &inv.TaxTotal, &inv.DiscountTotal, &inv.Total,
		&inv.Status, &inv.DueDate, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.SubscriptionID = subID.String
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &inv, nil
}
