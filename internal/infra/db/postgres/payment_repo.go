package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.PaymentRepository = (*paymentRepo)(nil)

const paymentCols = `id, invoice_id, customer_id, amount, method, paid_at, created_at`

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

// Save inserts a payment. Payments are append-only, so there is no upsert;
// a duplicate id is a caller bug surfaced as ErrAlreadyExists.
func (r *paymentRepo) Save(ctx context.Context, tx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (` + paymentCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO NOTHING;`
	ct, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.InvoiceID, p.CustomerID, p.Amount, p.Method, p.Date, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Payment, error) {
	const q = `
SELECT ` + paymentCols + `
  FROM payments
 WHERE customer_id = $1
 ORDER BY paid_at DESC;`
	return r.list(ctx, tx, q, customerID)
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, tx repository.Tx, invoiceID string) ([]*model.Payment, error) {
	const q = `
SELECT ` + paymentCols + `
  FROM payments
 WHERE invoice_id = $1
 ORDER BY paid_at;`
	return r.list(ctx, tx, q, invoiceID)
}

// SumAmounts totals payments for one customer, or all customers when
// customerID is empty.
func (r *paymentRepo) SumAmounts(ctx context.Context, tx repository.Tx, customerID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0) FROM payments
 WHERE ($1 = '' OR customer_id = $1);`
	row, err := pickRow(ctx, r.pool, tx, q, customerID)
	if err != nil {
		return 0, err
	}
	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

func (r *paymentRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Payment, error) {
	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var out []*model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	if err := row.Scan(&p.ID, &p.InvoiceID, &p.CustomerID, &p.Amount, &p.Method, &p.Date, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return &p, nil
}
