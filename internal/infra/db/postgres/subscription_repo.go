package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

const subscriptionCols = `id, subscription_number, customer_id, plan_id, start_date, end_date, status,
items, plan_amount, service_cost, discount_total, tax_total, membership_fee,
total_amount, remaining_balance, notes, created_at, updated_at`

type subscriptionRepo struct{ pool *pgxpool.Pool }

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, sub *model.Subscription) error {
	items, err := json.Marshal(sub.Items)
	if err != nil {
		return fmt.Errorf("marshal subscription items: %w", err)
	}
	const q = `
INSERT INTO subscriptions (` + subscriptionCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
ON CONFLICT (id) DO UPDATE SET
  status=$7, items=$8, plan_amount=$9, service_cost=$10, discount_total=$11,
  tax_total=$12, membership_fee=$13, total_amount=$14, remaining_balance=$15,
  notes=$16, updated_at=$18;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		sub.ID, sub.SubscriptionNumber, sub.CustomerID, sub.PlanID,
		sub.StartDate, sub.EndDate, sub.Status, items,
		sub.PlanAmount, sub.ServiceCost, sub.DiscountTotal, sub.TaxTotal,
		sub.MembershipFee, sub.TotalAmount, sub.RemainingBalance,
		sub.Notes, sub.CreatedAt, sub.UpdatedAt,
	); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func (r *subscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	const q = `SELECT ` + subscriptionCols + ` FROM subscriptions WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanSubscription(row)
}

func (r *subscriptionRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Subscription, error) {
	const q = `
SELECT ` + subscriptionCols + `
  FROM subscriptions
 WHERE customer_id = $1
 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, customerID)
}

func (r *subscriptionRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.Subscription, error) {
	const q = `
SELECT ` + subscriptionCols + `
  FROM subscriptions
 ORDER BY created_at DESC
 LIMIT $1;`
	return r.list(ctx, tx, q, limit)
}

func (r *subscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx, status model.SubscriptionStatus) (int, error) {
	const q = `SELECT COUNT(1) FROM subscriptions WHERE status = $1;`
	return r.count(ctx, tx, q, status)
}

func (r *subscriptionRepo) CountActiveByCustomer(ctx context.Context, tx repository.Tx, customerID string) (int, error) {
	const q = `SELECT COUNT(1) FROM subscriptions WHERE customer_id = $1 AND status = 'Active';`
	return r.count(ctx, tx, q, customerID)
}

func (r *subscriptionRepo) CountActiveExpiringBefore(ctx context.Context, tx repository.Tx, customerID string, before time.Time) (int, error) {
	const q = `
SELECT COUNT(1) FROM subscriptions
 WHERE customer_id = $1 AND status = 'Active' AND end_date <= $2;`
	return r.count(ctx, tx, q, customerID, before)
}

func (r *subscriptionRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Subscription, error) {
	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var out []*model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *subscriptionRepo) count(ctx context.Context, tx repository.Tx, q string, args ...interface{}) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, q, args...)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var (
		s     model.Subscription
		items []byte
	)
	if err := row.Scan(
		&s.ID, &s.SubscriptionNumber, &s.CustomerID, &s.PlanID,
		&s.StartDate, &s.EndDate, &s.Status, &items,
		&s.PlanAmount, &s.ServiceCost, &s.DiscountTotal, &s.TaxTotal,
		&s.MembershipFee, &s.TotalAmount, &s.RemainingBalance,
		&s.Notes, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &s, nil
}
