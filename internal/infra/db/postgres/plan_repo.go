package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.PlanRepository = (*planRepo)(nil)

type planRepo struct{ pool *pgxpool.Pool }

func NewPlanRepo(pool *pgxpool.Pool) *planRepo {
	return &planRepo{pool: pool}
}

func (r *planRepo) Save(ctx context.Context, tx repository.Tx, plan *model.Plan) error {
	services, err := json.Marshal(plan.ServicesIncluded)
	if err != nil {
		return fmt.Errorf("marshal services: %w", err)
	}
	options, err := json.Marshal(plan.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}
	const q = `
INSERT INTO plans (id, name, price, billing_interval, services_included, options, active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  name=$2, price=$3, billing_interval=$4, services_included=$5, options=$6, active=$7;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		plan.ID, plan.Name, plan.Price, plan.BillingInterval, services, options, plan.Active, plan.CreatedAt,
	); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func (r *planRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Plan, error) {
	const q = `
SELECT id, name, price, billing_interval, services_included, options, active, created_at
  FROM plans
 WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPlan(row)
}

func (r *planRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Plan, error) {
	const q = `
SELECT id, name, price, billing_interval, services_included, options, active, created_at
  FROM plans
 ORDER BY price;`
	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var out []*model.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *planRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	// Refuse to delete a plan that still backs active subscriptions.
	const countSQL = `SELECT COUNT(1) FROM subscriptions WHERE plan_id=$1 AND status='Active';`
	row, err := pickRow(ctx, r.pool, tx, countSQL, id)
	if err != nil {
		return err
	}
	var cnt int
	if err := row.Scan(&cnt); err != nil {
		return domain.ErrReadDatabaseRow
	}
	if cnt > 0 {
		return fmt.Errorf("cannot delete plan %s: %d active subscriptions exist", id, cnt)
	}

	ct, err := execSQL(ctx, r.pool, tx, `DELETE FROM plans WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (*model.Plan, error) {
	var (
		p        model.Plan
		services []byte
		options  []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.BillingInterval, &services, &options, &p.Active, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &p.ServicesIncluded); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &p, nil
}
