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

var (
	_ repository.DiscountRuleRepository = (*discountRuleRepo)(nil)
	_ repository.TaxRuleRepository     = (*taxRuleRepo)(nil)
)

// ---------------------------------------------------------------------------
// Discount rules
// ---------------------------------------------------------------------------

type discountRuleRepo struct{ pool *pgxpool.Pool }

func NewDiscountRuleRepo(pool *pgxpool.Pool) *discountRuleRepo {
	return &discountRuleRepo{pool: pool}
}

const discountCols = `id, name, type, value, customer_id, plan_id, billing_interval, applicable_products, start_date, end_date, is_active, created_at`

func (r *discountRuleRepo) Save(ctx context.Context, tx repository.Tx, d *model.DiscountRule) error {
	products, err := json.Marshal(d.ApplicableProducts)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	const q = `
INSERT INTO discount_rules (` + discountCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  name=$2, type=$3, value=$4, customer_id=$5, plan_id=$6, billing_interval=$7,
  applicable_products=$8, start_date=$9, end_date=$10, is_active=$11;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		d.ID, d.Name, d.Type, d.Value, d.CustomerID, d.PlanID, d.Interval,
		products, d.StartDate, d.EndDate, d.IsActive, d.CreatedAt,
	); err != nil {
		return fmt.Errorf("save discount rule: %w", err)
	}
	return nil
}

func (r *discountRuleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.DiscountRule, error) {
	const q = `SELECT ` + discountCols + ` FROM discount_rules WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanDiscountRule(row)
}

func (r *discountRuleRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.DiscountRule, error) {
	const q = `SELECT ` + discountCols + ` FROM discount_rules WHERE is_active ORDER BY created_at;`
	return r.list(ctx, tx, q)
}

func (r *discountRuleRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.DiscountRule, error) {
	const q = `SELECT ` + discountCols + ` FROM discount_rules ORDER BY created_at;`
	return r.list(ctx, tx, q)
}

func (r *discountRuleRepo) list(ctx context.Context, tx repository.Tx, q string) ([]*model.DiscountRule, error) {
	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list discount rules: %w", err)
	}
	defer rows.Close()
	var out []*model.DiscountRule
	for rows.Next() {
		d, err := scanDiscountRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *discountRuleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx, `DELETE FROM discount_rules WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete discount rule: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDiscountRule(row pgx.Row) (*model.DiscountRule, error) {
	var (
		d        model.DiscountRule
		products []byte
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Type, &d.Value, &d.CustomerID, &d.PlanID, &d.Interval,
		&products, &d.StartDate, &d.EndDate, &d.IsActive, &d.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan discount rule: %w", err)
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &d.ApplicableProducts); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
	}
	return &d, nil
}

// ---------------------------------------------------------------------------
// Tax rules
// ---------------------------------------------------------------------------

type taxRuleRepo struct{ pool *pgxpool.Pool }

func NewTaxRuleRepo(pool *pgxpool.Pool) *taxRuleRepo {
	return &taxRuleRepo{pool: pool}
}

const taxCols = `id, name, percentage, billing_interval, is_active, created_at`

func (r *taxRuleRepo) Save(ctx context.Context, tx repository.Tx, t *model.TaxRule) error {
	const q = `
INSERT INTO tax_rules (` + taxCols + `)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
  name=$2, percentage=$3, billing_interval=$4, is_active=$5;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		t.ID, t.Name, t.Percentage, t.Interval, t.IsActive, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("save tax rule: %w", err)
	}
	return nil
}

func (r *taxRuleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TaxRule, error) {
	const q = `SELECT ` + taxCols + ` FROM tax_rules WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanTaxRule(row)
}

func (r *taxRuleRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.TaxRule, error) {
	const q = `SELECT ` + taxCols + ` FROM tax_rules WHERE is_active ORDER BY created_at;`
	return r.list(ctx, tx, q)
}

func (r *taxRuleRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.TaxRule, error) {
	const q = `SELECT ` + taxCols + ` FROM tax_rules ORDER BY created_at;`
	return r.list(ctx, tx, q)
}

func (r *taxRuleRepo) list(ctx context.Context, tx repository.Tx, q string) ([]*model.TaxRule, error) {
	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list tax rules: %w", err)
	}
	defer rows.Close()
	var out []*model.TaxRule
	for rows.Next() {
		t, err := scanTaxRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taxRuleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ct, err := execSQL(ctx, r.pool, tx, `DELETE FROM tax_rules WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("delete tax rule: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTaxRule(row pgx.Row) (*model.TaxRule, error) {
	var t model.TaxRule
	if err := row.Scan(&t.ID, &t.Name, &t.Percentage, &t.Interval, &t.IsActive, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan tax rule: %w", err)
	}
	return &t, nil
}
