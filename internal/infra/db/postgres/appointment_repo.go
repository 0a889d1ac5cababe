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
var _ repository.AppointmentRepository = (*appointmentRepo)(nil)

const appointmentCols = `id, customer_id, product_id, staff_id, scheduled_at, status, notes, created_at, updated_at`

type appointmentRepo struct{ pool *pgxpool.Pool }

func NewAppointmentRepo(pool *pgxpool.Pool) *appointmentRepo {
	return &appointmentRepo{pool: pool}
}

func (r *appointmentRepo) Save(ctx context.Context, tx repository.Tx, a *model.Appointment) error {
	const q = `
INSERT INTO appointments (` + appointmentCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  staff_id=$4, scheduled_at=$5, status=$6, notes=$7, updated_at=$9;`
	if _, err := execSQL(ctx, r.pool, tx, q,
		a.ID, a.CustomerID, a.ProductID, a.StaffID, a.ScheduledAt, a.Status, a.Notes, a.CreatedAt, a.UpdatedAt,
	); err != nil {
		return fmt.Errorf("save appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Appointment, error) {
	const q = `SELECT ` + appointmentCols + ` FROM appointments WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanAppointment(row)
}

func (r *appointmentRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Appointment, error) {
	const q = `
SELECT ` + appointmentCols + `
  FROM appointments
 WHERE customer_id = $1
 ORDER BY scheduled_at DESC;`
	return r.list(ctx, tx, q, customerID)
}

func (r *appointmentRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Appointment, error) {
	const q = `SELECT ` + appointmentCols + ` FROM appointments ORDER BY scheduled_at DESC;`
	return r.list(ctx, tx, q)
}

func (r *appointmentRepo) list(ctx context.Context, tx repository.Tx, q string, args ...interface{}) ([]*model.Appointment, error) {
	rows, err := pickRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var out []*model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var a model.Appointment
	if err := row.Scan(&a.ID, &a.CustomerID, &a.ProductID, &a.StaffID, &a.ScheduledAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan appointment: %w", err)
	}
	return &a, nil
}
