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

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *userRepo {
	return &userRepo{pool: pool}
}

const userCols = `id, name, email, phone, password_hash, role, total_credits, is_first_time_user, otp, otp_expires, created_at, updated_at`

func (r *userRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (` + userCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  name=$2, email=$3, phone=$4, password_hash=$5, role=$6,
  total_credits=$7, is_first_time_user=$8, otp=$9, otp_expires=$10, updated_at=$12;`
	_, err := execSQL(ctx, r.pool, tx, q,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role,
		u.TotalCredits, u.IsFirstTimeUser, u.OTP, u.OTPExpires, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id=$1;`
	return r.scanOne(ctx, tx, q, id)
}

func (r *userRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email=$1;`
	return r.scanOne(ctx, tx, q, email)
}

func (r *userRepo) scanOne(ctx context.Context, tx repository.Tx, q string, arg interface{}) (*model.User, error) {
	row, err := pickRow(ctx, r.pool, tx, q, arg)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
		&u.TotalCredits, &u.IsFirstTimeUser, &u.OTP, &u.OTPExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) ListByRole(ctx context.Context, tx repository.Tx, role model.Role) ([]*model.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE role=$1 ORDER BY created_at DESC;`
	rows, err := pickRows(ctx, r.pool, tx, q, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role,
			&u.TotalCredits, &u.IsFirstTimeUser, &u.OTP, &u.OTPExpires, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *userRepo) CountByRole(ctx context.Context, tx repository.Tx, role model.Role) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM users WHERE role=$1;`, role)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
