package repository

import (
	"context"

	"salon-suite/internal/domain/model"
)

// UserRepository is the port for accounts (admin, staff, customers).
type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	ListByRole(ctx context.Context, tx Tx, role model.Role) ([]*model.User, error)
	CountByRole(ctx context.Context, tx Tx, role model.Role) (int, error)
}
