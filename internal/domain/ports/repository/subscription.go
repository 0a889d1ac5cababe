package repository

import (
	"context"
	"time"

	"salon-suite/internal/domain/model"
)

// SubscriptionRepository is the port for customer subscriptions.
type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, sub *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscription, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.Subscription, error)
	ListRecent(ctx context.Context, tx Tx, limit int) ([]*model.Subscription, error)

	// --- Statistics read-only methods ---
	CountByStatus(ctx context.Context, tx Tx, status model.SubscriptionStatus) (int, error)
	CountActiveByCustomer(ctx context.Context, tx Tx, customerID string) (int, error)
	CountActiveExpiringBefore(ctx context.Context, tx Tx, customerID string, before time.Time) (int, error)
}
