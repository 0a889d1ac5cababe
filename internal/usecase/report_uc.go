package usecase

import (
	"context"
	"time"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// CustomerReport is the customer dashboard summary.
type CustomerReport struct {
	ActiveSubscriptions int   `json:"activeSubscriptions"`
	TotalPaid           int64 `json:"totalPaid"`
	UpcomingExpiry      int   `json:"upcomingExpiry"`
}

// AdminReport is the admin dashboard summary.
type AdminReport struct {
	TotalCustomers      int                   `json:"totalCustomers"`
	ActiveSubscriptions int                   `json:"activeSubscriptions"`
	TotalRevenue        int64                 `json:"totalRevenue"`
	RecentSubscriptions []*model.Subscription `json:"recentSubscriptions"`
}

// ReportUseCase aggregates read-only dashboard numbers.
type ReportUseCase struct {
	users    repository.UserRepository
	subs     repository.SubscriptionRepository
	payments repository.PaymentRepository
}

func NewReportUseCase(
	users repository.UserRepository,
	subs repository.SubscriptionRepository,
	payments repository.PaymentRepository,
) *ReportUseCase {
	return &ReportUseCase{users: users, subs: subs, payments: payments}
}

// CustomerSummary reports the caller's active subscriptions, lifetime spend
// and how many active subscriptions expire within the next 30 days.
func (uc *ReportUseCase) CustomerSummary(ctx context.Context, customerID string) (*CustomerReport, error) {
	active, err := uc.subs.CountActiveByCustomer(ctx, repository.NoTX, customerID)
	if err != nil {
		return nil, err
	}
	paid, err := uc.payments.SumAmounts(ctx, repository.NoTX, customerID)
	if err != nil {
		return nil, err
	}
	expiring, err := uc.subs.CountActiveExpiringBefore(ctx, repository.NoTX, customerID, time.Now().AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}
	return &CustomerReport{
		ActiveSubscriptions: active,
		TotalPaid:           paid,
		UpcomingExpiry:      expiring,
	}, nil
}

// AdminSummary reports store-wide totals plus the five newest subscriptions.
func (uc *ReportUseCase) AdminSummary(ctx context.Context) (*AdminReport, error) {
	customers, err := uc.users.CountByRole(ctx, repository.NoTX, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	active, err := uc.subs.CountByStatus(ctx, repository.NoTX, model.SubscriptionStatusActive)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.payments.SumAmounts(ctx, repository.NoTX, "")
	if err != nil {
		return nil, err
	}
	recent, err := uc.subs.ListRecent(ctx, repository.NoTX, 5)
	if err != nil {
		return nil, err
	}
	return &AdminReport{
		TotalCustomers:      customers,
		ActiveSubscriptions: active,
		TotalRevenue:        revenue,
		RecentSubscriptions: recent,
	}, nil
}
