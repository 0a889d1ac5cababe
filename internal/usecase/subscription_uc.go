package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"salon-suite/internal/config"
	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
	"salon-suite/internal/infra/metrics"
)

// CreateSubscriptionInput is what the API layer hands over to open a
// subscription for a customer.
type CreateSubscriptionInput struct {
	CustomerID string
	PlanID     string
	ServiceIDs []string
	StartDate  time.Time
	Quotation  bool // staff-initiated flow opens in Quotation instead of Draft
	Notes      string
}

// SubscriptionUseCase drives the Draft → Active → Closed lifecycle.
type SubscriptionUseCase interface {
	Create(ctx context.Context, in CreateSubscriptionInput) (*model.Subscription, error)
	Confirm(ctx context.Context, id string) (*model.Subscription, *model.Invoice, error)
	Close(ctx context.Context, id string) (*model.Subscription, error)
	Get(ctx context.Context, id string) (*model.Subscription, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error)
}

var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type subscriptionUC struct {
	subs     repository.SubscriptionRepository
	users    repository.UserRepository
	plans    repository.PlanRepository
	pricing  PricingUseCase
	invoices InvoiceUseCase
	tm       repository.TransactionManager
	defaults config.PricingConfig
	log      *zerolog.Logger
}

// NewSubscriptionUseCase constructs the lifecycle use case. tm may be nil
// (in-memory repos in tests); the confirm sequence then runs as sequential
// writes, which matches the legacy behavior.
func NewSubscriptionUseCase(
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	plans repository.PlanRepository,
	pricing PricingUseCase,
	invoices InvoiceUseCase,
	tm repository.TransactionManager,
	defaults config.PricingConfig,
	logger *zerolog.Logger,
) SubscriptionUseCase {
	return &subscriptionUC{
		subs:     subs,
		users:    users,
		plans:    plans,
		pricing:  pricing,
		invoices: invoices,
		tm:       tm,
		defaults: defaults,
		log:      logger,
	}
}

func (uc *subscriptionUC) Create(ctx context.Context, in CreateSubscriptionInput) (*model.Subscription, error) {
	if in.CustomerID == "" || in.PlanID == "" {
		return nil, domain.ErrValidation
	}
	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}

	bb, err := uc.pricing.ComputeBilling(ctx, in.PlanID, in.ServiceIDs, in.CustomerID, start)
	if err != nil {
		return nil, err
	}

	sub, err := model.NewSubscription(uuid.NewString(), newDocNumber("SUB"), in.CustomerID, in.PlanID, bb)
	if err != nil {
		return nil, err
	}
	sub.Notes = in.Notes
	if in.Quotation {
		sub.Status = model.SubscriptionStatusQuotation
	}

	// One-time membership fee for first-time customers, kept out of the
	// tax/discount arithmetic and reported as its own field.
	customer, err := uc.users.FindByID(ctx, repository.NoTX, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer.IsFirstTimeUser {
		sub.MembershipFee = uc.defaults.MembershipFee
		sub.TotalAmount += uc.defaults.MembershipFee
	}

	if err := uc.subs.Save(ctx, repository.NoTX, sub); err != nil {
		return nil, err
	}
	metrics.IncSubscription(string(sub.Status))
	if uc.log != nil {
		uc.log.Info().
			Str("subscription", sub.SubscriptionNumber).
			Str("customer_id", sub.CustomerID).
			Int64("total", sub.TotalAmount).
			Msg("subscription created")
	}
	return sub, nil
}

// Confirm activates the subscription, grants loyalty credits, clears the
// first-time flag and generates the invoice. When a transaction manager is
// available the whole sequence commits atomically; the observable contract
// is the same either way.
func (uc *subscriptionUC) Confirm(ctx context.Context, id string) (*model.Subscription, *model.Invoice, error) {
	var (
		sub *model.Subscription
		inv *model.Invoice
	)
	err := uc.withTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		var err error
		sub, err = uc.subs.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if !sub.Confirmable() {
			if sub.Status == model.SubscriptionStatusClosed {
				return domain.ErrSubscriptionClosed
			}
			return nil // already active; idempotent success
		}

		sub.Status = model.SubscriptionStatusActive
		sub.UpdatedAt = time.Now()
		if err := uc.subs.Save(ctx, tx, sub); err != nil {
			return err
		}

		customer, err := uc.users.FindByID(ctx, tx, sub.CustomerID)
		if err != nil {
			return err
		}
		plan, err := uc.plans.FindByID(ctx, tx, sub.PlanID)
		if err != nil {
			return err
		}
		customer.TotalCredits += uc.defaults.LoyaltyCredits[string(plan.BillingInterval)]
		customer.IsFirstTimeUser = false
		customer.UpdatedAt = time.Now()
		if err := uc.users.Save(ctx, tx, customer); err != nil {
			return err
		}

		inv, err = uc.invoices.GenerateInvoice(ctx, tx, sub)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	metrics.IncSubscription(string(model.SubscriptionStatusActive))
	if uc.log != nil && inv != nil {
		uc.log.Info().
			Str("subscription", sub.SubscriptionNumber).
			Str("invoice", inv.InvoiceNumber).
			Msg("subscription confirmed")
	}
	return sub, inv, nil
}

func (uc *subscriptionUC) Close(ctx context.Context, id string) (*model.Subscription, error) {
	sub, err := uc.subs.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if err := sub.Close(); err != nil {
		return nil, err
	}
	if err := uc.subs.Save(ctx, repository.NoTX, sub); err != nil {
		return nil, err
	}
	metrics.IncSubscription(string(model.SubscriptionStatusClosed))
	return sub, nil
}

func (uc *subscriptionUC) Get(ctx context.Context, id string) (*model.Subscription, error) {
	return uc.subs.FindByID(ctx, repository.NoTX, id)
}

func (uc *subscriptionUC) ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error) {
	return uc.subs.ListByCustomer(ctx, repository.NoTX, customerID)
}

func (uc *subscriptionUC) withTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if uc.tm == nil {
		return fn(ctx, repository.NoTX)
	}
	return uc.tm.WithTx(ctx, pgx.TxOptions{}, fn)
}
