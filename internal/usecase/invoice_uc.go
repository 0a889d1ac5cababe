package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"salon-suite/internal/config"
	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
	"salon-suite/internal/infra/metrics"
)

// RecordPaymentInput captures a payment posted against an invoice.
type RecordPaymentInput struct {
	InvoiceID  string
	CustomerID string
	Amount     int64
	Method     model.PaymentMethod
}

// InvoiceUseCase derives invoices from confirmed subscriptions and applies
// payments against them.
type InvoiceUseCase interface {
	// GenerateInvoice snapshots the subscription's totals into a Draft
	// invoice. It participates in the caller's transaction when tx is set.
	GenerateInvoice(ctx context.Context, tx repository.Tx, sub *model.Subscription) (*model.Invoice, error)
	// RecordPayment appends the payment and, on full or over payment, marks
	// the invoice Paid and activates a linked non-Active subscription.
	RecordPayment(ctx context.Context, in RecordPaymentInput) (*model.Payment, error)
	Get(ctx context.Context, id string) (*model.Invoice, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Invoice, error)
	ListAll(ctx context.Context) ([]*model.Invoice, error)
}

var _ InvoiceUseCase = (*invoiceUC)(nil)

type invoiceUC struct {
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
	subs     repository.SubscriptionRepository
	defaults config.PricingConfig
	log      *zerolog.Logger
}

func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	subs repository.SubscriptionRepository,
	defaults config.PricingConfig,
	logger *zerolog.Logger,
) InvoiceUseCase {
	return &invoiceUC{
		invoices: invoices,
		payments: payments,
		subs:     subs,
		defaults: defaults,
		log:      logger,
	}
}

func (uc *invoiceUC) GenerateInvoice(ctx context.Context, tx repository.Tx, sub *model.Subscription) (*model.Invoice, error) {
	if sub.IsZero() {
		return nil, domain.ErrValidation
	}

	items := make([]model.InvoiceItem, 0, len(sub.Items)+1)
	for _, it := range sub.Items {
		desc := it.Name
		if desc == "" {
			desc = "Product"
		}
		items = append(items, model.InvoiceItem{
			Description: desc,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		})
	}
	if sub.MembershipFee > 0 {
		items = append(items, model.InvoiceItem{
			Description: "Membership Fee",
			Quantity:    1,
			UnitPrice:   sub.MembershipFee,
			Amount:      sub.MembershipFee,
		})
	}

	inv, err := model.NewInvoice(uuid.NewString(), newDocNumber("INV"), sub.CustomerID)
	if err != nil {
		return nil, err
	}
	inv.SubscriptionID = sub.ID
	inv.Items = items
	inv.Subtotal = sub.ServiceCost
	inv.DiscountTotal = sub.DiscountTotal
	inv.TaxTotal = sub.TaxTotal
	// Snapshot, not live-linked: the invoice total must equal the
	// subscription's total at confirmation time.
	inv.Total = sub.TotalAmount
	inv.DueDate = time.Now().AddDate(0, 0, uc.defaults.InvoiceDueDays)

	if err := uc.invoices.Save(ctx, tx, inv); err != nil {
		return nil, err
	}
	metrics.IncInvoice(string(inv.Status))
	return inv, nil
}

func (uc *invoiceUC) RecordPayment(ctx context.Context, in RecordPaymentInput) (*model.Payment, error) {
	p, err := model.NewPayment(uuid.NewString(), in.InvoiceID, in.CustomerID, in.Amount, in.Method)
	if err != nil {
		return nil, err
	}
	if err := uc.payments.Save(ctx, repository.NoTX, p); err != nil {
		return nil, err
	}
	metrics.IncPayment()
	metrics.AddPaymentRevenue(p.Amount)

	// The old behavior silently ignored payments against missing invoices;
	// that was a latent bug, so a missing invoice now surfaces as not found.
	inv, err := uc.invoices.FindByID(ctx, repository.NoTX, in.InvoiceID)
	if err != nil {
		return nil, err
	}

	// Full-or-overpayment only; partial payments never accumulate.
	if inv.Total > p.Amount {
		return p, nil
	}

	inv.Status = model.InvoiceStatusPaid
	inv.UpdatedAt = time.Now()
	if err := uc.invoices.Save(ctx, repository.NoTX, inv); err != nil {
		return nil, err
	}
	metrics.IncInvoice(string(model.InvoiceStatusPaid))

	if inv.SubscriptionID != "" {
		sub, err := uc.subs.FindByID(ctx, repository.NoTX, inv.SubscriptionID)
		if err == nil && sub.Status != model.SubscriptionStatusActive {
			sub.Status = model.SubscriptionStatusActive
			sub.UpdatedAt = time.Now()
			if err := uc.subs.Save(ctx, repository.NoTX, sub); err != nil {
				return nil, err
			}
			metrics.IncSubscription(string(model.SubscriptionStatusActive))
		}
	}

	if uc.log != nil {
		uc.log.Info().
			Str("invoice", inv.InvoiceNumber).
			Int64("amount", p.Amount).
			Str("status", string(inv.Status)).
			Msg("payment recorded")
	}
	return p, nil
}

func (uc *invoiceUC) Get(ctx context.Context, id string) (*model.Invoice, error) {
	return uc.invoices.FindByID(ctx, repository.NoTX, id)
}

func (uc *invoiceUC) ListByCustomer(ctx context.Context, customerID string) ([]*model.Invoice, error) {
	return uc.invoices.ListByCustomer(ctx, repository.NoTX, customerID)
}

func (uc *invoiceUC) ListAll(ctx context.Context) ([]*model.Invoice, error) {
	return uc.invoices.ListAll(ctx, repository.NoTX)
}
