//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
)

func newInvoiceFixture(t *testing.T) (*memInvoiceRepo, *memPaymentRepo, *memSubRepo, InvoiceUseCase) {
	t.Helper()
	invoices := newMemInvoiceRepo()
	payments := newMemPaymentRepo()
	subs := newMemSubRepo()
	uc := NewInvoiceUseCase(invoices, payments, subs, testPricingConfig(), newTestLogger())
	return invoices, payments, subs, uc
}

func seedInvoice(t *testing.T, invoices *memInvoiceRepo, id string, total int64, subscriptionID string) {
	t.Helper()
	inv, err := model.NewInvoice(id, "INV-"+id, "cust-1")
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	inv.Total = total
	inv.SubscriptionID = subscriptionID
	inv.Status = model.InvoiceStatusConfirmed
	if err := invoices.Save(context.Background(), nil, inv); err != nil {
		t.Fatalf("save invoice: %v", err)
	}
}

func TestGenerateInvoice(t *testing.T) {
	t.Parallel()
	_, _, _, uc := newInvoiceFixture(t)

	bb := &model.BillingBreakdown{
		PlanAmount:  1000,
		ServiceCost: 500,
		TaxTotal:    40, DiscountTotal: 100,
		TotalAmount: 440,
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 1, 0),
		Items: []model.SubscriptionItem{
			{ProductID: "svc-1", Name: "Haircut", Quantity: 1, UnitPrice: 500, Amount: 500},
		},
	}
	sub, err := model.NewSubscription("s1", "SUB-1", "cust-1", "plan-m", bb)
	if err != nil {
		t.Fatalf("subscription: %v", err)
	}

	inv, err := uc.GenerateInvoice(context.Background(), nil, sub)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if inv.SubscriptionID != "s1" {
		t.Errorf("SubscriptionID = %s, want s1", inv.SubscriptionID)
	}
	if inv.Total != 440 || inv.Subtotal != 500 || inv.DiscountTotal != 100 || inv.TaxTotal != 40 {
		t.Errorf("totals not snapshotted: %+v", inv)
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Haircut" {
		t.Errorf("items not carried over: %+v", inv.Items)
	}
	wantDue := time.Now().AddDate(0, 0, 7)
	if inv.DueDate.Before(wantDue.Add(-time.Minute)) || inv.DueDate.After(wantDue.Add(time.Minute)) {
		t.Errorf("DueDate = %v, want about 7 days out", inv.DueDate)
	}

	t.Run("rejects zero subscription", func(t *testing.T) {
		if _, err := uc.GenerateInvoice(context.Background(), nil, &model.Subscription{}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestRecordPayment(t *testing.T) {
	t.Parallel()

	t.Run("full payment marks invoice paid and activates the subscription", func(t *testing.T) {
		invoices, payments, subs, uc := newInvoiceFixture(t)
		seedInvoice(t, invoices, "inv1", 440, "s1")
		sub := &model.Subscription{ID: "s1", CustomerID: "cust-1", Status: model.SubscriptionStatusDraft}
		if err := subs.Save(context.Background(), nil, sub); err != nil {
			t.Fatalf("save sub: %v", err)
		}

		p, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: "inv1", CustomerID: "cust-1", Amount: 440, Method: model.PaymentMethodUPI,
		})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if p.Method != model.PaymentMethodUPI {
			t.Errorf("method = %s, want UPI", p.Method)
		}

		inv, _ := invoices.FindByID(context.Background(), nil, "inv1")
		if inv.Status != model.InvoiceStatusPaid {
			t.Errorf("invoice status = %s, want Paid", inv.Status)
		}
		got, _ := subs.FindByID(context.Background(), nil, "s1")
		if got.Status != model.SubscriptionStatusActive {
			t.Errorf("subscription status = %s, want Active", got.Status)
		}
		list, _ := payments.ListByInvoice(context.Background(), nil, "inv1")
		if len(list) != 1 {
			t.Errorf("expected 1 payment on record, got %d", len(list))
		}
	})

	t.Run("overpayment also settles the invoice", func(t *testing.T) {
		invoices, _, _, uc := newInvoiceFixture(t)
		seedInvoice(t, invoices, "inv1", 440, "")

		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: "inv1", CustomerID: "cust-1", Amount: 500,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}
		inv, _ := invoices.FindByID(context.Background(), nil, "inv1")
		if inv.Status != model.InvoiceStatusPaid {
			t.Errorf("invoice status = %s, want Paid", inv.Status)
		}
	})

	t.Run("partial payment leaves the invoice unsettled", func(t *testing.T) {
		invoices, payments, subs, uc := newInvoiceFixture(t)
		seedInvoice(t, invoices, "inv1", 440, "s1")
		sub := &model.Subscription{ID: "s1", CustomerID: "cust-1", Status: model.SubscriptionStatusDraft}
		_ = subs.Save(context.Background(), nil, sub)

		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: "inv1", CustomerID: "cust-1", Amount: 100,
		}); err != nil {
			t.Fatalf("record: %v", err)
		}

		inv, _ := invoices.FindByID(context.Background(), nil, "inv1")
		if inv.Status != model.InvoiceStatusConfirmed {
			t.Errorf("partial payment must not settle the invoice, status = %s", inv.Status)
		}
		got, _ := subs.FindByID(context.Background(), nil, "s1")
		if got.Status != model.SubscriptionStatusDraft {
			t.Errorf("partial payment must not activate the subscription, status = %s", got.Status)
		}
		// The payment itself is still recorded; partials never accumulate
		// toward settlement but they are never lost either.
		list, _ := payments.ListByInvoice(context.Background(), nil, "inv1")
		if len(list) != 1 {
			t.Errorf("expected the partial payment on record, got %d", len(list))
		}
	})

	t.Run("second partial does not accumulate", func(t *testing.T) {
		invoices, _, _, uc := newInvoiceFixture(t)
		seedInvoice(t, invoices, "inv1", 440, "")

		for i := 0; i < 2; i++ {
			if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
				InvoiceID: "inv1", CustomerID: "cust-1", Amount: 300,
			}); err != nil {
				t.Fatalf("record %d: %v", i, err)
			}
		}
		inv, _ := invoices.FindByID(context.Background(), nil, "inv1")
		if inv.Status == model.InvoiceStatusPaid {
			t.Error("two partials summing past the total must not settle the invoice")
		}
	})

	t.Run("payment against a missing invoice is rejected", func(t *testing.T) {
		_, _, _, uc := newInvoiceFixture(t)
		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: "ghost", CustomerID: "cust-1", Amount: 100,
		}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		_, _, _, uc := newInvoiceFixture(t)
		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{
			InvoiceID: "inv1", Amount: 0,
		}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("paid invoice stays paid on a repeat payment", func(t *testing.T) {
		invoices, _, _, uc := newInvoiceFixture(t)
		seedInvoice(t, invoices, "inv1", 440, "")
		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{InvoiceID: "inv1", Amount: 440}); err != nil {
			t.Fatalf("first payment: %v", err)
		}
		if _, err := uc.RecordPayment(context.Background(), RecordPaymentInput{InvoiceID: "inv1", Amount: 440}); err != nil {
			t.Fatalf("second payment: %v", err)
		}
		inv, _ := invoices.FindByID(context.Background(), nil, "inv1")
		if inv.Status != model.InvoiceStatusPaid {
			t.Errorf("status = %s, want Paid", inv.Status)
		}
	})
}
