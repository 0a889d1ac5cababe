//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
)

type subscriptionFixture struct {
	subs     *memSubRepo
	users    *memUserRepo
	plans    *memPlanRepo
	products *memProductRepo
	invoices *memInvoiceRepo
	payments *memPaymentRepo
	uc       SubscriptionUseCase
	invUC    InvoiceUseCase
}

func newSubscriptionFixture(t *testing.T) *subscriptionFixture {
	t.Helper()
	f := &subscriptionFixture{
		subs:     newMemSubRepo(),
		users:    newMemUserRepo(),
		plans:    newMemPlanRepo(),
		products: newMemProductRepo(),
		invoices: newMemInvoiceRepo(),
		payments: newMemPaymentRepo(),
	}
	cfg := testPricingConfig()
	logger := newTestLogger()
	pricing := NewPricingUseCase(f.plans, f.products, newMemDiscountRepo(), newMemTaxRepo(), cfg, logger)
	f.invUC = NewInvoiceUseCase(f.invoices, f.payments, f.subs, cfg, logger)
	f.uc = NewSubscriptionUseCase(f.subs, f.users, f.plans, pricing, f.invUC, nil, cfg, logger)

	plan, err := model.NewPlan("plan-m", "Monthly Glow", 1000, model.IntervalMonthly)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := f.plans.Save(context.Background(), nil, plan); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	svc, err := model.NewProduct("svc-1", "Haircut", 500, "Hair")
	if err != nil {
		t.Fatalf("product: %v", err)
	}
	if err := f.products.Save(context.Background(), nil, svc); err != nil {
		t.Fatalf("save product: %v", err)
	}
	return f
}

func (f *subscriptionFixture) seedCustomer(t *testing.T, id string, firstTime bool) {
	t.Helper()
	u, err := model.NewUser(id, "Asha", id+"@example.com", "hash", model.RoleCustomer)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	u.IsFirstTimeUser = firstTime
	if err := f.users.Save(context.Background(), nil, u); err != nil {
		t.Fatalf("save user: %v", err)
	}
}

func TestSubscriptionCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a draft with priced totals", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-1", false)

		sub, err := f.uc.Create(context.Background(), CreateSubscriptionInput{
			CustomerID: "cust-1",
			PlanID:     "plan-m",
			ServiceIDs: []string{"svc-1"},
			StartDate:  time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Status != model.SubscriptionStatusDraft {
			t.Errorf("status = %s, want Draft", sub.Status)
		}
		if !strings.HasPrefix(sub.SubscriptionNumber, "SUB-") {
			t.Errorf("subscription number %q must carry the SUB- prefix", sub.SubscriptionNumber)
		}
		if sub.TotalAmount != 440 {
			t.Errorf("TotalAmount = %d, want 440", sub.TotalAmount)
		}
		if sub.RemainingBalance != 600 {
			t.Errorf("RemainingBalance = %d, want 600", sub.RemainingBalance)
		}
		if sub.MembershipFee != 0 {
			t.Errorf("returning customer must not pay membership fee, got %d", sub.MembershipFee)
		}
	})

	t.Run("adds membership fee for a first-time customer", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-new", true)

		sub, err := f.uc.Create(context.Background(), CreateSubscriptionInput{
			CustomerID: "cust-new",
			PlanID:     "plan-m",
			ServiceIDs: []string{"svc-1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.MembershipFee != 50 {
			t.Errorf("MembershipFee = %d, want 50", sub.MembershipFee)
		}
		if sub.TotalAmount != 490 {
			t.Errorf("TotalAmount = %d, want 440 + 50 fee", sub.TotalAmount)
		}
	})

	t.Run("quotation flag opens in Quotation status", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-1", false)

		sub, err := f.uc.Create(context.Background(), CreateSubscriptionInput{
			CustomerID: "cust-1",
			PlanID:     "plan-m",
			Quotation:  true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sub.Status != model.SubscriptionStatusQuotation {
			t.Errorf("status = %s, want Quotation", sub.Status)
		}
	})

	t.Run("rejects missing customer or plan", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		if _, err := f.uc.Create(context.Background(), CreateSubscriptionInput{PlanID: "plan-m"}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if _, err := f.uc.Create(context.Background(), CreateSubscriptionInput{CustomerID: "cust-1"}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestSubscriptionConfirm(t *testing.T) {
	t.Parallel()

	t.Run("activates, grants credits and generates the invoice", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-new", true)

		created, err := f.uc.Create(context.Background(), CreateSubscriptionInput{
			CustomerID: "cust-new",
			PlanID:     "plan-m",
			ServiceIDs: []string{"svc-1"},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		sub, inv, err := f.uc.Confirm(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if sub.Status != model.SubscriptionStatusActive {
			t.Errorf("status = %s, want Active", sub.Status)
		}
		if inv == nil {
			t.Fatal("expected an invoice")
		}
		if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
			t.Errorf("invoice number %q must carry the INV- prefix", inv.InvoiceNumber)
		}
		if inv.Total != sub.TotalAmount {
			t.Errorf("invoice total %d must snapshot subscription total %d", inv.Total, sub.TotalAmount)
		}
		// Membership fee surfaces as its own line.
		var feeLine bool
		for _, it := range inv.Items {
			if it.Description == "Membership Fee" && it.Amount == 50 {
				feeLine = true
			}
		}
		if !feeLine {
			t.Error("expected a Membership Fee invoice line")
		}

		customer, err := f.users.FindByID(context.Background(), nil, "cust-new")
		if err != nil {
			t.Fatalf("find customer: %v", err)
		}
		if customer.IsFirstTimeUser {
			t.Error("first-time flag must clear on confirmation")
		}
		if customer.TotalCredits != 5 {
			t.Errorf("TotalCredits = %d, want monthly loyalty grant 5", customer.TotalCredits)
		}
	})

	t.Run("re-confirm of an active subscription is a no-op", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-1", false)
		created, _ := f.uc.Create(context.Background(), CreateSubscriptionInput{CustomerID: "cust-1", PlanID: "plan-m"})
		if _, _, err := f.uc.Confirm(context.Background(), created.ID); err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		before, _ := f.invoices.ListAll(context.Background(), nil)

		sub, inv, err := f.uc.Confirm(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("second confirm: %v", err)
		}
		if sub.Status != model.SubscriptionStatusActive {
			t.Errorf("status = %s, want Active", sub.Status)
		}
		if inv != nil {
			t.Error("re-confirm must not issue a second invoice")
		}
		after, _ := f.invoices.ListAll(context.Background(), nil)
		if len(after) != len(before) {
			t.Errorf("invoice count changed from %d to %d", len(before), len(after))
		}
	})

	t.Run("closed subscription cannot be confirmed", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		f.seedCustomer(t, "cust-1", false)
		created, _ := f.uc.Create(context.Background(), CreateSubscriptionInput{CustomerID: "cust-1", PlanID: "plan-m"})
		if _, err := f.uc.Close(context.Background(), created.ID); err != nil {
			t.Fatalf("close: %v", err)
		}
		if _, _, err := f.uc.Confirm(context.Background(), created.ID); !errors.Is(err, domain.ErrSubscriptionClosed) {
			t.Errorf("expected ErrSubscriptionClosed, got %v", err)
		}
	})

	t.Run("unknown id surfaces not found", func(t *testing.T) {
		f := newSubscriptionFixture(t)
		if _, _, err := f.uc.Confirm(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSubscriptionClose(t *testing.T) {
	t.Parallel()
	f := newSubscriptionFixture(t)
	f.seedCustomer(t, "cust-1", false)
	created, _ := f.uc.Create(context.Background(), CreateSubscriptionInput{CustomerID: "cust-1", PlanID: "plan-m"})

	sub, err := f.uc.Close(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if sub.Status != model.SubscriptionStatusClosed {
		t.Errorf("status = %s, want Closed", sub.Status)
	}
	if _, err := f.uc.Close(context.Background(), created.ID); !errors.Is(err, domain.ErrSubscriptionClosed) {
		t.Errorf("double close: expected ErrSubscriptionClosed, got %v", err)
	}
}
