//go:build !integration

package usecase

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"salon-suite/internal/config"
	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		FallbackDiscounts: map[string]int64{
			"Monthly": 100, "Quarterly": 200, "Half-Yearly": 300, "Yearly": 400,
		},
		DefaultTaxPercent: 10,
		MembershipFee:     50,
		LoyaltyCredits: map[string]int64{
			"Monthly": 5, "Quarterly": 10, "Half-Yearly": 15, "Yearly": 10,
		},
		InvoiceDueDays: 7,
	}
}

// ---- in-memory repositories ----

type memPlanRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Plan
	saveErr error
}

func newMemPlanRepo() *memPlanRepo { return &memPlanRepo{store: make(map[string]*model.Plan)} }

func (m *memPlanRepo) Save(_ context.Context, _ repository.Tx, p *model.Plan) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPlanRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPlanRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Plan, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memPlanRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memProductRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{store: make(map[string]*model.Product)}
}

func (m *memProductRepo) Save(_ context.Context, _ repository.Tx, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) FindByIDs(_ context.Context, _ repository.Tx, ids []string) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.store[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProductRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Product, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProductRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memDiscountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.DiscountRule
}

func newMemDiscountRepo() *memDiscountRepo {
	return &memDiscountRepo{store: make(map[string]*model.DiscountRule)}
}

func (m *memDiscountRepo) Save(_ context.Context, _ repository.Tx, r *model.DiscountRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *memDiscountRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.DiscountRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memDiscountRepo) ListActive(_ context.Context, _ repository.Tx) ([]*model.DiscountRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.DiscountRule
	for _, r := range m.store {
		if r.IsActive {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memDiscountRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.DiscountRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.DiscountRule, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memDiscountRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memTaxRepo struct {
	mu    sync.RWMutex
	store map[string]*model.TaxRule
}

func newMemTaxRepo() *memTaxRepo { return &memTaxRepo{store: make(map[string]*model.TaxRule)} }

func (m *memTaxRepo) Save(_ context.Context, _ repository.Tx, r *model.TaxRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.store[r.ID] = &cp
	return nil
}

func (m *memTaxRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.TaxRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memTaxRepo) ListActive(_ context.Context, _ repository.Tx) ([]*model.TaxRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.TaxRule
	for _, r := range m.store {
		if r.IsActive {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTaxRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.TaxRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.TaxRule, 0, len(m.store))
	for _, r := range m.store {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memTaxRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memSubRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Subscription
	saveErr error
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{store: make(map[string]*model.Subscription)}
}

func (m *memSubRepo) Save(_ context.Context, _ repository.Tx, s *model.Subscription) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *memSubRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) ListByCustomer(_ context.Context, _ repository.Tx, customerID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.CustomerID == customerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSubRepo) ListRecent(_ context.Context, _ repository.Tx, limit int) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if len(out) >= limit {
			break
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubRepo) CountByStatus(_ context.Context, _ repository.Tx, status model.SubscriptionStatus) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.store {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *memSubRepo) CountActiveByCustomer(_ context.Context, _ repository.Tx, customerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.store {
		if s.CustomerID == customerID && s.Status == model.SubscriptionStatusActive {
			n++
		}
	}
	return n, nil
}

func (m *memSubRepo) CountActiveExpiringBefore(_ context.Context, _ repository.Tx, customerID string, before time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.store {
		if s.CustomerID == customerID && s.Status == model.SubscriptionStatusActive && !s.EndDate.After(before) {
			n++
		}
	}
	return n, nil
}

type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{store: make(map[string]*model.User)} }

func (m *memUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, _ repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) ListByRole(_ context.Context, _ repository.Tx, role model.Role) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memUserRepo) CountByRole(_ context.Context, _ repository.Tx, role model.Role) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.store {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memInvoiceRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Invoice
	saveErr error
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{store: make(map[string]*model.Invoice)}
}

func (m *memInvoiceRepo) Save(_ context.Context, _ repository.Tx, inv *model.Invoice) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *inv
	m.store[inv.ID] = &cp
	return nil
}

func (m *memInvoiceRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *memInvoiceRepo) ListByCustomer(_ context.Context, _ repository.Tx, customerID string) ([]*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Invoice
	for _, inv := range m.store {
		if inv.CustomerID == customerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memInvoiceRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Invoice, 0, len(m.store))
	for _, inv := range m.store {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

type memPaymentRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Payment
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]*model.Payment)}
}

func (m *memPaymentRepo) Save(_ context.Context, _ repository.Tx, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPaymentRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) ListByCustomer(_ context.Context, _ repository.Tx, customerID string) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.CustomerID == customerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPaymentRepo) ListByInvoice(_ context.Context, _ repository.Tx, invoiceID string) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPaymentRepo) SumAmounts(_ context.Context, _ repository.Tx, customerID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum int64
	for _, p := range m.store {
		if customerID == "" || p.CustomerID == customerID {
			sum += p.Amount
		}
	}
	return sum, nil
}

type memAppointmentRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{store: make(map[string]*model.Appointment)}
}

func (m *memAppointmentRepo) Save(_ context.Context, _ repository.Tx, a *model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAppointmentRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAppointmentRepo) ListByCustomer(_ context.Context, _ repository.Tx, customerID string) ([]*model.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Appointment
	for _, a := range m.store {
		if a.CustomerID == customerID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Appointment, 0, len(m.store))
	for _, a := range m.store {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

// Interface compliance for the mocks.
var (
	_ repository.PlanRepository         = (*memPlanRepo)(nil)
	_ repository.ProductRepository      = (*memProductRepo)(nil)
	_ repository.DiscountRuleRepository = (*memDiscountRepo)(nil)
	_ repository.TaxRuleRepository      = (*memTaxRepo)(nil)
	_ repository.SubscriptionRepository = (*memSubRepo)(nil)
	_ repository.UserRepository         = (*memUserRepo)(nil)
	_ repository.InvoiceRepository      = (*memInvoiceRepo)(nil)
	_ repository.PaymentRepository      = (*memPaymentRepo)(nil)
	_ repository.AppointmentRepository  = (*memAppointmentRepo)(nil)
)
