package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/usecase"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrSubscriptionClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPlan):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrOTPExpired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// userView strips credential fields from API responses.
type userView struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	Role            model.Role
	TotalCredits    int64
	IsFirstTimeUser bool
	CreatedAt       time.Time
}

func viewUser(u *model.User) userView {
	return userView{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role,
		TotalCredits:    u.TotalCredits,
		IsFirstTimeUser: u.IsFirstTimeUser,
		CreatedAt:       u.CreatedAt,
	}
}

// ===== auth =====

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u, err := s.users.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password, model.RoleCustomer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewUser(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u, err := s.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := s.auth.Mint(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string
		User  userView
	}{Token: token, User: viewUser(u)})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// The response is identical whether or not the account exists.
	if _, err := s.users.RequestPasswordReset(r.Context(), req.Email); err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.users.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== catalog =====

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		SalesPrice int64  `json:"sales_price"`
		Category   string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, err := model.NewProduct(uuid.NewString(), req.Name, req.SalesPrice, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.Create(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	list, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== plans =====

type planRequest struct {
	Name             string   `json:"name"`
	Price            int64    `json:"price"`
	BillingInterval  string   `json:"billing_interval"`
	ServicesIncluded []string `json:"services_included"`
	Active           *bool    `json:"active"`
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, err := model.NewPlan(uuid.NewString(), req.Name, req.Price, model.BillingInterval(req.BillingInterval))
	if err != nil {
		writeError(w, err)
		return
	}
	p.ServicesIncluded = req.ServicesIncluded
	if err := s.plans.Create(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, err := s.plans.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.BillingInterval != "" {
		p.BillingInterval = model.BillingInterval(req.BillingInterval)
	}
	if req.ServicesIncluded != nil {
		p.ServicesIncluded = req.ServicesIncluded
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.plans.Update(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.plans.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePlanList(w http.ResponseWriter, r *http.Request) {
	list, err := s.plans.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePlanDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== discount and tax rules =====

func (s *Server) handleDiscountCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string     `json:"name"`
		Type               string     `json:"type"`
		Value              int64      `json:"value"`
		CustomerID         string     `json:"customer_id"`
		PlanID             string     `json:"plan_id"`
		BillingInterval    string     `json:"billing_interval"`
		ApplicableProducts []string   `json:"applicable_products"`
		StartDate          *time.Time `json:"start_date"`
		EndDate            *time.Time `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	rule, err := model.NewDiscountRule(uuid.NewString(), req.Name, model.DiscountType(req.Type), req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	rule.CustomerID = req.CustomerID
	rule.PlanID = req.PlanID
	if req.BillingInterval != "" {
		rule.Interval = model.BillingInterval(req.BillingInterval)
	}
	rule.ApplicableProducts = req.ApplicableProducts
	rule.StartDate = req.StartDate
	rule.EndDate = req.EndDate
	if err := s.rules.CreateDiscount(r.Context(), rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleDiscountList(w http.ResponseWriter, r *http.Request) {
	list, err := s.rules.ListDiscounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDiscountDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.rules.DeleteDiscount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTaxCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		Percentage      int64  `json:"percentage"`
		BillingInterval string `json:"billing_interval"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	rule, err := model.NewTaxRule(uuid.NewString(), req.Name, req.Percentage)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.BillingInterval != "" {
		rule.Interval = model.BillingInterval(req.BillingInterval)
	}
	if err := s.rules.CreateTax(r.Context(), rule); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleTaxList(w http.ResponseWriter, r *http.Request) {
	list, err := s.rules.ListTaxes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleTaxDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.rules.DeleteTax(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== subscriptions =====

type subscriptionRequest struct {
	CustomerID string     `json:"customer_id"`
	PlanID     string     `json:"plan_id"`
	ServiceIDs []string   `json:"service_ids"`
	StartDate  *time.Time `json:"start_date"`
	Quotation  bool       `json:"quotation"`
	Notes      string     `json:"notes"`
}

func (r subscriptionRequest) toInput() usecase.CreateSubscriptionInput {
	in := usecase.CreateSubscriptionInput{
		CustomerID: r.CustomerID,
		PlanID:     r.PlanID,
		ServiceIDs: r.ServiceIDs,
		Quotation:  r.Quotation,
		Notes:      r.Notes,
	}
	if r.StartDate != nil {
		in.StartDate = *r.StartDate
	} else {
		in.StartDate = time.Now()
	}
	return in
}

func (s *Server) handleSubscriptionCreate(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sub, err := s.subs.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// handleQuote prices a plan/services selection without persisting anything.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in := req.toInput()
	bb, err := s.pricing.ComputeBilling(r.Context(), in.PlanID, in.ServiceIDs, in.CustomerID, in.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bb)
}

func (s *Server) handleSubscriptionGet(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleSubscriptionsByCustomer(w http.ResponseWriter, r *http.Request) {
	list, err := s.subs.ListByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSubscriptionConfirm(w http.ResponseWriter, r *http.Request) {
	sub, inv, err := s.subs.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Subscription *model.Subscription
		Invoice      *model.Invoice
	}{Subscription: sub, Invoice: inv})
}

func (s *Server) handleSubscriptionClose(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subs.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ===== invoices and payments =====

func (s *Server) handleInvoiceGet(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoices.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleInvoicesByCustomer(w http.ResponseWriter, r *http.Request) {
	list, err := s.invoices.ListByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleInvoiceList(w http.ResponseWriter, r *http.Request) {
	list, err := s.invoices.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handlePaymentCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID  string `json:"invoice_id"`
		CustomerID string `json:"customer_id"`
		Amount     int64  `json:"amount"`
		Method     string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p, err := s.invoices.RecordPayment(r.Context(), usecase.RecordPaymentInput{
		InvoiceID:  req.InvoiceID,
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Method:     model.PaymentMethod(req.Method),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ===== reports and customers =====

func (s *Server) handleCustomerReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.CustomerSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleAdminReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.reports.AdminSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCustomerList(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]userView, 0, len(list))
	for _, u := range list {
		views = append(views, viewUser(u))
	}
	writeJSON(w, http.StatusOK, views)
}

// ===== appointments =====

func (s *Server) handleAppointmentCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID  string    `json:"customer_id"`
		ProductID   string    `json:"product_id"`
		StaffID     string    `json:"staff_id"`
		ScheduledAt time.Time `json:"scheduled_at"`
		Notes       string    `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a, err := s.appts.Book(r.Context(), req.CustomerID, req.ProductID, req.StaffID, req.ScheduledAt, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleAppointmentsByCustomer(w http.ResponseWriter, r *http.Request) {
	list, err := s.appts.ListByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAppointmentList(w http.ResponseWriter, r *http.Request) {
	list, err := s.appts.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a, err := s.appts.SetStatus(r.Context(), chi.URLParam(r, "id"), model.AppointmentStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
