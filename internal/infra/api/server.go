package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/usecase"
)

// Server wires the REST surface to the use case layer.
type Server struct {
	users    *usecase.UserUseCase
	catalog  *usecase.CatalogUseCase
	plans    *usecase.PlanUseCase
	rules    *usecase.RuleUseCase
	pricing  usecase.PricingUseCase
	subs     usecase.SubscriptionUseCase
	invoices usecase.InvoiceUseCase
	reports  *usecase.ReportUseCase
	appts    *usecase.AppointmentUseCase
	auth     *AuthManager
	log      *zerolog.Logger
}

type ServerDeps struct {
	Users    *usecase.UserUseCase
	Catalog  *usecase.CatalogUseCase
	Plans    *usecase.PlanUseCase
	Rules    *usecase.RuleUseCase
	Pricing  usecase.PricingUseCase
	Subs     usecase.SubscriptionUseCase
	Invoices usecase.InvoiceUseCase
	Reports  *usecase.ReportUseCase
	Appts    *usecase.AppointmentUseCase
	Auth     *AuthManager
	Log      *zerolog.Logger
}

func NewServer(d ServerDeps) *Server {
	return &Server{
		users:    d.Users,
		catalog:  d.Catalog,
		plans:    d.Plans,
		rules:    d.Rules,
		pricing:  d.Pricing,
		subs:     d.Subs,
		invoices: d.Invoices,
		reports:  d.Reports,
		appts:    d.Appts,
		auth:     d.Auth,
		log:      d.Log,
	}
}

// Router builds the chi mux with all routes mounted.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(s.log), RequestLog(s.log), Timeout(30*time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/forgot-password", s.handleForgotPassword)
		r.Post("/auth/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(s.auth))

			r.Get("/products", s.handleProductList)
			r.Get("/products/{id}", s.handleProductGet)
			r.Get("/plans", s.handlePlanList)
			r.Get("/plans/{id}", s.handlePlanGet)

			r.Post("/subscriptions", s.handleSubscriptionCreate)
			r.Get("/subscriptions/{id}", s.handleSubscriptionGet)
			r.Get("/customers/{id}/subscriptions", s.handleSubscriptionsByCustomer)
			r.Post("/subscriptions/{id}/confirm", s.handleSubscriptionConfirm)
			r.Post("/subscriptions/{id}/close", s.handleSubscriptionClose)
			r.Post("/quotes", s.handleQuote)

			r.Get("/invoices/{id}", s.handleInvoiceGet)
			r.Get("/customers/{id}/invoices", s.handleInvoicesByCustomer)
			r.Post("/payments", s.handlePaymentCreate)

			r.Get("/customers/{id}/report", s.handleCustomerReport)

			r.Post("/appointments", s.handleAppointmentCreate)
			r.Get("/customers/{id}/appointments", s.handleAppointmentsByCustomer)

			// Staff-only management surface.
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(model.RoleAdmin, model.RoleStaff))

				r.Post("/products", s.handleProductCreate)
				r.Delete("/products/{id}", s.handleProductDelete)
				r.Post("/plans", s.handlePlanCreate)
				r.Put("/plans/{id}", s.handlePlanUpdate)
				r.Delete("/plans/{id}", s.handlePlanDelete)

				r.Get("/discounts", s.handleDiscountList)
				r.Post("/discounts", s.handleDiscountCreate)
				r.Delete("/discounts/{id}", s.handleDiscountDelete)
				r.Get("/taxes", s.handleTaxList)
				r.Post("/taxes", s.handleTaxCreate)
				r.Delete("/taxes/{id}", s.handleTaxDelete)

				r.Get("/invoices", s.handleInvoiceList)
				r.Get("/customers", s.handleCustomerList)
				r.Get("/appointments", s.handleAppointmentList)
				r.Put("/appointments/{id}/status", s.handleAppointmentStatus)
				r.Get("/reports/admin", s.handleAdminReport)
			})
		})
	})

	return r
}
