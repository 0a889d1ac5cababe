package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-suite/internal/config"
	"salon-suite/internal/domain/ports/repository"
	"salon-suite/internal/infra/api"
	pg "salon-suite/internal/infra/db/postgres"
	"salon-suite/internal/infra/logging"
	"salon-suite/internal/infra/metrics"
	red "salon-suite/internal/infra/redis"
	"salon-suite/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()
	tm := pg.NewTxManager(pool)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	productRepo := pg.NewProductRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	invoiceRepo := pg.NewInvoiceRepo(pool)
	paymentRepo := pg.NewPaymentRepo(pool)
	apptRepo := pg.NewAppointmentRepo(pool)

	planPort := repository.PlanRepository(pg.NewPlanRepo(pool))
	discountPort := repository.DiscountRuleRepository(pg.NewDiscountRuleRepo(pool))
	taxPort := repository.TaxRuleRepository(pg.NewTaxRuleRepo(pool))

	// ---- Redis (optional read-through caches) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		} else {
			defer redisClient.Close()
			planPort = pg.NewPlanRepoCacheDecorator(planPort, redisClient)
			discountPort = pg.NewDiscountRuleCacheDecorator(discountPort, redisClient)
			taxPort = pg.NewTaxRuleCacheDecorator(taxPort, redisClient)
		}
	}

	// ---- Use cases ----
	pricingUC := usecase.NewPricingUseCase(planPort, productRepo, discountPort, taxPort, cfg.Pricing, logger)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, paymentRepo, subRepo, cfg.Pricing, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, userRepo, planPort, pricingUC, invoiceUC, tm, cfg.Pricing, logger)
	userUC := usecase.NewUserUseCase(userRepo, cfg.Auth.OTPTTL, logger)
	planUC := usecase.NewPlanUseCase(planPort)
	catalogUC := usecase.NewCatalogUseCase(productRepo)
	ruleUC := usecase.NewRuleUseCase(discountPort, taxPort)
	reportUC := usecase.NewReportUseCase(userRepo, subRepo, paymentRepo)
	apptUC := usecase.NewAppointmentUseCase(apptRepo, productRepo)

	// ---- HTTP server ----
	auth := api.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := api.NewServer(api.ServerDeps{
		Users:    userUC,
		Catalog:  catalogUC,
		Plans:    planUC,
		Rules:    ruleUC,
		Pricing:  pricingUC,
		Subs:     subUC,
		Invoices: invoiceUC,
		Reports:  reportUC,
		Appts:    apptUC,
		Auth:     auth,
		Log:      logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
