package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"salon-suite/internal/config"
	"salon-suite/internal/domain/model"
	pg "salon-suite/internal/infra/db/postgres"
	"salon-suite/internal/infra/logging"
	"salon-suite/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	planUC := usecase.NewPlanUseCase(pg.NewPlanRepo(pool))
	catalogUC := usecase.NewCatalogUseCase(pg.NewProductRepo(pool))
	ruleUC := usecase.NewRuleUseCase(pg.NewDiscountRuleRepo(pool), pg.NewTaxRuleRepo(pool))
	userUC := usecase.NewUserUseCase(pg.NewUserRepo(pool), cfg.Auth.OTPTTL, logger)

	// If plans already exist, do nothing.
	plans, err := planUC.List(ctx)
	if err != nil {
		log.Fatalf("list plans: %v", err)
	}
	if len(plans) > 0 {
		fmt.Printf("%d plans already present. No changes.\n", len(plans))
		return
	}

	products := []struct {
		Name     string
		Price    int64
		Category string
	}{
		{"Haircut", 500, "Hair"},
		{"Hair Color", 1500, "Hair"},
		{"Classic Facial", 800, "Skin"},
		{"Full Body Massage", 2000, "Spa"},
		{"Manicure", 400, "Nails"},
	}
	for _, in := range products {
		p, err := model.NewProduct(uuid.NewString(), in.Name, in.Price, in.Category)
		if err != nil {
			log.Fatalf("product %q: %v", in.Name, err)
		}
		if err := catalogUC.Create(ctx, p); err != nil {
			log.Fatalf("create product %q: %v", in.Name, err)
		}
		fmt.Printf("seeded product: %s (%d)\n", p.Name, p.SalesPrice)
	}

	planSeed := []struct {
		Name     string
		Price    int64
		Interval model.BillingInterval
	}{
		{"Monthly Glow", 1000, model.IntervalMonthly},
		{"Quarterly Care", 2700, model.IntervalQuarterly},
		{"Half-Year Radiance", 5000, model.IntervalHalfYearly},
		{"Annual Luxe", 9000, model.IntervalYearly},
	}
	for _, in := range planSeed {
		p, err := model.NewPlan(uuid.NewString(), in.Name, in.Price, in.Interval)
		if err != nil {
			log.Fatalf("plan %q: %v", in.Name, err)
		}
		if err := planUC.Create(ctx, p); err != nil {
			log.Fatalf("create plan %q: %v", in.Name, err)
		}
		fmt.Printf("seeded plan: %s (%s, %d)\n", p.Name, p.BillingInterval, p.Price)
	}

	welcome, err := model.NewDiscountRule(uuid.NewString(), "Yearly Welcome", model.DiscountPercentage, 10)
	if err != nil {
		log.Fatalf("discount rule: %v", err)
	}
	welcome.Interval = model.IntervalYearly
	if err := ruleUC.CreateDiscount(ctx, welcome); err != nil {
		log.Fatalf("create discount rule: %v", err)
	}
	fmt.Printf("seeded discount rule: %s\n", welcome.Name)

	gst, err := model.NewTaxRule(uuid.NewString(), "Service GST", 18)
	if err != nil {
		log.Fatalf("tax rule: %v", err)
	}
	if err := ruleUC.CreateTax(ctx, gst); err != nil {
		log.Fatalf("create tax rule: %v", err)
	}
	fmt.Printf("seeded tax rule: %s (%d%%)\n", gst.Name, gst.Percentage)

	if _, err := userUC.Register(ctx, "Admin", "admin@example.com", "", "changeme", model.RoleAdmin); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Println("seeded admin user admin@example.com (password: changeme)")

	fmt.Println("Seeding complete.")
}
