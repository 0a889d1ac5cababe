package postgres

import (
	"context"
	"encoding/json"
	"time"

	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
	"salon-suite/internal/infra/metrics"
	red "salon-suite/internal/infra/redis"
)

var _ repository.DiscountRuleRepository = (*discountRuleCacheDecorator)(nil)
var _ repository.TaxRuleRepository = (*taxRuleCacheDecorator)(nil)

// ruleCacheTTL is short because rules carry effective-date windows; a stale
// list only survives until the next expiry.
const ruleCacheTTL = 5 * time.Minute

// discountRuleCacheDecorator caches the active-rule list the pricing engine
// reads on every quote. Single-rule lookups go straight to the inner repo.
type discountRuleCacheDecorator struct {
	inner repository.DiscountRuleRepository
	cache red.RedisClient
}

func NewDiscountRuleCacheDecorator(inner repository.DiscountRuleRepository, cache red.RedisClient) repository.DiscountRuleRepository {
	return &discountRuleCacheDecorator{inner: inner, cache: cache}
}

func (d *discountRuleCacheDecorator) ListActive(ctx context.Context, tx repository.Tx) ([]*model.DiscountRule, error) {
	key := "discount_rules:active"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("discount_rules", "hit")
		var rules []*model.DiscountRule
		if json.Unmarshal([]byte(val), &rules) == nil {
			return rules, nil
		}
	}

	metrics.IncCacheRequest("discount_rules", "miss")
	rules, err := d.inner.ListActive(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		bytes, _ := json.Marshal(rules)
		d.cache.Set(ctx, key, bytes, ruleCacheTTL)
	}
	return rules, nil
}

func (d *discountRuleCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.DiscountRule, error) {
	return d.inner.FindByID(ctx, tx, id)
}

func (d *discountRuleCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.DiscountRule, error) {
	return d.inner.ListAll(ctx, tx)
}

func (d *discountRuleCacheDecorator) Save(ctx context.Context, tx repository.Tx, rule *model.DiscountRule) error {
	d.cache.Del(ctx, "discount_rules:active")
	return d.inner.Save(ctx, tx, rule)
}

func (d *discountRuleCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	d.cache.Del(ctx, "discount_rules:active")
	return d.inner.Delete(ctx, tx, id)
}

type taxRuleCacheDecorator struct {
	inner repository.TaxRuleRepository
	cache red.RedisClient
}

func NewTaxRuleCacheDecorator(inner repository.TaxRuleRepository, cache red.RedisClient) repository.TaxRuleRepository {
	return &taxRuleCacheDecorator{inner: inner, cache: cache}
}

func (d *taxRuleCacheDecorator) ListActive(ctx context.Context, tx repository.Tx) ([]*model.TaxRule, error) {
	key := "tax_rules:active"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("tax_rules", "hit")
		var rules []*model.TaxRule
		if json.Unmarshal([]byte(val), &rules) == nil {
			return rules, nil
		}
	}

	metrics.IncCacheRequest("tax_rules", "miss")
	rules, err := d.inner.ListActive(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		bytes, _ := json.Marshal(rules)
		d.cache.Set(ctx, key, bytes, ruleCacheTTL)
	}
	return rules, nil
}

func (d *taxRuleCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.TaxRule, error) {
	return d.inner.FindByID(ctx, tx, id)
}

func (d *taxRuleCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.TaxRule, error) {
	return d.inner.ListAll(ctx, tx)
}

func (d *taxRuleCacheDecorator) Save(ctx context.Context, tx repository.Tx, rule *model.TaxRule) error {
	d.cache.Del(ctx, "tax_rules:active")
	return d.inner.Save(ctx, tx, rule)
}

func (d *taxRuleCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	d.cache.Del(ctx, "tax_rules:active")
	return d.inner.Delete(ctx, tx, id)
}
