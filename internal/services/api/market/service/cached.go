package service

import (
	"context"

	"tjmwatch/internal/core/filter"
	"tjmwatch/internal/platform/cache"
	"tjmwatch/internal/services/api/market/domain"
)

// Cached serves market reads through the response cache
type Cached struct {
	next  domain.ServicePort
	cache *cache.Cache
}

// NewCached wraps next; a nil or disabled cache passes every call through
func NewCached(next domain.ServicePort, c *cache.Cache) *Cached {
	return &Cached{next: next, cache: c}
}

// Stats implements domain.ServicePort
func (c *Cached) Stats(ctx context.Context, f filter.Filter) (domain.Stats, error) {
	return cache.GetOrLoad(ctx, c.cache, "stats", f.CacheKey(), func(ctx context.Context) (domain.Stats, error) {
		return c.next.Stats(ctx, f)
	})
}

// Series implements domain.ServicePort
func (c *Cached) Series(ctx context.Context, f filter.Filter) ([]domain.SeriesPoint, error) {
	return cache.GetOrLoad(ctx, c.cache, "offers", f.CacheKey(), func(ctx context.Context) ([]domain.SeriesPoint, error) {
		return c.next.Series(ctx, f)
	})
}

// BestOffers implements domain.ServicePort
func (c *Cached) BestOffers(ctx context.Context, f filter.Filter, page int) (domain.BestOffers, error) {
	parts := append(f.CacheKey(), cache.Itoa(page))
	return cache.GetOrLoad(ctx, c.cache, "best", parts, func(ctx context.Context) (domain.BestOffers, error) {
		return c.next.BestOffers(ctx, f, page)
	})
}

// Technologies implements domain.ServicePort
func (c *Cached) Technologies(ctx context.Context, f filter.Filter) ([]domain.Technology, error) {
	return cache.GetOrLoad(ctx, c.cache, "technologies", f.CacheKey(), func(ctx context.Context) ([]domain.Technology, error) {
		return c.next.Technologies(ctx, f)
	})
}

// Companies implements domain.ServicePort
func (c *Cached) Companies(ctx context.Context, f filter.Filter) ([]domain.Company, error) {
	return cache.GetOrLoad(ctx, c.cache, "companies", f.CacheKey(), func(ctx context.Context) ([]domain.Company, error) {
		return c.next.Companies(ctx, f)
	})
}

// Distribution implements domain.ServicePort
func (c *Cached) Distribution(ctx context.Context, f filter.Filter, ceiling int) ([]domain.RateBucket, error) {
	parts := append(f.CacheKey(), cache.Itoa(ceiling))
	return cache.GetOrLoad(ctx, c.cache, "distribution", parts, func(ctx context.Context) ([]domain.RateBucket, error) {
		return c.next.Distribution(ctx, f, ceiling)
	})
}
