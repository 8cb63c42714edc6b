package domain

import (
	"context"

	"tjmwatch/internal/core/filter"
)

// Ranking sizes
const (
	TopTechnologies = 15
	TopCompanies    = 20
)

// NoTechnology is reported when no offer carries a job
const NoTechnology = "N/A"

// ServicePort is the read surface of the market analytics
type ServicePort interface {
	Stats(ctx context.Context, f filter.Filter) (Stats, error)
	Series(ctx context.Context, f filter.Filter) ([]SeriesPoint, error)
	BestOffers(ctx context.Context, f filter.Filter, page int) (BestOffers, error)
	Technologies(ctx context.Context, f filter.Filter) ([]Technology, error)
	Companies(ctx context.Context, f filter.Filter) ([]Company, error)
	Distribution(ctx context.Context, f filter.Filter, ceiling int) ([]RateBucket, error)
}
