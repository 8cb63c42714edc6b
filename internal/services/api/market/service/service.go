// Package service computes the market aggregates from the repo
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"tjmwatch/internal/core/filter"
	"tjmwatch/internal/core/market"
	"tjmwatch/internal/modkit/repokit"
	perr "tjmwatch/internal/platform/errors"
	"tjmwatch/internal/services/api/market/domain"
	"tjmwatch/internal/services/api/market/repo"
)

// MedianScope selects the rows medians are computed over
type MedianScope string

// Median scopes
const (
	MedianFiltered MedianScope = "filtered"
	MedianGlobal   MedianScope = "global"
)

// Service defines the market service contract
type Service interface {
	domain.ServicePort
}

// Config tunes the aggregates
type Config struct {
	MedianScope MedianScope
}

// Svc implements the market service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
}

// New constructs a market service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("market.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("market.Service requires a non nil Repo binder")
	}
	if cfg.MedianScope == "" {
		cfg.MedianScope = MedianFiltered
	}
	return &Svc{Repo: repokit.MustBind(binder, db), binder: binder, db: db, cfg: cfg}
}

func storeErr(err error, op string) error {
	return perr.WithOp(perr.FromPostgres(err, "market: "+op), "market."+op)
}

// Stats fans the summary queries out and fails as a whole on the first error
func (s *Svc) Stats(ctx context.Context, f filter.Filter) (domain.Stats, error) {
	var (
		totals  repo.Totals
		medians repo.Medians
		prev    repo.Window
		top     *string
		since   *time.Time
	)
	prevFilter, trend := f.Previous()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { totals, err = s.Repo.Totals(gctx, f); return })
	g.Go(func() (err error) {
		mf := f
		if s.cfg.MedianScope == MedianGlobal {
			mf = filter.Filter{}
		}
		medians, err = s.Repo.Medians(gctx, mf)
		return
	})
	g.Go(func() (err error) { top, err = s.Repo.TopJob(gctx, f); return })
	g.Go(func() (err error) { since, err = s.Repo.CollectingSince(gctx); return })
	if trend {
		g.Go(func() (err error) { prev, err = s.Repo.Window(gctx, prevFilter); return })
	}
	if err := g.Wait(); err != nil {
		return domain.Stats{}, storeErr(err, "stats")
	}

	out := domain.Stats{
		TotalOffers:   totals.Count,
		AvgMinRate:    market.RoundOrZero(totals.AvgMin),
		AvgMaxRate:    market.RoundOrZero(totals.AvgMax),
		MedianMinRate: market.RoundOrZero(medians.Min),
		MedianMaxRate: market.RoundOrZero(medians.Max),
		TopTechnology: domain.NoTechnology,
	}
	if top != nil {
		out.TopTechnology = *top
	}
	if since != nil {
		t := since.UTC()
		out.CollectingSince = &t
	}
	if trend {
		out.OffersTrend = market.CountChange(totals.Count, prev.Count)
		out.RateTrend = market.Change(totals.AvgMax, prev.AvgMax)
	}
	return out, nil
}

// Series buckets offers by the period granularity
func (s *Svc) Series(ctx context.Context, f filter.Filter) ([]domain.SeriesPoint, error) {
	rows, err := s.Repo.Series(ctx, f, f.Period.Granularity())
	if err != nil {
		return nil, storeErr(err, "series")
	}
	out := make([]domain.SeriesPoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.SeriesPoint{
			PublishedAt: r.Start.UTC(),
			Count:       domain.SeriesCount{All: r.Count},
			Avg:         domain.SeriesAvg{MinimumSalary: r.AvgMin, MaximumSalary: r.AvgMax},
		})
	}
	return out, nil
}

// BestOffers pages the best paid offers; a page past the end is empty
func (s *Svc) BestOffers(ctx context.Context, f filter.Filter, page int) (domain.BestOffers, error) {
	if page < 1 {
		page = 1
	}
	var (
		total int64
		rows  []repo.RowOffer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { total, err = s.Repo.CountRated(gctx, f); return })
	g.Go(func() (err error) {
		rows, err = s.Repo.BestOffers(gctx, f, market.PageSize, market.Offset(page, market.PageSize))
		return
	})
	if err := g.Wait(); err != nil {
		return domain.BestOffers{}, storeErr(err, "best_offers")
	}

	items := make([]domain.OfferItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.OfferItem{
			ID: r.ID, Title: r.Title, Company: r.Company, Job: r.Job,
			MinimumSalary: r.Min, MaximumSalary: r.Max,
			PublishedAt: r.PublishedAt.UTC(), URL: r.URL,
		})
	}
	return domain.BestOffers{
		Offers:     items,
		Total:      total,
		Page:       page,
		PageSize:   market.PageSize,
		TotalPages: market.TotalPages(total, market.PageSize),
	}, nil
}

// Technologies ranks jobs by offer count
func (s *Svc) Technologies(ctx context.Context, f filter.Filter) ([]domain.Technology, error) {
	rows, err := s.Repo.Ranking(ctx, f, repo.ByJob, domain.TopTechnologies)
	if err != nil {
		return nil, storeErr(err, "technologies")
	}
	out := make([]domain.Technology, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Technology{
			Job: r.Name, Count: r.Count,
			AvgMinRate: market.RoundOrZero(r.AvgMin),
			AvgMaxRate: market.RoundOrZero(r.AvgMax),
		})
	}
	return out, nil
}

// Companies ranks companies by offer count
func (s *Svc) Companies(ctx context.Context, f filter.Filter) ([]domain.Company, error) {
	rows, err := s.Repo.Ranking(ctx, f, repo.ByCompany, domain.TopCompanies)
	if err != nil {
		return nil, storeErr(err, "companies")
	}
	out := make([]domain.Company, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Company{
			Company: r.Name, Count: r.Count,
			AvgMinRate: market.RoundOrZero(r.AvgMin),
			AvgMaxRate: market.RoundOrZero(r.AvgMax),
		})
	}
	return out, nil
}

// Distribution is the max-rate histogram; ceiling > 0 folds the tail into one bar
func (s *Svc) Distribution(ctx context.Context, f filter.Filter, ceiling int) ([]domain.RateBucket, error) {
	rows, err := s.Repo.Distribution(ctx, f)
	if err != nil {
		return nil, storeErr(err, "distribution")
	}
	bins := make([]market.Bin, 0, len(rows))
	for _, r := range rows {
		bins = append(bins, market.Bin{Start: int(r.Start), Count: r.Count})
	}
	return market.Histogram(bins, ceiling), nil
}
