package service

import (
	"context"
	"errors"
	"time"

	"tjmwatch/internal/core/filter"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/services/api/market/repo"
)

type fakeDB struct{ repokit.Queryer }

func (fakeDB) Tx(_ context.Context, fn func(repokit.Queryer) error) error { return fn(nil) }

// fakeRepo returns canned rows and records the filters it saw
type fakeRepo struct {
	totals  repo.Totals
	medians repo.Medians
	window  repo.Window
	top     *string
	since   *time.Time
	series  []repo.RowSeries
	rated   int64
	best    []repo.RowOffer
	ranking []repo.RowRanking
	bins    []repo.RowBin
	err     error

	medianFilter filter.Filter
	windowFilter *filter.Filter
	bestLimit    int
	bestOffset   int
	dims         []repo.Dimension
	gran         filter.Granularity
}

func (r *fakeRepo) binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
}

func (r *fakeRepo) Totals(context.Context, filter.Filter) (repo.Totals, error) {
	return r.totals, r.err
}

func (r *fakeRepo) Medians(_ context.Context, f filter.Filter) (repo.Medians, error) {
	r.medianFilter = f
	return r.medians, nil
}

func (r *fakeRepo) Window(_ context.Context, f filter.Filter) (repo.Window, error) {
	r.windowFilter = &f
	return r.window, nil
}

func (r *fakeRepo) TopJob(context.Context, filter.Filter) (*string, error) { return r.top, nil }

func (r *fakeRepo) CollectingSince(context.Context) (*time.Time, error) { return r.since, nil }

func (r *fakeRepo) Series(_ context.Context, _ filter.Filter, g filter.Granularity) ([]repo.RowSeries, error) {
	r.gran = g
	return r.series, r.err
}

func (r *fakeRepo) CountRated(context.Context, filter.Filter) (int64, error) { return r.rated, r.err }

func (r *fakeRepo) BestOffers(_ context.Context, _ filter.Filter, limit, offset int) ([]repo.RowOffer, error) {
	r.bestLimit, r.bestOffset = limit, offset
	return r.best, nil
}

func (r *fakeRepo) Ranking(_ context.Context, _ filter.Filter, dim repo.Dimension, limit int) ([]repo.RowRanking, error) {
	r.dims = append(r.dims, dim)
	if len(r.ranking) > limit {
		return r.ranking[:limit], r.err
	}
	return r.ranking, r.err
}

func (r *fakeRepo) Distribution(context.Context, filter.Filter) ([]repo.RowBin, error) {
	return r.bins, r.err
}

var errDown = errors.New("connection refused")

func f64(v float64) *float64 { return &v }
