// Package repo provides the aggregate queries behind the market endpoints
package repo

import (
	"context"
	"time"

	"tjmwatch/internal/core/filter"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/platform/store"
)

// Repo is the read surface over offers
type Repo interface {
	Totals(ctx context.Context, f filter.Filter) (Totals, error)
	Medians(ctx context.Context, f filter.Filter) (Medians, error)
	Window(ctx context.Context, f filter.Filter) (Window, error)
	TopJob(ctx context.Context, f filter.Filter) (*string, error)
	CollectingSince(ctx context.Context) (*time.Time, error)
	Series(ctx context.Context, f filter.Filter, g filter.Granularity) ([]RowSeries, error)
	CountRated(ctx context.Context, f filter.Filter) (int64, error)
	BestOffers(ctx context.Context, f filter.Filter, limit, offset int) ([]RowOffer, error)
	Ranking(ctx context.Context, f filter.Filter, dim Dimension, limit int) ([]RowRanking, error)
	Distribution(ctx context.Context, f filter.Filter) ([]RowBin, error)
}

// Totals is the volume and the averages over rows with both rates
type Totals struct {
	Count  int64
	AvgMin *float64
	AvgMax *float64
}

// Medians are the 50th percentiles over rows with both rates
type Medians struct {
	Min *float64
	Max *float64
}

// Window is the count and average max rate of a trend window
type Window struct {
	Count  int64
	AvgMax *float64
}

// RowSeries is one time bucket
type RowSeries struct {
	Start  time.Time
	Count  int64
	AvgMin *float64
	AvgMax *float64
}

// RowOffer is one ranked offer
type RowOffer struct {
	ID          int64
	Title       string
	Company     string
	Job         *string
	Min         float64
	Max         float64
	PublishedAt time.Time
	URL         string
}

// RowRanking is one group of a ranking
type RowRanking struct {
	Name   string
	Count  int64
	AvgMin *float64
	AvgMax *float64
}

// RowBin is one histogram bin by lower edge
type RowBin struct {
	Start float64
	Count int64
}

// Dimension is a groupable offers column
type Dimension string

// Groupable columns
const (
	ByJob     Dimension = "job"
	ByCompany Dimension = "company"
)

const (
	bothRated = "minimum_salary IS NOT NULL AND maximum_salary IS NOT NULL"
	maxRated  = "maximum_salary IS NOT NULL"
)

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Totals(ctx context.Context, f filter.Filter) (Totals, error) {
	where, args := f.Where()
	sql := `
select count(*),
       avg(minimum_salary) filter (where ` + bothRated + `),
       avg(maximum_salary) filter (where ` + bothRated + `)
from offers ` + where
	var t Totals
	err := r.q.QueryRow(ctx, sql, args...).Scan(&t.Count, &t.AvgMin, &t.AvgMax)
	return t, err
}

func (r *queries) Medians(ctx context.Context, f filter.Filter) (Medians, error) {
	where, args := f.Where(bothRated)
	sql := `
select percentile_cont(0.5) within group (order by minimum_salary),
       percentile_cont(0.5) within group (order by maximum_salary)
from offers ` + where
	var m Medians
	err := r.q.QueryRow(ctx, sql, args...).Scan(&m.Min, &m.Max)
	return m, err
}

// Window averages max over every row with a max, as the trend has always done
func (r *queries) Window(ctx context.Context, f filter.Filter) (Window, error) {
	where, args := f.Where()
	sql := `select count(*), avg(maximum_salary) from offers ` + where
	var w Window
	err := r.q.QueryRow(ctx, sql, args...).Scan(&w.Count, &w.AvgMax)
	return w, err
}

func (r *queries) TopJob(ctx context.Context, f filter.Filter) (*string, error) {
	where, args := f.Where("job IS NOT NULL")
	sql := `
select job from offers ` + where + `
group by job
order by count(*) desc, job asc
limit 1`
	jobs, err := store.Many(ctx, r.q, scanString, sql, args...)
	if err != nil || len(jobs) == 0 {
		return nil, err
	}
	return &jobs[0], nil
}

func scanString(row store.Row) (string, error) {
	var s string
	err := row.Scan(&s)
	return s, err
}

func (r *queries) CollectingSince(ctx context.Context) (*time.Time, error) {
	return store.Scalar[*time.Time](ctx, r.q, `select min(published_at) from offers`)
}

// bucketExpr truncates in UTC so week and month edges do not move with the session zone
func bucketExpr(g filter.Granularity) string {
	switch g {
	case filter.Week:
		return `date_trunc('week', published_at at time zone 'UTC') at time zone 'UTC'`
	case filter.Month:
		return `date_trunc('month', published_at at time zone 'UTC') at time zone 'UTC'`
	default:
		return `published_at`
	}
}

func (r *queries) Series(ctx context.Context, f filter.Filter, g filter.Granularity) ([]RowSeries, error) {
	where, args := f.Where()
	sql := `
select ` + bucketExpr(g) + ` as bucket, count(*), avg(minimum_salary), avg(maximum_salary)
from offers ` + where + `
group by bucket
order by bucket asc`
	return store.Many(ctx, r.q, func(row store.Row) (RowSeries, error) {
		var s RowSeries
		err := row.Scan(&s.Start, &s.Count, &s.AvgMin, &s.AvgMax)
		return s, err
	}, sql, args...)
}

func (r *queries) CountRated(ctx context.Context, f filter.Filter) (int64, error) {
	where, args := f.Where(bothRated)
	return store.Scalar[int64](ctx, r.q, `select count(*) from offers `+where, args...)
}

func (r *queries) BestOffers(ctx context.Context, f filter.Filter, limit, offset int) ([]RowOffer, error) {
	where, args := f.Where(bothRated)
	sql := `
select id, title, company, job, minimum_salary, maximum_salary, published_at, url
from offers ` + where + `
order by maximum_salary desc, minimum_salary desc, id asc
limit ` + filter.Arg(&args, limit) + ` offset ` + filter.Arg(&args, offset)
	return store.Many(ctx, r.q, func(row store.Row) (RowOffer, error) {
		var o RowOffer
		err := row.Scan(&o.ID, &o.Title, &o.Company, &o.Job, &o.Min, &o.Max, &o.PublishedAt, &o.URL)
		return o, err
	}, sql, args...)
}

// Ranking groups by dim; averages ignore missing rates and are nil when a group has none
func (r *queries) Ranking(ctx context.Context, f filter.Filter, dim Dimension, limit int) ([]RowRanking, error) {
	col := string(ByCompany)
	var extra []string
	if dim == ByJob {
		col = string(ByJob)
		extra = append(extra, "job IS NOT NULL")
	}
	where, args := f.Where(extra...)
	sql := `
select ` + col + `, count(*), avg(minimum_salary), avg(maximum_salary)
from offers ` + where + `
group by ` + col + `
order by count(*) desc, ` + col + ` asc
limit ` + filter.Arg(&args, limit)
	return store.Many(ctx, r.q, func(row store.Row) (RowRanking, error) {
		var rr RowRanking
		err := row.Scan(&rr.Name, &rr.Count, &rr.AvgMin, &rr.AvgMax)
		return rr, err
	}, sql, args...)
}

func (r *queries) Distribution(ctx context.Context, f filter.Filter) ([]RowBin, error) {
	where, args := f.Where(maxRated)
	sql := `
select floor(maximum_salary / 100) * 100 as bucket_start, count(*)
from offers ` + where + `
group by bucket_start
order by bucket_start asc`
	return store.Many(ctx, r.q, func(row store.Row) (RowBin, error) {
		var b RowBin
		err := row.Scan(&b.Start, &b.Count)
		return b, err
	}, sql, args...)
}
