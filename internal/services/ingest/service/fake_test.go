package service

import (
	"context"
	"sync"
	"time"

	"tjmwatch/internal/core/offer"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/services/ingest/domain"
)

type fakeTx struct {
	repokit.Queryer
	err error
}

func (f *fakeTx) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(f)
}

type fakeRepo struct {
	mu sync.Mutex

	leaseOwner string
	leaseUntil time.Time

	runs   map[string]domain.Run
	order  []string
	offers map[string]offer.Offer
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{runs: map[string]domain.Run{}, offers: map[string]offer.Offer{}}
}

func (r *fakeRepo) binder() repokit.Binder[domain.StorageRepo] {
	return repokit.BindFunc[domain.StorageRepo](func(repokit.Queryer) domain.StorageRepo { return r })
}

func (r *fakeRepo) EnsureSchema(context.Context) error { return nil }

func (r *fakeRepo) ClaimLease(_ context.Context, _, owner string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.leaseOwner != "" && time.Now().Before(r.leaseUntil) {
		return false, nil
	}
	r.leaseOwner, r.leaseUntil = owner, time.Now().Add(ttl)
	return true, nil
}

func (r *fakeRepo) ReleaseLease(_ context.Context, _, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.leaseOwner == owner {
		r.leaseOwner = ""
	}
	return nil
}

func (r *fakeRepo) StartRun(_ context.Context, id, trigger string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = domain.Run{ID: id, Trigger: trigger, Status: domain.StatusRunning, StartedAt: time.Now()}
	r.order = append(r.order, id)
	return nil
}

func (r *fakeRepo) FinishRun(_ context.Context, id string, fin domain.RunFinish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run := r.runs[id]
	now := time.Now()
	run.FinishedAt = &now
	run.Status = fin.Status
	run.Fetched, run.Mapped, run.Inserted, run.Skipped = fin.Fetched, fin.Mapped, fin.Inserted, fin.Skipped
	if fin.ErrText != "" {
		run.Error = &fin.ErrText
	}
	r.runs[id] = run
	return nil
}

func (r *fakeRepo) ListRuns(_ context.Context, limit int) ([]domain.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Run{}
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[r.order[i]])
	}
	return out, nil
}

func (r *fakeRepo) InsertOffers(_ context.Context, os []offer.Offer) ([]offer.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []offer.Offer{}
	for _, o := range os {
		if _, dup := r.offers[o.Key()]; dup {
			continue
		}
		r.nextID++
		o.ID = r.nextID
		r.offers[o.Key()] = o
		out = append(out, o)
	}
	return out, nil
}

type fakeFetcher struct {
	postings []domain.JobPosting
	err      error
	calls    int
}

func (f *fakeFetcher) FetchRecent(context.Context) ([]domain.JobPosting, int, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.postings, len(f.postings), nil
}

type spyMirror struct {
	got []offer.Offer
	err error
}

func (m *spyMirror) EnsureSchema(context.Context) error { return nil }
func (m *spyMirror) Mirror(_ context.Context, os []offer.Offer) error {
	m.got = append(m.got, os...)
	return m.err
}

type spyCache struct{ bumps int64 }

func (c *spyCache) Bump(context.Context) (int64, error) { c.bumps++; return c.bumps, nil }

type spyMetrics struct{ statuses []string }

func (m *spyMetrics) ObserveIngest(status string, _, _ int, _ time.Time) {
	m.statuses = append(m.statuses, status)
}

func posting(id int64, published string) domain.JobPosting {
	lo, hi := 400.0, 550.0
	return domain.JobPosting{
		ID: id, Title: "Mission", Slug: "mission", PublishedAt: published,
		MinDailySalary: &lo, MaxDailySalary: &hi,
	}
}
