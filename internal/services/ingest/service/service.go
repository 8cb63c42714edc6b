// Package service runs ingestion passes from free-work into the offers table
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"tjmwatch/internal/adapters/ingest/freework"
	"tjmwatch/internal/core/offer"
	"tjmwatch/internal/modkit/repokit"
	perr "tjmwatch/internal/platform/errors"
	"tjmwatch/internal/platform/logger"
	ptime "tjmwatch/internal/platform/time"
	"tjmwatch/internal/services/ingest/domain"
	"tjmwatch/internal/services/ingest/guardrails"
)

// Config holds the ingestion service tuning
type Config struct {
	Timeouts guardrails.Timeouts
	// MaxRunsLimit caps Recent; <=0 -> 100
	MaxRunsLimit int
}

// Service implements domain.RunnerPort, domain.RunsPort and domain.SchemaPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Fetch  domain.Fetcher
	Cfg    Config

	// optional collaborators
	Mirror  domain.Mirror
	Cache   domain.Invalidator
	Metrics domain.Recorder

	Lease guardrails.LeaseFunc

	now   ptime.Clock
	newID func() string
}

// New constructs the ingestion service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[domain.StorageRepo],
	f domain.Fetcher,
	cfg Config,
	lease guardrails.LeaseFunc,
) *Service {
	if db == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("ingest.Service requires a non nil Repo binder")
	}
	if f == nil {
		panic("ingest.Service requires a non nil Fetcher")
	}
	if lease == nil {
		lease = guardrails.NoLease
	}
	return &Service{
		DB: db, Binder: binder, Fetch: f, Cfg: cfg, Lease: lease,
		now:   ptime.UTC,
		newID: uuid.NewString,
	}
}

// WithMirror attaches the analytics mirror
func (s *Service) WithMirror(m domain.Mirror) *Service { s.Mirror = m; return s }

// WithCache attaches the market cache invalidator
func (s *Service) WithCache(c domain.Invalidator) *Service { s.Cache = c; return s }

// WithMetrics attaches a run recorder
func (s *Service) WithMetrics(r domain.Recorder) *Service { s.Metrics = r; return s }

// EnsureSchema creates the Postgres tables and, when configured, the mirror table
func (s *Service) EnsureSchema(ctx context.Context) error {
	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		return repokit.MustBind(s.Binder, q).EnsureSchema(ctx)
	})
	if err != nil {
		return perr.FromPostgres(err, "ingest: ensure schema")
	}
	if s.Mirror != nil {
		if err := s.Mirror.EnsureSchema(ctx); err != nil {
			logger.C(ctx).Warn().Err(err).Msg("ingest: mirror schema failed; mirroring will keep failing")
		}
	}
	return nil
}

// Recent lists the latest runs
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	maxN := s.Cfg.MaxRunsLimit
	if maxN <= 0 {
		maxN = 100
	}
	if limit <= 0 || limit > maxN {
		limit = maxN
	}
	var out []domain.Run
	err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		runs, err := repokit.MustBind(s.Binder, q).ListRuns(ctx, limit)
		out = runs
		return err
	})
	if err != nil {
		return nil, perr.FromPostgres(err, "ingest: list runs")
	}
	return out, nil
}

// Run performs one ingestion pass under the lease and returns the number of new offers
func (s *Service) Run(ctx context.Context) (domain.Result, error) {
	runID := s.newID()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	ctx, cancel := guardrails.ForRun(ctx, s.Cfg.Timeouts)
	defer cancel()

	var res domain.Result
	err := s.Lease(ctx, runID, func(ctx context.Context) error {
		n, err := s.run(ctx, runID)
		res.Count = n
		return err
	})
	if errors.Is(err, domain.ErrRunInProgress) {
		log.Info().Msg("ingest: another run holds the lease; skipping")
		s.observe(domain.StatusBusy, 0, 0)
		return domain.Result{}, err
	}
	if err != nil {
		return domain.Result{}, perr.FromPostgres(err, "ingest: run")
	}
	return res, nil
}

func (s *Service) run(ctx context.Context, runID string) (int, error) {
	log := logger.C(ctx)
	trigger := domain.TriggerFrom(ctx)
	t0 := s.now()

	if err := repokit.WithTx(ctx, s.DB, func(q repokit.Queryer) error {
		return repokit.MustBind(s.Binder, q).StartRun(ctx, runID, trigger)
	}); err != nil {
		return 0, perr.FromPostgres(err, "ingest: start run")
	}
	log.Info().Str("trigger", trigger).Msg("ingest: run started")

	var fin domain.RunFinish
	inserted, err := s.pass(ctx, &fin)
	if err != nil {
		fin.Status = domain.StatusError
		fin.ErrText = err.Error()
	} else {
		fin.Status = domain.StatusOK
	}

	// the run row must close even if ctx expired during the pass
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if ferr := repokit.WithTx(fctx, s.DB, func(q repokit.Queryer) error {
		return repokit.MustBind(s.Binder, q).FinishRun(fctx, runID, fin)
	}); ferr != nil {
		log.Error().Err(ferr).Msg("ingest: finish run failed")
	}

	s.observe(fin.Status, fin.Fetched, fin.Inserted)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("status", fin.Status).
		Int("fetched", fin.Fetched).
		Int("mapped", fin.Mapped).
		Int("inserted", fin.Inserted).
		Int("skipped", fin.Skipped).
		Dur("elapsed", s.now().Sub(t0)).
		Msg("ingest: run finished")

	if err != nil {
		return 0, err
	}
	return len(inserted), nil
}

// pass fetches, maps and stores one batch, filling fin as it goes
func (s *Service) pass(ctx context.Context, fin *domain.RunFinish) ([]offer.Offer, error) {
	log := logger.C(ctx)

	fctx, cancel := guardrails.ForFetch(ctx, s.Cfg.Timeouts)
	postings, total, err := s.Fetch.FetchRecent(fctx)
	cancel()
	if err != nil {
		return nil, err
	}
	fin.Fetched = len(postings)
	if total > len(postings) {
		log.Warn().Int("total", total).Int("fetched", len(postings)).Msg("ingest: upstream has more postings than one page")
	}

	offers, bad := freework.ToOffers(postings)
	fin.Mapped = len(offers)
	for _, e := range bad {
		log.Warn().Err(e).Msg("ingest: posting skipped")
	}

	var inserted []offer.Offer
	dctx, cancel := guardrails.ForDB(ctx, s.Cfg.Timeouts)
	err = repokit.WithTx(dctx, s.DB, func(q repokit.Queryer) error {
		rows, err := repokit.MustBind(s.Binder, q).InsertOffers(dctx, offers)
		inserted = rows
		return err
	})
	cancel()
	if err != nil {
		return nil, perr.FromPostgres(err, "ingest: insert offers")
	}
	fin.Inserted = len(inserted)
	fin.Skipped = len(bad) + len(offers) - len(inserted)

	if len(inserted) == 0 {
		return inserted, nil
	}
	if s.Mirror != nil {
		if err := s.Mirror.Mirror(ctx, inserted); err != nil {
			log.Warn().Err(err).Int("rows", len(inserted)).Msg("ingest: clickhouse mirror failed")
		}
	}
	if s.Cache != nil {
		if gen, err := s.Cache.Bump(ctx); err != nil {
			log.Warn().Err(err).Msg("ingest: cache invalidation failed; entries expire by ttl")
		} else {
			log.Debug().Int64("generation", gen).Msg("ingest: cache generation bumped")
		}
	}
	return inserted, nil
}

func (s *Service) observe(status string, fetched, inserted int) {
	if s.Metrics != nil {
		s.Metrics.ObserveIngest(status, fetched, inserted, s.now())
	}
}
