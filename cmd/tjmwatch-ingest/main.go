package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tjmwatch/internal/modkit"
	"tjmwatch/internal/modkit/module"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/platform/cache"
	"tjmwatch/internal/platform/config"
	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/metrics"
	"tjmwatch/internal/platform/store"

	ingestmod "tjmwatch/internal/services/ingest/module"
	"tjmwatch/internal/services/ingest/scheduler"
)

func main() {
	os.Exit(run())
}

func run() int {
	envErr := godotenv.Load()

	fOnce := flag.Bool("once", false, "run a single ingestion and exit")
	flag.Parse()

	logger.Init(logger.FromEnv())
	l := logger.Named("ingest")
	if envErr != nil {
		l.Debug().Err(envErr).Msg("no .env loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	st, err := store.Open(ctx, store.FromEnv(root, "tjmwatch", "ingest"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	mx := metrics.New("tjmwatch")
	deps := modkit.FromStore(*l, root, st)
	deps.Metrics = mx
	deps.Cache = cache.New(deps.KV, cache.WithObserver(mx))

	ing := ingestmod.New(deps)
	module.Register(ing.Name(), ing.Ports())
	ports := module.MustPortsOf[ingestmod.Ports](ing)

	if ing.Options().EnsureSchema {
		sctx, cancel := context.WithTimeout(ctx, time.Minute)
		err := ports.Schema.EnsureSchema(sctx)
		cancel()
		if err != nil {
			l.Panic().Err(err).Msg("schema setup failed")
		}
	}

	sched, err := scheduler.New(ports.Runner, scheduler.Options{
		Spec:       ing.Options().Schedule,
		RunOnStart: ing.Options().RunOnStart,
	})
	if err != nil {
		l.Panic().Err(err).Msg("bad schedule")
	}

	if *fOnce {
		res, err := sched.RunOnce(ctx)
		if err != nil {
			l.Error().Err(err).Msg("ingestion failed")
			return 1
		}
		l.Info().Int("count", res.Count).Msg("ingestion done")
		return 0
	}

	if err := sched.Start(ctx); err != nil {
		l.Panic().Err(err).Msg("scheduler start failed")
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
	l.Info().Msg("ingest stopped")
	return 0
}
