// @title         tjmwatch API
// @version       1.0
// @description   Freelance daily rate analytics over free-work.com offers
// @BasePath      /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tjmwatch/internal/modkit/module"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/platform/config"
	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/metrics"
	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/platform/net/middleware"
	"tjmwatch/internal/platform/store"

	"tjmwatch/internal/services/api"
	ingestmod "tjmwatch/internal/services/ingest/module"
)

func main() {
	// a missing .env is normal outside local dev
	envErr := godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	logger.Init(logger.FromEnv())
	l := logger.Get()
	if envErr != nil {
		l.Debug().Err(envErr).Msg("no .env loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres always; clickhouse and redis when their urls are set
	st, err := store.Open(ctx, store.FromEnv(root, "tjmwatch", "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT etc)
	srv := phttp.NewServer(apiCfg)

	ingest := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        metrics.New("tjmwatch"),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORS: middleware.CORSOptions{
				AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", []string{"*"}),
			},
		},
	)

	if ingest.Options().EnsureSchema {
		sctx, cancel := context.WithTimeout(ctx, time.Minute)
		err := module.MustPortsOf[ingestmod.Ports](ingest).Schema.EnsureSchema(sctx)
		cancel()
		if err != nil {
			l.Panic().Err(err).Msg("schema setup failed")
		}
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
