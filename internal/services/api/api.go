// Package api provides the HTTP API for the application
package api

import (
	"tjmwatch/internal/platform/cache"
	"tjmwatch/internal/platform/config"
	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/metrics"
	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/platform/net/middleware"
	"tjmwatch/internal/platform/store"

	"tjmwatch/internal/modkit"
	"tjmwatch/internal/modkit/httpkit"
	"tjmwatch/internal/modkit/module"
	"tjmwatch/internal/modkit/swaggerkit"

	apiingest "tjmwatch/internal/services/api/ingest/domain"
	apiingestmod "tjmwatch/internal/services/api/ingest/module"
	marketmod "tjmwatch/internal/services/api/market/module"
	metamod "tjmwatch/internal/services/api/meta/module"

	// ingestion service module (owns the Runner port)
	ingestmod "tjmwatch/internal/services/ingest/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules add their own CORE_* prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	CORS           middleware.CORSOptions
}

// Mount mounts the API service onto the given router
// the ingestion module is returned so the caller can prepare its schema
func Mount(r phttp.Router, opt Options) *ingestmod.Module {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	mx := opt.Metrics
	if mx == nil {
		mx = metrics.New("tjmwatch")
	}

	// shared deps for modules
	deps := modkit.FromStore(*log, opt.Config, opt.Store)
	deps.Metrics = mx
	deps.Cache = cache.New(deps.KV, cache.WithObserver(mx))

	// build the ingestion service first and hand its ports to the http module
	ingest := ingestmod.New(deps)
	ports := module.MustPortsOf[ingestmod.Ports](ingest)
	ingestAPI := apiingestmod.New(deps, modkit.WithPorts(apiingest.Ports{
		Runner: ports.Runner,
		Runs:   ports.Runs,
		Secret: ingest.Options().Secret,
	}))

	mods := []module.Module{
		metamod.New(deps),
		marketmod.New(deps),
		ingest, // registered for its ports, mounts nothing
		ingestAPI,
	}

	r.Handle("/metrics", mx.Handler())
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(mx, opt.CORS), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return ingest
}
