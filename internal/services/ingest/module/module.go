// Package module wires the ingestion service
package module

import (
	"tjmwatch/internal/adapters/ingest/freework"
	"tjmwatch/internal/modkit"
	"tjmwatch/internal/modkit/repokit"
	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/services/ingest/domain"
	"tjmwatch/internal/services/ingest/guardrails"
	"tjmwatch/internal/services/ingest/repo"
	"tjmwatch/internal/services/ingest/service"
)

// Ports defines the ingestion module ports
type Ports struct {
	Runner domain.RunnerPort
	Runs   domain.RunsPort
	Schema domain.SchemaPort
}

// Module implements the ingestion module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the ingestion module from deps.Cfg; it mounts no routes
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := repo.NewPG()
	client := freework.NewClient(freework.Options{
		BaseURL:    opts.BaseURL,
		Timeout:    opts.Timeout,
		MaxRetries: opts.Retries,
		RetryBase:  opts.RetryBase,
		Keywords:   opts.Keywords,
	})
	lease := guardrails.MakeLease(repokit.TxRunner(deps.PG), binder, domain.LeaseName, opts.LeaseTTL)

	svc := service.New(deps.PG, binder, client, service.Config{
		Timeouts: guardrails.Timeouts{Run: opts.RunTimeout, DB: opts.DBTimeout},
	}, lease).
		WithCache(deps.Cache).
		WithMetrics(deps.Metrics)
	if opts.Mirror {
		svc.WithMirror(repo.NewCH(deps.CH))
	}

	return &Module{deps: deps, opts: opts, ports: Ports{Runner: svc, Runs: svc, Schema: svc}}
}

// Options returns the resolved options
func (m *Module) Options() Options { return m.opts }

// Name returns the module name
func (m *Module) Name() string { return "ingest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op; the HTTP surface lives in services/api/ingest
func (m *Module) MountRoutes(_ phttp.Router) {}
