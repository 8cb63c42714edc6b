// Package module wires the ingestion endpoints into the API
package module

import (
	"net/http"

	modkit "tjmwatch/internal/modkit"
	"tjmwatch/internal/modkit/httpkit"
	"tjmwatch/internal/platform/net/middleware"
	str "tjmwatch/internal/platform/strings"
	"tjmwatch/internal/services/api/ingest/domain"
	ingesthttp "tjmwatch/internal/services/api/ingest/http"
)

// Module implements the ingest api module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     domain.Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the module; the runner ports must come in through modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ingest-api"), modkit.WithPrefix("/")}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok || ports.Runner == nil || ports.Runs == nil {
		panic("ingest-api: runner ports are required")
	}

	var auth middleware.AuthPort = httpkit.NewSecretPort(ports.Secret, "cron")
	if ports.Secret == "" {
		deps.Log.Warn().Msg("CORE_INGEST_SECRET is empty; /cron is open to anyone")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     ports,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		ingesthttp.Register(r, auth, m.ports)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	if m.prefix == "/" || m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Ports returns the runner ports the module was given
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
