// Package module wires the market analytics into the API using modkit
package module

import (
	"net/http"

	modkit "tjmwatch/internal/modkit"
	"tjmwatch/internal/modkit/httpkit"
	"tjmwatch/internal/platform/cache"
	"tjmwatch/internal/platform/logger"
	str "tjmwatch/internal/platform/strings"
	"tjmwatch/internal/services/api/market/domain"
	markethttp "tjmwatch/internal/services/api/market/http"
	marketrepo "tjmwatch/internal/services/api/market/repo"
	marketsvc "tjmwatch/internal/services/api/market/service"
)

// Ports exposes the market read port
type Ports struct {
	Market domain.ServicePort
}

// Module implements the market module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc domain.ServicePort
}

// New constructs the market module; endpoints mount at the API root unless WithPrefix says otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("market"), modkit.WithPrefix("/")}, opts...)...)
	o := FromConfig(deps.Cfg)

	var svc domain.ServicePort = marketsvc.New(deps.PG, marketrepo.NewPG(), marketsvc.Config{MedianScope: o.MedianScope})
	if deps.KV != nil {
		// shares the generation key with deps.Cache, only the ttl differs
		c := cache.New(deps.KV,
			cache.WithTTL(o.CacheTTL),
			cache.WithObserver(deps.Metrics),
			cache.WithLogger(*logger.Named("market.cache")),
		)
		svc = marketsvc.NewCached(svc, c)
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		ports:     Ports{Market: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		markethttp.Register(r, m.svc)
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix, empty when mounted at the api root
func (m *Module) Prefix() string {
	if m.prefix == "/" || m.prefix == "" {
		return ""
	}
	return str.MustPrefix(m.prefix)
}

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
