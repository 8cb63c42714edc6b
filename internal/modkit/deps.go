// Package modkit provides module wiring and core deps
package modkit

import (
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/platform/cache"
	"tjmwatch/internal/platform/config"
	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/metrics"
	"tjmwatch/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG is required; CH, KV, Cache and Metrics are optional and nil when not configured
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	CH      store.Clickhouse
	KV      store.KV
	Cache   *cache.Cache
	Metrics *metrics.Metrics
}

// FromStore copies the opened backends into deps
func FromStore(log logger.Logger, cfg config.Conf, st *store.Store) Deps {
	return Deps{Log: log, Cfg: cfg, PG: st.PG, CH: st.CH, KV: st.KV}
}

// Probes lists a ping per configured backend for readiness checks
func (d Deps) Probes() map[string]store.Pinger {
	out := map[string]store.Pinger{}
	add := func(name string, v any) {
		if p, ok := v.(store.Pinger); ok && p != nil {
			out[name] = p
		}
	}
	if d.PG != nil {
		add("pg", d.PG)
	}
	if d.CH != nil {
		add("ch", d.CH)
	}
	if d.KV != nil {
		add("redis", d.KV)
	}
	return out
}
