package module

import (
	"time"

	"tjmwatch/internal/platform/config"
	"tjmwatch/internal/services/api/market/service"
)

// Options holds configuration for the market module
type Options struct {
	CacheTTL    time.Duration
	MedianScope service.MedianScope
}

// FromConfig reads the market options with CORE_MARKET_ prefix
func FromConfig(cfg config.Conf) Options {
	m := cfg.Prefix("CORE_MARKET_")
	return Options{
		CacheTTL: m.MayDuration("CACHE_TTL", 10*time.Minute),
		MedianScope: service.MedianScope(m.MayEnum("MEDIAN_SCOPE", string(service.MedianFiltered),
			string(service.MedianFiltered), string(service.MedianGlobal))),
	}
}
