// Package middleware holds chi adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"tjmwatch/internal/platform/logger"
	pnet "tjmwatch/internal/platform/net"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests taking >= Slow at warn level; 0 disables it
	Slow time.Duration
	// Skip suppresses lines for exact paths such as /metrics
	Skip []string
}

// AccessLogZerolog copies the request id into the logger context and logs one line per request
// it must run after RequestID
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(opt.Skip))
	for _, p := range opt.Skip {
		skip[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()))
			r = r.WithContext(ctx)

			sw := wrap(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			elapsed := time.Since(start)

			if _, ok := skip[r.URL.Path]; ok {
				return
			}
			log := logger.C(ctx)
			evt := log.Info()
			switch {
			case sw.status >= 500:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Int("status", sw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("bytes", sw.bytes).
				Msg("request done")
		})
	}
}
