package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives one observation per finished request
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics reports method, chi route pattern, status and latency to obs
// the route is read after the handler ran so subrouters have resolved it
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := wrap(w)
			start := time.Now()
			next.ServeHTTP(sw, r)
			obs.ObserveRequest(r.Method, routePattern(r), sw.status, time.Since(start))
		})
	}
}
