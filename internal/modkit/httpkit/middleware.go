package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice for the api router
// obs may be nil; cors configures the browser origins allowed to read responses
func CommonStack(obs middleware.RequestObserver, cors middleware.CORSOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: time.Second,
			Skip: []string{"/metrics", "/api/v1/meta/health"},
		}),
		middleware.Metrics(obs),
		middleware.RecoverJSON,
		middleware.CORS(cors),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
