package httpkit

import (
	"net/http"

	phttp "tjmwatch/internal/platform/net/http"
)

// Get mounts a no-input handler whose result is enveloped
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}

// GetQuery mounts a handler whose input T is bound and validated from the query string
// results are written bare
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}
