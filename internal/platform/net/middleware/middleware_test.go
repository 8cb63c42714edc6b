package middleware_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	perr "tjmwatch/internal/platform/errors"
	pnet "tjmwatch/internal/platform/net"
	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/platform/net/middleware"
	kit "tjmwatch/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type obsCall struct {
	method, route string
	status        int
}

type fakeObserver struct {
	mu    sync.Mutex
	calls []obsCall
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, obsCall{method, route, status})
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	obs := &fakeObserver{}
	m := chi.NewRouter()
	m.Use(middleware.Metrics(obs))
	m.Route("/api/v1", func(r chi.Router) {
		r.Get("/offers/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	})

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/offers/42", nil))
	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if len(obs.calls) != 2 {
		t.Fatalf("calls = %+v", obs.calls)
	}
	if c := obs.calls[0]; c.route != "/api/v1/offers/{id}" || c.status != http.StatusTeapot || c.method != "GET" {
		t.Fatalf("first call = %+v", c)
	}
	if c := obs.calls[1]; c.route != "unmatched" || c.status != http.StatusNotFound {
		t.Fatalf("unmatched call = %+v", c)
	}
}

func TestMetricsNilObserverPassesThrough(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	rec := httptest.NewRecorder()
	middleware.Metrics(nil)(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestAccessLogPassesResponseThrough(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hi"))
		_, _ = w.Write([]byte("there"))
	})
	mw := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond, Skip: []string{"/metrics"}})
	for _, path := range []string{"/api/v1/stats", "/metrics"} {
		rec := httptest.NewRecorder()
		mw(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "hithere" {
			t.Fatalf("%s: %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

type fakePort struct {
	sub string
	err error
}

func (f fakePort) Parse(*http.Request) (string, error) { return f.sub, f.err }

func TestAuth(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	middleware.Auth(nil, phttp.JSON)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || seen != "" {
		t.Fatalf("nil port: %d %q", rec.Code, seen)
	}

	rec = httptest.NewRecorder()
	middleware.Auth(fakePort{sub: "cron"}, phttp.JSON)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || seen != "cron" {
		t.Fatalf("ok port: %d %q", rec.Code, seen)
	}

	seen = ""
	rec = httptest.NewRecorder()
	middleware.Auth(fakePort{err: perr.Unauthorizedf("invalid bearer token")}, phttp.JSON)(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized || seen != "" {
		t.Fatalf("failing port: %d %q", rec.Code, seen)
	}
	kit.MustContain(t, rec.Body.String(), "invalid bearer token")
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	w := kit.DecodeJSON[pnet.Wire](t, rec.Body.Bytes())
	if w.Code != perr.ErrorCodePanic || w.RequestID == "" {
		t.Fatalf("wire = %+v", w)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header not mirrored")
	}
}

func TestCORSDefaults(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stats", nil)
	req.Header.Set("Origin", "https://tjm.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected allow-origin header, got %v", rec.Header())
	}
}

func TestCompressAndNoCache(t *testing.T) {
	body := bytes.Repeat([]byte(`{"bucket":"100-200","count":1},`), 200)
	h := middleware.NoCache()(middleware.Compress(5)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, got %q", rec.Header().Get("Content-Encoding"))
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("expected Cache-Control")
	}
}
