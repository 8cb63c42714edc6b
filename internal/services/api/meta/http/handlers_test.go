package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "tjmwatch/internal/platform/net/http"
	"tjmwatch/internal/platform/store"
	kit "tjmwatch/internal/platform/testkit"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func get[T any](t *testing.T, d Deps, path string) T {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("%s: status = %d body=%s", path, rec.Code, rec.Body)
	}
	return kit.DecodeJSON[envelope[T]](t, rec.Body.Bytes()).Data
}

func TestReady(t *testing.T) {
	down := errors.New("connection refused")
	cases := []struct {
		name   string
		probes map[string]store.Pinger
		want   string
		checks map[string]string
	}{
		{
			name:   "all up",
			probes: map[string]store.Pinger{"pg": pinger{}, "ch": pinger{}, "redis": pinger{}},
			want:   "ok",
			checks: map[string]string{"pg": "ok", "ch": "ok", "redis": "ok"},
		},
		{
			name:   "optional missing",
			probes: map[string]store.Pinger{"pg": pinger{}},
			want:   "degraded",
			checks: map[string]string{"pg": "ok", "ch": "skipped", "redis": "skipped"},
		},
		{
			name:   "redis down",
			probes: map[string]store.Pinger{"pg": pinger{}, "ch": pinger{}, "redis": pinger{down}},
			want:   "degraded",
			checks: map[string]string{"redis": "fail"},
		},
		{
			name:   "pg down",
			probes: map[string]store.Pinger{"pg": pinger{down}, "ch": pinger{}, "redis": pinger{}},
			want:   "fail",
			checks: map[string]string{"pg": "fail"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := get[ReadyResponse](t, Deps{Expected: []string{"pg", "ch", "redis"}, Probes: tc.probes}, "/ready")
			if got.Status != tc.want {
				t.Fatalf("status = %s want %s", got.Status, tc.want)
			}
			if len(got.Checks) != 3 || got.Checks[0].Name != "pg" {
				t.Fatalf("checks = %+v", got.Checks)
			}
			for _, c := range got.Checks {
				if want, ok := tc.checks[c.Name]; ok && c.Status != want {
					t.Fatalf("%s = %s want %s", c.Name, c.Status, want)
				}
				if c.Status == "fail" && c.Error == "" {
					t.Fatalf("%s failed without an error", c.Name)
				}
			}
		})
	}
}

func TestHealthAndService(t *testing.T) {
	started := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	d := Deps{
		ServiceName: "tjmwatch-api",
		StartedAt:   started,
		Now:         func() time.Time { return started.Add(5 * time.Minute) },
	}

	h := get[HealthResponse](t, d, "/health")
	if !h.OK || h.Service != "tjmwatch-api" || h.Now != "2026-10-01T08:05:00Z" {
		t.Fatalf("health = %+v", h)
	}
	s := get[ServiceResponse](t, d, "/service")
	if s.Uptime != 300 || s.Started != "2026-10-01T08:00:00Z" {
		t.Fatalf("service = %+v", s)
	}
}

func TestVersion(t *testing.T) {
	v := get[map[string]string](t, Deps{}, "/version")
	if v["service"] != "tjmwatch-api" || v["version"] == "" {
		t.Fatalf("version = %v", v)
	}
}
