package swaggerkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "tjmwatch/internal/platform/net/http"
	kit "tjmwatch/internal/platform/testkit"
)

func fetch(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	return rec
}

func TestDocJSONNormalizes(t *testing.T) {
	kit.Serial(t)
	rec := fetch(t)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	spec := kit.DecodeJSON[map[string]any](t, rec.Body.Bytes())
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi = %v", spec["openapi"])
	}
	servers, _ := spec["servers"].([]any)
	if len(servers) != 1 || servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", spec["servers"])
	}
	paths := spec["paths"].(map[string]any)
	for _, p := range []string{"/stats", "/offers", "/best-offers", "/technologies", "/companies", "/rate-distribution", "/cron", "/ingest/runs"} {
		op, ok := paths[p].(map[string]any)["get"].(map[string]any)
		if !ok {
			t.Fatalf("missing GET %s", p)
		}
		resps := op["responses"].(map[string]any)
		for _, code := range []string{"500", "503"} {
			if _, ok := resps[code]; !ok {
				t.Fatalf("%s: no default %s", p, code)
			}
		}
	}
	cron := paths["/cron"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if _, ok := cron["400"]; ok {
		t.Fatalf("/cron takes no parameters and cannot answer 400")
	}
	runs := paths["/ingest/runs"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	ex := runs["400"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["example"].(map[string]any)
	if ex["field"] != "limit" || ex["code"] != float64(8) {
		t.Fatalf("/ingest/runs 400 example = %v", ex)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatalf("ErrorResponse schema missing")
	}
}

func TestDocJSONMutators(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &mutators, nil)
	Register(func(spec map[string]any) { spec["x-env"] = "test" })
	Register(nil)

	spec := kit.DecodeJSON[map[string]any](t, fetch(t).Body.Bytes())
	if spec["x-env"] != "test" || len(mutators) != 1 {
		t.Fatalf("mutator not applied: %v", spec["x-env"])
	}
}

func TestDocJSONBadSpec(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &docReader, func() string { return "{" })
	if rec := fetch(t); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMountToggle(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs status = %d", rec.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect status = %d", rec.Code)
	}
}
