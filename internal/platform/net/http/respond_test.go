package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "tjmwatch/internal/platform/errors"
	pnet "tjmwatch/internal/platform/net"
	phttp "tjmwatch/internal/platform/net/http"
	kit "tjmwatch/internal/platform/testkit"
)

func serve(h phttp.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestOKIsEnveloped(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK(map[string]string{"status": "ok"})
	}), "/meta/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	env := kit.DecodeJSON[phttp.Envelope](t, rec.Body.Bytes())
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestBareWritesBodyAsIs(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Bare([]map[string]any{{"bucket": "100-200", "count": 1}})
	}), "/rate-distribution")

	got := kit.DecodeJSON[[]map[string]any](t, rec.Body.Bytes())
	if len(got) != 1 || got[0]["bucket"] != "100-200" {
		t.Fatalf("bare body = %s", rec.Body.String())
	}
}

func TestErrorsAreAlwaysEnveloped(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.WithField(perr.Validationf("cap must be at least 100"), "cap"))
	}), "/rate-distribution?cap=5")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", rec.Code)
	}
	env := kit.DecodeJSON[phttp.Envelope](t, rec.Body.Bytes())
	if env.Code != perr.ErrorCodeValidation || env.Field != "cap" || env.RequestID != "rid-1" {
		t.Fatalf("envelope = %+v", env)
	}

	rec = serve(phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Error(perr.Unavailablef("postgres down"))
	}), "/stats")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unavailable code = %d", rec.Code)
	}
}

func TestNoContentAndHeaders(t *testing.T) {
	rec := serve(phttp.Handle(func(*http.Request) phttp.Response {
		r := phttp.NoContent()
		r.Header = http.Header{"X-Cache": {"hit"}}
		return r
	}), "/")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Cache") != "hit" {
		t.Fatalf("header not copied")
	}
}

type rankIn struct {
	Search string `query:"search"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func TestQueryHandlerBindsAndWritesBare(t *testing.T) {
	h := phttp.QueryHandler(func(_ *http.Request, in rankIn) (any, error) {
		return map[string]any{"search": in.Search, "limit": in.Limit}, nil
	})
	rec := serve(h, "/companies?search=go&limit=3")
	got := kit.DecodeJSON[map[string]any](t, rec.Body.Bytes())
	if got["search"] != "go" || got["limit"] != float64(3) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	rec = serve(h, "/companies?limit=0x")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed limit code = %d", rec.Code)
	}
}

func TestJSONHandlerNoBodyEnvelopes(t *testing.T) {
	h := phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return "v1", nil })
	env := kit.DecodeJSON[phttp.Envelope](t, serve(h, "/").Body.Bytes())
	if env.Data != "v1" {
		t.Fatalf("data = %v", env.Data)
	}
	h = phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return nil, perr.NotFoundf("nope") })
	if rec := serve(h, "/"); rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}
