package modkit

import (
	"net/http"
	"testing"

	"tjmwatch/internal/modkit/httpkit"
)

func TestBuildDefaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.SwaggerOn || b.Ports != nil {
		t.Fatalf("zero Build = %+v", b)
	}
	if b.Subrouter == nil || b.Register == nil {
		t.Fatalf("hooks must default to no-ops")
	}
	b.Register(nil)
}

type marketPorts struct{ Name string }

func TestBuildOptions(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	registered := false
	b := Build(
		WithName("market"),
		WithPrefix("/"),
		WithMiddlewares(mw, mw),
		WithPorts(marketPorts{Name: "m"}),
		WithSwagger(true),
		WithRegister(func(httpkit.Router) { registered = true }),
	)
	if b.Name != "market" || b.Prefix != "/" || !b.SwaggerOn || len(b.Mw) != 2 {
		t.Fatalf("Build = %+v", b)
	}
	if p, ok := b.Ports.(marketPorts); !ok || p.Name != "m" {
		t.Fatalf("ports = %#v", b.Ports)
	}
	b.Register(nil)
	if !registered {
		t.Fatalf("register hook not kept")
	}
}

func TestProbesSkipsMissingBackends(t *testing.T) {
	if got := (Deps{}).Probes(); len(got) != 0 {
		t.Fatalf("empty deps probes = %v", got)
	}
}
