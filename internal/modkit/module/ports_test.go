package module

import (
	"testing"

	kit "tjmwatch/internal/platform/testkit"

	phttp "tjmwatch/internal/platform/net/http"
)

type Runner interface{ Run() int }

type runner struct{}

func (runner) Run() int { return 7 }

type ingestPorts struct {
	Runner Runner
	hidden Runner
}

type fakeModule struct{ ports any }

func (f fakeModule) MountRoutes(phttp.Router) {}
func (f fakeModule) Ports() any               { return f.ports }
func (f fakeModule) Name() string             { return "ingest" }

func TestPortsOf(t *testing.T) {
	m := fakeModule{ports: ingestPorts{Runner: runner{}}}

	if p, ok := PortsOf[ingestPorts](m); !ok || p.Runner.Run() != 7 {
		t.Fatalf("direct port set lookup failed")
	}
	if r, ok := PortsOf[Runner](m); !ok || r.Run() != 7 {
		t.Fatalf("field walk lookup failed")
	}
	if _, ok := PortsOf[Runner](fakeModule{ports: ingestPorts{hidden: runner{}}}); ok {
		t.Fatalf("unexported fields must not be visible")
	}
	if _, ok := PortsOf[Runner](fakeModule{}); ok {
		t.Fatalf("nil ports should not match")
	}
	kit.MustPanic(t, func() { _ = MustPortsOf[Runner](fakeModule{}) })
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Register("ingest", ingestPorts{Runner: runner{}})
	if p, ok := PortsAs[ingestPorts]("ingest"); !ok || p.Runner == nil {
		t.Fatalf("PortsAs = %+v %v", p, ok)
	}
	if _, ok := PortsAs[int]("ingest"); ok {
		t.Fatalf("wrong type should miss")
	}
	Reset()
	if _, ok := PortsAs[ingestPorts]("ingest"); ok {
		t.Fatalf("Reset should clear")
	}
}
