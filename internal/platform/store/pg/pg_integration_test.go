//go:build integration_pg

package pg_test

import (
	"context"
	"testing"

	"tjmwatch/internal/platform/store/pg"
	"tjmwatch/internal/platform/store/pgtest"
)

type captureTracer struct{ events []pg.QueryEvent }

func (c *captureTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { c.events = append(c.events, ev) }

func TestOpenAndPing(t *testing.T) {
	dsn := pgtest.StartPostgres(t)
	ctx := context.Background()

	tr := &captureTracer{}
	p, err := pg.Open(ctx, pg.Config{URL: dsn, MaxConns: 2, AppName: "pg-test"}, tr)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if err := p.Pool.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	var app string
	if err := p.Pool.QueryRow(ctx, "SELECT current_setting('application_name')").Scan(&app); err != nil {
		t.Fatalf("application_name: %v", err)
	}
	if app != "pg-test" {
		t.Fatalf("application_name = %q", app)
	}
}
