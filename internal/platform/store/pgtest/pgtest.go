//go:build integration_pg

// Package pgtest starts a throwaway postgres for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartPostgres boots postgres:16-alpine and returns its DSN; the container is removed on cleanup
func StartPostgres(t testing.TB) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "tjm",
			"POSTGRES_PASSWORD": "tjm",
			"POSTGRES_DB":       "tjm",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://tjm:tjm@%s:%s/tjm?sslmode=disable", host, port.Port())
}

// Open starts postgres and opens a pg-only Store against it
func Open(t testing.TB) *store.Store {
	t.Helper()
	dsn := StartPostgres(t)
	s, err := store.Open(context.Background(), store.Config{
		AppName: "tjmwatch-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4, SlowQueryMs: -1},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
