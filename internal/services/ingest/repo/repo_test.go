package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"tjmwatch/internal/core/offer"
	"tjmwatch/internal/platform/store"
)

func TestStatementsCoverTables(t *testing.T) {
	stmts := Statements()
	joined := strings.Join(stmts, "\n")
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS offers",
		"UNIQUE (source, source_id)",
		"CREATE TABLE IF NOT EXISTS ingest_runs",
		"CREATE TABLE IF NOT EXISTS ingest_lease",
		"ix_offers_published_at",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("schema missing %q", want)
		}
	}
	for _, s := range stmts {
		if strings.TrimSpace(s) == "" {
			t.Fatalf("empty statement")
		}
	}
}

type fakeCH struct {
	store.Clickhouse
	table string
	rows  [][]any
	ddl   string
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error { f.ddl = sql; return nil }

func TestMirrorRows(t *testing.T) {
	if NewCH(nil) != nil {
		t.Fatalf("nil clickhouse should disable the mirror")
	}
	ch := &fakeCH{}
	m := NewCH(ch)
	if err := m.EnsureSchema(context.Background()); err != nil || !strings.Contains(ch.ddl, "ReplacingMergeTree") {
		t.Fatalf("ddl = %q, %v", ch.ddl, err)
	}
	if err := m.Mirror(context.Background(), nil); err != nil || ch.rows != nil {
		t.Fatalf("empty batch should not insert")
	}

	job := "Go"
	o := offer.Offer{ID: 5, Source: offer.SourceFreeWork, SourceID: "11", Title: "t", Job: &job, PublishedAt: time.Unix(0, 0)}
	if err := m.Mirror(context.Background(), []offer.Offer{o}); err != nil {
		t.Fatalf("Mirror: %v", err)
	}
	if ch.table != MirrorTable || len(ch.rows) != 1 || len(ch.rows[0]) != 13 {
		t.Fatalf("table=%s rows=%v", ch.table, ch.rows)
	}
	if skills, ok := ch.rows[0][11].([]string); !ok || skills == nil {
		t.Fatalf("skills should be a non-nil slice, got %#v", ch.rows[0][11])
	}
}
