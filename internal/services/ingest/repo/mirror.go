package repo

import (
	"context"

	"tjmwatch/internal/core/offer"
	"tjmwatch/internal/platform/store"
	ptime "tjmwatch/internal/platform/time"
	"tjmwatch/internal/services/ingest/domain"
)

// MirrorTable is the ClickHouse copy of offers
const MirrorTable = "offers_mirror"

const mirrorDDL = `
	CREATE TABLE IF NOT EXISTS offers_mirror (
		id             Int64,
		source         LowCardinality(String),
		source_id      String,
		title          String,
		company        String,
		job            Nullable(String),
		minimum_salary Nullable(Float64),
		maximum_salary Nullable(Float64),
		published_at   DateTime64(3, 'UTC'),
		location_city  Nullable(String),
		remote_mode    Nullable(String),
		skills         Array(String),
		ingested_at    DateTime64(3, 'UTC')
	)
	ENGINE = ReplacingMergeTree(ingested_at)
	ORDER BY (source, source_id)
`

// CH mirrors inserted offers to ClickHouse
type CH struct {
	ch  store.Clickhouse
	now ptime.Clock
}

// NewCH returns a mirror over ch, or nil when ch is not configured
func NewCH(ch store.Clickhouse) domain.Mirror {
	if ch == nil {
		return nil
	}
	return &CH{ch: ch, now: ptime.UTC}
}

// EnsureSchema creates the mirror table
func (m *CH) EnsureSchema(ctx context.Context) error {
	return m.ch.Exec(ctx, mirrorDDL)
}

// Mirror appends one row per offer; ReplacingMergeTree folds repeats
func (m *CH) Mirror(ctx context.Context, os []offer.Offer) error {
	if len(os) == 0 {
		return nil
	}
	at := m.now().UTC()
	rows := make([][]any, 0, len(os))
	for _, o := range os {
		skills := o.Skills
		if skills == nil {
			skills = []string{}
		}
		rows = append(rows, []any{
			o.ID, o.Source, o.SourceID, o.Title, o.Company, o.Job,
			o.MinimumSalary, o.MaximumSalary, o.PublishedAt.UTC(),
			o.Location.City, o.RemoteMode, skills, at,
		})
	}
	return m.ch.Insert(ctx, MirrorTable, rows)
}
