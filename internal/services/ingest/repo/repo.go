// Package repo provides postgres access for ingestion writes
package repo

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"tjmwatch/internal/core/offer"
	"tjmwatch/internal/modkit/repokit"
	"tjmwatch/internal/services/ingest/domain"
)

//go:embed schema.sql
var schemaSQL string

type (
	// PG is a Postgres binder for domain.StorageRepo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for domain.StorageRepo
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

// Statements splits the embedded schema into executable statements
func Statements() []string {
	var out []string
	for _, s := range strings.Split(schemaSQL, ";") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnsureSchema creates offers, ingest_runs and ingest_lease when missing
func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Statements() {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

// ClaimLease takes over an absent or expired lease
func (r *queries) ClaimLease(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	rows, err := r.q.Query(ctx, `
		INSERT INTO ingest_lease (name, owner, claimed_at, expires_at)
		VALUES ($1, $2, now(), now() + make_interval(secs => $3))
		ON CONFLICT (name) DO UPDATE
		SET owner = EXCLUDED.owner, claimed_at = EXCLUDED.claimed_at, expires_at = EXCLUDED.expires_at
		WHERE ingest_lease.expires_at <= now()
		RETURNING true
	`, name, owner, ttl.Seconds())
	if err != nil {
		return false, err
	}
	defer rows.Close()
	claimed := rows.Next()
	return claimed, rows.Err()
}

// ReleaseLease drops the lease if owner still holds it
func (r *queries) ReleaseLease(ctx context.Context, name, owner string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM ingest_lease WHERE name = $1 AND owner = $2`, name, owner)
	return err
}

// StartRun records a running ingestion
func (r *queries) StartRun(ctx context.Context, id, trigger string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ingest_runs (id, trigger, status, started_at)
		VALUES ($1::uuid, $2, 'running', now())
	`, id, trigger)
	return err
}

// FinishRun closes a run row with its counters
func (r *queries) FinishRun(ctx context.Context, id string, fin domain.RunFinish) error {
	_, err := r.q.Exec(ctx, `
		UPDATE ingest_runs SET
			finished_at = now(),
			status = $2,
			fetched = $3,
			mapped = $4,
			inserted = $5,
			skipped = $6,
			error = NULLIF($7, '')
		WHERE id = $1::uuid
	`, id, fin.Status, fin.Fetched, fin.Mapped, fin.Inserted, fin.Skipped, fin.ErrText)
	return err
}

// ListRuns returns the latest runs first
func (r *queries) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, trigger, status, started_at, finished_at,
		       fetched, mapped, inserted, skipped, error
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Run, 0, limit)
	for rows.Next() {
		var run domain.Run
		if err := rows.Scan(
			&run.ID, &run.Trigger, &run.Status, &run.StartedAt, &run.FinishedAt,
			&run.Fetched, &run.Mapped, &run.Inserted, &run.Skipped, &run.Error,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

const insertOfferSQL = `
	INSERT INTO offers (
		source, source_id, title, description, company, company_id, job, job_id, url,
		minimum_salary, maximum_salary, published_at,
		location_label, location_city, location_region, location_country,
		location_country_code, location_latitude, location_longitude,
		remote_mode, experience_level, duration, duration_period, renewable,
		starts_at, applications_count, skills
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9,
		$10, $11, $12,
		$13, $14, $15, $16,
		$17, $18, $19,
		$20, $21, $22, $23, $24,
		$25, $26, $27
	)
	ON CONFLICT (source, source_id) DO NOTHING
	RETURNING id, created_at
`

// InsertOffers writes each offer unless (source, source_id) already exists
func (r *queries) InsertOffers(ctx context.Context, os []offer.Offer) ([]offer.Offer, error) {
	inserted := make([]offer.Offer, 0, len(os))
	for _, o := range os {
		skills := o.Skills
		if skills == nil {
			skills = []string{}
		}
		l := o.Location
		rows, err := r.q.Query(ctx, insertOfferSQL,
			o.Source, o.SourceID, o.Title, o.Description, o.Company, o.CompanyID, o.Job, o.JobID, o.URL,
			o.MinimumSalary, o.MaximumSalary, o.PublishedAt.UTC(),
			l.Label, l.City, l.Region, l.Country,
			l.CountryCode, l.Latitude, l.Longitude,
			o.RemoteMode, o.ExperienceLevel, o.Duration, o.DurationPeriod, o.Renewable,
			o.StartsAt, o.ApplicationsCount, skills,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert offer %s: %w", o.Key(), err)
		}
		if rows.Next() {
			if err := rows.Scan(&o.ID, &o.CreatedAt); err != nil {
				rows.Close()
				return inserted, fmt.Errorf("insert offer %s: %w", o.Key(), err)
			}
			inserted = append(inserted, o)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return inserted, fmt.Errorf("insert offer %s: %w", o.Key(), err)
		}
	}
	return inserted, nil
}
