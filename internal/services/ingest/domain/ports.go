package domain

import (
	"context"
	"time"

	"tjmwatch/internal/core/offer"
)

// RunnerPort runs one ingestion pass
type RunnerPort interface {
	Run(ctx context.Context) (Result, error)
}

// RunsPort lists recent runs, newest first
type RunsPort interface {
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// SchemaPort creates the tables ingestion and the market API rely on
type SchemaPort interface {
	EnsureSchema(ctx context.Context) error
}

// StorageRepo is the Postgres surface used by ingestion
type StorageRepo interface {
	EnsureSchema(ctx context.Context) error

	// ClaimLease takes name for owner unless another owner holds it unexpired
	ClaimLease(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)

	// ReleaseLease drops name only while owner still holds it
	ReleaseLease(ctx context.Context, name, owner string) error

	StartRun(ctx context.Context, id, trigger string) error
	FinishRun(ctx context.Context, id string, fin RunFinish) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// InsertOffers inserts or skips on (source, source_id); returns the rows actually written
	InsertOffers(ctx context.Context, os []offer.Offer) ([]offer.Offer, error)
}

// Fetcher pulls recent postings from upstream
type Fetcher interface {
	FetchRecent(ctx context.Context) ([]JobPosting, int, error)
}

// Mirror copies newly inserted offers to the analytics store
type Mirror interface {
	EnsureSchema(ctx context.Context) error
	Mirror(ctx context.Context, os []offer.Offer) error
}

// Invalidator drops cached market responses
type Invalidator interface {
	Bump(ctx context.Context) (int64, error)
}

// Recorder receives run metrics
type Recorder interface {
	ObserveIngest(status string, fetched, inserted int, finished time.Time)
}
