// Package domain holds the ingestion run model and ports
package domain

import (
	"context"
	"time"

	"tjmwatch/internal/adapters/ingest/freework"
	perr "tjmwatch/internal/platform/errors"
)

// JobPosting re-exports the upstream posting shape consumed by the mapper
type JobPosting = freework.JobPosting

// LeaseName identifies the single ingestion lease row
const LeaseName = "freework"

// Run statuses
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusError   = "error"
	StatusBusy    = "busy"
)

// Trigger labels stored on runs
const (
	TriggerCron   = "cron"
	TriggerHTTP   = "http"
	TriggerStart  = "start"
	TriggerManual = "manual"
)

// ErrRunInProgress is returned when another owner holds an unexpired lease
var ErrRunInProgress = perr.Conflictf("ingestion already running")

// Result is the outcome reported to callers of a run
type Result struct {
	Count int `json:"count"`
}

// Run is one row of ingest_runs
type Run struct {
	ID         string     `json:"id"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
	Fetched    int        `json:"fetched"`
	Mapped     int        `json:"mapped"`
	Inserted   int        `json:"inserted"`
	Skipped    int        `json:"skipped"`
	Error      *string    `json:"error"`
}

// RunFinish carries the counters written when a run ends
type RunFinish struct {
	Status   string
	Fetched  int
	Mapped   int
	Inserted int
	Skipped  int
	ErrText  string
}

type triggerKey struct{}

// WithTrigger labels the run started under ctx
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFrom returns the trigger label on ctx, manual when unset
func TriggerFrom(ctx context.Context) string {
	if s, ok := ctx.Value(triggerKey{}).(string); ok && s != "" {
		return s
	}
	return TriggerManual
}
