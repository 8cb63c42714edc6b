// Package domain holds the transport shapes for the ingestion endpoints
package domain

import (
	ingest "tjmwatch/internal/services/ingest/domain"
)

// RunsQuery bounds the run listing
type RunsQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Ports are what the endpoints need from the ingest service
// an empty Secret leaves the endpoints open
type Ports struct {
	Runner ingest.RunnerPort
	Runs   ingest.RunsPort
	Secret string
}

// DefaultRunsLimit applies when the caller sends no limit
const DefaultRunsLimit = 20
