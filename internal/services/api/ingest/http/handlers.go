// Package http exposes the ingestion trigger and run history
package http

import (
	stdhttp "net/http"

	"tjmwatch/internal/modkit/httpkit"
	"tjmwatch/internal/platform/net/middleware"
	"tjmwatch/internal/services/api/ingest/domain"
	ingest "tjmwatch/internal/services/ingest/domain"
)

type handlers struct {
	ports domain.Ports
}

// Register mounts /cron and /ingest/runs behind the auth port
func Register(r httpkit.Router, auth middleware.AuthPort, p domain.Ports) {
	h := &handlers{ports: p}

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.GetQuery[struct{}](pr, "/cron", h.cron)
		httpkit.GetQuery[domain.RunsQuery](pr, "/ingest/runs", h.runs)
	})
}

// swagger:route GET /cron Ingest ingestCron
// @Summary Run one ingestion now
// @Description Fetches the last 24 hours of contractor offers and stores the new ones; returns how many were inserted
// @Tags Ingest
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ingest.Result
// @Failure 401 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope "another run holds the lease"
// @Failure 502 {object} httpkit.Envelope
// @Router /cron [get]
func (h *handlers) cron(r *stdhttp.Request, _ struct{}) (any, error) {
	ctx := ingest.WithTrigger(r.Context(), ingest.TriggerHTTP)
	return h.ports.Runner.Run(ctx)
}

// swagger:route GET /ingest/runs Ingest ingestRuns
// @Summary Recent ingestion runs
// @Tags Ingest
// @Produce json
// @Security BearerAuth
// @Param limit query int false "1 to 100, default 20"
// @Success 200 {array} ingest.Run
// @Failure 400 {object} httpkit.Envelope
// @Failure 401 {object} httpkit.Envelope
// @Router /ingest/runs [get]
func (h *handlers) runs(r *stdhttp.Request, in domain.RunsQuery) (any, error) {
	limit := in.Limit
	if limit == 0 {
		limit = domain.DefaultRunsLimit
	}
	return h.ports.Runs.Recent(r.Context(), limit)
}
