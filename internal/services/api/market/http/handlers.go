// Package http provides http transport for the market analytics
package http

import (
	stdhttp "net/http"
	"time"

	"tjmwatch/internal/core/market"
	"tjmwatch/internal/modkit/httpkit"
	"tjmwatch/internal/services/api/market/domain"
)

// Register mounts the market endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s, now: time.Now}

	httpkit.GetQuery[domain.FilterQuery](r, "/stats", h.stats)
	httpkit.GetQuery[domain.FilterQuery](r, "/offers", h.series)
	httpkit.GetQuery[domain.PageQuery](r, "/best-offers", h.bestOffers)
	httpkit.GetQuery[domain.FilterQuery](r, "/technologies", h.technologies)
	httpkit.GetQuery[domain.FilterQuery](r, "/companies", h.companies)
	httpkit.GetQuery[domain.DistributionQuery](r, "/rate-distribution", h.distribution)
}

type handlers struct {
	svc domain.ServicePort
	now func() time.Time
}

// swagger:route GET /stats Market marketStats
// @Summary Headline figures
// @Description Volume, average and median daily rates, trends against the previous window and the top technology
// @Tags Market
// @Produce json
// @Param search query string false "Words that must all appear in title, description or job"
// @Param period query string false "7d, 30d, 90d, 1y or all" Enums(7d,30d,90d,1y,all)
// @Success 200 {object} domain.Stats
// @Failure 400 {object} httpkit.Envelope
// @Failure 500 {object} httpkit.Envelope
// @Router /stats [get]
func (h *handlers) stats(r *stdhttp.Request, in domain.FilterQuery) (any, error) {
	return h.svc.Stats(r.Context(), in.Filter(h.now()))
}

// swagger:route GET /offers Market marketSeries
// @Summary Offers over time
// @Description Daily points for 7d and 30d, weekly for 90d and 1y, monthly for all
// @Tags Market
// @Produce json
// @Param search query string false "Search words"
// @Param period query string false "Period" Enums(7d,30d,90d,1y,all)
// @Success 200 {array} domain.SeriesPoint
// @Failure 500 {object} httpkit.Envelope
// @Router /offers [get]
func (h *handlers) series(r *stdhttp.Request, in domain.FilterQuery) (any, error) {
	return h.svc.Series(r.Context(), in.Filter(h.now()))
}

// swagger:route GET /best-offers Market marketBestOffers
// @Summary Best paid offers
// @Tags Market
// @Produce json
// @Param search query string false "Search words"
// @Param period query string false "Period" Enums(7d,30d,90d,1y,all)
// @Param page query int false "1-based page, 20 offers per page"
// @Success 200 {object} domain.BestOffers
// @Failure 500 {object} httpkit.Envelope
// @Router /best-offers [get]
func (h *handlers) bestOffers(r *stdhttp.Request, in domain.PageQuery) (any, error) {
	return h.svc.BestOffers(r.Context(), in.Filter(h.now()), market.ParsePage(in.Page))
}

// swagger:route GET /technologies Market marketTechnologies
// @Summary Top 15 technologies
// @Tags Market
// @Produce json
// @Param search query string false "Search words"
// @Param period query string false "Period" Enums(7d,30d,90d,1y,all)
// @Success 200 {array} domain.Technology
// @Failure 500 {object} httpkit.Envelope
// @Router /technologies [get]
func (h *handlers) technologies(r *stdhttp.Request, in domain.FilterQuery) (any, error) {
	return h.svc.Technologies(r.Context(), in.Filter(h.now()))
}

// swagger:route GET /companies Market marketCompanies
// @Summary Top 20 companies
// @Tags Market
// @Produce json
// @Param search query string false "Search words"
// @Param period query string false "Period" Enums(7d,30d,90d,1y,all)
// @Success 200 {array} domain.Company
// @Failure 500 {object} httpkit.Envelope
// @Router /companies [get]
func (h *handlers) companies(r *stdhttp.Request, in domain.FilterQuery) (any, error) {
	return h.svc.Companies(r.Context(), in.Filter(h.now()))
}

// swagger:route GET /rate-distribution Market marketDistribution
// @Summary Max daily rate histogram
// @Description 100 wide buckets; cap folds every bucket at or above it into one "{cap}+" bucket
// @Tags Market
// @Produce json
// @Param search query string false "Search words"
// @Param period query string false "Period" Enums(7d,30d,90d,1y,all)
// @Param cap query int false "Overflow clip, at least 100"
// @Success 200 {array} domain.RateBucket
// @Failure 400 {object} httpkit.Envelope
// @Failure 500 {object} httpkit.Envelope
// @Router /rate-distribution [get]
func (h *handlers) distribution(r *stdhttp.Request, in domain.DistributionQuery) (any, error) {
	ceiling := 0
	if in.Cap != nil {
		ceiling = *in.Cap
	}
	return h.svc.Distribution(r.Context(), in.Filter(h.now()), ceiling)
}
