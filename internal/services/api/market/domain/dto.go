// Package domain holds the market DTOs served to the dashboard
package domain

import (
	"time"

	"tjmwatch/internal/core/filter"
	"tjmwatch/internal/core/market"
)

// FilterQuery is the search and period pair shared by every market endpoint
type FilterQuery struct {
	Search string `query:"search" json:"search,omitempty" validate:"max=200" example:"react senior"`
	Period string `query:"period" json:"period,omitempty" example:"30d"`
}

// Filter resolves the query against now; unknown periods mean all
func (q FilterQuery) Filter(now time.Time) filter.Filter {
	return filter.New(q.Search, filter.ParsePeriod(q.Period), now)
}

// PageQuery adds the best-offers page; anything unparsable is page 1
type PageQuery struct {
	FilterQuery
	Page string `query:"page" json:"page,omitempty" example:"2"`
}

// DistributionQuery adds the optional overflow clip
type DistributionQuery struct {
	FilterQuery
	Cap *int `query:"cap" json:"cap,omitempty" validate:"omitempty,min=100" example:"1500"`
}

// Stats is the /stats payload
type Stats struct {
	TotalOffers     int64      `json:"totalOffers"`
	AvgMinRate      int        `json:"avgMinRate"`
	AvgMaxRate      int        `json:"avgMaxRate"`
	MedianMinRate   int        `json:"medianMinRate"`
	MedianMaxRate   int        `json:"medianMaxRate"`
	OffersTrend     float64    `json:"offersTrend"`
	RateTrend       float64    `json:"rateTrend"`
	TopTechnology   string     `json:"topTechnology"`
	CollectingSince *time.Time `json:"collectingSince"`
}

// SeriesCount mirrors the {_all} count object of a series point
type SeriesCount struct {
	All int64 `json:"_all"`
}

// SeriesAvg holds the average rates of a series point; null when no rate was disclosed
type SeriesAvg struct {
	MinimumSalary *float64 `json:"minimumSalary"`
	MaximumSalary *float64 `json:"maximumSalary"`
}

// SeriesPoint is one /offers bucket
type SeriesPoint struct {
	PublishedAt time.Time   `json:"publishedAt"`
	Count       SeriesCount `json:"_count"`
	Avg         SeriesAvg   `json:"_avg"`
}

// OfferItem is one best-offers row
type OfferItem struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Job           *string   `json:"job"`
	MinimumSalary float64   `json:"minimumSalary"`
	MaximumSalary float64   `json:"maximumSalary"`
	PublishedAt   time.Time `json:"publishedAt"`
	URL           string    `json:"url"`
}

// BestOffers is the /best-offers page
type BestOffers struct {
	Offers     []OfferItem `json:"offers"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Technology is one /technologies ranking row
type Technology struct {
	Job        string `json:"job"`
	Count      int64  `json:"count"`
	AvgMinRate int    `json:"avgMinRate"`
	AvgMaxRate int    `json:"avgMaxRate"`
}

// Company is one /companies ranking row
type Company struct {
	Company    string `json:"company"`
	Count      int64  `json:"count"`
	AvgMinRate int    `json:"avgMinRate"`
	AvgMaxRate int    `json:"avgMaxRate"`
}

// RateBucket is one /rate-distribution bar
type RateBucket = market.Labeled
