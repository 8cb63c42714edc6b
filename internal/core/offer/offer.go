// Package offer defines the job offer entity shared by ingestion and the market API
package offer

import "time"

// SourceFreeWork tags offers fetched from free-work.com
const SourceFreeWork = "FREEWORK"

// Location is where the mission takes place; every field may be unknown
type Location struct {
	Label       *string `json:"label"`
	City        *string `json:"city"`
	Region      *string `json:"region"`
	Country     *string `json:"country"`
	CountryCode *string `json:"countryCode"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
}

// Offer is one freelance posting; nil salaries mean the rate was not disclosed
type Offer struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	SourceID    string    `json:"sourceId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	CompanyID   string    `json:"companyId"`
	Job         *string   `json:"job"`
	JobID       *string   `json:"jobId"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`

	MinimumSalary *float64 `json:"minimumSalary"`
	MaximumSalary *float64 `json:"maximumSalary"`

	Location          Location   `json:"location"`
	RemoteMode        *string    `json:"remoteMode"`
	ExperienceLevel   *string    `json:"experienceLevel"`
	Duration          *int       `json:"duration"`
	DurationPeriod    *string    `json:"durationPeriod"`
	Renewable         *bool      `json:"renewable"`
	StartsAt          *time.Time `json:"startsAt"`
	ApplicationsCount *int       `json:"applicationsCount"`
	Skills            []string   `json:"skills"`
}

// HasRate reports whether both ends of the daily rate are known
func (o Offer) HasRate() bool { return o.MinimumSalary != nil && o.MaximumSalary != nil }

// Key is the deduplication identity of the offer
func (o Offer) Key() string { return o.Source + ":" + o.SourceID }
