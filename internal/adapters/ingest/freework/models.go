package freework

// Page is the hydra collection envelope returned by job_postings
type Page struct {
	Members []JobPosting `json:"hydra:member"`
	Total   int          `json:"hydra:totalItems"`
}

// JobPosting is the subset of a free-work posting we keep
type JobPosting struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description"`
	MinDailySalary    *float64  `json:"minDailySalary"`
	MaxDailySalary    *float64  `json:"maxDailySalary"`
	PublishedAt       string    `json:"publishedAt"`
	Company           *Ref      `json:"company"`
	Job               *Ref      `json:"job"`
	Location          *Location `json:"location"`
	RemoteMode        *string   `json:"remoteMode"`
	Skills            []Skill   `json:"skills"`
	ExperienceLevel   *string   `json:"experienceLevel"`
	DurationValue     *int      `json:"durationValue"`
	DurationPeriod    *string   `json:"durationPeriod"`
	Renewable         *bool     `json:"renewable"`
	StartsAt          *string   `json:"startsAt"`
	ApplicationsCount *int      `json:"applicationsCount"`
}

// Ref is a named upstream entity (company, job)
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Location is the posting location; coordinates arrive as strings
type Location struct {
	Label       *string `json:"label"`
	ShortLabel  *string `json:"shortLabel"`
	AdminLevel1 *string `json:"adminLevel1"`
	AdminLevel2 *string `json:"adminLevel2"`
	Country     *string `json:"country"`
	CountryCode *string `json:"countryCode"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
}

// Skill is a tagged skill on a posting
type Skill struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
