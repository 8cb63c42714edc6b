package freework

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tjmwatch/internal/core/offer"
	str "tjmwatch/internal/platform/strings"
)

const missionURL = "https://www.free-work.com/fr/tech-it/%s/job-mission/%s"

// URL builds the public mission page for a posting
func (p JobPosting) URL() string {
	if p.Job == nil || p.Job.Slug == "" {
		return fmt.Sprintf("https://www.free-work.com/fr/tech-it/job-mission/%s", p.Slug)
	}
	return fmt.Sprintf(missionURL, p.Job.Slug, p.Slug)
}

// ToOffer maps an upstream posting to an offer; nulls stay nil
func ToOffer(p JobPosting) (offer.Offer, error) {
	published, err := parseTime(p.PublishedAt)
	if err != nil {
		return offer.Offer{}, fmt.Errorf("posting %d: publishedAt: %w", p.ID, err)
	}

	o := offer.Offer{
		Source:            offer.SourceFreeWork,
		SourceID:          strconv.FormatInt(p.ID, 10),
		Title:             str.Squash(p.Title),
		Description:       p.Description,
		URL:               p.URL(),
		PublishedAt:       published,
		MinimumSalary:     p.MinDailySalary,
		MaximumSalary:     p.MaxDailySalary,
		RemoteMode:        str.NilIfBlank(p.RemoteMode),
		ExperienceLevel:   str.NilIfBlank(p.ExperienceLevel),
		Duration:          p.DurationValue,
		DurationPeriod:    str.NilIfBlank(p.DurationPeriod),
		Renewable:         p.Renewable,
		ApplicationsCount: p.ApplicationsCount,
		Skills:            make([]string, 0, len(p.Skills)),
	}
	if p.Company != nil {
		o.Company = p.Company.Name
		o.CompanyID = strconv.FormatInt(p.Company.ID, 10)
	}
	if p.Job != nil {
		name, id := p.Job.Name, strconv.FormatInt(p.Job.ID, 10)
		o.Job, o.JobID = &name, &id
	}
	if l := p.Location; l != nil {
		o.Location = offer.Location{
			Label:       l.Label,
			City:        l.AdminLevel2,
			Region:      l.AdminLevel1,
			Country:     l.Country,
			CountryCode: l.CountryCode,
			Latitude:    l.Latitude,
			Longitude:   l.Longitude,
		}
	}
	if starts := str.NilIfBlank(p.StartsAt); starts != nil {
		if t, err := parseTime(*starts); err == nil {
			o.StartsAt = &t
		}
	}
	for _, s := range p.Skills {
		if name := strings.TrimSpace(s.Name); name != "" {
			o.Skills = append(o.Skills, name)
		}
	}
	return o, nil
}

// ToOffers maps a batch, skipping postings that cannot be mapped
func ToOffers(ps []JobPosting) (out []offer.Offer, skipped []error) {
	out = make([]offer.Offer, 0, len(ps))
	for _, p := range ps {
		o, err := ToOffer(p)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		out = append(out, o)
	}
	return out, skipped
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05-0700", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
