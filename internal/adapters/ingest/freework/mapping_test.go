package freework

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"tjmwatch/internal/core/offer"
)

func decodePage(t *testing.T) []JobPosting {
	t.Helper()
	var p Page
	if err := json.Unmarshal([]byte(pageJSON), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return p.Members
}

func TestToOfferFull(t *testing.T) {
	o, err := ToOffer(decodePage(t)[0])
	if err != nil {
		t.Fatalf("ToOffer: %v", err)
	}
	if o.Source != offer.SourceFreeWork || o.SourceID != "11" {
		t.Fatalf("identity = %s/%s", o.Source, o.SourceID)
	}
	if o.URL != "https://www.free-work.com/fr/tech-it/go/job-mission/dev-go" {
		t.Fatalf("url = %s", o.URL)
	}
	if want := time.Date(2024, 5, 2, 6, 15, 0, 0, time.UTC); !o.PublishedAt.Equal(want) {
		t.Fatalf("publishedAt = %v", o.PublishedAt)
	}
	if o.Company != "Acme" || o.CompanyID != "7" || *o.Job != "Go" || *o.JobID != "3" {
		t.Fatalf("company/job = %q %q %v %v", o.Company, o.CompanyID, *o.Job, *o.JobID)
	}
	if *o.Location.City != "Lyon" || *o.Location.Region != "Auvergne-Rhône-Alpes" || *o.Location.Latitude != "45.76" {
		t.Fatalf("location = %+v", o.Location)
	}
	if *o.Duration != 6 || !*o.Renewable || *o.ApplicationsCount != 4 || o.StartsAt == nil {
		t.Fatalf("attributes = %+v", o)
	}
	if !reflect.DeepEqual(o.Skills, []string{"Go"}) {
		t.Fatalf("skills = %#v", o.Skills)
	}
	if !o.HasRate() {
		t.Fatalf("rate should be known")
	}
}

func TestToOfferNulls(t *testing.T) {
	o, err := ToOffer(decodePage(t)[1])
	if err != nil {
		t.Fatalf("ToOffer: %v", err)
	}
	if o.Company != "" || o.Job != nil || o.Location.City != nil || o.HasRate() {
		t.Fatalf("nulls not preserved: %+v", o)
	}
	if o.URL != "https://www.free-work.com/fr/tech-it/job-mission/sans-tjm" {
		t.Fatalf("url = %s", o.URL)
	}
	if o.Skills == nil {
		t.Fatalf("skills must be non-nil")
	}
}

func TestToOffersSkipsBadDates(t *testing.T) {
	ps := decodePage(t)
	ps[1].PublishedAt = "yesterday"
	got, skipped := ToOffers(ps)
	if len(got) != 1 || len(skipped) != 1 {
		t.Fatalf("got=%d skipped=%d", len(got), len(skipped))
	}
}
