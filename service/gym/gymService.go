package gymsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hecate946/cs130-project/config"
	gymrepo "github.com/Hecate946/cs130-project/repository/gym"
	gymscraper "github.com/Hecate946/cs130-project/scraper/gym"
)

type ZoneObservation = gymrepo.ZoneObservation

type Repo interface {
	GetBySlug(ctx context.Context, slug string) (*gymrepo.Gym, error)
	UpsertHours(ctx context.Context, slug string, regular, special map[string]string) error
	InsertCapacity(ctx context.Context, slug, zoneName string, capacity, percentage int, observedAt time.Time) error
	LatestCapacity(ctx context.Context, slug string) ([]ZoneObservation, error)
}

type Scraper interface {
	ZoneCounts(ctx context.Context, facilityID int) ([]gymscraper.ZoneCount, error)
}

// Snapshot is the externally served view: the gym's schedule plus the most
// recent observation per zone.
type Snapshot struct {
	Slug         string
	RegularHours map[string]string
	SpecialHours map[string]string
	Zones        []ZoneObservation
	LastUpdated  time.Time
}

type Service interface {
	Latest(ctx context.Context, slug string) (*Snapshot, error)
	ScrapeAndStore(ctx context.Context) error
}

type service struct {
	r       Repo
	scraper Scraper
	log     *slog.Logger
	now     func() time.Time
}

func New(r Repo, scraper Scraper, log *slog.Logger) Service {
	return &service{r: r, scraper: scraper, log: log, now: time.Now}
}

func (s *service) Latest(ctx context.Context, slug string) (*Snapshot, error) {
	gym, err := s.r.GetBySlug(ctx, slug)
	if err != nil || gym == nil {
		return nil, err
	}
	zones, err := s.r.LatestCapacity(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Slug:         gym.Slug,
		RegularHours: gym.RegularHours,
		SpecialHours: gym.SpecialHours,
		Zones:        zones,
		LastUpdated:  gym.LastUpdated,
	}, nil
}

// ScrapeAndStore refreshes hours and appends a zone observation for every
// configured gym. One gym's failure never blocks the next.
func (s *service) ScrapeAndStore(ctx context.Context) error {
	for slug, facilityID := range config.FacilityIDs {
		if hours, ok := config.GymHoursBySlug[slug]; ok {
			if err := s.r.UpsertHours(ctx, slug, hours.Regular, hours.Special); err != nil {
				s.log.Error("gym hours upsert failed", "slug", slug, "err", err)
			}
		}

		zones, err := s.scraper.ZoneCounts(ctx, facilityID)
		if err != nil {
			s.log.Error("gym zone scrape failed", "slug", slug, "err", err)
			continue
		}
		for _, zone := range zones {
			observedAt := s.parseObservedAt(zone.LastUpdated)
			if err := s.r.InsertCapacity(ctx, slug, zone.ZoneName, zone.LastCount, zone.Percentage, observedAt); err != nil {
				s.log.Error("gym capacity insert failed", "slug", slug, "zone", zone.ZoneName, "err", err)
			}
		}
	}
	return nil
}

// The counter feed's timestamp format has drifted before; fall back to scrape
// time when it cannot be parsed.
func (s *service) parseObservedAt(raw string) time.Time {
	for _, layout := range []string{"1/2/2006 3:04:05 PM", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return s.now().UTC().Truncate(time.Second)
}
