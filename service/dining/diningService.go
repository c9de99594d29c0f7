package diningsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hecate946/cs130-project/config"
	diningrepo "github.com/Hecate946/cs130-project/repository/dining"
	diningscraper "github.com/Hecate946/cs130-project/scraper/dining"
)

type Repo interface {
	GetBySlug(ctx context.Context, slug string) (*diningrepo.DiningHall, error)
	UpsertHall(ctx context.Context, slug string, menu map[string][]string, hoursToday map[string]string) error
	InsertOccupancy(ctx context.Context, slug string, occupants, capacity int) error
	LatestOccupancy(ctx context.Context, slug string) (*diningrepo.Occupancy, error)
}

type Scraper interface {
	Occupancy(ctx context.Context, slug string) (*int, *int, error)
	HoursToday(ctx context.Context, slug string) (map[string]string, error)
	Menu(ctx context.Context, slug string) (diningscraper.MenuData, error)
}

// Snapshot is the externally served dining view. Occupants/Capacity are nil
// when no occupancy reading exists yet.
type Snapshot struct {
	Slug        string
	Menu        map[string][]string
	HoursToday  map[string]string
	Occupants   *int
	Capacity    *int
	LastUpdated time.Time
}

type Service interface {
	Latest(ctx context.Context, slug string) (*Snapshot, error)
	// All returns a snapshot per known dining location that has been
	// scraped at least once.
	All(ctx context.Context) (map[string]Snapshot, error)
	ScrapeAndStore(ctx context.Context) error
}

type service struct {
	r       Repo
	scraper Scraper
	log     *slog.Logger
}

func New(r Repo, scraper Scraper, log *slog.Logger) Service {
	return &service{r: r, scraper: scraper, log: log}
}

func (s *service) Latest(ctx context.Context, slug string) (*Snapshot, error) {
	hall, err := s.r.GetBySlug(ctx, slug)
	if err != nil || hall == nil {
		return nil, err
	}

	snap := Snapshot{
		Slug:        hall.Slug,
		Menu:        hall.Menu,
		HoursToday:  hall.HoursToday,
		LastUpdated: hall.LastUpdated,
	}
	occ, err := s.r.LatestOccupancy(ctx, slug)
	if err != nil {
		return nil, err
	}
	if occ != nil {
		snap.Occupants = &occ.Occupants
		snap.Capacity = &occ.Capacity
	}
	return &snap, nil
}

func (s *service) All(ctx context.Context) (map[string]Snapshot, error) {
	out := make(map[string]Snapshot, len(config.OccuspaceIDs))
	for slug := range config.OccuspaceIDs {
		snap, err := s.Latest(ctx, slug)
		if err != nil {
			s.log.Error("dining snapshot failed", "slug", slug, "err", err)
			continue
		}
		if snap != nil {
			out[slug] = *snap
		}
	}
	return out, nil
}

// ScrapeAndStore refreshes every dining location. A failing menu page or
// occupancy endpoint degrades that one location, never the batch.
func (s *service) ScrapeAndStore(ctx context.Context) error {
	for slug := range config.OccuspaceIDs {
		hours, err := s.scraper.HoursToday(ctx, slug)
		if err != nil {
			s.log.Error("dining hours scrape failed", "slug", slug, "err", err)
			hours = map[string]string{}
		}

		menu := map[string][]string{}
		if config.SupportsMenuScraping(slug) {
			data, err := s.scraper.Menu(ctx, slug)
			if err != nil {
				s.log.Error("dining menu scrape failed", "slug", slug, "err", err)
			} else {
				menu = data.Stations
			}
		}

		if err := s.r.UpsertHall(ctx, slug, menu, hours); err != nil {
			s.log.Error("dining hall upsert failed", "slug", slug, "err", err)
			continue
		}

		occupants, capacity, err := s.scraper.Occupancy(ctx, slug)
		if err != nil {
			s.log.Warn("dining occupancy unavailable", "slug", slug, "err", err)
			continue
		}
		// Nil means unknown, which is not the same as an empty hall.
		if occupants == nil || capacity == nil {
			continue
		}
		if err := s.r.InsertOccupancy(ctx, slug, *occupants, *capacity); err != nil {
			s.log.Error("dining occupancy insert failed", "slug", slug, "err", err)
		}
	}
	return nil
}
