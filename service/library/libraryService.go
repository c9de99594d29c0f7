package librarysvc

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/Hecate946/cs130-project/config"
	libraryrepo "github.com/Hecate946/cs130-project/repository/library"
	libraryscraper "github.com/Hecate946/cs130-project/scraper/library"
)

type (
	Library          = libraryrepo.Library
	Booking          = libraryrepo.Booking
	RoomWithBookings = libraryrepo.RoomWithBookings
)

type Repo interface {
	List(ctx context.Context) ([]Library, error)
	GetBySlug(ctx context.Context, slug string) (*Library, error)
	Seed(ctx context.Context, libs []Library) error
	UpsertRoom(ctx context.Context, libraryID int64, name string, capacity int) (int64, error)
	UpsertBooking(ctx context.Context, roomID int64, start, end time.Time, status string) error
	Rooms(ctx context.Context, libraryID int64) ([]RoomWithBookings, error)
	Bookings(ctx context.Context, libraryID int64) ([]Booking, error)
	BookingsInRange(ctx context.Context, libraryID int64, start, end time.Time) ([]Booking, error)
}

type Scraper interface {
	Availability(ctx context.Context) map[string]libraryscraper.GridResponse
}

// ReconcileStats summarizes one grid reconciliation so failures stay
// inspectable instead of silently swallowed.
type ReconcileStats struct {
	Rooms        int
	Upserted     int
	SkippedSlots int
	RoomErrors   int
}

type Service interface {
	Libraries(ctx context.Context) ([]Library, error)
	Details(ctx context.Context, slug string) (*Library, error)
	Rooms(ctx context.Context, slug string) ([]RoomWithBookings, error)
	Bookings(ctx context.Context, slug string) ([]Booking, error)
	BookingsInRange(ctx context.Context, slug string, start, end time.Time) ([]Booking, error)
	// ReconcileGrid merges one library's raw grid response into rooms and
	// bookings. Repeated calls with the same window converge: the same
	// (room, start, end) interval stays a single row whose status tracks
	// the most recent scrape.
	ReconcileGrid(ctx context.Context, libraryID int64, grid libraryscraper.GridResponse) ReconcileStats
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

func (s *service) Libraries(ctx context.Context) ([]Library, error) { return s.r.List(ctx) }

func (s *service) Details(ctx context.Context, slug string) (*Library, error) {
	return s.r.GetBySlug(ctx, slug)
}

func (s *service) Rooms(ctx context.Context, slug string) ([]RoomWithBookings, error) {
	lib, err := s.r.GetBySlug(ctx, slug)
	if err != nil || lib == nil {
		return nil, err
	}
	return s.r.Rooms(ctx, lib.ID)
}

func (s *service) Bookings(ctx context.Context, slug string) ([]Booking, error) {
	lib, err := s.r.GetBySlug(ctx, slug)
	if err != nil || lib == nil {
		return nil, err
	}
	return s.r.Bookings(ctx, lib.ID)
}

func (s *service) BookingsInRange(ctx context.Context, slug string, start, end time.Time) ([]Booking, error) {
	lib, err := s.r.GetBySlug(ctx, slug)
	if err != nil || lib == nil {
		return nil, err
	}
	return s.r.BookingsInRange(ctx, lib.ID, start, end)
}

func (s *service) ReconcileGrid(ctx context.Context, libraryID int64, grid libraryscraper.GridResponse) ReconcileStats {
	var stats ReconcileStats

	// Group the flat slot list by room.
	byRoom := map[libraryscraper.ItemID][]libraryscraper.Slot{}
	for _, slot := range grid.Slots {
		byRoom[slot.ItemID] = append(byRoom[slot.ItemID], slot)
	}
	stats.Rooms = len(byRoom)

	for itemID, slots := range byRoom {
		name := config.RoomName(int64(itemID))
		// The grid API exposes no capacity, so new rooms start at 1.
		roomID, err := s.r.UpsertRoom(ctx, libraryID, name, 1)
		if err != nil {
			s.log.Error("room upsert failed", "library_id", libraryID, "room", name, "err", err)
			stats.RoomErrors++
			continue
		}

		for _, slot := range slots {
			start, end, err := ParseSlotInterval(slot.Start, slot.End)
			if err != nil {
				s.log.Warn("skipping malformed slot", "room", name, "start", slot.Start, "end", slot.End, "err", err)
				stats.SkippedSlots++
				continue
			}
			status := "available"
			if slot.Booked() {
				status = "booked"
			}
			if err := s.r.UpsertBooking(ctx, roomID, start, end, status); err != nil {
				s.log.Error("booking upsert failed", "room", name, "start", start, "err", err)
				stats.SkippedSlots++
				continue
			}
			stats.Upserted++
		}
	}
	return stats
}

func (s *service) ScrapeAndStore(ctx context.Context) error {
	results := s.scraper.Availability(ctx)
	for slug, grid := range results {
		lib, err := s.r.GetBySlug(ctx, slug)
		if err != nil {
			s.log.Error("library lookup failed", "slug", slug, "err", err)
			continue
		}
		if lib == nil {
			s.log.Warn("grid data for unseeded library", "slug", slug)
			continue
		}
		stats := s.ReconcileGrid(ctx, lib.ID, grid)
		s.log.Info("library reconciled",
			"slug", slug,
			"rooms", stats.Rooms,
			"upserted", stats.Upserted,
			"skipped", stats.SkippedSlots,
			"room_errors", stats.RoomErrors,
		)
	}
	return nil
}

const slotTimeLayout = "2006-01-02 15:04:05"

var colonSpacing = regexp.MustCompile(`\s*:\s*`)

// NormalizeSlotTime collapses the grid API's inconsistent spacing around
// colons, e.g. "2025-02-20 12: 30: 00" -> "2025-02-20 12:30:00".
func NormalizeSlotTime(s string) string {
	return colonSpacing.ReplaceAllString(s, ":")
}

// ParseSlotInterval parses and validates a slot's timestamps, rejecting any
// interval that does not satisfy start < end.
func ParseSlotInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(slotTimeLayout, NormalizeSlotTime(startStr))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(slotTimeLayout, NormalizeSlotTime(endStr))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, errInvalidInterval
	}
	return start, end, nil
}

type intervalError string

func (e intervalError) Error() string { return string(e) }

const errInvalidInterval = intervalError("slot start_time must be before end_time")
